package unigene

import (
	"encoding/csv"
	"io"
	"strconv"

	"github.com/pkg/errors"
)

// Config holds the tunable parameters shared across the pipeline's
// stages. Individual cmd/unigene-* binaries expose a subset of these
// as flags (see spec.md §6); a single Config value can also be
// round-tripped to disk so the same parameters can be reused across a
// multi-stage run without repeating every flag.
type Config struct {
	WordSize      int  // w, 2 <= WordSize <= 24
	ScoreThresh   int  // minimum longest-path score to report a hit
	MemSizeMB     int  // lookup-table shard memory budget
	ForwardOnly   bool // skip odd-numbered sequence ids in the builder
	FlipComponent bool // apply the mate-flip heuristic to components (see spec.md §9)
	RefineScore   bool // run the optional banded-alignment score refinement
}

// DefaultConfig matches the defaults spelled out in spec.md §6.
var DefaultConfig = &Config{
	WordSize:      4,
	ScoreThresh:   75,
	MemSizeMB:     192,
	ForwardOnly:   false,
	FlipComponent: false,
	RefineScore:   false,
}

// Write serializes conf as colon-delimited "Field:Value" lines, one
// per field, so it can be diffed and edited by hand.
func (conf *Config) Write(w io.Writer) error {
	csvWriter := csv.NewWriter(w)
	csvWriter.Comma = ':'
	rows := [][]string{
		{"WordSize", strconv.Itoa(conf.WordSize)},
		{"ScoreThresh", strconv.Itoa(conf.ScoreThresh)},
		{"MemSizeMB", strconv.Itoa(conf.MemSizeMB)},
		{"ForwardOnly", strconv.FormatBool(conf.ForwardOnly)},
		{"FlipComponent", strconv.FormatBool(conf.FlipComponent)},
		{"RefineScore", strconv.FormatBool(conf.RefineScore)},
	}
	if err := csvWriter.WriteAll(rows); err != nil {
		return errors.Wrap(err, "config: write")
	}
	return nil
}

// LoadConfig reads a Config previously written by Write. Unrecognized
// fields are ignored so older config files stay loadable.
func LoadConfig(r io.Reader) (*Config, error) {
	conf := *DefaultConfig
	csvReader := csv.NewReader(r)
	csvReader.Comma = ':'
	csvReader.FieldsPerRecord = 2
	csvReader.TrimLeadingSpace = true

	lines, err := csvReader.ReadAll()
	if err != nil {
		return nil, errors.Wrap(err, "config: load")
	}
	for _, line := range lines {
		switch line[0] {
		case "WordSize":
			conf.WordSize, err = strconv.Atoi(line[1])
		case "ScoreThresh":
			conf.ScoreThresh, err = strconv.Atoi(line[1])
		case "MemSizeMB":
			conf.MemSizeMB, err = strconv.Atoi(line[1])
		case "ForwardOnly":
			conf.ForwardOnly, err = strconv.ParseBool(line[1])
		case "FlipComponent":
			conf.FlipComponent, err = strconv.ParseBool(line[1])
		case "RefineScore":
			conf.RefineScore, err = strconv.ParseBool(line[1])
		}
		if err != nil {
			return nil, errors.Wrapf(err, "config: field %s", line[0])
		}
	}
	return &conf, nil
}
