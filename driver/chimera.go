package driver

import (
	"bufio"
	"io"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// LoadChimera reads a chimera-exclusion file: one sequence id per
// line, blank lines and "#"-prefixed comments ignored. Used by the
// clusterer (spec.md §4.5) to skip known-chimeric reads.
func LoadChimera(r io.Reader) (map[int]bool, error) {
	out := map[int]bool{}
	scanner := bufio.NewScanner(r)
	line := 0
	for scanner.Scan() {
		line++
		text := strings.TrimSpace(scanner.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		id, err := strconv.Atoi(text)
		if err != nil {
			return nil, errors.Wrapf(err, "driver: chimera file line %d", line)
		}
		out[id] = true
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrap(err, "driver: read chimera file")
	}
	return out, nil
}
