package unigene

import (
	"bytes"
	"testing"
)

func TestConfigIO(t *testing.T) {
	conf := *DefaultConfig
	conf.WordSize = 12
	conf.RefineScore = true

	buf := new(bytes.Buffer)
	if err := conf.Write(buf); err != nil {
		t.Fatal(err)
	}

	got, err := LoadConfig(buf)
	if err != nil {
		t.Fatal(err)
	}
	if *got != conf {
		t.Fatalf("%+v != %+v", *got, conf)
	}
}

func TestLoadConfigDefaultsUnsetFields(t *testing.T) {
	got, err := LoadConfig(bytes.NewReader([]byte("WordSize:6\n")))
	if err != nil {
		t.Fatal(err)
	}
	if got.WordSize != 6 {
		t.Fatalf("WordSize = %d, want 6", got.WordSize)
	}
	if got.ScoreThresh != DefaultConfig.ScoreThresh {
		t.Fatalf("ScoreThresh = %d, want default %d", got.ScoreThresh, DefaultConfig.ScoreThresh)
	}
}
