package config

import (
	"errors"
	"io/fs"
	"testing"
)

func TestLoadConfigMissingFileErrorIsStable(t *testing.T) {
	first, err := LoadConfig("testdata/does-not-exist.xml")
	if first != nil {
		t.Fatalf("config = %+v, want nil", first)
	}
	if !errors.Is(err, fs.ErrNotExist) {
		t.Fatalf("error = %v, want wrapped fs.ErrNotExist", err)
	}

	// A retry reports the original failure, not a made-up one.
	retry, err := LoadConfig("testdata/does-not-exist.xml")
	if retry != nil {
		t.Fatalf("retry config = %+v, want nil", retry)
	}
	if !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("retry error = %v, want wrapped fs.ErrNotExist", err)
	}
}
