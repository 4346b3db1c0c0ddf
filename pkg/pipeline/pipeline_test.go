package pipeline

import (
	"io"
	"testing"

	"github.com/charmbracelet/log"
)

func TestValidateFormat(t *testing.T) {
	for _, f := range []string{"json", "dot", "svg", "png"} {
		if err := ValidateFormat(f); err != nil {
			t.Errorf("ValidateFormat(%q) = %v, want nil", f, err)
		}
	}
	if err := ValidateFormat("pdf"); err == nil {
		t.Error("ValidateFormat(pdf) should fail")
	}
	if err := ValidateFormats([]string{"json", "gif"}); err == nil {
		t.Error("ValidateFormats with invalid entry should fail")
	}
}

func TestOptionsValidateAndSetDefaults(t *testing.T) {
	opts := Options{Candidates: 3}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("ValidateAndSetDefaults: %v", err)
	}

	if opts.Workers != DefaultWorkers {
		t.Errorf("Workers = %d, want %d", opts.Workers, DefaultWorkers)
	}
	if opts.MaxGroupSize != DefaultMaxGroupSize {
		t.Errorf("MaxGroupSize = %d, want %d", opts.MaxGroupSize, DefaultMaxGroupSize)
	}
	if len(opts.Formats) != 1 || opts.Formats[0] != FormatJSON {
		t.Errorf("Formats = %v, want [json]", opts.Formats)
	}
	if opts.Logger == nil {
		t.Error("Logger should default to a discard logger")
	}

	// Idempotent
	opts.Formats = nil
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("second ValidateAndSetDefaults: %v", err)
	}
	if opts.Formats != nil {
		t.Error("second call should not re-apply defaults")
	}
}

func TestOptionsValidate_Invalid(t *testing.T) {
	tests := []struct {
		name string
		opts Options
	}{
		{"negative candidates", Options{Candidates: -1}},
		{"name count mismatch", Options{Candidates: 3, Names: []string{"Alice"}}},
		{"bad format", Options{Candidates: 3, Formats: []string{"gif"}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.opts.ValidateAndSetDefaults(); err == nil {
				t.Error("ValidateAndSetDefaults should fail")
			}
		})
	}
}

func TestGuardGroupSize(t *testing.T) {
	opts := Options{MaxGroupSize: -1}
	if opts.GuardGroupSize() {
		t.Error("MaxGroupSize -1 should disable the guard")
	}
	opts.MaxGroupSize = 8
	if !opts.GuardGroupSize() {
		t.Error("positive MaxGroupSize should enable the guard")
	}
}

func TestArtifactKeyOpts_ReflectsDetailed(t *testing.T) {
	detailed := Options{Detailed: true}
	plain := Options{Detailed: false}
	if detailed.ArtifactKeyOpts("dot") == plain.ArtifactKeyOpts("dot") {
		t.Error("Detailed should be part of artifact key options")
	}
}

// discardLogger silences pipeline output in tests.
func discardLogger() *log.Logger {
	return log.NewWithOptions(io.Discard, log.Options{})
}
