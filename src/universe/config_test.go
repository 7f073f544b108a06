package universe

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadOptions(t *testing.T) {
	path := filepath.Join(t.TempDir(), "options.yaml")
	content := "width: 120\nheight: 80\ninterval: 20ms\nparallel: true\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	o, err := LoadOptions(path)
	if err != nil {
		t.Fatal(err)
	}
	if o.Width != 120 || o.Height != 80 {
		t.Fatalf("dimensions = %dx%d, want 120x80", o.Width, o.Height)
	}
	if o.Interval != 20*time.Millisecond {
		t.Fatalf("interval = %v, want 20ms", o.Interval)
	}
	if !o.Parallel {
		t.Fatal("parallel should be true")
	}
	//fields the file does not name keep their defaults
	if o.MaxSteps != DefMaxSteps {
		t.Fatalf("maxSteps = %d, want default %d", o.MaxSteps, DefMaxSteps)
	}
}

func TestLoadOptionsMissingFile(t *testing.T) {
	if _, err := LoadOptions(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatal("a missing options file should be an error")
	}
}

func TestLoadOptionsRejectsZeroDimensions(t *testing.T) {
	path := filepath.Join(t.TempDir(), "options.yaml")
	if err := os.WriteFile(path, []byte("width: 0\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadOptions(path); err == nil {
		t.Fatal("zero width should be rejected")
	}
}
