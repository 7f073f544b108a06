package universe

import (
	"os"
	"time"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

//optionsFile is the YAML shape of an options file. Pointer fields
//distinguish "absent" from zero; the interval is a string for
//time.ParseDuration since yaml has no duration type.
type optionsFile struct {
	Width           *uint32 `yaml:"width"`
	Height          *uint32 `yaml:"height"`
	Interval        string  `yaml:"interval"`
	MaxSteps        *int    `yaml:"maxSteps"`
	MaxSkippedTicks *int    `yaml:"maxSkippedTicks"`
	Parallel        *bool   `yaml:"parallel"`
}

//LoadOptions reads engine options from a YAML file, starting from
//DefaultOptions so the file only needs to name the fields it overrides.
func LoadOptions(path string) (*Options, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "reading options file %s", path)
	}

	var f optionsFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, errors.Wrapf(err, "parsing options file %s", path)
	}

	o := DefaultOptions
	if f.Width != nil {
		o.Width = *f.Width
	}
	if f.Height != nil {
		o.Height = *f.Height
	}
	if f.Interval != "" {
		d, err := time.ParseDuration(f.Interval)
		if err != nil {
			return nil, errors.Wrapf(err, "parsing interval in options file %s", path)
		}
		o.Interval = d
	}
	if f.MaxSteps != nil {
		o.MaxSteps = *f.MaxSteps
	}
	if f.MaxSkippedTicks != nil {
		o.MaxSkippedTicks = *f.MaxSkippedTicks
	}
	if f.Parallel != nil {
		o.Parallel = *f.Parallel
	}

	if o.Width == 0 || o.Height == 0 {
		return nil, errors.Errorf("options file %s: width and height must be positive", path)
	}
	return &o, nil
}
