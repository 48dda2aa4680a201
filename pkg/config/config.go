// Package config loads the publisher settings from an optional YAML file.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	"github.com/creasty/defaults"
	"github.com/go-playground/validator/v10"
	"github.com/robfig/cron/v3"
	"gopkg.in/yaml.v3"
)

// DefaultFile is looked up in the working directory when no file is given.
const DefaultFile = "dgpub.yaml"

// Config holds every setting of a publish run.
type Config struct {
	Source     string   `yaml:"source" default:"./origin" validate:"required"`
	Dist       string   `yaml:"dist" default:"./dist" validate:"required"`
	IndexFile  string   `yaml:"index_file" default:"index.md" validate:"required,excludesall=/\\"`
	Include    []string `yaml:"include" default:"[\"*\"]" validate:"dive,required"`
	Exclude    []string `yaml:"exclude" validate:"dive,required"`
	LegacyJoin bool     `yaml:"legacy_join"`

	// Resync is a cron expression ("@every 10m", "0 * * * *") for full passes
	// while watching, on top of the change notifications. Empty disables it.
	Resync string `yaml:"resync" validate:"omitempty,cron"`
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	_ = v.RegisterValidation("cron", func(fl validator.FieldLevel) bool {
		_, err := cron.ParseStandard(fl.Field().String())
		return err == nil
	})
	return v
}

// Default returns the configuration used when no file is present.
func Default() Config {
	var c Config
	if err := defaults.Set(&c); err != nil {
		// Only reachable with a malformed default tag on Config.
		panic(fmt.Sprintf("config: invalid default tags: %v", err))
	}
	return c
}

// Load reads the configuration at path and fills unset fields with defaults.
//
// An empty path looks for DefaultFile and silently falls back to Default when
// it does not exist. An explicit path must exist.
func Load(path string) (Config, error) {
	explicit := path != ""
	if !explicit {
		path = DefaultFile
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if !explicit && errors.Is(err, fs.ErrNotExist) {
			return Default(), nil
		}
		return Config{}, fmt.Errorf("failed to read config %s: %w", path, err)
	}

	return Parse(data)
}

// Parse decodes YAML configuration data and applies defaults.
func Parse(data []byte) (Config, error) {
	var c Config
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&c); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}
	if err := defaults.Set(&c); err != nil {
		return Config{}, fmt.Errorf("failed to apply config defaults: %w", err)
	}
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

// Validate checks the settings that cannot be defaulted.
func (c Config) Validate() error {
	err := validate.Struct(c)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("config: %w", err)
	}
	msgs := make([]error, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, fmt.Errorf("config: %s fails %q (value %v)", fe.Namespace(), fe.Tag(), fe.Value()))
	}
	return errors.Join(msgs...)
}
