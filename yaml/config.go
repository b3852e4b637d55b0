// Package yaml loads reviewscout configuration from YAML.
package yaml

import (
	"bytes"
	_ "embed"
	"errors"
	"io"
	"os"

	"github.com/akash-new/reviewscout"
	"gopkg.in/yaml.v3"
)

//go:embed default.yaml
var defaultConfig []byte

// Default returns the embedded default configuration.
func Default() (*reviewscout.Config, error) {
	return Parse(defaultConfig)
}

// Load returns the embedded default overlaid with the file at path. Keys
// present in the file replace the default's; lists are replaced whole. An
// empty path loads the default alone.
func Load(path string) (*reviewscout.Config, error) {
	if path == "" {
		return Default()
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, reviewscout.Errorf(reviewscout.ENOTFOUND, "config file %s not found", path)
		}
		return nil, err
	}

	return Parse(defaultConfig, data)
}

// Parse decodes the documents in order onto one configuration and validates
// the result. Environment variables referenced as $VAR or ${VAR} are
// expanded first. Unknown keys are rejected.
func Parse(docs ...[]byte) (*reviewscout.Config, error) {
	var cfg reviewscout.Config

	for _, data := range docs {
		data = []byte(os.ExpandEnv(string(data)))

		decoder := yaml.NewDecoder(bytes.NewReader(data))
		decoder.KnownFields(true)

		if err := decoder.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
			return nil, reviewscout.Errorf(reviewscout.EINVALID, "parse config: %v", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}
