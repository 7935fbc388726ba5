package config

import (
	"io"

	"gopkg.in/yaml.v3"
)

// WriteYAML writes c in config file format.
func (c *Config) WriteYAML(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(c); err != nil {
		return err
	}
	return enc.Close()
}
