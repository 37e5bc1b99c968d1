package registry

import (
	"bytes"
	"io"
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// File is the on-disk layout of a registry table.
type File struct {
	Constants []Constant `yaml:"constants"`
	Versions  []Version  `yaml:"versions"`
}

// LoadFile reads a YAML registry table from path.
func LoadFile(path string) (*Registry, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "open registry %s", path)
	}
	defer f.Close()

	r, err := Load(f)
	if err != nil {
		return nil, errors.Wrapf(err, "load registry %s", path)
	}
	return r, nil
}

// Load decodes a YAML registry table. Unknown fields are rejected.
func Load(in io.Reader) (*Registry, error) {
	dec := yaml.NewDecoder(in)
	dec.KnownFields(true)

	var file File
	if err := dec.Decode(&file); err != nil {
		return nil, errors.Wrap(err, "decode registry yaml")
	}
	return New(file.Constants, file.Versions)
}

// Marshal encodes the registry back into its YAML file layout.
func (r *Registry) Marshal() ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(File{Constants: r.Constants(), Versions: r.Versions()}); err != nil {
		return nil, errors.Wrap(err, "encode registry yaml")
	}
	if err := enc.Close(); err != nil {
		return nil, errors.Wrap(err, "encode registry yaml")
	}
	return buf.Bytes(), nil
}
