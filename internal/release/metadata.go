package release

import (
	"fmt"

	"github.com/BurntSushi/toml"
	"github.com/spf13/afero"
)

// Metadata identifies the distribution being released.
type Metadata struct {
	Name    string
	Version string
}

func (m Metadata) String() string {
	if m.Version == "" {
		return m.Name
	}
	return m.Name + " " + m.Version
}

type pyproject struct {
	Project struct {
		Name    string `toml:"name"`
		Version string `toml:"version"`
	} `toml:"project"`
	Tool struct {
		Poetry struct {
			Name    string `toml:"name"`
			Version string `toml:"version"`
		} `toml:"poetry"`
	} `toml:"tool"`
}

// ReadMetadata reads the project name and version from a pyproject.toml,
// preferring the [project] table over [tool.poetry].
func ReadMetadata(fs afero.Fs, path string) (Metadata, error) {
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return Metadata{}, err
	}

	var doc pyproject
	if _, err := toml.Decode(string(data), &doc); err != nil {
		return Metadata{}, fmt.Errorf("parse %s: %w", path, err)
	}

	m := Metadata{Name: doc.Project.Name, Version: doc.Project.Version}
	if m.Name == "" {
		m.Name = doc.Tool.Poetry.Name
	}
	if m.Version == "" {
		m.Version = doc.Tool.Poetry.Version
	}
	if m.Name == "" {
		return Metadata{}, fmt.Errorf("%s: no project name", path)
	}
	return m, nil
}
