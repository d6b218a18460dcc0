// Package config loads a project's raven.toml manifest: the module search
// path and a couple of driver defaults, using the same TOML-backed project
// manifest convention as other interpreters and build tools in this style,
// scoped down to what a tree-walking script interpreter actually needs at
// startup.
package config

import (
	"os"

	"github.com/pelletier/go-toml/v2"
)

// Manifest is the decoded shape of raven.toml, a project's optional
// configuration file.
type Manifest struct {
	Project struct {
		Name       string `toml:"name"`
		EntryPoint string `toml:"entry_point"`
	} `toml:"project"`

	Modules struct {
		// LibDir overrides the bundled library directory search location.
		LibDir string `toml:"lib_dir"`
		// Path is decoded but not applied: cmd/raven passes only LibDir to
		// the module loader, whose extra search directories come from
		// RAVEN_PATH alone.
		Path []string `toml:"path"`
	} `toml:"modules"`

	Run struct {
		CheckOnly bool `toml:"check_only"`
		Verbose   bool `toml:"verbose"`
	} `toml:"run"`
}

// Default returns the zero-value manifest a project with no raven.toml
// should behave as if it had: no extra search paths, no bundled lib
// override, ordinary run mode.
func Default() *Manifest {
	return &Manifest{}
}

// Load reads and decodes path. A missing file is not an error — it returns
// Default() unchanged, since raven.toml is optional.
func Load(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return nil, err
	}
	m := Default()
	if err := toml.Unmarshal(data, m); err != nil {
		return nil, err
	}
	return m, nil
}
