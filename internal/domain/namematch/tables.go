package namematch

import (
	_ "embed"
	"fmt"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/rawbytes"
	"github.com/knadh/koanf/v2"
)

// defaultTables ships a starter alias set so the service works out of the
// box. The tables are inherently incomplete and grow with new institutions;
// deployments extend them via a YAML file, never by editing code.
//
//go:embed aliases.yaml
var defaultTables []byte

// Tables bundles the two alias tables the Normalizer consumes.
//
// Aliases maps common short forms to their canonical normalized name and is
// applied as the last step of Normalize. SchoolAliases is a per-school
// override list keyed by normalized school name, consulted only when
// matching tenure text; it exists because free-text tenure data names
// schools by city, system, or historic names that the general table cannot
// capture.
type Tables struct {
	Aliases       map[string]string   `koanf:"aliases"`
	SchoolAliases map[string][]string `koanf:"school_aliases"`
}

// LoadTables reads the alias tables, layering an optional YAML file over the
// embedded defaults. An empty path loads defaults only.
func LoadTables(path string) (Tables, error) {
	k := koanf.New(".")

	if err := k.Load(rawbytes.Provider(defaultTables), yaml.Parser()); err != nil {
		return Tables{}, fmt.Errorf("load embedded alias tables: %w", err)
	}
	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return Tables{}, fmt.Errorf("load alias tables from %s: %w", path, err)
		}
	}

	var t Tables
	if err := k.UnmarshalWithConf("", &t, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return Tables{}, fmt.Errorf("unmarshal alias tables: %w", err)
	}
	return t, nil
}
