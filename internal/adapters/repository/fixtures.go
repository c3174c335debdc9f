package repository

import (
	_ "embed"
	"fmt"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/rawbytes"
	"github.com/knadh/koanf/v2"

	"github.com/courtside/fieldrank/internal/domain/model"
)

// defaultSchools seeds the catalog so a fresh instance serves data
// immediately. Deployments replace it with their own fixture file.
//
//go:embed schools.yaml
var defaultSchools []byte

type schoolFixture struct {
	Schools []struct {
		ID         int    `koanf:"id"`
		Name       string `koanf:"school_name"`
		Conference string `koanf:"conference"`
		Location   string `koanf:"location"`
		MBB        bool   `koanf:"mbb"`
		WBB        bool   `koanf:"wbb"`
		FB         bool   `koanf:"fb"`
	} `koanf:"schools"`
}

// LoadSchools reads the school fixture. A non-empty path replaces the
// embedded defaults entirely rather than layering over them, since a school
// catalog is all-or-nothing.
func LoadSchools(path string) ([]model.School, error) {
	k := koanf.New(".")

	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("load school fixture from %s: %w", path, err)
		}
	} else {
		if err := k.Load(rawbytes.Provider(defaultSchools), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("load embedded school fixture: %w", err)
		}
	}

	var f schoolFixture
	if err := k.UnmarshalWithConf("", &f, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("unmarshal school fixture: %w", err)
	}

	schools := make([]model.School, 0, len(f.Schools))
	for _, s := range f.Schools {
		schools = append(schools, model.School{
			ID:         s.ID,
			Name:       s.Name,
			Conference: s.Conference,
			Location:   s.Location,
			MBB:        s.MBB,
			WBB:        s.WBB,
			FB:         s.FB,
		})
	}
	return schools, nil
}
