package tenure

import (
	"fmt"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// LoadRecords reads a YAML file of tenure blobs keyed by coach name:
//
//	records:
//	  "Matt Painter": |
//	    2005-present: Head Coach @ Purdue University
//
// An empty path yields an empty table, meaning every search reports
// "not found".
func LoadRecords(path string) (map[string]string, error) {
	if path == "" {
		return map[string]string{}, nil
	}

	k := koanf.New(".")
	if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
		return nil, fmt.Errorf("load tenure records from %s: %w", path, err)
	}

	var f struct {
		Records map[string]string `koanf:"records"`
	}
	if err := k.UnmarshalWithConf("", &f, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("unmarshal tenure records: %w", err)
	}
	if f.Records == nil {
		f.Records = map[string]string{}
	}
	return f.Records, nil
}
