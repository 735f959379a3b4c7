package config

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/schoolops/subplan/core/model"
)

// Roster is the staff directory plus timetables loaded at startup. The
// timetables map is keyed by staff ID.
type Roster struct {
	Staff      []model.StaffMember        `json:"staff"`
	Timetables map[string]model.Timetable `json:"timetables"`
}

// LoadRoster reads a roster file (YAML or JSON).
func LoadRoster(path string) (*Roster, error) {
	k := koanf.New(".")
	ext := strings.ToLower(filepath.Ext(path))
	var parser koanf.Parser
	switch ext {
	case ".yaml", ".yml":
		parser = yaml.Parser()
	case ".json":
		parser = json.Parser()
	default:
		return nil, fmt.Errorf("unsupported roster format: %s", ext)
	}
	if err := k.Load(file.Provider(path), parser); err != nil {
		return nil, err
	}
	var r Roster
	if err := k.UnmarshalWithConf("", &r, koanf.UnmarshalConf{Tag: "json"}); err != nil {
		return nil, err
	}
	for i, s := range r.Staff {
		if err := s.Validate(); err != nil {
			return nil, fmt.Errorf("roster staff entry %d: %w", i, err)
		}
	}
	for id := range r.Timetables {
		if id == "" {
			return nil, fmt.Errorf("roster timetable with empty staff id")
		}
	}
	return &r, nil
}
