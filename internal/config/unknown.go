package config

import (
	"fmt"
	"reflect"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// LoadWithWarnings parses config data and returns any unknown field warnings.
func LoadWithWarnings(data []byte) (*Config, []string, error) {
	cfg, err := parse(data)
	if err != nil {
		return nil, nil, err
	}
	return cfg, detectUnknownFields(data), nil
}

// sectionTypes maps each top-level key to the struct it decodes into.
var sectionTypes = map[string]reflect.Type{
	"metadata": reflect.TypeOf(MetadataConfig{}),
	"release":  reflect.TypeOf(ReleaseConfig{}),
	"build":    reflect.TypeOf(BuildConfig{}),
	"upload":   reflect.TypeOf(UploadConfig{}),
	"test":     reflect.TypeOf(TestConfig{}),
}

// detectUnknownFields compares raw YAML keys with known struct fields.
// Called after a successful parse, so a decode failure here is unexpected.
func detectUnknownFields(data []byte) []string {
	var raw map[string]interface{}
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return []string{"internal: failed to re-parse config for unknown field detection"}
	}

	var warnings []string
	knownTopLevel := getYAMLFields(reflect.TypeOf(Config{}))
	for _, key := range sortedKeys(raw) {
		if !knownTopLevel[key] {
			warnings = append(warnings, fmt.Sprintf("unknown field %q at root level (ignored)", key))
			continue
		}
		section, ok := raw[key].(map[string]interface{})
		if !ok {
			continue
		}
		known := getYAMLFields(sectionTypes[key])
		for _, field := range sortedKeys(section) {
			if !known[field] {
				warnings = append(warnings, fmt.Sprintf("unknown field %q in %s (ignored)", field, key))
			}
		}
	}
	return warnings
}

// getYAMLFields returns a map of known YAML field names for a struct type.
func getYAMLFields(t reflect.Type) map[string]bool {
	fields := make(map[string]bool)
	for i := 0; i < t.NumField(); i++ {
		tag := t.Field(i).Tag.Get("yaml")
		if tag == "" || tag == "-" {
			continue
		}
		if name := strings.Split(tag, ",")[0]; name != "" {
			fields[name] = true
		}
	}
	return fields
}

func sortedKeys(m map[string]interface{}) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
