package utils

import (
	"github.com/BurntSushi/toml"
	"github.com/charmbracelet/log"
)

// DecodeTOMLFile strictly decodes path into v. Keys that match no field are
// logged and otherwise ignored.
func DecodeTOMLFile(path string, v any) error {
	md, err := toml.DecodeFile(path, v)
	if err != nil {
		log.Warnf("TOML parsing error in config file %s: %v. Attempting partial recovery...", path, err)
		return err
	}
	for _, key := range md.Undecoded() {
		log.Warnf("Unknown config key %q in %s", key.String(), path)
	}
	return nil
}

// DecodeTOMLMap decodes path into a generic map, for picking out the values
// that survive a failed strict decode.
func DecodeTOMLMap(path string) (map[string]any, error) {
	data := make(map[string]any)
	if _, err := toml.DecodeFile(path, &data); err != nil {
		log.Warnf("Could not parse any valid configuration from %s: %v", path, err)
		return nil, err
	}
	return data, nil
}

func extract[T any](data map[string]any, key string) (T, bool) {
	val, ok := data[key].(T)
	return val, ok
}

// ExtractSection returns the table named sectionName
func ExtractSection(data map[string]any, sectionName string) (map[string]any, bool) {
	return extract[map[string]any](data, sectionName)
}

// ExtractInt returns an integer value; TOML integers decode as int64
func ExtractInt(data map[string]any, key string) (int, bool) {
	val, ok := extract[int64](data, key)
	return int(val), ok
}

// ExtractBool returns a boolean value
func ExtractBool(data map[string]any, key string) (bool, bool) {
	return extract[bool](data, key)
}

// ExtractString returns a string value
func ExtractString(data map[string]any, key string) (string, bool) {
	return extract[string](data, key)
}
