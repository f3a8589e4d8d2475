// Package convert serializes parsed INI documents into JSON, YAML, or
// TOML, keeping section and key insertion order where the target
// format allows it.
package convert

import (
	"fmt"
	"strings"

	"github.com/goccy/go-yaml"
	"github.com/pelletier/go-toml/v2"
	"github.com/tidwall/sjson"

	"github.com/davine-io/mellow/internal/ini"
)

// Format names a supported output format.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
)

// String returns the string representation of the format.
func (f Format) String() string {
	return string(f)
}

// IsValid returns true if the format is a known valid format.
func (f Format) IsValid() bool {
	switch f {
	case FormatJSON, FormatYAML, FormatTOML:
		return true
	default:
		return false
	}
}

// ParseFormat converts a string to a Format, case-insensitively.
func ParseFormat(s string) (Format, error) {
	f := Format(strings.ToLower(s))
	if !f.IsValid() {
		return "", fmt.Errorf("unsupported format %q (expected json, yaml, or toml)", s)
	}
	return f, nil
}

// Document serializes doc into the requested format. Keys declared
// without a value become null in JSON and YAML, and an empty string in
// TOML, which has no null.
func Document(doc *ini.Document, format Format) ([]byte, error) {
	switch format {
	case FormatJSON:
		return toJSON(doc)
	case FormatYAML:
		return toYAML(doc)
	case FormatTOML:
		return toTOML(doc)
	default:
		return nil, fmt.Errorf("unsupported format: %s", format)
	}
}

// toJSON builds the document incrementally with sjson so sections and
// keys come out in insertion order.
func toJSON(doc *ini.Document) ([]byte, error) {
	out := "{}"
	for _, name := range doc.Sections() {
		section, _ := doc.Section(name)
		// Materialize empty sections too.
		var err error
		out, err = sjson.SetRaw(out, escapePath(name), "{}")
		if err != nil {
			return nil, fmt.Errorf("failed to add section %q: %w", name, err)
		}
		for _, key := range section.Keys() {
			value, _ := section.Lookup(key)
			path := escapePath(name) + "." + escapePath(key)
			if value == nil {
				out, err = sjson.Set(out, path, nil)
			} else {
				out, err = sjson.Set(out, path, *value)
			}
			if err != nil {
				return nil, fmt.Errorf("failed to set %q in section %q: %w", key, name, err)
			}
		}
	}
	return append([]byte(out), '\n'), nil
}

// toYAML uses yaml.MapSlice to preserve insertion order.
func toYAML(doc *ini.Document) ([]byte, error) {
	root := make(yaml.MapSlice, 0, doc.Len())
	for _, name := range doc.Sections() {
		section, _ := doc.Section(name)
		keys := section.Keys()
		entries := make(yaml.MapSlice, 0, len(keys))
		for _, key := range keys {
			value, _ := section.Lookup(key)
			if value == nil {
				entries = append(entries, yaml.MapItem{Key: key, Value: nil})
			} else {
				entries = append(entries, yaml.MapItem{Key: key, Value: *value})
			}
		}
		root = append(root, yaml.MapItem{Key: name, Value: entries})
	}
	out, err := yaml.Marshal(root)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal YAML: %w", err)
	}
	return out, nil
}

// toTOML marshals one section at a time so the table blocks come out
// in insertion order; go-toml sorts the keys within each table itself.
func toTOML(doc *ini.Document) ([]byte, error) {
	var out []byte
	for _, name := range doc.Sections() {
		section, _ := doc.Section(name)
		keys := section.Keys()
		entries := make(map[string]string, len(keys))
		for _, key := range keys {
			value, _ := section.Lookup(key)
			if value == nil {
				entries[key] = ""
			} else {
				entries[key] = *value
			}
		}
		block, err := toml.Marshal(map[string]map[string]string{name: entries})
		if err != nil {
			return nil, fmt.Errorf("failed to marshal section %q: %w", name, err)
		}
		out = append(out, block...)
	}
	return out, nil
}

// escapePath escapes sjson path syntax in section and key names.
func escapePath(s string) string {
	return pathEscaper.Replace(s)
}

var pathEscaper = strings.NewReplacer(
	"\\", "\\\\",
	".", "\\.",
	"*", "\\*",
	"?", "\\?",
)
