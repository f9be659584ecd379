package parser

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/goccy/go-yaml"
	"github.com/pelletier/go-toml/v2"
	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
)

// fieldCodec reads and rewrites a single dot-notation field of a structured document.
type fieldCodec interface {
	get(data []byte, field string) (string, error)
	set(data []byte, field, version string) ([]byte, error)
}

func codecFor(f Format) (fieldCodec, bool) {
	switch f {
	case FormatJSON:
		return jsonCodec{}, true
	case FormatYAML:
		return yamlCodec{}, true
	case FormatTOML:
		return tomlCodec{}, true
	default:
		return nil, false
	}
}

/* ------------------------------------------------------------------------- */
/* JSON                                                                      */
/* ------------------------------------------------------------------------- */

// jsonCodec uses gjson/sjson so the document layout and key order survive edits.
type jsonCodec struct{}

func (jsonCodec) get(data []byte, field string) (string, error) {
	if !gjson.ValidBytes(data) {
		return "", fmt.Errorf("invalid JSON")
	}
	res := gjson.GetBytes(data, field)
	if !res.Exists() {
		return "", fmt.Errorf("field %q not found", field)
	}
	if res.Type != gjson.String {
		return "", fmt.Errorf("field %q is not a string", field)
	}
	return res.String(), nil
}

func (c jsonCodec) set(data []byte, field, version string) ([]byte, error) {
	if _, err := c.get(data, field); err != nil {
		return nil, err
	}
	updated, err := sjson.SetBytes(data, field, version)
	if err != nil {
		return nil, err
	}
	if len(updated) > 0 && updated[len(updated)-1] != '\n' {
		updated = append(updated, '\n')
	}
	return updated, nil
}

/* ------------------------------------------------------------------------- */
/* YAML                                                                      */
/* ------------------------------------------------------------------------- */

// yamlCodec round-trips through an ordered map so keys keep their order.
type yamlCodec struct{}

func (yamlCodec) get(data []byte, field string) (string, error) {
	var obj map[string]any
	if err := yaml.Unmarshal(data, &obj); err != nil {
		return "", fmt.Errorf("invalid YAML: %w", err)
	}
	return stringField(obj, field)
}

func (yamlCodec) set(data []byte, field, version string) ([]byte, error) {
	var doc yaml.MapSlice
	if err := yaml.UnmarshalWithOptions(data, &doc, yaml.UseOrderedMap()); err != nil {
		return nil, fmt.Errorf("invalid YAML: %w", err)
	}
	if err := setMapSlice(doc, strings.Split(field, "."), version); err != nil {
		return nil, fmt.Errorf("field %q: %w", field, err)
	}
	return yaml.Marshal(doc)
}

func setMapSlice(ms yaml.MapSlice, parts []string, value string) error {
	for i := range ms {
		if fmt.Sprint(ms[i].Key) != parts[0] {
			continue
		}
		if len(parts) == 1 {
			if _, ok := ms[i].Value.(string); !ok {
				return fmt.Errorf("not a string")
			}
			ms[i].Value = value
			return nil
		}
		child, ok := ms[i].Value.(yaml.MapSlice)
		if !ok {
			return fmt.Errorf("%q is not an object", parts[0])
		}
		return setMapSlice(child, parts[1:], value)
	}
	return fmt.Errorf("not found")
}

/* ------------------------------------------------------------------------- */
/* TOML                                                                      */
/* ------------------------------------------------------------------------- */

// tomlCodec edits the key's line in place and verifies the result with a full
// decode, so comments and formatting are untouched.
type tomlCodec struct{}

var (
	tomlTableRe      = regexp.MustCompile(`^\s*\[([^\[\]]+)\]\s*(?:#.*)?$`)
	tomlArrayTableRe = regexp.MustCompile(`^\s*\[\[`)
)

func (tomlCodec) get(data []byte, field string) (string, error) {
	var obj map[string]any
	if err := toml.Unmarshal(data, &obj); err != nil {
		return "", fmt.Errorf("invalid TOML: %w", err)
	}
	return stringField(obj, field)
}

func (c tomlCodec) set(data []byte, field, version string) ([]byte, error) {
	if _, err := c.get(data, field); err != nil {
		return nil, err
	}

	parts := strings.Split(field, ".")
	table := strings.Join(parts[:len(parts)-1], ".")
	keyRe := regexp.MustCompile(`^(\s*` + regexp.QuoteMeta(parts[len(parts)-1]) + `\s*=\s*)("[^"]*"|'[^']*')`)

	lines := strings.SplitAfter(string(data), "\n")
	current := ""
	replaced := false
	for i, line := range lines {
		trimmed := strings.TrimRight(line, "\r\n")
		if tomlArrayTableRe.MatchString(trimmed) {
			current = "\x00"
			continue
		}
		if m := tomlTableRe.FindStringSubmatch(trimmed); m != nil {
			current = strings.TrimSpace(m[1])
			continue
		}
		if current != table {
			continue
		}
		loc := keyRe.FindStringSubmatchIndex(line)
		if loc == nil {
			continue
		}
		quote := line[loc[4] : loc[4]+1]
		lines[i] = line[:loc[4]] + quote + version + quote + line[loc[5]:]
		replaced = true
		break
	}
	if !replaced {
		return nil, fmt.Errorf("field %q is not a quoted string on a single line", field)
	}

	updated := []byte(strings.Join(lines, ""))
	got, err := c.get(updated, field)
	if err != nil {
		return nil, err
	}
	if got != version {
		return nil, fmt.Errorf("field %q: rewrite produced %q", field, got)
	}
	return updated, nil
}

/* ------------------------------------------------------------------------- */
/* HELPERS                                                                   */
/* ------------------------------------------------------------------------- */

func stringField(obj map[string]any, field string) (string, error) {
	value, err := getNestedValue(obj, field)
	if err != nil {
		return "", err
	}
	version, ok := value.(string)
	if !ok {
		return "", fmt.Errorf("field %q is not a string", field)
	}
	return version, nil
}

// getNestedValue retrieves a value from a nested map using dot notation.
// Example: "tool.poetry.version" accesses obj["tool"]["poetry"]["version"]
func getNestedValue(obj map[string]any, field string) (any, error) {
	if field == "" {
		return nil, fmt.Errorf("field path cannot be empty")
	}

	parts := strings.Split(field, ".")
	current := any(obj)

	for i, part := range parts {
		currentMap, ok := current.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("field %q is not an object at path %q", strings.Join(parts[:i], "."), part)
		}

		value, exists := currentMap[part]
		if !exists {
			return nil, fmt.Errorf("field %q not found", field)
		}

		current = value
	}

	return current, nil
}
