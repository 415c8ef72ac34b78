package manifest

import (
	"encoding/json"
	"fmt"
	"os"

	"sigs.k8s.io/yaml"
)

// Load reads a build-result manifest from disk, validates its shape, and
// normalizes sentinel entries. JSON and YAML inputs are both accepted.
func Load(path string) (*BuildResult, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading manifest %s: %w", path, err)
	}

	return Parse(path, data)
}

// Parse validates and normalizes raw manifest content.
// The filename is used in error messages only.
func Parse(filename string, data []byte) (*BuildResult, error) {
	jsonData, err := yaml.YAMLToJSON(data)
	if err != nil {
		return nil, fmt.Errorf("parsing manifest %s: %w", filename, err)
	}

	if err := validateSchema(filename, jsonData); err != nil {
		return nil, err
	}

	var raw map[string]any
	if err := json.Unmarshal(jsonData, &raw); err != nil {
		return nil, fmt.Errorf("decoding manifest %s: %w", filename, err)
	}

	result := &BuildResult{
		images: make(map[string]string, len(raw)),
		absent: make(map[string]bool),
	}

	for service, value := range raw {
		image, ok, err := normalizeEntry(value)
		if err != nil {
			return nil, fmt.Errorf("manifest %s: service %q: %w", filename, service, err)
		}
		if !ok {
			result.absent[service] = true
			continue
		}
		result.images[service] = image
	}

	return result, nil
}

// normalizeEntry maps a raw manifest value to (image, built, error).
//
// The build stage historically encoded "not built this run" as any of: JSON
// null, JSON false, "false", "null", or the empty string. The query tool that
// produced the manifest could not distinguish its own failure sentinel from
// true absence, so all of these collapse into a single absent state here.
func normalizeEntry(value any) (string, bool, error) {
	switch v := value.(type) {
	case nil:
		return "", false, nil
	case bool:
		if v {
			return "", false, fmt.Errorf("boolean true is not a valid image reference")
		}
		return "", false, nil
	case string:
		switch v {
		case "", "false", "null":
			return "", false, nil
		}
		return v, true, nil
	default:
		return "", false, fmt.Errorf("unsupported value type %T", value)
	}
}
