package loaders

import (
	"encoding/json"
	"fmt"
	"path"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/dmitrymomot/translations"
)

// Extensions lists the file extensions tried for a namespace, in order.
var Extensions = []string{".json", ".yaml", ".yml"}

// decode parses a namespace document. The format is chosen by extension.
func decode(name string, data []byte) (translations.Record, error) {
	var raw map[string]any

	switch strings.ToLower(path.Ext(name)) {
	case ".json":
		if err := json.Unmarshal(data, &raw); err != nil {
			return nil, fmt.Errorf("%w: %q: %v", ErrInvalidFile, name, err)
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return nil, fmt.Errorf("%w: %q: %v", ErrInvalidFile, name, err)
		}
	default:
		return nil, fmt.Errorf("%w: %q: unsupported extension", ErrInvalidFile, name)
	}

	// An empty document is an empty namespace, not a missing one.
	if raw == nil {
		raw = map[string]any{}
	}
	return translations.RecordFrom(raw), nil
}
