package internal

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// configDocument mirrors the on-disk configuration. The loosely typed fields
// are kept as nodes and decoded by hand so mapping order survives.
type configDocument struct {
	Translations map[string]map[string]map[string]any `yaml:"translations"`
	Locale       string                               `yaml:"locale"`
	Locales      yaml.Node                            `yaml:"locales"`
	Namespaces   yaml.Node                            `yaml:"namespaces"`
	Syntax       syntaxDocument                       `yaml:"syntax"`
	InvalidKeys  invalidKeysDocument                  `yaml:"invalidKeys"`
}

type syntaxDocument struct {
	NamespaceSeparator string `yaml:"namespaceSeparator"`
	KeysSeparator      string `yaml:"keysSeparator"`
}

type invalidKeysDocument struct {
	NotFound string `yaml:"notFound"`
	TooDeep  string `yaml:"tooDeep"`
}

// ParseConfig decodes a YAML or JSON configuration document into an Init.
// Loaders and the logger are not part of the document and must be set by the caller.
//
//	locale: en
//	locales:
//	  en: English
//	  fr: { name: Français, fallback: [en] }
//	namespaces: { default: common, required: [auth] }
//	invalidKeys: { notFound: rawkey, tooDeep: notfound }
func ParseConfig(data []byte) (Init, error) {
	var doc configDocument
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return Init{}, errors.Join(ErrInvalidConfig, err)
	}

	locales, err := decodeLocales(&doc.Locales)
	if err != nil {
		return Init{}, errors.Join(ErrInvalidConfig, err)
	}
	namespaces, err := decodeNamespaces(&doc.Namespaces)
	if err != nil {
		return Init{}, errors.Join(ErrInvalidConfig, err)
	}

	init := Init{
		Locale:     doc.Locale,
		Locales:    locales,
		Namespaces: namespaces,
		Syntax: SyntaxInit{
			NamespaceSeparator: doc.Syntax.NamespaceSeparator,
			KeysSeparator:      doc.Syntax.KeysSeparator,
		},
		InvalidKeys: InvalidKeysInit{
			NotFound: doc.InvalidKeys.NotFound,
			TooDeep:  doc.InvalidKeys.TooDeep,
		},
	}

	if len(doc.Translations) > 0 {
		init.Translations = make(map[string]map[string]Record, len(doc.Translations))
		for locale, namespaces := range doc.Translations {
			recs := make(map[string]Record, len(namespaces))
			for ns, data := range namespaces {
				if data == nil {
					data = map[string]any{}
				}
				recs[ns] = RecordFrom(data)
			}
			init.Translations[locale] = recs
		}
	}

	return init, nil
}

// LoadConfig reads and parses a configuration file.
func LoadConfig(path string) (Init, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Init{}, errors.Join(ErrInvalidConfig, err)
	}
	return ParseConfig(data)
}

func decodeLocales(node *yaml.Node) ([]LocaleInit, error) {
	switch node.Kind {
	case 0:
		return nil, nil
	case yaml.ScalarNode:
		if node.Tag == "!!null" || node.Value == "" {
			return nil, nil
		}
		return Locales(node.Value), nil
	case yaml.SequenceNode:
		out := make([]LocaleInit, 0, len(node.Content))
		for _, item := range node.Content {
			entry, err := decodeLocaleEntry(item)
			if err != nil {
				return nil, err
			}
			out = append(out, entry)
		}
		return out, nil
	case yaml.MappingNode:
		out := make([]LocaleInit, 0, len(node.Content)/2)
		for i := 0; i+1 < len(node.Content); i += 2 {
			key, value := node.Content[i], node.Content[i+1]
			if value.Kind == yaml.ScalarNode {
				out = append(out, LocaleInit{Locale: key.Value, Name: value.Value})
				continue
			}
			entry, err := decodeLocaleEntry(value)
			if err != nil {
				return nil, err
			}
			if entry.Locale == "" {
				entry.Locale = key.Value
			}
			out = append(out, entry)
		}
		return out, nil
	default:
		return nil, fmt.Errorf("locales: unsupported node at line %d", node.Line)
	}
}

func decodeLocaleEntry(node *yaml.Node) (LocaleInit, error) {
	switch node.Kind {
	case yaml.ScalarNode:
		return LocaleInit{Locale: node.Value}, nil
	case yaml.MappingNode:
	default:
		return LocaleInit{}, fmt.Errorf("locales: unsupported entry at line %d", node.Line)
	}

	var entry LocaleInit
	for i := 0; i+1 < len(node.Content); i += 2 {
		key, value := node.Content[i], node.Content[i+1]
		switch key.Value {
		case "locale":
			entry.Locale = value.Value
		case "name":
			entry.Name = value.Value
		case "fallback":
			fallback, err := decodeFallback(value)
			if err != nil {
				return LocaleInit{}, err
			}
			entry.Fallback = fallback
		}
	}
	return entry, nil
}

func decodeFallback(node *yaml.Node) (FallbackInit, error) {
	switch node.Kind {
	case yaml.ScalarNode:
		switch node.Tag {
		case "!!null":
			return FallbackInit{}, nil
		case "!!bool":
			var enabled bool
			if err := node.Decode(&enabled); err != nil {
				return FallbackInit{}, err
			}
			if enabled {
				return FallbackInit{}, nil
			}
			return NoFallback(), nil
		}
		return FallbackTo(node.Value), nil
	case yaml.SequenceNode:
		var locales []string
		if err := node.Decode(&locales); err != nil {
			return FallbackInit{}, fmt.Errorf("fallback: %w", err)
		}
		return FallbackTo(locales...), nil
	default:
		return FallbackInit{}, fmt.Errorf("fallback: unsupported node at line %d", node.Line)
	}
}

func decodeNamespaces(node *yaml.Node) (NamespacesInit, error) {
	switch node.Kind {
	case 0:
		return NamespacesInit{}, nil
	case yaml.ScalarNode:
		return NamespacesInit{Default: node.Value}, nil
	case yaml.MappingNode:
	default:
		return NamespacesInit{}, fmt.Errorf("namespaces: unsupported node at line %d", node.Line)
	}

	var out NamespacesInit
	for i := 0; i+1 < len(node.Content); i += 2 {
		key, value := node.Content[i], node.Content[i+1]
		switch key.Value {
		case "default":
			out.Default = value.Value
		case "required":
			if value.Kind == yaml.ScalarNode {
				out.Required = []string{value.Value}
				continue
			}
			if err := value.Decode(&out.Required); err != nil {
				return NamespacesInit{}, fmt.Errorf("namespaces: %w", err)
			}
		}
	}
	return out, nil
}
