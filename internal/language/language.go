package language

import (
	_ "embed"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

const DefaultExtension = "txt"

//go:embed languages.yaml
var languagesYAML []byte

type languageSpec struct {
	Aliases    []string `yaml:"aliases"`
	Ext        string   `yaml:"ext"`
	OrOperator bool     `yaml:"or_operator"`
}

type table struct {
	Choices   []string                `yaml:"choices"`
	Languages map[string]languageSpec `yaml:"languages"`
}

// Table maps free-form language tokens onto canonical identifiers. It is
// read-only after construction and safe for concurrent use.
type Table struct {
	choices    []string
	aliases    map[string]string
	extensions map[string]string
	orOperator map[string]struct{}
}

var defaultTable = mustLoad(languagesYAML)

func mustLoad(data []byte) *Table {
	t, err := Load(data)
	if err != nil {
		panic(fmt.Sprintf("language: invalid embedded table: %v", err))
	}
	return t
}

func Load(data []byte) (*Table, error) {
	var raw table
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse language table: %w", err)
	}
	if len(raw.Languages) == 0 {
		return nil, fmt.Errorf("language table has no languages")
	}

	t := &Table{
		choices:    raw.Choices,
		aliases:    make(map[string]string),
		extensions: make(map[string]string),
		orOperator: make(map[string]struct{}),
	}
	for name, spec := range raw.Languages {
		canonical := strings.ToLower(name)
		t.aliases[canonical] = canonical
		for _, alias := range spec.Aliases {
			t.aliases[strings.ToLower(alias)] = canonical
		}
		if spec.Ext != "" {
			t.extensions[canonical] = spec.Ext
		}
		if spec.OrOperator {
			t.orOperator[canonical] = struct{}{}
		}
	}
	return t, nil
}

// Normalize returns the canonical id for token. Unknown tokens come back
// unchanged.
func (t *Table) Normalize(token string) string {
	if canonical, ok := t.aliases[strings.ToLower(strings.TrimSpace(token))]; ok {
		return canonical
	}
	return token
}

func (t *Table) HasOrOperator(lang string) bool {
	_, ok := t.orOperator[lang]
	return ok
}

func (t *Table) Extension(lang string) string {
	if ext, ok := t.extensions[lang]; ok {
		return ext
	}
	return DefaultExtension
}

func (t *Table) Choices() []string {
	out := make([]string, len(t.choices))
	copy(out, t.choices)
	return out
}

func Default() *Table { return defaultTable }

func Normalize(token string) string { return defaultTable.Normalize(token) }

func HasOrOperator(lang string) bool { return defaultTable.HasOrOperator(lang) }

func Extension(lang string) string { return defaultTable.Extension(lang) }

func Choices() []string { return defaultTable.Choices() }
