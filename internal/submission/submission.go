package submission

import (
	"fmt"
	"io"
	"os"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/kingrea/multistep/internal/form"
)

// Report captures validation results for a values file.
type Report struct {
	Path   string
	Values form.Values
	// Errors holds one entry per invalid field, in field order.
	Errors []form.ValidationError
	// Unknown lists keys in the file that don't name a field.
	Unknown []string
}

// IsValid reports whether the validation passed.
func (r *Report) IsValid() bool {
	return r != nil && len(r.Errors) == 0 && len(r.Unknown) == 0
}

// LoadValues reads a YAML mapping of field keys to strings. Keys that don't
// name a field are returned separately.
func LoadValues(path string) (form.Values, []string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("read values file: %w", err)
	}
	return ParseValues(data)
}

// ParseValues decodes YAML bytes the same way LoadValues does.
func ParseValues(data []byte) (form.Values, []string, error) {
	raw := map[string]string{}
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, nil, fmt.Errorf("parse values file: %w", err)
	}
	values := form.EmptyValues()
	var unknown []string
	for key, value := range raw {
		f, ok := form.ParseField(key)
		if !ok {
			unknown = append(unknown, key)
			continue
		}
		values[f] = value
	}
	sort.Strings(unknown)
	return values, unknown, nil
}

// ValidateFile reads a values file and runs it through the form's submit
// path with the default schema.
func ValidateFile(path string) (*Report, error) {
	values, unknown, err := LoadValues(path)
	if err != nil {
		return nil, err
	}
	state := form.WithValues(values).Submit(form.DefaultValidator())
	return &Report{
		Path:    path,
		Values:  state.Values,
		Errors:  state.Errors.List(),
		Unknown: unknown,
	}, nil
}

// WriteValues encodes values as a YAML mapping in field order.
func WriteValues(w io.Writer, values form.Values) error {
	doc := &yaml.Node{Kind: yaml.MappingNode}
	for _, f := range form.Fields() {
		doc.Content = append(doc.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Value: f.Key()},
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: values.Get(f)},
		)
	}
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("encode values: %w", err)
	}
	return enc.Close()
}
