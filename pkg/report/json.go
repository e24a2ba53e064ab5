package report

import (
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/Sumatoshi-tech/lyagushka/pkg/density"
)

const yamlIndent = 2

// JSONRenderer writes the segment records as a pretty-printed JSON array.
type JSONRenderer struct{}

// Render writes the JSON array followed by a newline.
func (JSONRenderer) Render(w io.Writer, result *density.Result) error {
	data, err := density.MarshalRecords(result.Records())
	if err != nil {
		return err
	}

	_, err = fmt.Fprintln(w, string(data))
	if err != nil {
		return fmt.Errorf("write json: %w", err)
	}

	return nil
}

// YAMLRenderer writes the segment records as a YAML sequence.
type YAMLRenderer struct{}

// Render encodes the records with two-space indentation.
func (YAMLRenderer) Render(w io.Writer, result *density.Result) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(yamlIndent)

	err := enc.Encode(result.Records())
	if err != nil {
		return fmt.Errorf("serialize segments: %w", err)
	}

	err = enc.Close()
	if err != nil {
		return fmt.Errorf("flush yaml: %w", err)
	}

	return nil
}
