package loader

import (
	"errors"

	"github.com/pelletier/go-toml/v2"
)

// TOMLDecoder decodes TOML documents.
type TOMLDecoder struct{}

// Decode parses data onto v.
func (TOMLDecoder) Decode(source string, data []byte, v any) error {
	if err := toml.Unmarshal(data, v); err != nil {
		pe := &ParseError{
			Path:    source,
			Format:  FormatTOML,
			Message: err.Error(),
			Err:     err,
		}
		var derr *toml.DecodeError
		if errors.As(err, &derr) {
			pe.Line, pe.Column = derr.Position()
		}
		return pe
	}
	return nil
}

// Overlay applies a nested map of values onto v, as if it had been read from
// a TOML document. Keys absent from values leave v untouched.
func Overlay(values map[string]any, v any) error {
	if len(values) == 0 {
		return nil
	}
	data, err := toml.Marshal(values)
	if err != nil {
		return err
	}
	return TOMLDecoder{}.Decode("<overlay>", data, v)
}
