package loader

import (
	"errors"
	"regexp"
	"strconv"

	"gopkg.in/yaml.v3"
)

// YAMLDecoder decodes YAML documents.
type YAMLDecoder struct{}

var yamlLineRe = regexp.MustCompile(`line (\d+)`)

// Decode parses data onto v.
func (YAMLDecoder) Decode(source string, data []byte, v any) error {
	if err := yaml.Unmarshal(data, v); err != nil {
		pe := &ParseError{
			Path:    source,
			Format:  FormatYAML,
			Message: err.Error(),
			Err:     err,
		}
		var terr *yaml.TypeError
		if !errors.As(err, &terr) {
			if m := yamlLineRe.FindStringSubmatch(err.Error()); m != nil {
				pe.Line, _ = strconv.Atoi(m[1])
			}
		}
		return pe
	}
	return nil
}
