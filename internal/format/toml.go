package format

import (
	stderrors "errors"

	"github.com/pelletier/go-toml/v2"

	"github.com/yodelconfig/yodel/pkg/errors"
)

func tomlUnmarshal(in []byte) (any, error) {
	var obj any

	err := toml.Unmarshal(in, &obj)
	if err != nil {
		return nil, tomlParseError(err)
	}

	return obj, nil
}

func tomlParseError(err error) error {
	var derr *toml.DecodeError
	if stderrors.As(err, &derr) {
		line, col := derr.Position()

		return &errors.ParseError{
			Grammar: "toml",
			Line:    line,
			Column:  col,
			Message: derr.Error(),
		}
	}

	return &errors.ParseError{Grammar: "toml", Message: err.Error()}
}

func tomlMarshal(obj any) ([]byte, error) {
	return toml.Marshal(obj)
}
