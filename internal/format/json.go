package format

import (
	"bytes"
	"encoding/json"
	stderrors "errors"

	"github.com/yodelconfig/yodel/pkg/errors"
)

// jsonUnmarshal decodes with UseNumber so "2" and "2.0" stay
// distinguishable; the tree walk picks the leaf kind from the literal.
func jsonUnmarshal(in []byte) (any, error) {
	dec := json.NewDecoder(bytes.NewReader(in))
	dec.UseNumber()

	var obj any

	err := dec.Decode(&obj)
	if err != nil {
		return nil, jsonParseError(in, err)
	}

	if dec.More() {
		line, col := lineCol(in, dec.InputOffset())

		return nil, &errors.ParseError{
			Grammar: "json",
			Line:    line,
			Column:  col,
			Message: "unexpected content after top-level value",
		}
	}

	return obj, nil
}

func jsonParseError(in []byte, err error) error {
	var serr *json.SyntaxError
	if stderrors.As(err, &serr) {
		line, col := lineCol(in, serr.Offset)

		return &errors.ParseError{
			Grammar: "json",
			Line:    line,
			Column:  col,
			Message: serr.Error(),
		}
	}

	var terr *json.UnmarshalTypeError
	if stderrors.As(err, &terr) {
		line, col := lineCol(in, terr.Offset)

		return &errors.ParseError{
			Grammar: "json",
			Line:    line,
			Column:  col,
			Message: terr.Error(),
		}
	}

	return &errors.ParseError{Grammar: "json", Message: err.Error()}
}

// lineCol converts a byte offset to a 1-based line/column pair.
func lineCol(in []byte, offset int64) (int, int) {
	if offset > int64(len(in)) {
		offset = int64(len(in))
	}

	prefix := in[:offset]
	line := bytes.Count(prefix, []byte("\n")) + 1

	lastNL := bytes.LastIndexByte(prefix, '\n')
	col := int(offset) - lastNL

	return line, col
}

func jsonMarshal(obj any) ([]byte, error) {
	out, err := json.Marshal(obj)
	if err != nil {
		return nil, err
	}

	return append(out, '\n'), nil
}

func jsonMarshalPretty(obj any) ([]byte, error) {
	out, err := json.MarshalIndent(obj, "", "  ")
	if err != nil {
		return nil, err
	}

	return append(out, '\n'), nil
}
