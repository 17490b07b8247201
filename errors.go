package yodel

import (
	stderrors "errors"
	"fmt"
	"strings"

	"github.com/yodelconfig/yodel/pkg/errors"
)

// The error taxonomy lives in pkg/errors; the sentinels and structured
// types are re-exported here so callers only import yodel.
var (
	Err = errors.Err

	ErrFile        = errors.ErrFile
	ErrMissingFile = errors.ErrMissingFile
	ErrPermission  = errors.ErrPermission
	ErrFileRead    = errors.ErrFileRead
	ErrIsDirectory = errors.ErrIsDirectory

	ErrParse            = errors.ErrParse
	ErrInvalidSyntax    = errors.ErrInvalidSyntax
	ErrInvalidStructure = errors.ErrInvalidStructure
	ErrUnknownFormat    = errors.ErrUnknownFormat

	ErrUnresolvedPlaceholder = errors.ErrUnresolvedPlaceholder

	ErrValidation    = errors.ErrValidation
	ErrEmptyConfig   = errors.ErrEmptyConfig
	ErrInvalidConfig = errors.ErrInvalidConfig
	ErrDuplicateFile = errors.ErrDuplicateFile

	ErrProperties   = errors.ErrProperties
	ErrPathNotFound = errors.ErrPathNotFound
	ErrTypeMismatch = errors.ErrTypeMismatch
)

type (
	ParseError                 = errors.ParseError
	UnresolvedPlaceholderError = errors.UnresolvedPlaceholderError
	DuplicateFileError         = errors.DuplicateFileError
	PathNotFoundError          = errors.PathNotFoundError
	TypeMismatchError          = errors.TypeMismatchError
)

// DescribeError renders any yodel error for human presentation in UIs and
// logs. Non-yodel errors render via their Error method.
func DescribeError(err error) string {
	var parseErr *ParseError
	if stderrors.As(err, &parseErr) {
		if parseErr.Line > 0 {
			return fmt.Sprintf("invalid %s syntax at line %d, column %d: %s",
				parseErr.Grammar, parseErr.Line, parseErr.Column, parseErr.Message)
		}

		return fmt.Sprintf("invalid %s syntax: %s", parseErr.Grammar, parseErr.Message)
	}

	var unresolvedErr *UnresolvedPlaceholderError
	if stderrors.As(err, &unresolvedErr) {
		return fmt.Sprintf("environment variable %s is not set (required by %q)",
			unresolvedErr.Name, unresolvedErr.Value)
	}

	var dupErr *DuplicateFileError
	if stderrors.As(err, &dupErr) {
		files := strings.Join(dupErr.Paths, " and ")
		if dupErr.Profile == "" {
			return fmt.Sprintf("duplicate base configuration: %s", files)
		}

		return fmt.Sprintf("duplicate configuration for profile %q: %s", dupErr.Profile, files)
	}

	var notFoundErr *PathNotFoundError
	if stderrors.As(err, &notFoundErr) {
		return fmt.Sprintf("no value at %q", notFoundErr.Path)
	}

	var mismatchErr *TypeMismatchError
	if stderrors.As(err, &mismatchErr) {
		return fmt.Sprintf("value at %q is %#v, not a %s",
			mismatchErr.Path, mismatchErr.Actual, mismatchErr.Expected)
	}

	switch {
	case stderrors.Is(err, ErrEmptyConfig):
		return "configuration is empty"
	case stderrors.Is(err, ErrInvalidConfig):
		return fmt.Sprintf("configuration is invalid: %s", err)
	case stderrors.Is(err, ErrUnknownFormat):
		return fmt.Sprintf("cannot determine configuration format: %s", err)
	case stderrors.Is(err, ErrMissingFile):
		return fmt.Sprintf("configuration file not found: %s", err)
	case stderrors.Is(err, ErrPermission):
		return fmt.Sprintf("configuration file not readable: %s", err)
	case stderrors.Is(err, ErrIsDirectory):
		return fmt.Sprintf("expected a file, found a directory: %s", err)
	default:
		return err.Error()
	}
}
