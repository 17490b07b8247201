// Package errors defines the error taxonomy shared by all yodel packages.
//
// Every error returned by yodel wraps the base [Err], so callers can test
// `errors.Is(err, yodelerrors.Err)` to distinguish yodel failures from
// unrelated ones, or test against the more specific sentinels below.
package errors

import (
	"fmt"
)

var (
	// Base error; every error in yodel inherits from this
	Err = fmt.Errorf("yodel error")

	// File errors
	ErrFile        = fmt.Errorf("file error (%w)", Err)
	ErrMissingFile = fmt.Errorf("missing file (%w)", ErrFile)
	ErrPermission  = fmt.Errorf("permission denied (%w)", ErrFile)
	ErrFileRead    = fmt.Errorf("read failed (%w)", ErrFile)
	ErrIsDirectory = fmt.Errorf("is a directory (%w)", ErrFile)

	// Parse errors
	ErrParse            = fmt.Errorf("parse error (%w)", Err)
	ErrInvalidSyntax    = fmt.Errorf("invalid syntax (%w)", ErrParse)
	ErrInvalidStructure = fmt.Errorf("invalid structure (%w)", ErrParse)
	ErrUnknownFormat    = fmt.Errorf("unknown format (%w)", ErrParse)

	// Resolver errors
	ErrUnresolvedPlaceholder = fmt.Errorf("unresolved placeholder (%w)", Err)

	// Validation errors
	ErrValidation    = fmt.Errorf("validation error (%w)", Err)
	ErrEmptyConfig   = fmt.Errorf("empty configuration (%w)", ErrValidation)
	ErrInvalidConfig = fmt.Errorf("invalid configuration (%w)", ErrValidation)
	ErrDuplicateFile = fmt.Errorf("duplicate configuration file (%w)", ErrValidation)

	// Property lookup errors
	ErrProperties   = fmt.Errorf("properties error (%w)", Err)
	ErrPathNotFound = fmt.Errorf("path not found (%w)", ErrProperties)
	ErrTypeMismatch = fmt.Errorf("type mismatch (%w)", ErrProperties)
)

// ParseError reports a syntax failure in one grammar, with a 1-based
// source position when the underlying parser supplied one.
type ParseError struct {
	Grammar string
	Line    int
	Column  int
	Message string
}

func (e *ParseError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("%s %d:%d: %s: %v", e.Grammar, e.Line, e.Column, e.Message, ErrInvalidSyntax)
	}

	return fmt.Sprintf("%s: %s: %v", e.Grammar, e.Message, ErrInvalidSyntax)
}

func (e *ParseError) Unwrap() error {
	return ErrInvalidSyntax
}

// UnresolvedPlaceholderError reports a ${NAME} token whose variable was
// absent from the environment snapshot during strict resolution. Value
// holds the full original token text for context.
type UnresolvedPlaceholderError struct {
	Name  string
	Value string
}

func (e *UnresolvedPlaceholderError) Error() string {
	return fmt.Sprintf("%s (in %q): %v", e.Name, e.Value, ErrUnresolvedPlaceholder)
}

func (e *UnresolvedPlaceholderError) Unwrap() error {
	return ErrUnresolvedPlaceholder
}

// DuplicateFileError reports two files in one directory that classify to
// the same configuration slot. Profile is "" for a base-config conflict.
type DuplicateFileError struct {
	Profile string
	Paths   []string
}

func (e *DuplicateFileError) Error() string {
	if e.Profile == "" {
		return fmt.Sprintf("multiple base configuration files: %v: %v", e.Paths, ErrDuplicateFile)
	}

	return fmt.Sprintf("multiple files for profile %q: %v: %v", e.Profile, e.Paths, ErrDuplicateFile)
}

func (e *DuplicateFileError) Unwrap() error {
	return ErrDuplicateFile
}

// PathNotFoundError reports a lookup of a dotted path with no stored value.
type PathNotFoundError struct {
	Path string
}

func (e *PathNotFoundError) Error() string {
	return fmt.Sprintf("%s: %v", e.Path, ErrPathNotFound)
}

func (e *PathNotFoundError) Unwrap() error {
	return ErrPathNotFound
}

// TypeMismatchError reports a value present at a path but of a different
// kind than the caller requested. Actual holds the stored value.
type TypeMismatchError struct {
	Path     string
	Expected string
	Actual   any
}

func (e *TypeMismatchError) Error() string {
	return fmt.Sprintf("%s: want %s, have %#v: %v", e.Path, e.Expected, e.Actual, ErrTypeMismatch)
}

func (e *TypeMismatchError) Unwrap() error {
	return ErrTypeMismatch
}
