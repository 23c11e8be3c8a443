// Package regmap is the declarative front-end: it loads register map
// documents (YAML), validates them against an embedded CUE schema, and
// compiles them into register layouts.
//
// A register map describes what the original macro surface declared
// inline:
//
//	registers:
//	  - name: STATUS
//	    width: 8
//	    access: rw
//	    fields:
//	      - name: COLOR
//	        width: 3
//	        offset: 2
//	        values: {RED: 1, BLUE: 2}
package regmap

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Document is a parsed register map.
type Document struct {
	Registers []RegisterDecl `yaml:"registers" json:"registers"`
}

// RegisterDecl declares one register.
type RegisterDecl struct {
	Name   string      `yaml:"name" json:"name"`
	Width  uint        `yaml:"width" json:"width"`
	Access string      `yaml:"access" json:"access"`
	Fields []FieldDecl `yaml:"fields" json:"fields"`
}

// FieldDecl declares one field of a register.
type FieldDecl struct {
	Name   string            `yaml:"name" json:"name"`
	Width  uint              `yaml:"width" json:"width"`
	Offset uint              `yaml:"offset" json:"offset"`
	Values map[string]uint64 `yaml:"values,omitempty" json:"values,omitempty"`
}

// Parse decodes a register map document and validates it against the
// schema. Layout-level checks (capacity, overlap) happen in Compile.
func Parse(data []byte) (*Document, error) {
	var doc Document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, &MapError{Code: ErrCodeSyntax, Message: fmt.Sprintf("decoding register map: %v", err)}
	}
	if err := validateSchema(&doc); err != nil {
		return nil, err
	}
	return &doc, nil
}

// Load reads and parses a register map file.
func Load(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &MapError{Code: ErrCodeNotFound, Message: fmt.Sprintf("reading register map: %v", err)}
	}
	doc, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return doc, nil
}

// MapError reports a problem with a register map document.
type MapError struct {
	// Code identifies the error category.
	Code MapErrorCode

	// Path locates the offending element, e.g. "registers[0].fields[2]".
	Path string

	// Message is a human-readable description.
	Message string
}

// MapErrorCode categorizes register map errors.
type MapErrorCode string

const (
	// ErrCodeNotFound indicates the map file could not be read.
	ErrCodeNotFound MapErrorCode = "NOT_FOUND"

	// ErrCodeSyntax indicates the document is not valid YAML.
	ErrCodeSyntax MapErrorCode = "SYNTAX"

	// ErrCodeSchema indicates the document does not satisfy the schema.
	ErrCodeSchema MapErrorCode = "SCHEMA"

	// ErrCodeDecl indicates a declaration the core rejected
	// (capacity, overlap, bad name).
	ErrCodeDecl MapErrorCode = "DECL"
)

// Error implements the error interface.
func (e *MapError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("%s: %s: %s", e.Code, e.Path, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}
