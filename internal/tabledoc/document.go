// Package tabledoc reads and writes table documents: a YAML or JSON file
// holding column definitions, rows and column formatters that builds into a
// DataTable.
//
//	timezone: America/Los_Angeles
//	columns:
//	  - [date, Day]
//	  - {type: number, label: Sales, id: sales}
//	rows:
//	  - ["2024-01-01", 10]
//	  - ["2024-01-02", {v: 12, f: twelve}]
//	formats:
//	  - {column: 1, type: NumberFormat, options: {prefix: $}}
package tabledoc

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/goccy/go-json"
	"gopkg.in/yaml.v3"
)

// Encoding is a document serialization
type Encoding string

const (
	YAML Encoding = "yaml"
	JSON Encoding = "json"
)

// Document is the serialized description of a table
type Document struct {
	Timezone interface{}   `json:"timezone,omitempty" yaml:"timezone,omitempty"`
	Columns  []interface{} `json:"columns" yaml:"columns"`
	Rows     []interface{} `json:"rows" yaml:"rows"`
	Formats  []FormatSpec  `json:"formats,omitempty" yaml:"formats,omitempty"`
}

// FormatSpec attaches a formatter to a column
type FormatSpec struct {
	Column  int                    `json:"column" yaml:"column"`
	Type    string                 `json:"type" yaml:"type"`
	Options map[string]interface{} `json:"options,omitempty" yaml:"options,omitempty"`
}

// EncodingFor picks the encoding from a file extension, defaulting to YAML
func EncodingFor(path string) Encoding {
	if strings.EqualFold(filepath.Ext(path), ".json") {
		return JSON
	}
	return YAML
}

// ParseEncoding validates an encoding name
func ParseEncoding(name string) (Encoding, error) {
	switch Encoding(strings.ToLower(name)) {
	case YAML, "yml":
		return YAML, nil
	case JSON:
		return JSON, nil
	default:
		return "", fmt.Errorf("unknown document encoding %q (valid encodings are yaml, json)", name)
	}
}

// Parse decodes a document
func Parse(data []byte, enc Encoding) (*Document, error) {
	var doc Document

	switch enc {
	case JSON:
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&doc); err != nil {
			return nil, fmt.Errorf("failed to parse JSON document: %w", err)
		}
	case YAML:
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&doc); err != nil {
			return nil, fmt.Errorf("failed to parse YAML document: %w", err)
		}
	default:
		return nil, fmt.Errorf("unknown document encoding %q", enc)
	}

	return &doc, nil
}

// ReadFile loads a document, choosing the encoding from the extension
func ReadFile(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(data, EncodingFor(path))
}

// Encode serializes a document
func Encode(doc *Document, enc Encoding) ([]byte, error) {
	switch enc {
	case JSON:
		return json.MarshalIndent(doc, "", "  ")
	case YAML:
		var buf bytes.Buffer
		e := yaml.NewEncoder(&buf)
		e.SetIndent(2)
		if err := e.Encode(doc); err != nil {
			return nil, err
		}
		if err := e.Close(); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	default:
		return nil, fmt.Errorf("unknown document encoding %q", enc)
	}
}

// WriteFile saves a document, choosing the encoding from the extension
func WriteFile(path string, doc *Document) error {
	data, err := Encode(doc, EncodingFor(path))
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
