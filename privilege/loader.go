package privilege

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/tidwall/jsonc"
	"gopkg.in/yaml.v3"
)

// ParseJSONDocument decodes a privilege document from JSON. Comments and
// trailing commas are tolerated; unknown fields are not.
func ParseJSONDocument(r io.Reader) (Document, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return Document{}, fmt.Errorf("read privilege document: %w", err)
	}
	var doc Document
	dec := json.NewDecoder(bytes.NewReader(jsonc.ToJSON(data)))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&doc); err != nil {
		return Document{}, fmt.Errorf("decode privilege document: %w", err)
	}
	return doc, nil
}

// LoadJSONDocument reads a JSON document from disk.
func LoadJSONDocument(path string) (Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return Document{}, fmt.Errorf("open privilege document: %w", err)
	}
	defer f.Close()
	return ParseJSONDocument(f)
}

// ParseYAMLDocument decodes a privilege document from YAML. Unknown fields
// are rejected.
func ParseYAMLDocument(r io.Reader) (Document, error) {
	var doc Document
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil {
		return Document{}, fmt.Errorf("decode privilege document: %w", err)
	}
	return doc, nil
}

// LoadYAMLDocument reads a YAML document from disk.
func LoadYAMLDocument(path string) (Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return Document{}, fmt.Errorf("open privilege document: %w", err)
	}
	defer f.Close()
	return ParseYAMLDocument(f)
}
