// Package jsonimport consumes pre-structured JSON dictionaries, bypassing
// the table parser. Four layouts are recognized: a simple string-to-string
// map, a detailed map of entry objects, a nested map keyed by variant, and
// the clusters document produced by the upstream curation tooling.
package jsonimport

import (
	"encoding/json"
	"errors"
	"fmt"
)

// Format identifies a recognized JSON dictionary layout.
type Format int

const (
	FormatUnknown Format = iota
	FormatSimple
	FormatDetailed
	FormatNested
	FormatClusters
)

// ErrUnknownFormat marks a JSON document that matches no known layout.
var ErrUnknownFormat = errors.New("unrecognized dictionary format")

func (f Format) String() string {
	switch f {
	case FormatSimple:
		return "simple"
	case FormatDetailed:
		return "detailed"
	case FormatNested:
		return "nested"
	case FormatClusters:
		return "clusters"
	}
	return "unknown"
}

// DetectFormat sniffs the layout of a JSON dictionary document. Checked in
// order: a clusters document, a simple map with only string values, a
// detailed map holding entry objects, then a map nested by variant name.
func DetectFormat(data []byte) (Format, error) {
	var root map[string]json.RawMessage
	if err := json.Unmarshal(data, &root); err != nil {
		return FormatUnknown, fmt.Errorf("parsing dictionary document: %w", err)
	}

	if _, ok := root["clusters"]; ok {
		return FormatClusters, nil
	}

	allStrings := len(root) > 0
	for _, raw := range root {
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			allStrings = false
			break
		}
	}
	if allStrings {
		return FormatSimple, nil
	}

	for _, raw := range root {
		var obj map[string]json.RawMessage
		if err := json.Unmarshal(raw, &obj); err != nil {
			continue
		}
		if _, ok := obj["ancient"]; ok {
			return FormatDetailed, nil
		}
		if _, ok := obj["modern"]; ok {
			return FormatDetailed, nil
		}
	}

	if _, ok := root["ancient"]; ok {
		return FormatNested, nil
	}
	if _, ok := root["modern"]; ok {
		return FormatNested, nil
	}

	return FormatUnknown, ErrUnknownFormat
}
