package urlstate

import (
	"fmt"
	"unicode/utf8"

	"gopkg.in/yaml.v3"

	"github.com/jpalmerr/scanboard"
)

// SchemaVersion is the wire schema version written by this package.
const SchemaVersion = 1

// Document is the wire representation of the persisted part of a
// [scanboard.State].
//
// Ordered structures are written as arrays: the selection entries newest
// first, the free slot queue head first, and the view bindings in insertion
// order. Transient state such as the focused scan is not part of the document.
type Document struct {
	Version    int               `json:"v" yaml:"version"`
	Selection  SelectionDoc      `json:"selection" yaml:"selection"`
	Views      ViewsDoc          `json:"views" yaml:"views"`
	Parameters map[string]string `json:"parameters,omitempty" yaml:"parameters,omitempty"`
}

// SelectionDoc is the wire form of a [scanboard.SelectionPool].
type SelectionDoc struct {
	Entries []EntryDoc `json:"entries" yaml:"entries"`
	Free    []string   `json:"free" yaml:"free"`
}

// EntryDoc is one selected scan.
type EntryDoc struct {
	ID   string `json:"id" yaml:"id"`
	Slot string `json:"slot" yaml:"slot"`
}

// ViewsDoc is the wire form of a [scanboard.ViewRegistry].
type ViewsDoc struct {
	Bindings []BindingDoc `json:"bindings" yaml:"bindings"`
	Next     int          `json:"next" yaml:"next"`
}

// BindingDoc is one view bound to a feature.
type BindingDoc struct {
	ID      string `json:"id" yaml:"id"`
	Feature string `json:"feature" yaml:"feature"`
}

// NewDocument converts the persisted fields of s into a Document.
func NewDocument(s scanboard.State) Document {
	doc := Document{
		Version: SchemaVersion,
		Selection: SelectionDoc{
			Entries: []EntryDoc{},
			Free:    []string{},
		},
		Views: ViewsDoc{
			Bindings: []BindingDoc{},
			Next:     s.Views.NextID(),
		},
	}

	for _, e := range s.Selection.Entries() {
		doc.Selection.Entries = append(doc.Selection.Entries, EntryDoc{ID: string(e.ID), Slot: string(e.Slot)})
	}
	for _, slot := range s.Selection.FreeSlots() {
		doc.Selection.Free = append(doc.Selection.Free, string(slot))
	}
	for _, b := range s.Views.Bindings() {
		doc.Views.Bindings = append(doc.Views.Bindings, BindingDoc{ID: string(b.ID), Feature: string(b.Feature)})
	}
	if s.Parameters.Len() > 0 {
		doc.Parameters = s.Parameters.Map()
	}
	return doc
}

// State rebuilds a state from the document, validating it against palette
// and features.
func (d Document) State(palette []scanboard.Slot, features scanboard.FeatureSet) (scanboard.State, error) {
	if d.Version != SchemaVersion {
		return scanboard.State{}, fmt.Errorf("%w: %d", ErrUnsupportedVersion, d.Version)
	}

	entries := make([]scanboard.SelectedScan, len(d.Selection.Entries))
	for i, e := range d.Selection.Entries {
		entries[i] = scanboard.SelectedScan{ID: scanboard.ScanID(e.ID), Slot: scanboard.Slot(e.Slot)}
	}
	free := make([]scanboard.Slot, len(d.Selection.Free))
	for i, s := range d.Selection.Free {
		free[i] = scanboard.Slot(s)
	}
	pool, err := scanboard.RestoreSelectionPool(palette, entries, free)
	if err != nil {
		return scanboard.State{}, fmt.Errorf("selection: %w", err)
	}

	bindings := make([]scanboard.ViewBinding, len(d.Views.Bindings))
	for i, b := range d.Views.Bindings {
		bindings[i] = scanboard.ViewBinding{ID: scanboard.ViewID(b.ID), Feature: scanboard.Feature(b.Feature)}
	}
	views, err := scanboard.RestoreViewRegistry(features, bindings, d.Views.Next)
	if err != nil {
		return scanboard.State{}, fmt.Errorf("views: %w", err)
	}

	return scanboard.State{
		Selection:  pool,
		Views:      views,
		Parameters: scanboard.NewParameters(d.Parameters),
	}, nil
}

// MarshalYAMLDocument renders d as YAML.
func MarshalYAMLDocument(d Document) ([]byte, error) {
	return yaml.Marshal(d)
}

// ParseYAMLDocument parses a YAML document. A missing version defaults to
// [SchemaVersion] so hand-written files can omit it.
func ParseYAMLDocument(data []byte) (Document, error) {
	var d Document
	if err := yaml.Unmarshal(data, &d); err != nil {
		return Document{}, fmt.Errorf("failed to parse YAML document: %w", err)
	}
	if d.Version == 0 {
		d.Version = SchemaVersion
	}
	return d, nil
}

// checkUTF8 returns an error naming the first string that is not valid UTF-8.
func (d Document) checkUTF8() error {
	for i, e := range d.Selection.Entries {
		if !utf8.ValidString(e.ID) || !utf8.ValidString(e.Slot) {
			return fmt.Errorf("selection.entries[%d]: invalid UTF-8", i)
		}
	}
	for i, s := range d.Selection.Free {
		if !utf8.ValidString(s) {
			return fmt.Errorf("selection.free[%d]: invalid UTF-8", i)
		}
	}
	for i, b := range d.Views.Bindings {
		if !utf8.ValidString(b.ID) || !utf8.ValidString(b.Feature) {
			return fmt.Errorf("views.bindings[%d]: invalid UTF-8", i)
		}
	}
	for k, v := range d.Parameters {
		if !utf8.ValidString(k) || !utf8.ValidString(v) {
			return fmt.Errorf("parameters[%q]: invalid UTF-8", k)
		}
	}
	return nil
}
