package main

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/jpalmerr/scanboard"
)

// eventEntry is one entry of an events file.
//
// Only the fields used by kind are read; the rest are ignored.
type eventEntry struct {
	Kind      string `yaml:"kind"`
	ID        string `yaml:"id"`
	View      string `yaml:"view"`
	Feature   string `yaml:"feature"`
	Parameter string `yaml:"parameter"`
	Value     string `yaml:"value"`
}

// event converts the entry into an SDK event.
func (e eventEntry) event() (scanboard.Event, error) {
	switch scanboard.EventKind(e.Kind) {
	case scanboard.KindScanToggled:
		if e.ID == "" {
			return nil, fmt.Errorf("%s: id is required", e.Kind)
		}
		return scanboard.ScanToggled{ID: scanboard.ScanID(e.ID)}, nil
	case scanboard.KindScanFocused:
		if e.ID == "" {
			return nil, fmt.Errorf("%s: id is required", e.Kind)
		}
		return scanboard.ScanFocused{ID: scanboard.ScanID(e.ID)}, nil
	case scanboard.KindFeatureSelected:
		if e.View == "" || e.Feature == "" {
			return nil, fmt.Errorf("%s: view and feature are required", e.Kind)
		}
		return scanboard.FeatureSelected{
			View:    scanboard.ViewID(e.View),
			Feature: scanboard.Feature(e.Feature),
		}, nil
	case scanboard.KindFeatureAdded:
		return scanboard.FeatureAdded{}, nil
	case scanboard.KindFeatureRemoved:
		if e.View == "" {
			return nil, fmt.Errorf("%s: view is required", e.Kind)
		}
		return scanboard.FeatureRemoved{View: scanboard.ViewID(e.View)}, nil
	case scanboard.KindParameterChanged:
		if e.Parameter == "" {
			return nil, fmt.Errorf("%s: parameter is required", e.Kind)
		}
		return scanboard.ParameterChanged{Parameter: e.Parameter, Value: e.Value}, nil
	case "":
		return nil, errors.New("kind is required")
	default:
		return nil, fmt.Errorf("unknown event kind %q", e.Kind)
	}
}

// loadEvents reads a YAML list of events from path.
func loadEvents(path string) ([]scanboard.Event, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read events file: %w", err)
	}
	return parseEvents(data)
}

func parseEvents(data []byte) ([]scanboard.Event, error) {
	var entries []eventEntry
	if err := yaml.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("failed to parse events: %w", err)
	}

	events := make([]scanboard.Event, 0, len(entries))
	for i, entry := range entries {
		e, err := entry.event()
		if err != nil {
			return nil, fmt.Errorf("events[%d]: %w", i, err)
		}
		events = append(events, e)
	}
	return events, nil
}
