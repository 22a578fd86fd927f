package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/jpalmerr/scanboard"
	"github.com/jpalmerr/scanboard/query"
	"github.com/jpalmerr/scanboard/urlstate"
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo}))

	// three colours give a selection capacity of three
	codec, err := urlstate.NewCodec(
		urlstate.WithPalette("#E69F00", "#93CEF1", "#009E73"),
		urlstate.WithLogger(logger),
	)
	if err != nil {
		slog.Error("failed to create codec", "error", err)
		os.Exit(1)
	}

	// the location stands in for the browser address bar
	loc, err := urlstate.NewMemoryLocation("")
	if err != nil {
		slog.Error("failed to create location", "error", err)
		os.Exit(1)
	}

	st, unbind, err := urlstate.Open(loc, urlstate.DefaultKey, codec,
		scanboard.WithLogger(logger),
		scanboard.WithWarningHandler(func(w scanboard.Warning) {
			fmt.Printf("  ! %s\n", w.Reason)
		}),
	)
	if err != nil {
		slog.Error("failed to open store", "error", err)
		os.Exit(1)
	}
	defer unbind()

	// a plot only redraws when its own slice of state changes
	selection, err := scanboard.SelectFunc(st, scanboard.SelectedScans, scanboard.SlicesEqual[scanboard.SelectedScan],
		scanboard.HostFunc(func() { fmt.Println("  -> scatter plot redraw") }))
	if err != nil {
		slog.Error("failed to subscribe", "error", err)
		os.Exit(1)
	}
	defer selection.Dispose()

	full, _ := query.Compile("len(selected) == capacity")
	fullSub, err := query.Subscribe(st, full, scanboard.HostFunc(func() {
		fmt.Println("  -> selection full indicator changed")
	}), nil)
	if err != nil {
		slog.Error("failed to subscribe query", "error", err)
		os.Exit(1)
	}
	defer fullSub.Dispose()

	events := []scanboard.Event{
		scanboard.ScanToggled{ID: "scan-101"},
		scanboard.ScanToggled{ID: "scan-102"},
		scanboard.ScanToggled{ID: "scan-103"},
		scanboard.ScanToggled{ID: "scan-104"},
		scanboard.FeatureAdded{},
		scanboard.FeatureSelected{View: "2", Feature: "volume"},
		scanboard.FeatureSelected{View: "2", Feature: "colour"},
		scanboard.ParameterChanged{Parameter: scanboard.ParamLeftBiomarker, Value: "age"},
	}

	for _, e := range events {
		fmt.Printf("%s %+v\n", e.Kind(), e)
		if err := st.Dispatch(e); err != nil {
			slog.Error("dispatch failed", "error", err)
			os.Exit(1)
		}
	}

	fmt.Println()
	fmt.Println("selection:")
	for _, e := range selection.Value() {
		fmt.Printf("  %s %s\n", e.Slot, e.ID)
	}
	fmt.Println("views:")
	for _, b := range st.Snapshot().Views.Bindings() {
		fmt.Printf("  %s %s\n", b.ID, b.Feature)
	}
	fmt.Printf("share: ?%s\n", loc.Query())

	// opening the same link again restores the state
	reopened, closeReopened, err := urlstate.Open(loc, urlstate.DefaultKey, codec, scanboard.WithLogger(logger))
	if err != nil {
		slog.Error("failed to reopen store", "error", err)
		os.Exit(1)
	}
	defer closeReopened()
	fmt.Printf("restored equal: %t\n", reopened.Snapshot().Equal(st.Snapshot()))
}
