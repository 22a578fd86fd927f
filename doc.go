// Package scanboard provides the shared application state behind an
// interactive scan analysis tool: a single canonical, versioned state that
// many independently-lived consumers observe through their own projections.
//
// scanboard is designed as an SDK-first library. It follows functional
// programming principles with immutable types, a pure transition function,
// and composable configuration via the functional options pattern.
//
// # Quick Start
//
// Create a store, subscribe a consumer to a projection, and dispatch events:
//
//	store, _ := scanboard.New()
//
//	sub, _ := scanboard.SelectFunc(store,
//	    scanboard.SelectedScanIDs,
//	    scanboard.SameMembers[scanboard.ScanID],
//	    scanboard.HostFunc(func() { fmt.Println("selection changed") }),
//	)
//	defer sub.Dispose()
//
//	store.Dispatch(scanboard.ScanToggled{ID: "scan-17"})
//
// # State
//
// A [State] holds three persisted parts:
//
//   - [SelectionPool]: a fixed-capacity cache assigning each selected scan a
//     [Slot] from the palette, with oldest-first eviction and FIFO slot recycling
//   - [ViewRegistry]: stable, never-reused view ids bound to a [Feature]
//   - [Parameters]: a simple key/value map of plot parameters
//
// Every value is immutable. [Transition] computes the next state from the
// current one and an [Event]; it is pure and total, and ignores events it
// does not recognize.
//
// # Events
//
// The event vocabulary is [ScanToggled], [ScanFocused], [FeatureSelected],
// [FeatureAdded], [FeatureRemoved] and [ParameterChanged]. Focus is transient:
// it is read through [State.FocusedScan] and never persisted.
//
// # Subscriptions
//
// The [Store] notifies every listener on every dispatch. A [Subscription]
// recomputes its selector and signals its [Host] only when the projection
// changed under the equality it was created with. Built-in selectors include
// [SelectedScanIDs], [ScanSlot], [ViewIDs], [ViewFeature], [Parameter] and
// [FocusedScan].
//
// # Re-entrancy
//
// A listener that dispatches during a notification pass never starts a
// nested pass. Under [ReentrancyQueue] (the default) the event runs after the
// current pass; under [ReentrancyReject] it fails with [ErrReentrantDispatch].
//
// # Observability
//
// Stores log through log/slog ([WithLogger]), export Prometheus collectors
// ([WithMetrics]), and record an OpenTelemetry span per dispatch
// ([WithTracer]). Events that are ignored or rejected are reported as a
// [Warning] to handlers registered with [WithWarningHandler].
//
// # Architecture
//
// scanboard consists of several packages:
//
//   - internal/store: In-memory snapshot holder with ordered pub/sub
//   - urlstate: Versioned URL codec and location binding for shareable state
//   - query: expr-lang expressions compiled into selectors
//   - config: YAML configuration converted into store options
//   - cmd/scanboard: Command-line tool for encoding, decoding and replaying state
package scanboard
