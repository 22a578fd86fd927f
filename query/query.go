// Package query compiles expr-lang expressions into selectors over
// scanboard state, so projections can be written as configuration instead
// of Go code.
//
// An expression sees the environment built by [Env]:
//
//	selected   []string           selected scan ids, newest first
//	slots      map[string]string  scan id to slot
//	free       []string           free slots, next to allocate first
//	capacity   int                number of slots
//	views      map[string]string  view id to feature
//	viewIds    []string           view ids in insertion order
//	nextView   int                view id counter
//	params     map[string]string  plot parameters
//	focused    string             focused scan id, or ""
//	revision   int                dispatch count
//
// For example, `len(selected) == capacity` or `params.leftBiomarker`.
package query

import (
	"errors"
	"fmt"
	"reflect"

	exprlang "github.com/expr-lang/expr"
	exprvm "github.com/expr-lang/expr/vm"

	"github.com/jpalmerr/scanboard"
)

// Query is a compiled expression. It is safe for concurrent use.
type Query struct {
	expression string
	program    *exprvm.Program
}

// Compile parses and type-checks expression against the state environment.
func Compile(expression string) (*Query, error) {
	if expression == "" {
		return nil, errors.New("expression must not be empty")
	}
	program, err := exprlang.Compile(expression,
		exprlang.Env(Env(scanboard.DefaultState())),
		exprlang.AllowUndefinedVariables(),
	)
	if err != nil {
		return nil, fmt.Errorf("compile %q: %w", expression, err)
	}
	return &Query{expression: expression, program: program}, nil
}

// String returns the source expression.
func (q *Query) String() string {
	return q.expression
}

// Eval runs the query against s.
func (q *Query) Eval(s scanboard.State) (any, error) {
	result, err := exprlang.Run(q.program, Env(s))
	if err != nil {
		return nil, fmt.Errorf("evaluate %q: %w", q.expression, err)
	}
	return result, nil
}

// Selector adapts the query for [scanboard.SelectFunc]. Evaluation errors
// are passed to onError, when it is not nil, and project to nil.
func (q *Query) Selector(onError func(error)) func(scanboard.State) any {
	return func(s scanboard.State) any {
		v, err := q.Eval(s)
		if err != nil {
			if onError != nil {
				onError(err)
			}
			return nil
		}
		return v
	}
}

// Subscribe subscribes host to the query's result, signalling it when the
// result changes under [Equal].
func Subscribe(st *scanboard.Store, q *Query, host scanboard.Host, onError func(error)) (*scanboard.Subscription[any], error) {
	if q == nil {
		return nil, errors.New("query cannot be nil")
	}
	return scanboard.SelectFunc(st, q.Selector(onError), Equal, host)
}

// Equal compares query results structurally.
func Equal(a, b any) bool {
	return reflect.DeepEqual(a, b)
}

// Env builds the expression environment for s.
func Env(s scanboard.State) map[string]any {
	selected := make([]string, 0, s.Selection.Len())
	slots := make(map[string]string, s.Selection.Len())
	for _, e := range s.Selection.Entries() {
		selected = append(selected, string(e.ID))
		slots[string(e.ID)] = string(e.Slot)
	}

	free := make([]string, 0, s.Selection.Capacity())
	for _, slot := range s.Selection.FreeSlots() {
		free = append(free, string(slot))
	}

	views := make(map[string]string, s.Views.Len())
	viewIDs := make([]string, 0, s.Views.Len())
	for _, b := range s.Views.Bindings() {
		views[string(b.ID)] = string(b.Feature)
		viewIDs = append(viewIDs, string(b.ID))
	}

	params := s.Parameters.Map()
	if params == nil {
		params = map[string]string{}
	}

	focused, _ := s.FocusedScan()

	return map[string]any{
		"selected": selected,
		"slots":    slots,
		"free":     free,
		"capacity": s.Selection.Capacity(),
		"views":    views,
		"viewIds":  viewIDs,
		"nextView": s.Views.NextID(),
		"params":   params,
		"focused":  string(focused),
		"revision": int(s.Revision),
	}
}
