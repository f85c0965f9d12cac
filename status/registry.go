package status

import (
	"fmt"
	"strings"
	"sync/atomic"
)

// Registry is the central metrics facade
// Producers cache pointers at construction; the engine owner loop writes directly to atomics
// and the terminal status line reads them
type Registry struct {
	Bools   *MetricMap[atomic.Bool]
	Ints    *MetricMap[atomic.Int64]
	Floats  *MetricMap[AtomicFloat]
	Strings *MetricMap[AtomicString]
}

// NewRegistry creates an initialized Registry
func NewRegistry() *Registry {
	return &Registry{
		Bools:   NewMetricMap[atomic.Bool](),
		Ints:    NewMetricMap[atomic.Int64](),
		Floats:  NewMetricMap[AtomicFloat](),
		Strings: NewMetricMap[AtomicString](),
	}
}

// TotalCount returns total metrics across all types
func (r *Registry) TotalCount() int {
	return r.Bools.Count() + r.Ints.Count() + r.Floats.Count() + r.Strings.Count()
}
// Format renders every metric as sorted "key=value" pairs for a status line
// Bools first, then ints, floats (one decimal) and strings; empty strings are omitted
func (r *Registry) Format() string {
	var b strings.Builder
	sep := func() {
		if b.Len() > 0 {
			b.WriteByte(' ')
		}
	}
	r.Bools.Range(func(k string, v *atomic.Bool) {
		sep()
		fmt.Fprintf(&b, "%s=%t", k, v.Load())
	})
	r.Ints.Range(func(k string, v *atomic.Int64) {
		sep()
		fmt.Fprintf(&b, "%s=%d", k, v.Load())
	})
	r.Floats.Range(func(k string, v *AtomicFloat) {
		sep()
		fmt.Fprintf(&b, "%s=%.1f", k, v.Get())
	})
	r.Strings.Range(func(k string, v *AtomicString) {
		if s := v.Load(); s != "" {
			sep()
			fmt.Fprintf(&b, "%s=%s", k, s)
		}
	})
	return b.String()
}
