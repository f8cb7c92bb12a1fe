package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

// Collector wiring is two-phase: each file's init enqueues its collectors,
// and main calls MustRegister once after config is loaded. Tests that never
// call MustRegister leave the default registry untouched, so packages can be
// tested in isolation without duplicate-registration panics.

var (
	queueMu sync.Mutex
	queue   []prometheus.Collector
	wired   bool
)

func enqueue(cs ...prometheus.Collector) {
	queueMu.Lock()
	defer queueMu.Unlock()
	queue = append(queue, cs...)
}

// MustRegister registers every enqueued collector with the default registry.
// Calls after the first are no-ops.
func MustRegister() {
	queueMu.Lock()
	defer queueMu.Unlock()
	if wired {
		return
	}
	wired = true
	prometheus.MustRegister(queue...)
}
