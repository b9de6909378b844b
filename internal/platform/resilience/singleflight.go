package resilience

import (
	"strings"
	"sync"
)

// SingleFlight collapses concurrent loads of one key into a single call.
// The zero value is ready to use.
type SingleFlight struct {
	mu      sync.Mutex
	flights map[string]*flight
}

type flight struct {
	done chan struct{}
	val  any
	err  error
}

// Do runs fn once per key at a time. shared reports whether the result came
// from a call started by another goroutine.
func (g *SingleFlight) Do(key string, fn func() (any, error)) (val any, err error, shared bool) {
	g.mu.Lock()
	if f, ok := g.flights[key]; ok {
		g.mu.Unlock()
		<-f.done
		return f.val, f.err, true
	}
	if g.flights == nil {
		g.flights = make(map[string]*flight)
	}
	f := &flight{done: make(chan struct{})}
	g.flights[key] = f
	g.mu.Unlock()

	defer func() {
		g.mu.Lock()
		if g.flights[key] == f {
			delete(g.flights, key)
		}
		g.mu.Unlock()
		close(f.done)
	}()

	f.val, f.err = fn()
	return f.val, f.err, false
}

// ForgetPrefix detaches in-flight calls under prefix. Callers already waiting
// still get their result; new callers start a fresh call.
func (g *SingleFlight) ForgetPrefix(prefix string) {
	g.mu.Lock()
	defer g.mu.Unlock()

	for key := range g.flights {
		if strings.HasPrefix(key, prefix) {
			delete(g.flights, key)
		}
	}
}
