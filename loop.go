package strobe

import "sync"

// Loop is a cooperative scheduler: Run opens an execution window and work
// deferred during the window drains in FIFO order when the outermost window
// exits. It is the in-process stand-in for a host event loop or microtask
// queue.
//
// Windows nest. Deferred work queued anywhere inside nested Run calls drains
// exactly once, after the outermost Run returns. Defer outside any window
// runs the work immediately, since the current window has already ended.
type Loop struct {
	mu    sync.Mutex
	depth int
	queue []func()
}

// NewLoop creates an empty Loop.
func NewLoop() *Loop {
	return &Loop{}
}

// Run executes fn inside an execution window.
func (l *Loop) Run(fn func()) {
	l.mu.Lock()
	l.depth++
	l.mu.Unlock()

	fn()

	l.mu.Lock()
	l.depth--
	drain := l.depth == 0
	l.mu.Unlock()

	if drain {
		l.drain()
	}
}

// Defer queues fn to run when the outermost window exits, or runs it
// immediately when no window is open.
func (l *Loop) Defer(fn func()) {
	l.mu.Lock()
	if l.depth == 0 {
		l.mu.Unlock()
		fn()
		return
	}
	l.queue = append(l.queue, fn)
	l.mu.Unlock()
}

// drain runs queued work in FIFO order. Work deferred while draining runs
// immediately via Defer's no-window path, keeping the pass bounded.
func (l *Loop) drain() {
	for {
		l.mu.Lock()
		if len(l.queue) == 0 {
			l.mu.Unlock()
			return
		}
		fn := l.queue[0]
		l.queue = l.queue[1:]
		l.mu.Unlock()

		fn()
	}
}
