package strobe

// Request carries an accepted value through the delivery pipeline.
// It provides access to both the outgoing and incoming visible values,
// allowing pipeline stages to make decisions based on what changed.
type Request[T comparable] struct {
	// Previous is the visible value being replaced. It is the zero value
	// when nothing was visible, which happens on the first emission after
	// a source swap.
	Previous T

	// Current is the newly accepted value. Pipeline stages may modify it
	// before it becomes visible.
	Current T
}
