package strobe

import "github.com/zoobzio/capitan"

// Switcher lifecycle signals.
var (
	// SourceSet is emitted when a new source is attached.
	SourceSet = capitan.NewSignal(
		"strobe.switcher.source.set",
		"New source attached",
	)

	// SourceCleared is emitted when the source is replaced with nothing.
	SourceCleared = capitan.NewSignal(
		"strobe.switcher.source.cleared",
		"Source cleared, nothing to watch",
	)

	// SourceFailed is emitted when the active source reports a terminal error.
	SourceFailed = capitan.NewSignal(
		"strobe.switcher.source.failed",
		"Active source reported a terminal error",
	)

	// SourceCompleted is emitted when the active source completes normally.
	SourceCompleted = capitan.NewSignal(
		"strobe.switcher.source.completed",
		"Active source completed",
	)

	// SwitcherDisposed is emitted when a Switcher is torn down.
	SwitcherDisposed = capitan.NewSignal(
		"strobe.switcher.disposed",
		"Switcher torn down",
	)

	// StateChanged is emitted when a Switcher transitions between states.
	StateChanged = capitan.NewSignal(
		"strobe.switcher.state.changed",
		"Switcher state transition",
	)
)

// Emission and render signals.
var (
	// EmissionAccepted is emitted when a distinct value becomes visible.
	EmissionAccepted = capitan.NewSignal(
		"strobe.emission.accepted",
		"Distinct value accepted",
	)

	// EmissionSuppressed is emitted when a consecutive duplicate is dropped.
	EmissionSuppressed = capitan.NewSignal(
		"strobe.emission.suppressed",
		"Consecutive duplicate suppressed",
	)

	// DeliveryFailed is emitted when the delivery pipeline fails.
	DeliveryFailed = capitan.NewSignal(
		"strobe.emission.delivery.failed",
		"Delivery pipeline failed",
	)

	// RenderScheduled is emitted when a refresh is armed for the current window.
	RenderScheduled = capitan.NewSignal(
		"strobe.render.scheduled",
		"Refresh armed for this coalescing window",
	)

	// RenderExecuted is emitted when the refresh side effect runs.
	RenderExecuted = capitan.NewSignal(
		"strobe.render.executed",
		"Refresh side effect ran",
	)
)
