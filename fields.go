package strobe

import "github.com/zoobzio/capitan"

// Field keys for strobe events.
var (
	// KeyState is the current state of the Switcher.
	KeyState = capitan.NewStringKey("state")

	// KeyOldState is the previous state before a transition.
	KeyOldState = capitan.NewStringKey("old_state")

	// KeyNewState is the new state after a transition.
	KeyNewState = capitan.NewStringKey("new_state")

	// KeyError is the error message when an operation fails.
	KeyError = capitan.NewStringKey("error")

	// KeyEpoch is the subscription epoch a change belongs to.
	KeyEpoch = capitan.NewIntKey("epoch")

	// KeyDelivery is the time a value spent in the delivery pipeline.
	KeyDelivery = capitan.NewDurationKey("delivery")
)
