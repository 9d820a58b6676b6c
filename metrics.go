package strobe

import "time"

// MetricsProvider allows integration with metrics systems like Prometheus,
// StatsD, etc. Implement this interface to receive callbacks on key engine
// events.
type MetricsProvider interface {
	// OnStateChange is called when the switcher transitions between states.
	OnStateChange(from, to State)

	// OnEmissionAccepted is called when a distinct value becomes visible.
	// Duration is the time spent in the delivery pipeline.
	OnEmissionAccepted(duration time.Duration)

	// OnEmissionSuppressed is called when a consecutive duplicate is dropped.
	OnEmissionSuppressed()

	// OnSourceError is called when the active source reports a terminal
	// error or the delivery pipeline fails.
	OnSourceError()

	// OnRenderScheduled is called when a refresh is armed for the current
	// coalescing window.
	OnRenderScheduled()

	// OnRenderExecuted is called when the refresh side effect runs.
	OnRenderExecuted()
}

// NoOpMetricsProvider is a no-op implementation of MetricsProvider.
// Use this as an embedded type to implement only the methods you need.
type NoOpMetricsProvider struct{}

func (NoOpMetricsProvider) OnStateChange(_, _ State)           {}
func (NoOpMetricsProvider) OnEmissionAccepted(_ time.Duration) {}
func (NoOpMetricsProvider) OnEmissionSuppressed()              {}
func (NoOpMetricsProvider) OnSourceError()                     {}
func (NoOpMetricsProvider) OnRenderScheduled()                 {}
func (NoOpMetricsProvider) OnRenderExecuted()                  {}
