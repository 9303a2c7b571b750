// Package service contains the business logic for the Wayfarer API.
// Services validate inputs, enforce business rules and orchestrate repo
// calls and the engines. No SQL lives here; services depend on repo
// interfaces, not implementations.
package service

import "time"

// Recorder receives engine outcomes for metrics. *metrics.Metrics
// satisfies it.
type Recorder interface {
	ObservePlan(stops, warnings int)
	ObserveHoursLookup(status string)
}

type noopRecorder struct{}

func (noopRecorder) ObservePlan(int, int)      {}
func (noopRecorder) ObserveHoursLookup(string) {}

func recorderOrNoop(r Recorder) Recorder {
	if r == nil {
		return noopRecorder{}
	}
	return r
}

// Clock returns the current instant. Services take one so tests can pin
// "now"; production passes time.Now.
type Clock func() time.Time

func clockOrNow(c Clock) Clock {
	if c == nil {
		return time.Now
	}
	return c
}
