// Package events provides domain event definitions for decoupled,
// event-driven communication between modules.
// Infrastructure (Bus, Handler) is in platform/events.
package events

import (
	"time"

	"leadcapture_frontend/platform/events"
)

// Re-export platform types for convenience
type (
	Event       = events.Event
	Bus         = events.Bus
	Handler     = events.Handler
	HandlerFunc = events.HandlerFunc
	BaseEvent   = events.BaseEvent
)

// Re-export platform functions
var NewBaseEvent = events.NewBaseEvent

// =============================================================================
// Lead Submission Events
// =============================================================================

// LeadSubmissionSucceeded is published when the lead API accepted a submission.
type LeadSubmissionSucceeded struct {
	BaseEvent
	Variant  string        `json:"variant"`
	Source   string        `json:"source"`
	Endpoint string        `json:"endpoint"`
	Email    string        `json:"email"`
	Phone    string        `json:"phone"`
	PlotID   string        `json:"plotId,omitempty"`
	Latency  time.Duration `json:"latency"`
}

func (e LeadSubmissionSucceeded) EventName() string { return "leads.submission.succeeded" }

// LeadSubmissionFailed is published when a submission ended in the error
// state, whether from validation, throttling or the lead API.
type LeadSubmissionFailed struct {
	BaseEvent
	Variant  string        `json:"variant"`
	Source   string        `json:"source"`
	Endpoint string        `json:"endpoint"`
	Kind     string        `json:"kind"`
	Message  string        `json:"message"`
	Latency  time.Duration `json:"latency"`
}

func (e LeadSubmissionFailed) EventName() string { return "leads.submission.failed" }

// LeadFormReset is published when a settled form returns to idle.
type LeadFormReset struct {
	BaseEvent
	Variant string `json:"variant"`
	From    string `json:"from"`
	Reason  string `json:"reason"`
}

func (e LeadFormReset) EventName() string { return "leads.form.reset" }
