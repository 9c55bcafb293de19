package leads

import (
	"context"

	"leadcapture_frontend/internal/events"
	"leadcapture_frontend/platform/logger"
	"leadcapture_frontend/platform/metrics"
)

const outcomeSuccess = "success"

// RegisterSubscribers wires submission events to logging and metrics.
func RegisterSubscribers(bus events.Bus, m *metrics.LeadMetrics, log *logger.Logger) {
	bus.Subscribe(events.LeadSubmissionSucceeded{}.EventName(), events.HandlerFunc(func(ctx context.Context, event events.Event) error {
		e, ok := event.(events.LeadSubmissionSucceeded)
		if !ok {
			return nil
		}
		m.ObserveSubmission(e.Source, outcomeSuccess)
		m.ObserveLatency(e.Source, e.Latency.Seconds())
		log.WithContext(ctx).LeadSubmitted(e.Source, e.Endpoint, e.Email, e.Phone, float64(e.Latency.Milliseconds()))
		return nil
	}))

	bus.Subscribe(events.LeadSubmissionFailed{}.EventName(), events.HandlerFunc(func(ctx context.Context, event events.Event) error {
		e, ok := event.(events.LeadSubmissionFailed)
		if !ok {
			return nil
		}
		m.ObserveSubmission(e.Source, e.Kind)
		if e.Latency > 0 {
			m.ObserveLatency(e.Source, e.Latency.Seconds())
		}
		log.WithContext(ctx).LeadSubmitFailed(e.Source, e.Endpoint, e.Kind, e.Message)
		return nil
	}))

	bus.Subscribe(events.LeadFormReset{}.EventName(), events.HandlerFunc(func(ctx context.Context, event events.Event) error {
		if e, ok := event.(events.LeadFormReset); ok {
			log.Debug("lead form reset", "variant", e.Variant, "from", e.From, "reason", e.Reason)
		}
		return nil
	}))
}
