package domain

// SubmissionState is the lifecycle position of one form instance.
type SubmissionState string

const (
	StateIdle       SubmissionState = "idle"
	StateSubmitting SubmissionState = "submitting"
	StateSuccess    SubmissionState = "success"
	StateError      SubmissionState = "error"
)

// Settled reports whether the state shows a result awaiting reset.
func (s SubmissionState) Settled() bool {
	return s == StateSuccess || s == StateError
}
