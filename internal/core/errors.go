package core

// ErrorKind classifies a pipeline stage failure. Every failure surfaced to
// the caller carries exactly one kind; none are retried inside the core.
type ErrorKind string

const (
	// ErrKindUpstreamUnavailable means the search provider was unreachable
	// or returned a malformed response.
	ErrKindUpstreamUnavailable ErrorKind = "upstream_unavailable"

	// ErrKindCompletionUpstream means the completion provider returned a
	// non-success status or a response missing the completion text.
	ErrKindCompletionUpstream ErrorKind = "completion_upstream_error"

	// ErrKindCompletionTimeout means the completion call exceeded its
	// bounded time budget.
	ErrKindCompletionTimeout ErrorKind = "completion_timeout"

	// ErrKindUnparsableCompletion means no valid structured value could be
	// recovered from the completion text.
	ErrKindUnparsableCompletion ErrorKind = "unparsable_completion"
)

// StageError is a classified pipeline failure. Message is safe to display
// to the caller; Raw is the diagnostic payload attached for debugging and
// is never interpreted as semantically valid.
type StageError struct {
	Kind    ErrorKind
	Message string
	Raw     string
}

func (e *StageError) Error() string {
	return e.Message
}

// Envelope converts the error into the caller-facing error shape.
func (e *StageError) Envelope() ErrorEnvelope {
	return ErrorEnvelope{Status: "error", Message: e.Message, Raw: e.Raw}
}
