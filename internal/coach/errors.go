package coach

import "errors"

// ErrUnknownTask indicates an unsupported task kind.
var ErrUnknownTask = errors.New("unknown task kind")

// MalformedError indicates the model reply failed structural validation.
// Raw carries the unmodified reply for support and debugging.
type MalformedError struct {
	Raw string
	Err error
}

func (e *MalformedError) Error() string {
	if e.Err == nil {
		return "malformed model response"
	}
	return "malformed model response: " + e.Err.Error()
}

func (e *MalformedError) Unwrap() error { return e.Err }

// UpstreamError indicates a transport or provider-level fault.
type UpstreamError struct {
	Err error
}

func (e *UpstreamError) Error() string {
	if e.Err == nil {
		return "upstream ai error"
	}
	return "upstream ai error: " + e.Err.Error()
}

func (e *UpstreamError) Unwrap() error { return e.Err }
