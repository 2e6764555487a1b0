package enrich

// TransientError marks a lookup failure as retryable: timeouts, connection
// failures, throttling, server errors. The retry driver backs off and tries
// again; anything else is terminal for the key.
type TransientError struct {
	Err error
}

func (e *TransientError) Error() string {
	if e == nil || e.Err == nil {
		return "transient error"
	}
	return e.Err.Error()
}

func (e *TransientError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// NotFoundError is the definitive "no such card" outcome. It is terminal,
// never retried, and recorded distinctly from FAILED so resumed runs do not
// re-attempt it.
type NotFoundError struct {
	Key string
}

func (e *NotFoundError) Error() string {
	return "card not found: " + e.Key
}
