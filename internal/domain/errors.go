package domain

import "errors"

// Error taxonomy for the report workflow. Callers classify failures by sentinel:
// configuration and upstream-status errors abort before any further remote call,
// transport errors are fatal or soft depending on the step, and parse errors only
// ever advance the question-strategy fallback chain.
var (
	ErrConfig            = errors.New("configuration error")
	ErrUpstreamStatus    = errors.New("feed query status not ok")
	ErrTransport         = errors.New("transport error")
	ErrParse             = errors.New("parse error")
	ErrWorkspaceNotFound = errors.New("workspace not found")
)
