package conversation

import "errors"

var (
	// ErrEmptyMessage is returned when a chat request carries no text.
	ErrEmptyMessage = errors.New("conversation: message cannot be empty")

	// ErrMissingSession is returned when a chat request carries no session id.
	ErrMissingSession = errors.New("conversation: session_id is required")

	// ErrModelOverloaded is returned when the upstream model reports quota
	// exhaustion. Handlers map it to HTTP 429.
	ErrModelOverloaded = errors.New("conversation: model quota exhausted")

	// ErrNoLeadPayload is returned when the extraction reply contains no
	// recognizable JSON object.
	ErrNoLeadPayload = errors.New("conversation: no JSON object in extraction reply")
)
