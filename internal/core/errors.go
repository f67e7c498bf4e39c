package core

import "fmt"

// MissingHeaderError indicates that a required header is absent from the
// inbound message. No reply is attempted.
type MissingHeaderError struct {
	Header string
}

func (e *MissingHeaderError) Error() string {
	return fmt.Sprintf("missing required header: %s", e.Header)
}

// LoopDetectedError indicates that the inbound message is a reply to a
// message this service generated. The message is dropped silently so two
// auto-responders cannot ping-pong forever.
type LoopDetectedError struct {
	InReplyTo string
}

func (e *LoopDetectedError) Error() string {
	return fmt.Sprintf("reply loop detected: In-Reply-To %q references own message id namespace", e.InReplyTo)
}

// TransportError wraps a failure during delivery. Stage names the SMTP
// phase that failed (connect, starttls, auth, mail, rcpt, data, write).
type TransportError struct {
	Stage string
	Err   error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("transport failure during %s: %v", e.Stage, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}
