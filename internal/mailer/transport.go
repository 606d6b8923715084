package mailer

import (
	"context"
	"fmt"
)

// Transport error codes, in the shape SMTP client libraries report them
const (
	CodeAuth       = "EAUTH"
	CodeConnection = "ECONNECTION"
	CodeMessage    = "EMESSAGE"
)

// Message is one outbound email. To is the comma-joined recipient list
type Message struct {
	From    string
	To      string
	Subject string
	HTML    string
	Text    string
}

// Transport delivers messages to an email relay
type Transport interface {
	// Send submits a single message covering every recipient
	Send(ctx context.Context, msg Message) error

	// Verify connects and authenticates without sending anything
	Verify(ctx context.Context) error
}

// TransportError tags a transport failure with a code the dispatcher classifies
type TransportError struct {
	Code string
	Err  error
}

func (e *TransportError) Error() string {
	if e.Code == "" {
		return e.Err.Error()
	}
	return fmt.Sprintf("%s: %v", e.Code, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}
