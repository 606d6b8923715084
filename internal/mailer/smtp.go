package mailer

import (
	"context"
	stderrors "errors"
	"fmt"
	"net/textproto"
	"strings"

	"github.com/wneessen/go-mail"
)

// SMTPTransport sends mail through an authenticated SMTP relay using
// STARTTLS and PLAIN auth
type SMTPTransport struct {
	host     string
	port     int
	username string
	password string
}

// NewSMTPTransport builds a transport for the given relay and credentials
func NewSMTPTransport(host string, port int, creds Configured) *SMTPTransport {
	return &SMTPTransport{
		host:     host,
		port:     port,
		username: creds.Sender,
		password: creds.Secret,
	}
}

// Send dials the relay, authenticates, and submits msg
func (t *SMTPTransport) Send(ctx context.Context, msg Message) error {
	m, err := buildMsg(msg)
	if err != nil {
		return err
	}

	client, err := t.dial(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = client.Close() }()

	if err := client.Send(m); err != nil {
		code := ""
		if isAuthReply(err) {
			code = CodeAuth
		}
		return &TransportError{Code: code, Err: fmt.Errorf("send: %w", err)}
	}
	return nil
}

// Verify dials and authenticates, then hangs up
func (t *SMTPTransport) Verify(ctx context.Context) error {
	client, err := t.dial(ctx)
	if err != nil {
		return err
	}
	if err := client.Close(); err != nil {
		return &TransportError{Code: CodeConnection, Err: fmt.Errorf("close: %w", err)}
	}
	return nil
}

// buildMsg assembles the MIME message. With a text body the result is
// multipart/alternative with HTML as the last, preferred, part
func buildMsg(msg Message) (*mail.Msg, error) {
	m := mail.NewMsg()
	if err := m.From(msg.From); err != nil {
		return nil, &TransportError{Code: CodeMessage, Err: fmt.Errorf("set from: %w", err)}
	}
	if err := m.ToFromString(msg.To); err != nil {
		return nil, &TransportError{Code: CodeMessage, Err: fmt.Errorf("set to: %w", err)}
	}
	m.Subject(msg.Subject)

	if msg.Text == "" {
		m.SetBodyString(mail.TypeTextHTML, msg.HTML)
		return m, nil
	}
	m.SetBodyString(mail.TypeTextPlain, msg.Text)
	m.AddAlternativeString(mail.TypeTextHTML, msg.HTML)
	return m, nil
}

func (t *SMTPTransport) dial(ctx context.Context) (*mail.Client, error) {
	client, err := mail.NewClient(t.host,
		mail.WithPort(t.port),
		mail.WithSMTPAuth(mail.SMTPAuthPlain),
		mail.WithUsername(t.username),
		mail.WithPassword(t.password),
		mail.WithTLSPolicy(mail.TLSMandatory),
	)
	if err != nil {
		return nil, &TransportError{Err: fmt.Errorf("create client: %w", err)}
	}

	// go-mail authenticates as part of the dial
	if err := client.DialWithContext(ctx); err != nil {
		code := CodeConnection
		if isAuthReply(err) {
			code = CodeAuth
		}
		return nil, &TransportError{Code: code, Err: fmt.Errorf("dial %s:%d: %w", t.host, t.port, err)}
	}
	return client, nil
}

// isAuthReply reports whether err carries an SMTP authentication reply
// (530 auth required, 534 mechanism too weak, 535 bad credentials)
func isAuthReply(err error) bool {
	var tpErr *textproto.Error
	if stderrors.As(err, &tpErr) {
		switch tpErr.Code {
		case 530, 534, 535:
			return true
		}
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "smtp auth") || strings.Contains(msg, "authentication")
}
