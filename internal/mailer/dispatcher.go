package mailer

import (
	"context"
	stderrors "errors"
	"log/slog"
	"strings"
	"time"

	"github.com/ethanbaker/minutes/internal/errors"
	"github.com/ethanbaker/minutes/internal/recipients"
	"github.com/ethanbaker/minutes/pkg/utils"
)

// PreviewRunes is how much of the summary a demo outcome echoes back
const PreviewRunes = 200

// ErrNotConfigured is returned by Verify when no credentials are set
var ErrNotConfigured = stderrors.New("email credentials are not configured")

// ShareRequest is a summary plus who it goes to
type ShareRequest struct {
	Summary    string
	Recipients string
	Subject    string
	Message    string
}

// Outcome is either Demo or Sent. A failed send is returned as an error
type Outcome interface {
	isOutcome()
	SentTo() []string
}

// Demo is a simulated send: nothing left the process
type Demo struct {
	Recipients []string
	Subject    string
	Message    string
	Preview    string
}

// Sent means the transport accepted the message for every recipient
type Sent struct {
	Recipients []string
}

func (Demo) isOutcome() {}
func (Sent) isOutcome() {}

func (d Demo) SentTo() []string { return d.Recipients }
func (s Sent) SentTo() []string { return s.Recipients }

// Dispatcher validates share requests and sends them, or simulates the send
// when credentials are not configured
type Dispatcher struct {
	creds     Credentials
	transport Transport
	renderer  *Renderer
	timeout   time.Duration
	log       *slog.Logger
}

// NewDispatcher wires a dispatcher. transport may be nil when creds is
// Unconfigured
func NewDispatcher(creds Credentials, transport Transport, renderer *Renderer, timeout time.Duration, log *slog.Logger) *Dispatcher {
	return &Dispatcher{
		creds:     creds,
		transport: transport,
		renderer:  renderer,
		timeout:   timeout,
		log:       log.With("component", "mailer"),
	}
}

// DemoMode reports whether sends are simulated
func (d *Dispatcher) DemoMode() bool {
	_, ok := d.creds.(Configured)
	return !ok || d.transport == nil
}

// Share validates req and delivers it
func (d *Dispatcher) Share(ctx context.Context, req ShareRequest) (Outcome, error) {
	if err := validate(req); err != nil {
		return nil, err
	}

	list, err := recipients.Parse(req.Recipients)
	if err != nil {
		return nil, err
	}

	creds, ok := d.creds.(Configured)
	if !ok || d.transport == nil {
		d.log.InfoContext(ctx, "Demo mode share, no email sent",
			"recipients", list,
			"subject", req.Subject,
			"message", req.Message,
			"summaryChars", len([]rune(req.Summary)))

		return Demo{
			Recipients: list,
			Subject:    req.Subject,
			Message:    req.Message,
			Preview:    Preview(req.Summary),
		}, nil
	}

	html, err := d.renderer.HTML(req.Subject, req.Message, req.Summary)
	if err != nil {
		return nil, errors.NewInternal("Failed to share summary", err)
	}

	msg := Message{
		From:    creds.Sender,
		To:      strings.Join(list, ", "),
		Subject: req.Subject,
		HTML:    html,
		Text:    d.renderer.Text(req.Subject, req.Message, req.Summary),
	}

	ctx, cancel := utils.DetachedContext(ctx, d.timeout)
	defer cancel()

	d.log.InfoContext(ctx, "Sending summary email",
		"recipients", list)

	if err := d.transport.Send(ctx, msg); err != nil {
		classified := Classify(err)
		d.log.ErrorContext(ctx, "Email send failed",
			"error", err,
			"category", errors.CategoryOf(classified),
			"recipients", list)

		return nil, classified
	}

	d.log.InfoContext(ctx, "Email sent",
		"recipients", list)

	return Sent{Recipients: list}, nil
}

// Verify checks that the configured relay accepts the credentials
func (d *Dispatcher) Verify(ctx context.Context) error {
	if d.DemoMode() {
		return ErrNotConfigured
	}

	ctx, cancel := utils.DetachedContext(ctx, d.timeout)
	defer cancel()

	if err := d.transport.Verify(ctx); err != nil {
		return Classify(err)
	}
	return nil
}

// Classify maps a transport error onto a send-failure category and its
// user-facing message
func Classify(err error) *errors.MinutesError {
	var tErr *TransportError
	code := ""
	if stderrors.As(err, &tErr) {
		code = tErr.Code
	}

	switch code {
	case CodeAuth:
		return errors.NewSendFailed(errors.CategoryAuthenticationFailed,
			"Email authentication failed",
			"Please check your Gmail credentials and ensure 2FA is enabled with App Password",
			err)
	case CodeConnection:
		return errors.NewSendFailed(errors.CategoryConnectionFailed,
			"Email connection failed",
			"Please check your internet connection",
			err)
	default:
		return errors.NewSendFailed(errors.CategoryUnknown,
			"Failed to share summary",
			err.Error(),
			err)
	}
}

// Preview returns the first PreviewRunes runes of summary followed by "..."
func Preview(summary string) string {
	runes := []rune(summary)
	if len(runes) > PreviewRunes {
		runes = runes[:PreviewRunes]
	}
	return string(runes) + "..."
}

func validate(req ShareRequest) error {
	var missing []string
	if strings.TrimSpace(req.Summary) == "" {
		missing = append(missing, "summary")
	}
	if strings.TrimSpace(req.Recipients) == "" {
		missing = append(missing, "recipients")
	}
	if strings.TrimSpace(req.Subject) == "" {
		missing = append(missing, "subject")
	}
	if len(missing) > 0 {
		return errors.NewValidation("Summary, recipients, and subject are required", missing...)
	}
	return nil
}
