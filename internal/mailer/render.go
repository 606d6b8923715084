package mailer

import (
	"bytes"
	"fmt"
	"html/template"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	gmhtml "github.com/yuin/goldmark/renderer/html"

	"github.com/ethanbaker/minutes/pkg/utils"
)

var bodyTemplate = template.Must(template.New("body").Parse(`<h2>Meeting Summary</h2>
<p><strong>Subject:</strong> {{.Subject}}</p>
{{if .HasMessage}}<p><strong>Message:</strong> {{.Message}}</p>
{{end}}<hr>
{{if .Markdown}}<div>{{.SummaryHTML}}</div>{{else}}<div style="white-space: pre-wrap;">{{.Summary}}</div>{{end}}
`))

type bodyData struct {
	Subject     string
	Message     string
	HasMessage  bool
	Summary     string
	SummaryHTML template.HTML
	Markdown    bool
}

// Renderer builds the HTML and plain-text bodies of a shared summary
// User-supplied fields are always escaped
type Renderer struct {
	format string
	md     goldmark.Markdown
}

// NewRenderer creates a renderer for the given summary format
// (utils.SummaryFormatPreformatted or utils.SummaryFormatMarkdown)
func NewRenderer(format string) *Renderer {
	return &Renderer{
		format: format,
		md: goldmark.New(
			goldmark.WithExtensions(extension.GFM),
			goldmark.WithRendererOptions(gmhtml.WithHardWraps()),
		),
	}
}

// HTML renders the email body. In preformatted mode the summary keeps its
// line breaks through white-space: pre-wrap; in markdown mode it is rendered
// by goldmark with raw HTML dropped
func (r *Renderer) HTML(subject, message, summary string) (string, error) {
	data := bodyData{
		Subject:    subject,
		Message:    message,
		HasMessage: message != "",
		Summary:    summary,
	}

	if r.format == utils.SummaryFormatMarkdown {
		var buf bytes.Buffer
		if err := r.md.Convert([]byte(summary), &buf); err != nil {
			return "", fmt.Errorf("render markdown: %w", err)
		}
		data.Markdown = true
		data.SummaryHTML = template.HTML(buf.String())
	}

	var out bytes.Buffer
	if err := bodyTemplate.Execute(&out, data); err != nil {
		return "", fmt.Errorf("render body: %w", err)
	}
	return out.String(), nil
}

// Text renders the plain-text alternative part
func (r *Renderer) Text(subject, message, summary string) string {
	b := strings.Builder{}
	b.WriteString("Meeting Summary\n\n")
	b.WriteString("Subject: ")
	b.WriteString(subject)
	b.WriteString("\n")
	if message != "" {
		b.WriteString("Message: ")
		b.WriteString(message)
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(summary)
	b.WriteString("\n")
	return b.String()
}
