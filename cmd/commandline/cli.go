package main

import (
	"encoding/json"
	stderrors "errors"
	"fmt"
	"io"
	"log/slog"
	"mime"
	"os"
	"path/filepath"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/ethanbaker/minutes/internal/api"
	"github.com/ethanbaker/minutes/internal/errors"
	"github.com/ethanbaker/minutes/internal/mailer"
	"github.com/ethanbaker/minutes/internal/mcp"
	"github.com/ethanbaker/minutes/internal/summarizer"
	"github.com/ethanbaker/minutes/internal/transcript"
	"github.com/ethanbaker/minutes/pkg/sdk"
	"github.com/ethanbaker/minutes/pkg/utils"
)

const defaultServer = "http://localhost:5000"

// runtime carries what the commands need. services is built on first use so
// commands that only talk to a remote server never construct local clients
type runtime struct {
	settings utils.Settings
	log      *slog.Logger
	services func() api.Services
}

// newCLIApp creates the CLI application with all commands
func newCLIApp(rt *runtime) *cli.App {
	app := &cli.App{
		Name:    "minutes",
		Usage:   "Summarize meeting transcripts and share the results",
		Version: Version,
		Commands: []*cli.Command{
			serveCmd(rt),
			summarizeCmd(rt),
			shareCmd(rt),
			verifyEmailCmd(rt),
			mcpCmd(rt),
		},
	}
	// Disable default exit error handler to allow proper error return in tests
	app.ExitErrHandler = func(_ *cli.Context, _ error) {}
	return app
}

func serverFlag() cli.Flag {
	return &cli.StringFlag{Name: "server", Aliases: []string{"s"}, Value: defaultServer, Usage: "Base URL of a running API server"}
}

func localFlag() cli.Flag {
	return &cli.BoolFlag{Name: "local", Usage: "Run in-process instead of calling a server"}
}

// serveCmd runs the HTTP API
func serveCmd(rt *runtime) *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Run the HTTP API server",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "port", Aliases: []string{"p"}, Usage: "Listen port (overrides PORT)"},
		},
		Action: func(c *cli.Context) error {
			settings := rt.settings
			if port := c.String("port"); port != "" {
				settings.Port = port
			}
			return api.Start(settings, rt.services(), rt.log)
		},
	}
}

// summarizeCmd generates a summary from a transcript file or stdin
func summarizeCmd(rt *runtime) *cli.Command {
	return &cli.Command{
		Name:  "summarize",
		Usage: "Summarize a transcript (reads stdin when --file is omitted or \"-\")",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "file", Aliases: []string{"f"}, Usage: "Transcript .txt file"},
			&cli.StringFlag{Name: "prompt", Aliases: []string{"p"}, Required: true, Usage: "Custom summary instructions"},
			serverFlag(),
			localFlag(),
		},
		Action: func(c *cli.Context) error {
			if c.Bool("local") {
				text, err := readInput(c, c.String("file"))
				if err != nil {
					return outputError(err)
				}

				res, err := rt.services().Summarizer.Summarize(c.Context, summarizer.Request{
					Transcript:  transcript.Pasted(text).Text,
					Instruction: c.String("prompt"),
				})
				if err != nil {
					return outputError(err)
				}

				return outputJSON(c, sdk.GenerateSummaryResponse{
					Success:            true,
					Summary:            res.Content,
					OriginalTranscript: res.SourceTranscript,
					CustomPrompt:       res.Instruction,
				})
			}

			client := sdk.NewClient(c.String("server"))

			// Files go through the upload endpoint so the server applies its own checks
			var text string
			if path := c.String("file"); path != "" && path != "-" {
				f, err := os.Open(path)
				if err != nil {
					return outputError(err)
				}
				defer f.Close()

				up, err := client.UploadTranscript(c.Context, filepath.Base(path), contentTypeOf(path), f)
				if err != nil {
					return outputError(err)
				}
				text = up.Transcript
			} else {
				in, err := readInput(c, "")
				if err != nil {
					return outputError(err)
				}
				text = in
			}

			res, err := client.GenerateSummary(c.Context, &sdk.GenerateSummaryRequest{
				Transcript:   text,
				CustomPrompt: c.String("prompt"),
			})
			if err != nil {
				return outputError(err)
			}
			return outputJSON(c, res)
		},
	}
}

// shareCmd emails a summary read from a file or stdin
func shareCmd(rt *runtime) *cli.Command {
	return &cli.Command{
		Name:  "share",
		Usage: "Email a summary (reads stdin when --file is omitted or \"-\")",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "file", Aliases: []string{"f"}, Usage: "Summary file"},
			&cli.StringFlag{Name: "to", Aliases: []string{"t"}, Required: true, Usage: "Comma-separated recipients"},
			&cli.StringFlag{Name: "subject", Required: true, Usage: "Email subject"},
			&cli.StringFlag{Name: "message", Aliases: []string{"m"}, Usage: "Optional note above the summary"},
			serverFlag(),
			localFlag(),
		},
		Action: func(c *cli.Context) error {
			summary, err := readInput(c, c.String("file"))
			if err != nil {
				return outputError(err)
			}

			req := sdk.ShareSummaryRequest{
				Summary:    summary,
				Recipients: c.String("to"),
				Subject:    c.String("subject"),
				Message:    c.String("message"),
			}

			if !c.Bool("local") {
				res, err := sdk.NewClient(c.String("server")).ShareSummary(c.Context, &req)
				if err != nil {
					return outputError(err)
				}
				return outputJSON(c, res)
			}

			outcome, err := rt.services().Dispatcher.Share(c.Context, mailer.ShareRequest{
				Summary:    req.Summary,
				Recipients: req.Recipients,
				Subject:    req.Subject,
				Message:    req.Message,
			})
			if err != nil {
				return outputError(err)
			}

			res := sdk.ShareSummaryResponse{
				Success:    true,
				Message:    "Summary shared successfully",
				Recipients: outcome.SentTo(),
			}
			if demo, ok := outcome.(mailer.Demo); ok {
				res.Message = "Summary shared successfully (Demo Mode)"
				res.Demo = true
				res.EmailContent = &sdk.EmailContent{
					To:      demo.Recipients,
					Subject: demo.Subject,
					Message: demo.Message,
					Summary: demo.Preview,
				}
			}
			return outputJSON(c, res)
		},
	}
}

// verifyEmailCmd checks that the configured SMTP relay accepts the credentials
func verifyEmailCmd(rt *runtime) *cli.Command {
	return &cli.Command{
		Name:  "verify-email",
		Usage: "Check the SMTP configuration by connecting and authenticating",
		Action: func(c *cli.Context) error {
			err := rt.services().Dispatcher.Verify(c.Context)
			if stderrors.Is(err, mailer.ErrNotConfigured) {
				return cli.Exit("email is not configured: set EMAIL_USER and EMAIL_PASS (sharing runs in demo mode)", 1)
			}
			if err != nil {
				return outputError(err)
			}

			return outputJSON(c, map[string]any{
				"ok":   true,
				"host": fmt.Sprintf("%s:%d", rt.settings.SMTPHost, rt.settings.SMTPPort),
				"user": rt.settings.EmailUser,
			})
		},
	}
}

// mcpCmd serves the MCP tools on stdio
func mcpCmd(rt *runtime) *cli.Command {
	return &cli.Command{
		Name:  "mcp",
		Usage: "Serve generate_summary and share_summary as MCP tools over stdio",
		Action: func(c *cli.Context) error {
			services := rt.services()
			return mcp.Run(mcp.NewHandlers(services.Summarizer, services.Dispatcher, rt.log), Version)
		},
	}
}

// Helpers

// outputJSON writes v as indented JSON to the app's writer
func outputJSON(c *cli.Context, v any) error {
	enc := json.NewEncoder(c.App.Writer)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// outputError formats error for CLI
func outputError(err error) error {
	var apiErr *sdk.APIError
	if stderrors.As(err, &apiErr) {
		return cli.Exit(formatError(apiErr.Code, apiErr.Message, apiErr.Details), 1)
	}

	var mErr *errors.MinutesError
	if stderrors.As(err, &mErr) {
		return cli.Exit(formatError(string(mErr.Code), mErr.Message, mErr.Detail), 1)
	}

	return cli.Exit(err.Error(), 1)
}

func formatError(code, message, details string) string {
	msg := message
	if code != "" {
		msg = fmt.Sprintf("[%s] %s", code, message)
	}
	if details != "" {
		msg += ": " + details
	}
	return msg
}

// readInput reads path, or the app's reader when path is empty or "-"
func readInput(c *cli.Context, path string) (string, error) {
	var r io.Reader = c.App.Reader
	if path != "" && path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return "", err
		}
		defer f.Close()
		r = f
	}

	data, err := io.ReadAll(io.LimitReader(r, transcript.MaxUploadBytes+1))
	if err != nil {
		return "", err
	}
	if int64(len(data)) > transcript.MaxUploadBytes {
		return "", errors.NewPayloadTooLarge(transcript.MaxUploadBytes)
	}
	return string(data), nil
}

// contentTypeOf guesses the declared type of an uploaded file from its extension
func contentTypeOf(path string) string {
	ext := strings.ToLower(filepath.Ext(path))
	if ext == ".txt" {
		return "text/plain"
	}
	if t := mime.TypeByExtension(ext); t != "" {
		return t
	}
	return "application/octet-stream"
}
