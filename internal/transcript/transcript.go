// Package transcript turns uploaded files and pasted text into transcripts
package transcript

import (
	stderrors "errors"
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"strings"

	"github.com/ethanbaker/minutes/internal/errors"
)

// MaxUploadBytes is the size ceiling for an uploaded transcript file
const MaxUploadBytes int64 = 10 << 20

const (
	plainText = "text/plain"
	pdf       = "application/pdf"
)

// Origin records how a transcript reached the service
type Origin string

const (
	OriginPasted   Origin = "pasted"
	OriginUploaded Origin = "uploaded"
)

// Transcript is raw meeting text plus where it came from
type Transcript struct {
	Text     string
	Origin   Origin
	Filename string
}

// Pasted wraps text typed or pasted directly by the caller
func Pasted(text string) Transcript {
	return Transcript{Text: text, Origin: OriginPasted}
}

// Ingest validates an uploaded file and returns its text unmodified
func Ingest(file *multipart.FileHeader) (Transcript, error) {
	if file == nil {
		return Transcript{}, errors.NewNoFile()
	}

	mediaType := declaredType(file)
	if mediaType != plainText {
		hint := "Only .txt files are supported."
		if mediaType == pdf {
			hint = "PDF parsing not implemented yet. Please upload a .txt file."
		}
		return Transcript{}, errors.NewUnsupportedMediaType(mediaType, hint)
	}

	if file.Size > MaxUploadBytes {
		return Transcript{}, errors.NewPayloadTooLarge(MaxUploadBytes)
	}

	f, err := file.Open()
	if err != nil {
		return Transcript{}, errors.NewInternal("Failed to upload file", fmt.Errorf("open upload: %w", err))
	}
	defer f.Close()

	// Read one byte past the ceiling so a lying Size header is still caught
	data, err := io.ReadAll(io.LimitReader(f, MaxUploadBytes+1))
	if err != nil {
		return Transcript{}, errors.NewInternal("Failed to upload file", fmt.Errorf("read upload: %w", err))
	}
	if int64(len(data)) > MaxUploadBytes {
		return Transcript{}, errors.NewPayloadTooLarge(MaxUploadBytes)
	}

	return Transcript{
		Text:     strings.ToValidUTF8(string(data), "�"),
		Origin:   OriginUploaded,
		Filename: file.Filename,
	}, nil
}

// declaredType returns the lower-cased media type of the part, without
// parameters. A missing or unparsable Content-Type means text/plain (RFC 7578 4.4)
func declaredType(file *multipart.FileHeader) string {
	raw := file.Header.Get("Content-Type")
	if strings.TrimSpace(raw) == "" {
		return plainText
	}

	// A bad parameter still yields the media type itself
	mediaType, _, err := mime.ParseMediaType(raw)
	if err != nil && !stderrors.Is(err, mime.ErrInvalidMediaParameter) {
		return plainText
	}
	return mediaType
}
