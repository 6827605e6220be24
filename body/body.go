// Package body extracts textual content and the attachment inventory
// from a raw message. It walks the MIME part tree leaf by leaf,
// preferring plain text over HTML, and never lets malformed input
// escape as an error: every failure degrades to a warning plus a safe
// empty value.
package body

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/emersion/go-message"
	_ "github.com/emersion/go-message/charset"
	gomail "github.com/emersion/go-message/mail"
	"golang.org/x/net/html"

	"github.com/recovermail/recovermail/model"
)

// Caps how much of a single part is read into memory. Archives in the
// wild embed multi-hundred-MB attachments.
const maxPartBytes = 8 << 20

const (
	// TruncationMarker is appended verbatim when a body is cut at
	// Options.MaxChars.
	TruncationMarker = "\n[... content truncated ...]"

	fallbackFilename    = "unnamed"
	fallbackContentType = "application/octet-stream"
)

// Options control text selection and truncation.
type Options struct {
	PreferPlainText bool
	MaxChars        int // 0 = unlimited
}

// Result carries everything one walk of the part tree produced.
type Result struct {
	Text        string
	Attachments []model.AttachmentInfo
	Warnings    []string
}

// Extract walks the MIME structure of a full raw message (headers
// included) and returns the selected body text plus the attachment
// inventory. Non-multipart messages yield a single inline part and an
// empty attachment list.
func Extract(raw []byte, opts Options) (res Result) {
	defer func() {
		if r := recover(); r != nil {
			res = Result{Warnings: append(res.Warnings, fmt.Sprintf("body extraction aborted: %v", r))}
		}
	}()

	mr, err := gomail.CreateReader(bytes.NewReader(raw))
	if err != nil && !message.IsUnknownCharset(err) {
		res.Warnings = append(res.Warnings, "parse mime structure: "+err.Error())
		return res
	}
	if err != nil {
		res.Warnings = append(res.Warnings, "unknown charset: "+err.Error())
	}
	if mr == nil {
		return res
	}

	var plainParts, htmlParts []string

	for {
		p, err := mr.NextPart()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil && !message.IsUnknownCharset(err) {
			res.Warnings = append(res.Warnings, "mime walk: "+err.Error())
			break
		}
		if err != nil {
			res.Warnings = append(res.Warnings, "unknown charset: "+err.Error())
		}
		if p == nil {
			continue
		}

		switch h := p.Header.(type) {
		case *gomail.InlineHeader:
			contentType, _, ctErr := h.ContentType()
			if ctErr != nil {
				contentType = "text/plain"
			}
			contentType = strings.ToLower(contentType)

			isPlain := strings.HasPrefix(contentType, "text/plain")
			isHTML := strings.HasPrefix(contentType, "text/html")
			if !isPlain && !isHTML {
				continue
			}

			data, readErr := io.ReadAll(io.LimitReader(p.Body, maxPartBytes))
			if readErr != nil {
				res.Warnings = append(res.Warnings, "decode text part: "+readErr.Error())
				continue
			}
			text := strings.ToValidUTF8(string(data), "�")
			if isPlain {
				plainParts = append(plainParts, text)
			} else {
				htmlParts = append(htmlParts, text)
			}

		case *gomail.AttachmentHeader:
			res.Attachments = append(res.Attachments, attachmentInfo(h, p.Body))
		}
	}

	res.Text = finalize(selectText(plainParts, htmlParts, opts.PreferPlainText), opts.MaxChars)
	return res
}

// selectText applies the body-source policy: preferred non-blank
// plain text first, then converted HTML, then whatever is left.
func selectText(plainParts, htmlParts []string, preferPlain bool) string {
	plain := strings.Join(plainParts, "\n\n")
	htmlJoined := strings.Join(htmlParts, "\n\n")

	switch {
	case preferPlain && strings.TrimSpace(plain) != "":
		return plain
	case strings.TrimSpace(htmlJoined) != "":
		return HTMLToText(htmlJoined)
	default:
		return plain
	}
}

// finalize normalizes line endings, trims outer whitespace and
// applies the truncation limit.
func finalize(text string, maxChars int) string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")
	text = strings.TrimSpace(text)

	if maxChars > 0 {
		if runes := []rune(text); len(runes) > maxChars {
			return string(runes[:maxChars]) + TruncationMarker
		}
	}
	return text
}

func attachmentInfo(h *gomail.AttachmentHeader, payload io.Reader) model.AttachmentInfo {
	filename, err := h.Filename()
	if err != nil || strings.TrimSpace(filename) == "" {
		filename = fallbackFilename
	}

	contentType, _, err := h.ContentType()
	if err != nil || contentType == "" {
		contentType = fallbackContentType
	}

	size, err := io.Copy(io.Discard, payload)
	if err != nil {
		size = 0
	}

	return model.AttachmentInfo{
		Filename:    filename,
		ContentType: strings.ToLower(contentType),
		SizeBytes:   size,
	}
}

// HTMLToText strips tags and unescapes entities, collapsing all
// whitespace runs to single spaces. Script and style contents are
// dropped.
func HTMLToText(htmlBody string) string {
	z := html.NewTokenizer(strings.NewReader(htmlBody))
	var b strings.Builder
	skipDepth := 0

	for {
		switch z.Next() {
		case html.ErrorToken:
			return strings.Join(strings.Fields(b.String()), " ")
		case html.StartTagToken:
			name, _ := z.TagName()
			if tag := string(name); tag == "script" || tag == "style" {
				skipDepth++
			}
		case html.EndTagToken:
			name, _ := z.TagName()
			if tag := string(name); (tag == "script" || tag == "style") && skipDepth > 0 {
				skipDepth--
			}
		case html.TextToken:
			if skipDepth > 0 {
				continue
			}
			if t := strings.TrimSpace(string(z.Text())); t != "" {
				if b.Len() > 0 {
					b.WriteByte(' ')
				}
				b.WriteString(t)
			}
		}
	}
}
