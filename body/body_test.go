package body

import (
	"testing"
)

const altMessage = "From: a@x.com\n" +
	"Content-Type: multipart/alternative; boundary=\"b1\"\n" +
	"\n" +
	"--b1\n" +
	"Content-Type: text/plain; charset=utf-8\n" +
	"\n" +
	"Plain body\n" +
	"--b1\n" +
	"Content-Type: text/html; charset=utf-8\n" +
	"\n" +
	"<p>HTML <b>body</b></p>\n" +
	"--b1--\n"

func TestExtractSimpleMessage(t *testing.T) {
	raw := "From: a@x.com\nSubject: hi\n\nHello\r\nWorld\r\n"

	res := Extract([]byte(raw), Options{PreferPlainText: true})
	if res.Text != "Hello\nWorld" {
		t.Errorf("Text = %q, want %q", res.Text, "Hello\nWorld")
	}
	if len(res.Attachments) != 0 {
		t.Errorf("expected no attachments, got %d", len(res.Attachments))
	}
}

func TestExtractPrefersPlainText(t *testing.T) {
	res := Extract([]byte(altMessage), Options{PreferPlainText: true})
	if res.Text != "Plain body" {
		t.Errorf("Text = %q, want %q", res.Text, "Plain body")
	}
}

func TestExtractHTMLFallback(t *testing.T) {
	res := Extract([]byte(altMessage), Options{PreferPlainText: false})
	if res.Text != "HTML body" {
		t.Errorf("Text = %q, want %q", res.Text, "HTML body")
	}
}

func TestExtractHTMLOnly(t *testing.T) {
	raw := "From: a@x.com\n" +
		"Content-Type: text/html; charset=utf-8\n" +
		"\n" +
		"<html><head><style>p {color: red}</style></head>" +
		"<body><p>Visible &amp; escaped</p></body></html>\n"

	res := Extract([]byte(raw), Options{PreferPlainText: true})
	if res.Text != "Visible & escaped" {
		t.Errorf("Text = %q, want %q", res.Text, "Visible & escaped")
	}
}

func TestExtractTruncation(t *testing.T) {
	raw := "From: a@x.com\n\nHello World\n"

	res := Extract([]byte(raw), Options{PreferPlainText: true, MaxChars: 5})
	want := "Hello" + TruncationMarker
	if res.Text != want {
		t.Errorf("Text = %q, want %q", res.Text, want)
	}
	if got := len([]rune(res.Text)); got != 5+len([]rune(TruncationMarker)) {
		t.Errorf("stored length = %d, want %d", got, 5+len([]rune(TruncationMarker)))
	}
}

func TestExtractAttachments(t *testing.T) {
	raw := "From: a@x.com\n" +
		"Content-Type: multipart/mixed; boundary=\"b2\"\n" +
		"\n" +
		"--b2\n" +
		"Content-Type: text/plain\n" +
		"\n" +
		"See attached.\n" +
		"--b2\n" +
		"Content-Type: application/pdf; name=\"doc.pdf\"\n" +
		"Content-Disposition: attachment; filename=\"doc.pdf\"\n" +
		"Content-Transfer-Encoding: base64\n" +
		"\n" +
		"aGVsbG8gd29ybGQ=\n" +
		"--b2\n" +
		"Content-Disposition: attachment\n" +
		"\n" +
		"nameless payload\n" +
		"--b2--\n"

	res := Extract([]byte(raw), Options{PreferPlainText: true})
	if res.Text != "See attached." {
		t.Errorf("Text = %q, want %q", res.Text, "See attached.")
	}
	if len(res.Attachments) != 2 {
		t.Fatalf("expected 2 attachments, got %d", len(res.Attachments))
	}

	first := res.Attachments[0]
	if first.Filename != "doc.pdf" {
		t.Errorf("Filename = %q, want %q", first.Filename, "doc.pdf")
	}
	if first.ContentType != "application/pdf" {
		t.Errorf("ContentType = %q, want %q", first.ContentType, "application/pdf")
	}
	if first.SizeBytes != 11 {
		t.Errorf("SizeBytes = %d, want 11", first.SizeBytes)
	}

	second := res.Attachments[1]
	if second.Filename != "unnamed" {
		t.Errorf("Filename = %q, want %q", second.Filename, "unnamed")
	}
}

func TestExtractMalformedYieldsWarning(t *testing.T) {
	raw := "From: a@x.com\n" +
		"Content-Type: multipart/mixed\n" + // boundary missing
		"\n" +
		"body\n"

	res := Extract([]byte(raw), Options{PreferPlainText: true})
	if res.Text != "" {
		t.Errorf("expected empty body, got %q", res.Text)
	}
	if len(res.Warnings) == 0 {
		t.Error("expected a warning for malformed mime structure")
	}
}

func TestHTMLToText(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "tags stripped",
			in:   "<div><p>one</p><p>two</p></div>",
			want: "one two",
		},
		{
			name: "entities unescaped",
			in:   "a &lt;tag&gt; &amp; more",
			want: "a <tag> & more",
		},
		{
			name: "script dropped",
			in:   "<script>var x = 1;</script>kept",
			want: "kept",
		},
		{
			name: "whitespace collapsed",
			in:   "a\n\n   b\t c",
			want: "a b c",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := HTMLToText(tt.in); got != tt.want {
				t.Errorf("HTMLToText(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}
