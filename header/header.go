// Package header normalizes raw message header values: RFC 2047
// encoded-word decoding, canonical address-list rendering and
// whitespace cleanup. Every function degrades to a safe fallback
// instead of returning an error.
package header

import (
	"mime"
	"net/mail"
	"strings"

	"github.com/emersion/go-message/charset"
)

var wordDecoder = &mime.WordDecoder{CharsetReader: charset.Reader}

// Decode resolves MIME encoded-word segments into plain text. On any
// decode failure the trimmed raw input is returned unchanged.
func Decode(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}
	decoded, err := wordDecoder.DecodeHeader(raw)
	if err != nil {
		return raw
	}
	return decoded
}

// NormalizeAddressList renders a comma-separated address header in
// canonical display form: "Name <addr>" when both are present, the
// bare address or bare name otherwise, joined with ", ". Malformed
// input degrades to the whitespace-normalized decoded text.
func NormalizeAddressList(raw string) string {
	decoded := Decode(raw)
	if decoded == "" {
		return ""
	}

	addrs, err := mail.ParseAddressList(decoded)
	if err != nil || len(addrs) == 0 {
		return CollapseWhitespace(decoded)
	}

	rendered := make([]string, 0, len(addrs))
	for _, a := range addrs {
		name := CollapseWhitespace(a.Name)
		switch {
		case name != "" && a.Address != "":
			rendered = append(rendered, name+" <"+a.Address+">")
		case a.Address != "":
			rendered = append(rendered, a.Address)
		case name != "":
			rendered = append(rendered, name)
		}
	}
	if len(rendered) == 0 {
		return CollapseWhitespace(decoded)
	}
	return strings.Join(rendered, ", ")
}

// CollapseWhitespace trims the string and collapses runs of
// horizontal whitespace to a single space. Newlines inside the value
// are folded like any other whitespace; this is for header fields,
// never for bodies.
func CollapseWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// First returns the first non-empty value among the candidate header
// names, tried in order. Lookup is case-insensitive per net/mail
// canonicalization.
func First(h mail.Header, keys ...string) string {
	for _, key := range keys {
		if v := strings.TrimSpace(h.Get(key)); v != "" {
			return v
		}
	}
	return ""
}
