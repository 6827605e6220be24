package model

// Sentinel values substituted when real data is absent, so every
// exported field is always populated.
const (
	SentinelUnknown   = "Unknown"
	SentinelNoSubject = "No subject"
	SentinelNA        = "N/A"
)

// AttachmentInfo describes one attachment part by metadata only.
// The payload itself is never extracted.
type AttachmentInfo struct {
	Filename    string `json:"filename"`
	ContentType string `json:"content_type"`
	SizeBytes   int64  `json:"size_bytes"`
}

// MessageRecord is the reconstructed view of one archive entry.
// ID is the 1-based arrival position within the archive and is never
// reused or reordered after assignment. A record is built once and
// treated as a value afterward.
type MessageRecord struct {
	ID          int              `json:"id"`
	From        string           `json:"from"`
	To          string           `json:"to"`
	Cc          string           `json:"cc"`
	Bcc         string           `json:"bcc"`
	Subject     string           `json:"subject"`
	DateDisplay string           `json:"date"`
	DateUTCISO  string           `json:"date_utc_iso"`
	RawDate     string           `json:"raw_date"`
	MessageID   string           `json:"message_id"`
	Body        string           `json:"body"`
	BodyHash    string           `json:"body_hash"`
	Attachments []AttachmentInfo `json:"attachments"`
	Warnings    []string         `json:"warnings,omitempty"`
}

// Artifact is the fully-aggregated analysis result for one archive.
// Exporters render it read-only and never re-derive a statistic.
type Artifact struct {
	FilePath         string          `json:"file_path"`
	MessageCount     int             `json:"message_count"`
	FirstDateUTCISO  string          `json:"first_date_utc_iso"`
	LastDateUTCISO   string          `json:"last_date_utc_iso"`
	TopSenders       []string        `json:"top_senders"`
	TopRecipients    []string        `json:"top_recipients"`
	TopSubjects      []string        `json:"top_subjects"`
	TopSenderDomains []string        `json:"top_sender_domains"`
	AttachmentsTotal int             `json:"attachments_total"`
	DuplicatesByHash int             `json:"duplicates_by_hash"`
	Messages         []MessageRecord `json:"messages"`
	Warnings         []string        `json:"warnings,omitempty"`
}
