// Package analyzer builds one immutable MessageRecord per archive
// entry and aggregates them into an Artifact. It is pure: every
// operation is a function of the message bytes and the configuration,
// with no shared or global state, so archives can be analyzed in
// parallel.
package analyzer

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"net/mail"
	"sort"

	"github.com/recovermail/recovermail/body"
	"github.com/recovermail/recovermail/header"
	"github.com/recovermail/recovermail/maildate"
	"github.com/recovermail/recovermail/mbox"
	"github.com/recovermail/recovermail/model"
	"github.com/recovermail/recovermail/stats"
)

// Options are the only levers that change analysis output.
type Options struct {
	MaxBodyChars    int // 0 = unlimited
	TopN            int // clamped to >= 1
	IncludeBody     bool
	PreferPlainText bool
}

// Ordered candidate header names per logical field; the first
// non-empty value wins.
var (
	fromCandidates      = []string{"From"}
	toCandidates        = []string{"To"}
	ccCandidates        = []string{"Cc"}
	bccCandidates       = []string{"Bcc"}
	subjectCandidates   = []string{"Subject"}
	dateCandidates      = []string{"Date"}
	messageIDCandidates = []string{"Message-Id", "Message-ID"}
)

// Analyze reconstructs every message of one archive and returns its
// Artifact.
//
// A container that cannot be opened or parsed at all is the one
// fatal-per-file condition and returns an error. An openable archive
// that yields zero records returns (nil, nil): empty is not a
// failure. Everything else degrades to record- or archive-level
// warnings.
func Analyze(path string, opts Options) (*model.Artifact, error) {
	if opts.TopN < 1 {
		opts.TopN = 1
	}

	var (
		records  []model.MessageRecord
		warnings []string
	)

	err := mbox.ForEach(path, func(m mbox.Message) error {
		if m.Err != nil {
			warnings = append(warnings, m.Err.Error())
			return nil
		}
		rec, err := buildRecord(m.Index, m.Raw, opts)
		if err != nil {
			warnings = append(warnings, fmt.Sprintf("message %d dropped: %v", m.Index, err))
			return nil
		}
		records = append(records, rec)
		return nil
	})
	if err != nil {
		if len(records) == 0 {
			return nil, err
		}
		// Partial container: keep what was recovered.
		warnings = append(warnings, fmt.Sprintf("container truncated: %v", err))
	}

	if len(records) == 0 {
		return nil, nil
	}

	// Aggregate while records are still in arrival order so top-list
	// ties break on first appearance, then apply the display sort.
	artifact := aggregate(path, records, warnings, opts)
	sortRecords(artifact.Messages)
	return artifact, nil
}

// buildRecord composes one MessageRecord from raw message bytes.
// Recoverable field failures become warnings on the record; only a
// message whose headers cannot be parsed at all is rejected.
func buildRecord(idx int, raw []byte, opts Options) (rec model.MessageRecord, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("message pipeline panic: %v", r)
		}
	}()

	msg, err := mail.ReadMessage(bytes.NewReader(raw))
	if err != nil {
		return rec, fmt.Errorf("parse headers: %w", err)
	}
	h := msg.Header

	rec.ID = idx

	rec.From = header.NormalizeAddressList(header.First(h, fromCandidates...))
	if rec.From == "" {
		rec.From = model.SentinelUnknown
	}
	rec.To = header.NormalizeAddressList(header.First(h, toCandidates...))
	if rec.To == "" {
		rec.To = model.SentinelUnknown
	}
	rec.Cc = header.NormalizeAddressList(header.First(h, ccCandidates...))
	rec.Bcc = header.NormalizeAddressList(header.First(h, bccCandidates...))

	rec.Subject = header.CollapseWhitespace(header.Decode(header.First(h, subjectCandidates...)))
	if rec.Subject == "" {
		rec.Subject = model.SentinelNoSubject
	}

	rec.RawDate = header.First(h, dateCandidates...)
	rec.DateDisplay, rec.DateUTCISO = maildate.Normalize(rec.RawDate)

	rec.MessageID = header.CollapseWhitespace(header.First(h, messageIDCandidates...))

	res := body.Extract(raw, body.Options{
		PreferPlainText: opts.PreferPlainText,
		MaxChars:        opts.MaxBodyChars,
	})
	rec.Warnings = append(rec.Warnings, res.Warnings...)
	rec.Attachments = res.Attachments
	if rec.Attachments == nil {
		rec.Attachments = []model.AttachmentInfo{}
	}
	if opts.IncludeBody {
		rec.Body = res.Text
		if rec.Body != "" {
			sum := sha256.Sum256([]byte(rec.Body))
			rec.BodyHash = hex.EncodeToString(sum[:])
		}
	}

	return rec, nil
}

// sortRecords orders dated records first, ascending by their ISO UTC
// string (lexicographically time-ordered), then undated records by
// arrival id. Stable, so dated ties keep arrival order.
func sortRecords(records []model.MessageRecord) {
	sort.SliceStable(records, func(i, j int) bool {
		di, dj := records[i].DateUTCISO, records[j].DateUTCISO
		switch {
		case di != "" && dj != "":
			return di < dj
		case di != "":
			return true
		case dj != "":
			return false
		default:
			return records[i].ID < records[j].ID
		}
	})
}

func aggregate(path string, records []model.MessageRecord, warnings []string, opts Options) *model.Artifact {
	senders := stats.NewTopCounter()
	recipients := stats.NewTopCounter()
	subjects := stats.NewTopCounter()
	domains := stats.NewTopCounter()

	attachmentsTotal := 0
	duplicates := 0
	seenHashes := make(map[string]bool)
	firstDate, lastDate := "", ""

	for _, rec := range records {
		if rec.From != model.SentinelUnknown {
			senders.Add(rec.From)
			for _, domain := range stats.SenderDomains(rec.From) {
				domains.Add(domain)
			}
		}
		if rec.To != model.SentinelUnknown {
			recipients.Add(rec.To)
		}
		if rec.Subject != model.SentinelNoSubject {
			subjects.Add(rec.Subject)
		}

		attachmentsTotal += len(rec.Attachments)

		if opts.IncludeBody && rec.BodyHash != "" {
			if seenHashes[rec.BodyHash] {
				duplicates++
			}
			seenHashes[rec.BodyHash] = true
		}

		if iso := rec.DateUTCISO; iso != "" {
			if firstDate == "" || iso < firstDate {
				firstDate = iso
			}
			if lastDate == "" || iso > lastDate {
				lastDate = iso
			}
		}
	}

	if firstDate == "" {
		firstDate, lastDate = model.SentinelNA, model.SentinelNA
	}

	return &model.Artifact{
		FilePath:         path,
		MessageCount:     len(records),
		FirstDateUTCISO:  firstDate,
		LastDateUTCISO:   lastDate,
		TopSenders:       senders.Top(opts.TopN),
		TopRecipients:    recipients.Top(opts.TopN),
		TopSubjects:      subjects.Top(opts.TopN),
		TopSenderDomains: domains.Top(opts.TopN),
		AttachmentsTotal: attachmentsTotal,
		DuplicatesByHash: duplicates,
		Messages:         records,
		Warnings:         warnings,
	}
}
