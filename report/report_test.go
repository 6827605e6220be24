package report

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/recovermail/recovermail/model"
)

func sampleArtifacts() []model.Artifact {
	return []model.Artifact{
		{
			FilePath:         "/evidence/inbox.mbox",
			MessageCount:     1,
			FirstDateUTCISO:  "2024-01-01T08:00:00Z",
			LastDateUTCISO:   "2024-01-01T08:00:00Z",
			TopSenders:       []string{"Alice <a@x.com>"},
			TopRecipients:    []string{"b@y.com"},
			TopSubjects:      []string{"<script>alert(1)</script>"},
			TopSenderDomains: []string{"x.com"},
			AttachmentsTotal: 0,
			Messages: []model.MessageRecord{
				{
					ID:          1,
					From:        "Alice <a@x.com>",
					To:          "b@y.com",
					Subject:     "<script>alert(1)</script>",
					DateDisplay: "2024-01-01 08:00:00 (UTC)",
					DateUTCISO:  "2024-01-01T08:00:00Z",
					Body:        "hello & <goodbye>",
					Attachments: []model.AttachmentInfo{},
				},
			},
		},
	}
}

func TestWriteJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.json")
	if err := WriteJSON(sampleArtifacts(), path); err != nil {
		t.Fatalf("WriteJSON: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}

	var decoded []model.Artifact
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if len(decoded) != 1 || decoded[0].MessageCount != 1 {
		t.Errorf("unexpected roundtrip result: %+v", decoded)
	}
	if decoded[0].Messages[0].Body != "hello & <goodbye>" {
		t.Errorf("body not preserved: %q", decoded[0].Messages[0].Body)
	}
}

func TestWriteHTMLEscapes(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.html")
	if err := WriteHTML(sampleArtifacts(), path); err != nil {
		t.Fatalf("WriteHTML: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	content := string(data)

	if strings.Contains(content, "<script>alert(1)</script>") {
		t.Error("subject was not HTML-escaped")
	}
	if !strings.Contains(content, "&lt;script&gt;") {
		t.Error("expected escaped subject in output")
	}
	if !strings.Contains(content, "inbox.mbox") {
		t.Error("expected archive name in output")
	}
}

func TestWritePDF(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.pdf")
	if err := WritePDF(sampleArtifacts(), path); err != nil {
		t.Fatalf("WritePDF: %v", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatal(err)
	}
	if info.Size() == 0 {
		t.Error("pdf report is empty")
	}
}

func TestWriteCSV(t *testing.T) {
	dir := t.TempDir()
	if err := WriteCSV(sampleArtifacts(), dir); err != nil {
		t.Fatalf("WriteCSV: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(dir, "report_top_senders.csv"))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "Alice <a@x.com>") {
		t.Errorf("missing sender row in %q", string(data))
	}
}
