package runner

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/recovermail/recovermail/analyzer"
	"github.com/recovermail/recovermail/stats"
)

const fixtureMbox = "From a Mon Jan  1 10:00:00 2024\n" +
	"From: a@x.com\n" +
	"Subject: one\n" +
	"\n" +
	"first\n" +
	"\n" +
	"From b Mon Jan  1 11:00:00 2024\n" +
	"From: b@y.com\n" +
	"Subject: two\n" +
	"\n" +
	"second\n" +
	"\n"

func TestRunBatchOutcomes(t *testing.T) {
	dir := t.TempDir()

	good := filepath.Join(dir, "good.mbox")
	if err := os.WriteFile(good, []byte(fixtureMbox), 0o644); err != nil {
		t.Fatal(err)
	}
	notMail := filepath.Join(dir, "notes.txt")
	if err := os.WriteFile(notMail, []byte("just text\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	empty := filepath.Join(dir, "empty.mbox")
	if err := os.WriteFile(empty, nil, 0o644); err != nil {
		t.Fatal(err)
	}

	opts := analyzer.Options{MaxBodyChars: 100, TopN: 3, IncludeBody: true, PreferPlainText: true}
	collector := stats.NewCollector()

	artifacts := New(opts, 2, nil, collector).Run([]string{good, notMail, empty})

	if len(artifacts) != 1 {
		t.Fatalf("expected 1 artifact, got %d", len(artifacts))
	}
	if artifacts[0].FilePath != good {
		t.Errorf("artifact path = %q, want %q", artifacts[0].FilePath, good)
	}
	if artifacts[0].MessageCount != 2 {
		t.Errorf("MessageCount = %d, want 2", artifacts[0].MessageCount)
	}

	summary := collector.Snapshot()
	if summary.Analyzed != 1 || summary.Skipped != 1 || summary.Empty != 1 || summary.Failed != 0 {
		t.Errorf("unexpected summary: %+v", summary)
	}
	if summary.Messages != 2 {
		t.Errorf("summary.Messages = %d, want 2", summary.Messages)
	}
}

func TestRunPreservesInputOrder(t *testing.T) {
	dir := t.TempDir()

	var paths []string
	for _, name := range []string{"one.mbox", "two.mbox", "three.mbox"} {
		path := filepath.Join(dir, name)
		if err := os.WriteFile(path, []byte(fixtureMbox), 0o644); err != nil {
			t.Fatal(err)
		}
		paths = append(paths, path)
	}

	opts := analyzer.Options{TopN: 1, IncludeBody: false}
	artifacts := New(opts, 3, nil).Run(paths)

	if len(artifacts) != 3 {
		t.Fatalf("expected 3 artifacts, got %d", len(artifacts))
	}
	for i, artifact := range artifacts {
		if artifact.FilePath != paths[i] {
			t.Errorf("artifact %d path = %q, want %q", i, artifact.FilePath, paths[i])
		}
	}
}
