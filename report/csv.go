package report

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/recovermail/recovermail/model"
)

// WriteCSV exports one report_<category>.csv per top-list category,
// listing the ranked values of every archive.
func WriteCSV(artifacts []model.Artifact, dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create csv directory: %w", err)
	}

	categories := []struct {
		name   string
		values func(a model.Artifact) []string
	}{
		{"top_senders", func(a model.Artifact) []string { return a.TopSenders }},
		{"top_recipients", func(a model.Artifact) []string { return a.TopRecipients }},
		{"top_subjects", func(a model.Artifact) []string { return a.TopSubjects }},
		{"top_sender_domains", func(a model.Artifact) []string { return a.TopSenderDomains }},
	}

	for _, category := range categories {
		path := filepath.Join(dir, "report_"+category.name+".csv")
		if err := writeCategoryCSV(path, artifacts, category.values); err != nil {
			return err
		}
	}
	return nil
}

func writeCategoryCSV(path string, artifacts []model.Artifact, values func(a model.Artifact) []string) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	if err := writer.Write([]string{"File", "Rank", "Value"}); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}

	for _, artifact := range artifacts {
		for rank, value := range values(artifact) {
			record := []string{artifact.FilePath, strconv.Itoa(rank + 1), value}
			if err := writer.Write(record); err != nil {
				return fmt.Errorf("write %s: %w", path, err)
			}
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("flush %s: %w", path, err)
	}
	return nil
}
