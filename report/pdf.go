package report

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/go-pdf/fpdf"

	"github.com/recovermail/recovermail/model"
)

// WritePDF exports the printable report: a title page with the batch
// summary table, then one message table per archive.
func WritePDF(artifacts []model.Artifact, path string) error {
	pdf := fpdf.New("P", "mm", "Letter", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetAutoPageBreak(true, 15)

	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 18)
	pdf.CellFormat(0, 12, "RecoverMail Report", "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(0, 8, "Generated "+time.Now().UTC().Format("2006-01-02 15:04:05 (UTC)"), "", 1, "C", false, 0, "")
	pdf.Ln(6)

	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(0, 8, "Analyzed archives", "", 1, "L", false, 0, "")

	summaryWidths := []float64{70, 20, 45, 45}
	summaryHeader := []string{"File", "Messages", "First date", "Last date"}
	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetFillColor(230, 230, 230)
	for i, h := range summaryHeader {
		pdf.CellFormat(summaryWidths[i], 7, h, "1", 0, "L", true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Helvetica", "", 9)
	for _, artifact := range artifacts {
		row := []string{
			clip(filepath.Base(artifact.FilePath), 40),
			fmt.Sprintf("%d", artifact.MessageCount),
			artifact.FirstDateUTCISO,
			artifact.LastDateUTCISO,
		}
		for i, cell := range row {
			pdf.CellFormat(summaryWidths[i], 6, tr(cell), "1", 0, "L", false, 0, "")
		}
		pdf.Ln(-1)
	}

	messageWidths := []float64{10, 45, 45, 50, 35}
	messageHeader := []string{"#", "From", "To", "Subject", "Date"}

	for _, artifact := range artifacts {
		pdf.AddPage()
		pdf.SetFont("Helvetica", "B", 12)
		pdf.CellFormat(0, 8, tr("Archive: "+filepath.Base(artifact.FilePath)), "", 1, "L", false, 0, "")

		pdf.SetFont("Helvetica", "B", 8)
		for i, h := range messageHeader {
			pdf.CellFormat(messageWidths[i], 6, h, "1", 0, "L", true, 0, "")
		}
		pdf.Ln(-1)

		pdf.SetFont("Helvetica", "", 7)
		for _, msg := range artifact.Messages {
			row := []string{
				fmt.Sprintf("%d", msg.ID),
				clip(msg.From, 40),
				clip(msg.To, 40),
				clip(msg.Subject, 50),
				msg.DateDisplay,
			}
			for i, cell := range row {
				pdf.CellFormat(messageWidths[i], 5, tr(cell), "1", 0, "L", false, 0, "")
			}
			pdf.Ln(-1)
		}
	}

	if err := pdf.OutputFileAndClose(path); err != nil {
		return fmt.Errorf("write pdf report: %w", err)
	}
	return nil
}
