package report

import (
	"path/filepath"
	"strconv"
	"strings"

	"github.com/pterm/pterm"

	"github.com/recovermail/recovermail/model"
)

// PrintConsole renders the per-archive summary table on the terminal.
func PrintConsole(artifacts []model.Artifact) {
	data := pterm.TableData{
		{"File", "Messages", "First date", "Last date", "Top subjects", "Top senders"},
	}
	for _, artifact := range artifacts {
		data = append(data, []string{
			filepath.Base(artifact.FilePath),
			strconv.Itoa(artifact.MessageCount),
			artifact.FirstDateUTCISO,
			artifact.LastDateUTCISO,
			clip(strings.Join(artifact.TopSubjects, "; "), 48),
			clip(strings.Join(artifact.TopSenders, "; "), 48),
		})
	}

	pterm.Println()
	_ = pterm.DefaultTable.WithHasHeader().WithBoxed().WithData(data).Render()
}
