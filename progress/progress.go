package progress

import (
	"sync"
	"time"

	"github.com/pterm/pterm"

	"github.com/recovermail/recovermail/stats"
)

// Bar tracks batch progress, one step per file outcome. It implements
// stats.Sink.
type Bar struct {
	pb      *pterm.ProgressbarPrinter
	total   int
	mu      sync.Mutex
	enabled bool
}

// New creates a progress bar over total files if logLevel is "info".
func New(total int, logLevel string) *Bar {
	bar := &Bar{
		total:   total,
		enabled: logLevel == "info",
	}

	if bar.enabled {
		pb, _ := pterm.DefaultProgressbar.
			WithTotal(total).
			WithTitle("Analyzing archives").
			Start()
		bar.pb = pb
	}

	return bar
}

// Handle advances the bar by one file and surfaces failures above it.
func (b *Bar) Handle(evt stats.Event) {
	if !b.enabled || b.pb == nil {
		return
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	switch evt.Type {
	case stats.EventTypeFailed:
		if evt.Err != nil {
			pterm.Error.Printf("%s: %v\n", evt.Path, evt.Err)
		}
	case stats.EventTypeSkipped:
		pterm.Warning.Printf("Skipped (not an MBOX): %s\n", evt.Path)
	case stats.EventTypeEmpty:
		pterm.Warning.Printf("No messages found: %s\n", evt.Path)
	}

	b.pb.UpdateTitle("Analyzing: " + truncatePath(evt.Path))
	b.pb.Increment()
}

// Stop finalizes the bar.
func (b *Bar) Stop() {
	if !b.enabled || b.pb == nil {
		return
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	if b.pb.Current < b.total {
		b.pb.Current = b.total
	}
	b.pb.Stop()
}

// PrintSummary renders the final batch summary block.
func PrintSummary(summary stats.Summary, duration time.Duration) {
	pterm.Println()
	pterm.DefaultSection.Println("Batch Summary")
	pterm.Info.Printf("Duration: %v\n", duration.Round(time.Millisecond))
	pterm.Info.Printf("Archives analyzed: %d\n", summary.Analyzed)
	pterm.Info.Printf("Files skipped (not MBOX): %d\n", summary.Skipped)
	pterm.Info.Printf("Archives failed to parse: %d\n", summary.Failed)
	pterm.Info.Printf("Archives without messages: %d\n", summary.Empty)
	pterm.Info.Printf("Messages processed: %d\n", summary.Messages)
	if summary.LastError != nil {
		pterm.Error.Printf("Last error: %v\n", summary.LastError)
	}
}

func truncatePath(path string) string {
	if len(path) <= 40 {
		return path
	}
	return "..." + path[len(path)-37:]
}
