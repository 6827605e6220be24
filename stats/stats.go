// Package stats holds the aggregation primitives shared by the
// analyzer and the batch runner: frequency-ranked top-N lists with
// deterministic tie-breaking, sender-domain extraction and the batch
// outcome summary.
package stats

import (
	"net/mail"
	"sort"
	"strings"
	"sync"

	"github.com/recovermail/recovermail/model"
)

// TopCounter counts occurrences of exact string values. Ranking ties
// are broken by first-seen order so repeated runs over the same
// archive produce identical lists.
type TopCounter struct {
	counts    map[string]int
	firstSeen map[string]int
	next      int
}

func NewTopCounter() *TopCounter {
	return &TopCounter{
		counts:    make(map[string]int),
		firstSeen: make(map[string]int),
	}
}

// Add records one occurrence. Empty values are ignored.
func (c *TopCounter) Add(value string) {
	if value == "" {
		return
	}
	if _, seen := c.counts[value]; !seen {
		c.firstSeen[value] = c.next
		c.next++
	}
	c.counts[value]++
}

// Top returns the n most frequent values, count descending, first
// seen first on ties. n is clamped to at least 1. An empty counter
// yields the single "N/A" sentinel.
func (c *TopCounter) Top(n int) []string {
	if n < 1 {
		n = 1
	}
	if len(c.counts) == 0 {
		return []string{model.SentinelNA}
	}

	values := make([]string, 0, len(c.counts))
	for v := range c.counts {
		values = append(values, v)
	}
	sort.Slice(values, func(i, j int) bool {
		if c.counts[values[i]] != c.counts[values[j]] {
			return c.counts[values[i]] > c.counts[values[j]]
		}
		return c.firstSeen[values[i]] < c.firstSeen[values[j]]
	})

	if len(values) > n {
		values = values[:n]
	}
	return values
}

// SenderDomains extracts the lowercased domain of every mailbox in a
// From header value. A header may carry multiple addresses; malformed
// entries without "@" contribute nothing.
func SenderDomains(fromHeader string) []string {
	fromHeader = strings.TrimSpace(fromHeader)
	if fromHeader == "" {
		return nil
	}

	var candidates []string
	if addrs, err := mail.ParseAddressList(fromHeader); err == nil {
		for _, a := range addrs {
			candidates = append(candidates, a.Address)
		}
	} else {
		// Degraded header text: scan comma-separated pieces directly.
		for _, piece := range strings.Split(fromHeader, ",") {
			candidates = append(candidates, strings.Trim(strings.TrimSpace(piece), "<>"))
		}
	}

	var domains []string
	for _, addr := range candidates {
		at := strings.LastIndex(addr, "@")
		if at < 0 || at+1 >= len(addr) {
			continue
		}
		domain := strings.ToLower(strings.Trim(addr[at+1:], "> \t"))
		if domain != "" {
			domains = append(domains, domain)
		}
	}
	return domains
}

// EventType classifies the terminal outcome of one file in a batch.
type EventType string

const (
	EventTypeAnalyzed EventType = "analyzed"
	EventTypeSkipped  EventType = "skipped"
	EventTypeFailed   EventType = "failed"
	EventTypeEmpty    EventType = "empty"
)

// Event describes one file outcome emitted by the batch runner.
type Event struct {
	Type     EventType
	Path     string
	Messages int
	Err      error
}

// Sink receives batch events. Implementations must be safe for
// sequential delivery from a single goroutine.
type Sink interface {
	Handle(evt Event)
}

// Summary aggregates batch outcomes across all files.
type Summary struct {
	Analyzed  int
	Skipped   int
	Failed    int
	Empty     int
	Messages  int
	LastError error
}

func (s Summary) LogAttrs() []any {
	attrs := []any{
		"analyzed", s.Analyzed,
		"skipped", s.Skipped,
		"failed", s.Failed,
		"empty", s.Empty,
		"messages", s.Messages,
	}
	if s.LastError != nil {
		attrs = append(attrs, "lastError", s.LastError.Error())
	}
	return attrs
}

// Collector is a Sink accumulating a Summary.
type Collector struct {
	mu      sync.Mutex
	summary Summary
}

func NewCollector() *Collector {
	return &Collector{}
}

func (c *Collector) Handle(evt Event) {
	c.mu.Lock()
	defer c.mu.Unlock()
	switch evt.Type {
	case EventTypeAnalyzed:
		c.summary.Analyzed++
		c.summary.Messages += evt.Messages
	case EventTypeSkipped:
		c.summary.Skipped++
	case EventTypeFailed:
		c.summary.Failed++
		if evt.Err != nil {
			c.summary.LastError = evt.Err
		}
	case EventTypeEmpty:
		c.summary.Empty++
	}
}

func (c *Collector) Snapshot() Summary {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.summary
}
