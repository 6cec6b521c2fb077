// Package history keeps the most recent analysis results of a session.
package history

import (
	"github.com/google/uuid"
	"github.com/myrjola/veritruth/internal/models"
	"sync"
	"time"
)

const (
	// DefaultCapacity is the number of items a session keeps.
	DefaultCapacity = 10
	// VisualPlaceholder describes an input that included an image.
	VisualPlaceholder = "[Visual Analysis]"
	// maxDescriptorRunes is the length at which text input descriptors are truncated.
	maxDescriptorRunes = 100
)

// Ledger is a bounded list of history items ordered newest first. It is safe for concurrent use.
type Ledger struct {
	mu       sync.Mutex
	items    []models.HistoryItem
	capacity int

	now   func() time.Time
	newID func() string
}

// New creates an empty Ledger keeping at most capacity items. A capacity below one uses DefaultCapacity.
func New(capacity int) *Ledger {
	if capacity < 1 {
		capacity = DefaultCapacity
	}
	return &Ledger{
		mu:       sync.Mutex{},
		items:    make([]models.HistoryItem, 0, capacity),
		capacity: capacity,
		now:      time.Now,
		newID:    newUUID,
	}
}

func newUUID() string {
	id, err := uuid.NewV7()
	if err != nil {
		// NewV7 only fails when the random source fails.
		return uuid.NewString()
	}
	return id.String()
}

// Record prepends result to the ledger and drops the oldest items past capacity. descriptor is usually created
// with Describe.
func (l *Ledger) Record(result models.AnalysisResult, descriptor string) models.HistoryItem {
	l.mu.Lock()
	defer l.mu.Unlock()
	item := models.HistoryItem{
		AnalysisResult: result,
		ID:             l.newID(),
		Timestamp:      l.now(),
		InputText:      descriptor,
	}
	items := make([]models.HistoryItem, 0, l.capacity)
	items = append(items, item)
	items = append(items, l.items...)
	if len(items) > l.capacity {
		items = items[:l.capacity]
	}
	l.items = items
	return item
}

// Items returns a copy of the recorded items, newest first.
func (l *Ledger) Items() []models.HistoryItem {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]models.HistoryItem(nil), l.items...)
}

// Len returns the number of recorded items.
func (l *Ledger) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.items)
}

// Describe returns the history descriptor for an input. Inputs with an image are described by
// VisualPlaceholder. Text inputs are truncated to 100 characters followed by "...".
func Describe(text string, hasImage bool) string {
	if hasImage {
		return VisualPlaceholder
	}
	runes := []rune(text)
	if len(runes) <= maxDescriptorRunes {
		return text
	}
	return string(runes[:maxDescriptorRunes]) + "..."
}
