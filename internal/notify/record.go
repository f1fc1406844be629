package notify

import (
	"time"

	"github.com/Iron-Ham/hestia/internal/registry"
	"github.com/Iron-Ham/hestia/internal/util"
)

// MaxTextLen is the fixed maximum length of a record's text, in runes.
// Longer text is clipped at construction so an oversized line can never
// enter the queue.
const MaxTextLen = 40

// Record is one short log line produced by a task.
type Record struct {
	Source registry.TaskID
	Text   string
	At     time.Time
}

// NewRecord builds a Record for source, clipping text to MaxTextLen.
func NewRecord(source registry.TaskID, text string) Record {
	return Record{
		Source: source,
		Text:   util.Clip(text, MaxTextLen),
		At:     time.Now(),
	}
}
