// File: internal/notify/feed.go
package notify

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// Channel identifies which display channel an entry was rendered to.
type Channel string

const (
	ChannelToast Channel = "toast"
	ChannelModal Channel = "modal"
)

// DefaultFeedCapacity bounds how many entries the feed retains.
const DefaultFeedCapacity = 50

// Entry is one rendered notification retained for the UI to fetch.
type Entry struct {
	ID        uuid.UUID `json:"id"`
	Channel   Channel   `json:"channel"`
	Message   Message   `json:"message"`
	CreatedAt time.Time `json:"created_at"`
}

// Feed is a bounded in-memory record of dispatched notifications. It
// implements both ToastSink and ModalSink so the web layer can expose the
// rendered channels to the browser.
type Feed struct {
	mu       sync.Mutex
	capacity int
	entries  []Entry
}

// NewFeed creates a Feed with the default capacity.
func NewFeed() *Feed {
	return &Feed{capacity: DefaultFeedCapacity}
}

func (f *Feed) Toast(msg Message) {
	f.record(ChannelToast, msg)
}

func (f *Feed) Modal(msg Message) {
	f.record(ChannelModal, msg)
}

func (f *Feed) record(channel Channel, msg Message) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.entries = append(f.entries, Entry{
		ID:        uuid.New(),
		Channel:   channel,
		Message:   msg,
		CreatedAt: time.Now().UTC(),
	})
	if len(f.entries) > f.capacity {
		f.entries = f.entries[len(f.entries)-f.capacity:]
	}
}

// Recent returns up to limit entries, newest first. A non-positive limit
// returns everything retained.
func (f *Feed) Recent(limit int) []Entry {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := len(f.entries)
	if limit > 0 && limit < n {
		n = limit
	}
	out := make([]Entry, 0, n)
	for i := len(f.entries) - 1; i >= 0 && len(out) < n; i-- {
		out = append(out, f.entries[i])
	}
	return out
}

// LastModal returns the most recent modal entry, if any. The UI re-renders
// the active modal from this.
func (f *Feed) LastModal() (Entry, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := len(f.entries) - 1; i >= 0; i-- {
		if f.entries[i].Channel == ChannelModal {
			return f.entries[i], true
		}
	}
	return Entry{}, false
}
