// File: internal/notify/feed_test.go
package notify

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFeed_RecentNewestFirst(t *testing.T) {
	f := NewFeed()
	f.Toast(Message{Title: "first"})
	f.Toast(Message{Title: "second"})
	f.Modal(Message{Title: "third"})

	entries := f.Recent(2)
	require.Len(t, entries, 2)
	assert.Equal(t, "third", entries[0].Message.Title)
	assert.Equal(t, ChannelModal, entries[0].Channel)
	assert.Equal(t, "second", entries[1].Message.Title)

	all := f.Recent(0)
	assert.Len(t, all, 3)
}

func TestFeed_CapacityBound(t *testing.T) {
	f := NewFeed()
	for i := 0; i < DefaultFeedCapacity+10; i++ {
		f.Toast(Message{Title: fmt.Sprintf("msg-%d", i)})
	}

	all := f.Recent(0)
	require.Len(t, all, DefaultFeedCapacity)
	// The oldest ten were evicted.
	assert.Equal(t, fmt.Sprintf("msg-%d", DefaultFeedCapacity+9), all[0].Message.Title)
	assert.Equal(t, "msg-10", all[len(all)-1].Message.Title)
}

func TestFeed_LastModal(t *testing.T) {
	f := NewFeed()

	_, ok := f.LastModal()
	assert.False(t, ok)

	f.Modal(Message{Title: "older modal"})
	f.Toast(Message{Title: "a toast"})
	f.Modal(Message{Title: "newer modal"})
	f.Toast(Message{Title: "another toast"})

	entry, ok := f.LastModal()
	require.True(t, ok)
	assert.Equal(t, "newer modal", entry.Message.Title)
}
