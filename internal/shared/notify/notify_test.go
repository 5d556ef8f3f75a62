package notify

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCenter_NotifyFansOutToSubscribers(t *testing.T) {
	c := NewCenter()

	var seen []Notice
	c.Subscribe(func(n Notice) { seen = append(seen, n) })

	c.Notify(LevelSuccess, "Auction created successfully!")
	c.Notify(LevelError, "Failed to place bid")

	require.Len(t, seen, 2)
	require.Equal(t, LevelSuccess, seen[0].Level)
	require.Equal(t, "Failed to place bid", seen[1].Message)

	pending := c.Pending()
	require.Len(t, pending, 2)
	require.False(t, pending[0].At.IsZero())
}

func TestCenter_DismissClearsPending(t *testing.T) {
	c := NewCenter()
	c.Notify(LevelInfo, "Connected")

	c.Dismiss()
	require.Empty(t, c.Pending())

	// dismissal does not unsubscribe renderers
	delivered := 0
	c.Subscribe(func(Notice) { delivered++ })
	c.Notify(LevelInfo, "Reconnected")
	require.Equal(t, 1, delivered)
}
