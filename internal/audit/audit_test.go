package audit

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tempLog(t *testing.T) *Log {
	t.Helper()
	return NewLog(filepath.Join(t.TempDir(), "audit.log"))
}

func TestAppendAndTail(t *testing.T) {
	log := tempLog(t)

	err := log.Append(Entry{
		Action:         ActionGrantSubscription,
		AdminID:        1,
		AdminEmail:     "admin@example.com",
		TargetUserID:   7,
		SubscriptionID: "sub_admin_grant",
	})
	require.NoError(t, err)

	err = log.Append(Entry{
		Action:       ActionChangeRole,
		AdminID:      1,
		AdminEmail:   "admin@example.com",
		TargetUserID: 8,
		Detail:       "member -> trainer",
	})
	require.NoError(t, err)

	entries, err := log.Tail(10)
	require.NoError(t, err)
	require.Len(t, entries, 2)

	// Most recent first.
	assert.Equal(t, ActionChangeRole, entries[0].Action)
	assert.Equal(t, ActionGrantSubscription, entries[1].Action)
	assert.Equal(t, 7, entries[1].TargetUserID)
	assert.Equal(t, "sub_admin_grant", entries[1].SubscriptionID)
	assert.False(t, entries[0].Timestamp.IsZero())
}

func TestTailCap(t *testing.T) {
	log := tempLog(t)

	for i := 0; i < 10; i++ {
		require.NoError(t, log.Append(Entry{
			Action:       ActionRevokeSubscription,
			AdminID:      1,
			TargetUserID: i,
		}))
	}

	entries, err := log.Tail(3)
	require.NoError(t, err)
	require.Len(t, entries, 3)

	// The last three appended, newest first.
	assert.Equal(t, 9, entries[0].TargetUserID)
	assert.Equal(t, 8, entries[1].TargetUserID)
	assert.Equal(t, 7, entries[2].TargetUserID)
}

func TestTailMissingFile(t *testing.T) {
	log := NewLog(filepath.Join(t.TempDir(), "does-not-exist.log"))

	entries, err := log.Tail(10)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestTailSkipsCorruptLines(t *testing.T) {
	path := filepath.Join(t.TempDir(), "audit.log")
	log := NewLog(path)

	require.NoError(t, log.Append(Entry{Action: ActionGrantSubscription, AdminID: 1, TargetUserID: 2}))

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_APPEND, 0o644)
	require.NoError(t, err)
	_, err = f.WriteString("this is not json\n")
	require.NoError(t, err)
	require.NoError(t, f.Close())

	require.NoError(t, log.Append(Entry{Action: ActionRevokeSubscription, AdminID: 1, TargetUserID: 2}))

	entries, err := log.Tail(10)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, ActionRevokeSubscription, entries[0].Action)
}

func TestAppendPreservesExplicitTimestamp(t *testing.T) {
	log := tempLog(t)

	ts := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	require.NoError(t, log.Append(Entry{Action: ActionChangeRole, AdminID: 1, TargetUserID: 2, Timestamp: ts}))

	entries, err := log.Tail(1)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.True(t, entries[0].Timestamp.Equal(ts), fmt.Sprintf("got %v", entries[0].Timestamp))
}
