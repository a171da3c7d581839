package audit

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"maintlog/internal/testutil"
)

func TestLogAndRecent(t *testing.T) {
	conn := testutil.SetupTestDB(t)

	Log(conn, nil, ActionCreate, "worklog", "1", "Created work log for 2025-03-10")
	Log(conn, nil, ActionDelete, "worklog", "1", "Deleted work log")

	entries, err := Recent(conn, 10)
	require.NoError(t, err)
	require.Len(t, entries, 2)

	// Newest first.
	assert.Equal(t, ActionDelete, entries[0].Action)
	assert.Equal(t, ActionCreate, entries[1].Action)
	assert.Equal(t, "system", entries[0].Username)
	assert.Equal(t, "worklog", entries[0].Module)
	assert.NotEmpty(t, entries[0].CreatedAt)
}

func TestRecentHonorsLimit(t *testing.T) {
	conn := testutil.SetupTestDB(t)

	for i := 0; i < 5; i++ {
		Log(conn, nil, ActionUpdate, "inventory", "9", "Updated toner")
	}

	entries, err := Recent(conn, 3)
	require.NoError(t, err)
	assert.Len(t, entries, 3)
}

func TestRecentDefaultLimit(t *testing.T) {
	conn := testutil.SetupTestDB(t)

	Log(conn, nil, ActionSeed, "dailycheck", "", "Seeded 10 daily checks (0 skipped)")

	entries, err := Recent(conn, 0)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}
