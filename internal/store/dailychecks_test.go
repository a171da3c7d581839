package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"maintlog/internal/models"
)

func TestDailyCheckCreateGet(t *testing.T) {
	s := newTestStore(t)

	id, err := s.CreateDailyCheck(models.DailyCheck{
		CheckDate: "2025-03-10",
		ItemName:  "UPS units",
		Status:    "normal",
		Remark:    "all green",
		CheckedBy: "alex",
	})
	require.NoError(t, err)

	got, err := s.GetDailyCheck(id)
	require.NoError(t, err)
	assert.Equal(t, "2025-03-10", got.CheckDate)
	assert.Equal(t, "UPS units", got.ItemName)
	assert.Equal(t, "normal", got.Status)
	assert.Equal(t, "alex", got.CheckedBy)
	assert.NotEmpty(t, got.CreatedAt, "created_at is stamped at insert time")
}

func TestDailyCheckDuplicateRejected(t *testing.T) {
	s := newTestStore(t)

	check := models.DailyCheck{CheckDate: "2025-03-10", ItemName: "UPS units", Status: "normal"}
	_, err := s.CreateDailyCheck(check)
	require.NoError(t, err)

	_, err = s.CreateDailyCheck(check)
	assert.ErrorIs(t, err, ErrDuplicateCheck)

	// Same item on another date is fine.
	check.CheckDate = "2025-03-11"
	_, err = s.CreateDailyCheck(check)
	assert.NoError(t, err)

	// Another item on the original date is fine too.
	_, err = s.CreateDailyCheck(models.DailyCheck{CheckDate: "2025-03-10", ItemName: "Printers", Status: "normal"})
	assert.NoError(t, err)
}

func TestDailyCheckUpdateOntoExistingPairRejected(t *testing.T) {
	s := newTestStore(t)

	_, err := s.CreateDailyCheck(models.DailyCheck{CheckDate: "2025-03-10", ItemName: "UPS units", Status: "normal"})
	require.NoError(t, err)
	id, err := s.CreateDailyCheck(models.DailyCheck{CheckDate: "2025-03-10", ItemName: "Printers", Status: "normal"})
	require.NoError(t, err)

	err = s.UpdateDailyCheck(id, models.DailyCheck{CheckDate: "2025-03-10", ItemName: "UPS units", Status: "normal"})
	assert.ErrorIs(t, err, ErrDuplicateCheck)
}

func TestDailyCheckUpdate(t *testing.T) {
	s := newTestStore(t)

	id, err := s.CreateDailyCheck(models.DailyCheck{CheckDate: "2025-03-10", ItemName: "UPS units", Status: "normal"})
	require.NoError(t, err)

	err = s.UpdateDailyCheck(id, models.DailyCheck{
		CheckDate: "2025-03-10",
		ItemName:  "UPS units",
		Status:    "abnormal",
		Remark:    "battery alarm",
		CheckedBy: "alex",
	})
	require.NoError(t, err)

	got, err := s.GetDailyCheck(id)
	require.NoError(t, err)
	assert.Equal(t, "abnormal", got.Status)
	assert.Equal(t, "battery alarm", got.Remark)
}

func TestDailyCheckNotFound(t *testing.T) {
	s := newTestStore(t)

	_, err := s.GetDailyCheck(7)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, s.UpdateDailyCheck(7, models.DailyCheck{CheckDate: "2025-01-01", ItemName: "x"}), ErrNotFound)
	assert.ErrorIs(t, s.DeleteDailyCheck(7), ErrNotFound)
}

func TestDailyCheckListByDate(t *testing.T) {
	s := newTestStore(t)

	for _, c := range []models.DailyCheck{
		{CheckDate: "2025-03-10", ItemName: "UPS units", Status: "normal"},
		{CheckDate: "2025-03-10", ItemName: "Printers", Status: "abnormal"},
		{CheckDate: "2025-03-11", ItemName: "UPS units", Status: "normal"},
	} {
		_, err := s.CreateDailyCheck(c)
		require.NoError(t, err)
	}

	all, err := s.ListDailyChecks("")
	require.NoError(t, err)
	assert.Len(t, all, 3)
	// Newest first.
	assert.Equal(t, "2025-03-11", all[0].CheckDate)

	day, err := s.ListDailyChecks("2025-03-10")
	require.NoError(t, err)
	assert.Len(t, day, 2)

	empty, err := s.ListDailyChecks("2025-03-12")
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestDailyCheckStatusBreakdown(t *testing.T) {
	s := newTestStore(t)

	for _, c := range []models.DailyCheck{
		{CheckDate: "2025-03-10", ItemName: "UPS units", Status: "normal"},
		{CheckDate: "2025-03-10", ItemName: "Printers", Status: "normal"},
		{CheckDate: "2025-03-10", ItemName: "Lighting", Status: "abnormal"},
	} {
		_, err := s.CreateDailyCheck(c)
		require.NoError(t, err)
	}

	counts, err := s.DailyCheckStatusBreakdown()
	require.NoError(t, err)

	byStatus := map[string]int{}
	for _, sc := range counts {
		byStatus[sc.Status] = sc.Count
	}
	assert.Equal(t, 2, byStatus["normal"])
	assert.Equal(t, 1, byStatus["abnormal"])
}
