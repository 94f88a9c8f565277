package services

import (
	"math/rand"
	"testing"
	"time"

	"yoga-flashcards-api/models"
	"yoga-flashcards-api/repositories"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fakeClock struct {
	current time.Time
}

func (f *fakeClock) Now() time.Time {
	return f.current
}

func (f *fakeClock) Advance(d time.Duration) {
	f.current = f.current.Add(d)
}

func newDailyFixture(t *testing.T, db *gorm.DB) (DailyCardService, *fakeClock, FlashcardService) {
	t.Helper()

	clock := &fakeClock{current: time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)}
	rng := rand.New(rand.NewSource(42))

	svc := NewDailyCardServiceWithClock(
		repositories.NewDailyCardRepository(db),
		repositories.NewFlashcardRepository(db),
		clock.Now,
		rng,
	)
	return svc, clock, newFlashcardService(db)
}

func seedCardTitles(t *testing.T, cards FlashcardService, userID uint, titles ...string) {
	t.Helper()
	for _, title := range titles {
		_, err := cards.CreateFlashcard(models.CreateFlashcardRequest{
			Title:      title,
			Definition: title + " definition",
		}, userID)
		require.NoError(t, err)
	}
}

func TestGetDailyCardIdempotentWithinDay(t *testing.T) {
	db := setupTestDB(t)
	user := createTestUser(t, db, "curator@example.com", models.RoleCurator)
	svc, clock, cards := newDailyFixture(t, db)
	seedCardTitles(t, cards, user.ID, "Yama", "Niyama", "Asana")

	first, err := svc.GetDailyCard()
	require.NoError(t, err)
	require.NotNil(t, first)

	clock.Advance(6 * time.Hour)

	second, err := svc.GetDailyCard()
	require.NoError(t, err)
	require.NotNil(t, second)
	assert.Equal(t, first.ID, second.ID)

	var dailyCount, logCount int64
	require.NoError(t, db.Model(&models.DailyCard{}).Count(&dailyCount).Error)
	require.NoError(t, db.Model(&models.CardUsageLog{}).Count(&logCount).Error)
	assert.EqualValues(t, 1, dailyCount)
	assert.EqualValues(t, 1, logCount)
}

func TestRotationCoversAllCardsBeforeRepeating(t *testing.T) {
	db := setupTestDB(t)
	user := createTestUser(t, db, "curator@example.com", models.RoleCurator)
	svc, clock, cards := newDailyFixture(t, db)
	seedCardTitles(t, cards, user.ID, "Yama", "Niyama", "Asana")

	seen := map[uint]bool{}
	for day := 0; day < 3; day++ {
		card, err := svc.GetDailyCard()
		require.NoError(t, err)
		require.NotNil(t, card)
		assert.False(t, seen[card.ID], "card %q repeated within a cycle", card.Title)
		seen[card.ID] = true
		clock.Advance(24 * time.Hour)
	}
	assert.Len(t, seen, 3)

	// cycle exhausted, day four starts cycle two
	card, err := svc.GetDailyCard()
	require.NoError(t, err)
	require.NotNil(t, card)
	assert.True(t, seen[card.ID])

	var entries []models.CardUsageLog
	require.NoError(t, db.Order("used_date asc").Find(&entries).Error)
	require.Len(t, entries, 4)
	for _, e := range entries[:3] {
		assert.Equal(t, 1, e.CycleNumber)
	}
	assert.Equal(t, 2, entries[3].CycleNumber)
}

func TestSecondCycleAlsoAvoidsRepeats(t *testing.T) {
	db := setupTestDB(t)
	user := createTestUser(t, db, "curator@example.com", models.RoleCurator)
	svc, clock, cards := newDailyFixture(t, db)
	seedCardTitles(t, cards, user.ID, "Yama", "Niyama")

	pickDay := func() uint {
		card, err := svc.GetDailyCard()
		require.NoError(t, err)
		require.NotNil(t, card)
		clock.Advance(24 * time.Hour)
		return card.ID
	}

	cycle1 := map[uint]bool{pickDay(): true, pickDay(): true}
	require.Len(t, cycle1, 2)

	cycle2 := map[uint]bool{pickDay(): true, pickDay(): true}
	assert.Len(t, cycle2, 2)
}

func TestGetDailyCardWithNoActiveCards(t *testing.T) {
	db := setupTestDB(t)
	svc, _, _ := newDailyFixture(t, db)

	card, err := svc.GetDailyCard()
	require.NoError(t, err)
	assert.Nil(t, card)

	var dailyCount, logCount int64
	require.NoError(t, db.Model(&models.DailyCard{}).Count(&dailyCount).Error)
	require.NoError(t, db.Model(&models.CardUsageLog{}).Count(&logCount).Error)
	assert.Zero(t, dailyCount)
	assert.Zero(t, logCount)
}

func TestDeactivatedCardsLeaveRotation(t *testing.T) {
	db := setupTestDB(t)
	user := createTestUser(t, db, "curator@example.com", models.RoleCurator)
	svc, clock, cards := newDailyFixture(t, db)
	seedCardTitles(t, cards, user.ID, "Yama", "Niyama")

	listed, _, err := cards.GetFlashcards(models.FlashcardListParams{Page: 1, Limit: 10})
	require.NoError(t, err)
	require.Len(t, listed, 2)
	removed := listed[0]
	require.NoError(t, cards.DeleteFlashcard(removed.ID))

	for day := 0; day < 3; day++ {
		card, err := svc.GetDailyCard()
		require.NoError(t, err)
		require.NotNil(t, card)
		assert.NotEqual(t, removed.ID, card.ID)
		clock.Advance(24 * time.Hour)
	}
}
