package services

import (
	"fmt"
	"testing"

	"yoga-flashcards-api/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string {
	return &s
}

func TestCreateFlashcardStartsVersionGroup(t *testing.T) {
	db := setupTestDB(t)
	user := createTestUser(t, db, "curator@example.com", models.RoleCurator)
	svc := newFlashcardService(db)

	card, err := svc.CreateFlashcard(models.CreateFlashcardRequest{
		Title:      "Asana",
		Phrase:     "आसन",
		Definition: "The third limb of yoga.",
		TagNames:   []string{"8 Limbs"},
	}, user.ID)
	require.NoError(t, err)

	assert.NotEmpty(t, card.VersionGroup)
	assert.Equal(t, 1, card.VersionNumber)
	assert.True(t, card.IsLive)
	assert.True(t, card.IsActive)
	assert.Equal(t, user.ID, card.CreatedByID)
	require.Len(t, card.Tags, 1)
	assert.Equal(t, "8 Limbs", card.Tags[0].Name)
}

func TestEditSequenceKeepsSingleLiveVersion(t *testing.T) {
	db := setupTestDB(t)
	user := createTestUser(t, db, "curator@example.com", models.RoleCurator)
	svc := newFlashcardService(db)

	card, err := svc.CreateFlashcard(models.CreateFlashcardRequest{
		Title:      "Yama",
		Definition: "First limb.",
	}, user.ID)
	require.NoError(t, err)

	const edits = 4
	latest := card
	for i := 0; i < edits; i++ {
		latest, err = svc.CreateNewVersion(latest.ID, models.UpdateFlashcardRequest{
			Definition: strPtr(fmt.Sprintf("First limb, edit %d.", i+1)),
		}, user.ID)
		require.NoError(t, err)
	}

	history, err := svc.GetVersionHistory(card.ID)
	require.NoError(t, err)
	require.Len(t, history, edits+1)

	// descending version numbers 5..1, exactly one live row and it is the head
	liveCount := 0
	for i, v := range history {
		assert.Equal(t, edits+1-i, v.VersionNumber)
		assert.Equal(t, card.VersionGroup, v.VersionGroup)
		if v.IsLive {
			liveCount++
			assert.Equal(t, edits+1, v.VersionNumber)
		}
	}
	assert.Equal(t, 1, liveCount)
}

func TestCreateNewVersionFallsBackToLiveFields(t *testing.T) {
	db := setupTestDB(t)
	user := createTestUser(t, db, "curator@example.com", models.RoleCurator)
	svc := newFlashcardService(db)

	card, err := svc.CreateFlashcard(models.CreateFlashcardRequest{
		Title:      "Dharana",
		Phrase:     "धारणा",
		Definition: "Sixth limb.",
		TagNames:   []string{"8 Limbs", "Meditation"},
	}, user.ID)
	require.NoError(t, err)

	next, err := svc.CreateNewVersion(card.ID, models.UpdateFlashcardRequest{
		Definition: strPtr("Sixth limb, concentration."),
	}, user.ID)
	require.NoError(t, err)

	assert.Equal(t, "Dharana", next.Title)
	assert.Equal(t, "धारणा", next.Phrase)
	assert.Equal(t, "Sixth limb, concentration.", next.Definition)
	assert.Equal(t, 2, next.VersionNumber)

	// tags carried over from the previous live version
	require.Len(t, next.Tags, 2)
}

func TestCreateNewVersionOverridesTags(t *testing.T) {
	db := setupTestDB(t)
	user := createTestUser(t, db, "curator@example.com", models.RoleCurator)
	svc := newFlashcardService(db)

	card, err := svc.CreateFlashcard(models.CreateFlashcardRequest{
		Title:      "Niyama",
		Definition: "Second limb.",
		TagNames:   []string{"8 Limbs"},
	}, user.ID)
	require.NoError(t, err)

	next, err := svc.CreateNewVersion(card.ID, models.UpdateFlashcardRequest{
		TagNames: []string{"Niyamas"},
	}, user.ID)
	require.NoError(t, err)

	require.Len(t, next.Tags, 1)
	assert.Equal(t, "Niyamas", next.Tags[0].Name)

	// the older version keeps its own tag set
	original, err := svc.GetFlashcard(card.ID)
	require.NoError(t, err)
	require.Len(t, original.Tags, 1)
	assert.Equal(t, "8 Limbs", original.Tags[0].Name)
}

func TestCreateNewVersionFromOldVersionID(t *testing.T) {
	db := setupTestDB(t)
	user := createTestUser(t, db, "curator@example.com", models.RoleCurator)
	svc := newFlashcardService(db)

	v1, err := svc.CreateFlashcard(models.CreateFlashcardRequest{
		Title:      "Pranayama",
		Definition: "Fourth limb.",
	}, user.ID)
	require.NoError(t, err)

	_, err = svc.CreateNewVersion(v1.ID, models.UpdateFlashcardRequest{
		Definition: strPtr("Fourth limb, breath control."),
	}, user.ID)
	require.NoError(t, err)

	// editing through the superseded v1 id still appends after the live head
	v3, err := svc.CreateNewVersion(v1.ID, models.UpdateFlashcardRequest{
		Definition: strPtr("Fourth limb, breath extension."),
	}, user.ID)
	require.NoError(t, err)

	assert.Equal(t, 3, v3.VersionNumber)
	assert.Equal(t, "Fourth limb, breath extension.", v3.Definition)
}

func TestRevertAppendsNewHead(t *testing.T) {
	db := setupTestDB(t)
	user := createTestUser(t, db, "curator@example.com", models.RoleCurator)
	svc := newFlashcardService(db)

	v1, err := svc.CreateFlashcard(models.CreateFlashcardRequest{
		Title:      "Samadhi",
		Definition: "Original definition.",
		TagNames:   []string{"8 Limbs"},
	}, user.ID)
	require.NoError(t, err)

	v2, err := svc.CreateNewVersion(v1.ID, models.UpdateFlashcardRequest{
		Definition: strPtr("Second definition."),
		TagNames:   []string{"Meditation"},
	}, user.ID)
	require.NoError(t, err)

	v3, err := svc.CreateNewVersion(v2.ID, models.UpdateFlashcardRequest{
		Definition: strPtr("Third definition."),
	}, user.ID)
	require.NoError(t, err)
	require.Equal(t, 3, v3.VersionNumber)

	reverted, err := svc.RevertToVersion(v3.ID, v1.ID, user.ID)
	require.NoError(t, err)

	assert.Equal(t, 4, reverted.VersionNumber)
	assert.Equal(t, "Original definition.", reverted.Definition)
	assert.True(t, reverted.IsLive)
	require.Len(t, reverted.Tags, 1)
	assert.Equal(t, "8 Limbs", reverted.Tags[0].Name)

	// nothing was altered or removed, history is now four rows
	history, err := svc.GetVersionHistory(v1.ID)
	require.NoError(t, err)
	require.Len(t, history, 4)
	assert.Equal(t, "Third definition.", history[1].Definition)
	assert.False(t, history[1].IsLive)
}

func TestRevertRejectsForeignVersionGroup(t *testing.T) {
	db := setupTestDB(t)
	user := createTestUser(t, db, "curator@example.com", models.RoleCurator)
	svc := newFlashcardService(db)

	cardA, err := svc.CreateFlashcard(models.CreateFlashcardRequest{
		Title: "Yama", Definition: "A",
	}, user.ID)
	require.NoError(t, err)

	cardB, err := svc.CreateFlashcard(models.CreateFlashcardRequest{
		Title: "Niyama", Definition: "B",
	}, user.ID)
	require.NoError(t, err)

	_, err = svc.RevertToVersion(cardA.ID, cardB.ID, user.ID)
	assert.ErrorIs(t, err, ErrVersionGroupMismatch)

	// the rejected revert had no side effects
	history, err := svc.GetVersionHistory(cardA.ID)
	require.NoError(t, err)
	assert.Len(t, history, 1)
}

func TestVersionHistorySameFromAnyMember(t *testing.T) {
	db := setupTestDB(t)
	user := createTestUser(t, db, "curator@example.com", models.RoleCurator)
	svc := newFlashcardService(db)

	v1, err := svc.CreateFlashcard(models.CreateFlashcardRequest{
		Title: "Dhyana", Definition: "Seventh limb.",
	}, user.ID)
	require.NoError(t, err)

	v2, err := svc.CreateNewVersion(v1.ID, models.UpdateFlashcardRequest{
		Definition: strPtr("Seventh limb, meditation."),
	}, user.ID)
	require.NoError(t, err)

	fromV1, err := svc.GetVersionHistory(v1.ID)
	require.NoError(t, err)
	fromV2, err := svc.GetVersionHistory(v2.ID)
	require.NoError(t, err)

	require.Len(t, fromV1, 2)
	require.Len(t, fromV2, 2)
	for i := range fromV1 {
		assert.Equal(t, fromV1[i].ID, fromV2[i].ID)
	}
	assert.Greater(t, fromV1[0].VersionNumber, fromV1[1].VersionNumber)
}

func TestDeleteFlashcardSoftDeletesGroup(t *testing.T) {
	db := setupTestDB(t)
	user := createTestUser(t, db, "curator@example.com", models.RoleCurator)
	svc := newFlashcardService(db)

	v1, err := svc.CreateFlashcard(models.CreateFlashcardRequest{
		Title: "Pratyahara", Definition: "Fifth limb.",
	}, user.ID)
	require.NoError(t, err)

	v2, err := svc.CreateNewVersion(v1.ID, models.UpdateFlashcardRequest{
		Definition: strPtr("Fifth limb, withdrawal."),
	}, user.ID)
	require.NoError(t, err)

	require.NoError(t, svc.DeleteFlashcard(v2.ID))

	// rows remain but drop out of listings
	history, err := svc.GetVersionHistory(v1.ID)
	require.NoError(t, err)
	require.Len(t, history, 2)
	for _, v := range history {
		assert.False(t, v.IsActive)
	}

	cards, total, err := svc.GetFlashcards(models.FlashcardListParams{Page: 1, Limit: 10})
	require.NoError(t, err)
	assert.Zero(t, total)
	assert.Empty(t, cards)
}

func TestListFiltersAndSearch(t *testing.T) {
	db := setupTestDB(t)
	user := createTestUser(t, db, "curator@example.com", models.RoleCurator)
	svc := newFlashcardService(db)

	_, err := svc.CreateFlashcard(models.CreateFlashcardRequest{
		Title: "Asana", Definition: "Postures.", TagNames: []string{"8 Limbs"},
	}, user.ID)
	require.NoError(t, err)

	_, err = svc.CreateFlashcard(models.CreateFlashcardRequest{
		Title: "Ahimsa", Definition: "Non-violence.", TagNames: []string{"Yamas"},
	}, user.ID)
	require.NoError(t, err)

	cards, total, err := svc.GetFlashcards(models.FlashcardListParams{Search: "violence", Page: 1, Limit: 10})
	require.NoError(t, err)
	require.EqualValues(t, 1, total)
	assert.Equal(t, "Ahimsa", cards[0].Title)

	cards, total, err = svc.GetFlashcards(models.FlashcardListParams{Tags: "8 Limbs", Page: 1, Limit: 10})
	require.NoError(t, err)
	require.EqualValues(t, 1, total)
	assert.Equal(t, "Asana", cards[0].Title)

	// only live versions are listed
	head, err := svc.CreateNewVersion(cards[0].ID, models.UpdateFlashcardRequest{
		Definition: strPtr("Postures and seat."),
	}, user.ID)
	require.NoError(t, err)

	cards, total, err = svc.GetFlashcards(models.FlashcardListParams{Page: 1, Limit: 10})
	require.NoError(t, err)
	assert.EqualValues(t, 2, total)
	for _, c := range cards {
		if c.Title == "Asana" {
			assert.Equal(t, head.ID, c.ID)
		}
	}
}
