package services

import (
	"errors"
	"math/rand"
	"time"

	"yoga-flashcards-api/models"
	"yoga-flashcards-api/repositories"

	"gorm.io/gorm"
)

type DailyCardService interface {
	// GetDailyCard returns the card pinned for today, selecting and
	// persisting one on the first call of the day. A nil card with a nil
	// error means no active cards exist; that is a normal outcome.
	GetDailyCard() (*models.Flashcard, error)
}

type dailyCardService struct {
	dailyRepo repositories.DailyCardRepository
	cardRepo  repositories.FlashcardRepository
	now       func() time.Time
	rng       *rand.Rand
}

func NewDailyCardService(dailyRepo repositories.DailyCardRepository, cardRepo repositories.FlashcardRepository) DailyCardService {
	return &dailyCardService{
		dailyRepo: dailyRepo,
		cardRepo:  cardRepo,
		now:       time.Now,
		rng:       rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// NewDailyCardServiceWithClock injects the clock and random source. Selection
// is random, so deterministic tests need both.
func NewDailyCardServiceWithClock(dailyRepo repositories.DailyCardRepository, cardRepo repositories.FlashcardRepository, now func() time.Time, rng *rand.Rand) DailyCardService {
	return &dailyCardService{
		dailyRepo: dailyRepo,
		cardRepo:  cardRepo,
		now:       now,
		rng:       rng,
	}
}

func (s *dailyCardService) GetDailyCard() (*models.Flashcard, error) {
	today := dateOf(s.now())

	daily, err := s.dailyRepo.GetByDate(today)
	if err == nil {
		return &daily.Card, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	card, err := s.selectNextCard()
	if err != nil {
		return nil, err
	}
	if card == nil {
		return nil, nil
	}

	cycle, err := s.currentCycle()
	if err != nil {
		return nil, err
	}

	if err := s.dailyRepo.Create(&models.DailyCard{CardID: card.ID, Date: today}); err != nil {
		// lost the first-request-of-day race; the winner's row stands
		if existing, rerr := s.dailyRepo.GetByDate(today); rerr == nil {
			return &existing.Card, nil
		}
		return nil, err
	}

	if err := s.dailyRepo.CreateUsageLog(&models.CardUsageLog{
		CardID:      card.ID,
		UsedDate:    today,
		CycleNumber: cycle,
	}); err != nil {
		return nil, err
	}

	return card, nil
}

// selectNextCard picks uniformly among active cards not yet used in the
// current cycle, or among all active cards when the cycle has just been
// exhausted.
func (s *dailyCardService) selectNextCard() (*models.Flashcard, error) {
	activeCards, err := s.cardRepo.GetActiveCards()
	if err != nil {
		return nil, err
	}
	if len(activeCards) == 0 {
		return nil, nil
	}

	cycle, err := s.currentCycle()
	if err != nil {
		return nil, err
	}

	unused, err := s.cardRepo.GetActiveCardsNotInCycle(cycle)
	if err != nil {
		return nil, err
	}

	if len(unused) > 0 {
		return &unused[s.rng.Intn(len(unused))], nil
	}
	return &activeCards[s.rng.Intn(len(activeCards))], nil
}

// currentCycle is the effective cycle for new picks: the highest cycle in
// the usage log, advanced by one once that cycle has covered every active
// card. An empty log starts at cycle 1.
func (s *dailyCardService) currentCycle() (int, error) {
	latest, err := s.dailyRepo.LatestCycle()
	if err != nil {
		return 0, err
	}
	if latest == 0 {
		return 1, nil
	}

	activeCount, err := s.cardRepo.CountActiveCards()
	if err != nil {
		return 0, err
	}

	usedInCycle, err := s.dailyRepo.CountUsageInCycle(latest)
	if err != nil {
		return 0, err
	}

	if usedInCycle >= activeCount {
		return latest + 1, nil
	}
	return latest, nil
}

// dateOf truncates a timestamp to its calendar day in UTC.
func dateOf(t time.Time) time.Time {
	year, month, day := t.UTC().Date()
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}
