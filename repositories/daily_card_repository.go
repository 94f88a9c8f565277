package repositories

import (
	"time"

	"yoga-flashcards-api/models"

	"gorm.io/gorm"
)

type DailyCardRepository interface {
	GetByDate(date time.Time) (*models.DailyCard, error)
	Create(daily *models.DailyCard) error
	CreateUsageLog(entry *models.CardUsageLog) error
	LatestCycle() (int, error)
	CountUsageInCycle(cycleNumber int) (int64, error)
}

type dailyCardRepository struct {
	db *gorm.DB
}

func NewDailyCardRepository(db *gorm.DB) DailyCardRepository {
	return &dailyCardRepository{db: db}
}

func (r *dailyCardRepository) GetByDate(date time.Time) (*models.DailyCard, error) {
	var daily models.DailyCard
	err := r.db.Preload("Card.Tags").Preload("Card.CreatedBy").
		Where("date = ?", date).
		First(&daily).Error
	return &daily, err
}

func (r *dailyCardRepository) Create(daily *models.DailyCard) error {
	return r.db.Create(daily).Error
}

func (r *dailyCardRepository) CreateUsageLog(entry *models.CardUsageLog) error {
	return r.db.Create(entry).Error
}

// LatestCycle returns the highest cycle number in the usage log, 0 when the
// log is empty.
func (r *dailyCardRepository) LatestCycle() (int, error) {
	var entry models.CardUsageLog
	err := r.db.Order("cycle_number desc").First(&entry).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return 0, nil
		}
		return 0, err
	}
	return entry.CycleNumber, nil
}

func (r *dailyCardRepository) CountUsageInCycle(cycleNumber int) (int64, error) {
	var count int64
	err := r.db.Model(&models.CardUsageLog{}).
		Where("cycle_number = ?", cycleNumber).
		Count(&count).Error
	return count, err
}
