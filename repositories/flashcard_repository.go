package repositories

import (
	"fmt"
	"strings"

	"yoga-flashcards-api/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type FlashcardRepository interface {
	Create(card *models.Flashcard) error
	GetByID(id uint) (*models.Flashcard, error)
	GetLiveByGroup(versionGroup string) (*models.Flashcard, error)
	GetVersionsByGroup(versionGroup string) ([]models.Flashcard, error)
	GetList(params models.FlashcardListParams) ([]models.Flashcard, int64, error)
	AppendVersion(next *models.Flashcard) error
	DeactivateGroup(versionGroup string) error
	GetActiveCards() ([]models.Flashcard, error)
	CountActiveCards() (int64, error)
	GetActiveCardsNotInCycle(cycleNumber int) ([]models.Flashcard, error)
}

type flashcardRepository struct {
	db *gorm.DB
}

func NewFlashcardRepository(db *gorm.DB) FlashcardRepository {
	return &flashcardRepository{db: db}
}

func (r *flashcardRepository) Create(card *models.Flashcard) error {
	return r.db.Create(card).Error
}

func (r *flashcardRepository) GetByID(id uint) (*models.Flashcard, error) {
	var card models.Flashcard
	err := r.db.Preload("Tags").Preload("CreatedBy").First(&card, id).Error
	return &card, err
}

func (r *flashcardRepository) GetLiveByGroup(versionGroup string) (*models.Flashcard, error) {
	var card models.Flashcard
	err := r.db.Preload("Tags").
		Where("version_group = ? AND is_live = ?", versionGroup, true).
		First(&card).Error
	return &card, err
}

func (r *flashcardRepository) GetVersionsByGroup(versionGroup string) ([]models.Flashcard, error) {
	var versions []models.Flashcard
	err := r.db.Preload("Tags").Preload("CreatedBy").
		Where("version_group = ?", versionGroup).
		Order("version_number desc").
		Find(&versions).Error
	return versions, err
}

func (r *flashcardRepository) GetList(params models.FlashcardListParams) ([]models.Flashcard, int64, error) {
	var cards []models.Flashcard
	var total int64

	query := r.db.Model(&models.Flashcard{}).
		Preload("Tags").Preload("CreatedBy").
		Where("flashcards.is_live = ? AND flashcards.is_active = ?", true, true)

	if params.Search != "" {
		like := "%" + params.Search + "%"
		query = query.Where(
			r.db.Where("flashcards.title LIKE ?", like).
				Or("flashcards.phrase LIKE ?", like).
				Or("flashcards.definition LIKE ?", like).
				Or("flashcards.id IN (?)", r.db.Table("flashcard_tags").
					Select("flashcard_tags.flashcard_id").
					Joins("JOIN tags ON tags.id = flashcard_tags.tag_id").
					Where("tags.name LIKE ?", like)),
		)
	}

	if params.Tags != "" {
		names := strings.Split(params.Tags, ",")
		query = query.Where("flashcards.id IN (?)", r.db.Table("flashcard_tags").
			Select("flashcard_tags.flashcard_id").
			Joins("JOIN tags ON tags.id = flashcard_tags.tag_id").
			Where("tags.name IN ?", names))
	}

	query.Count(&total)

	sortBy := params.SortBy
	switch sortBy {
	case "title", "created_at", "updated_at":
	default:
		sortBy = "updated_at"
	}
	sortOrder := params.SortOrder
	if sortOrder != "asc" {
		sortOrder = "desc"
	}
	query = query.Order(fmt.Sprintf("flashcards.%s %s", sortBy, sortOrder))

	offset := (params.Page - 1) * params.Limit
	err := query.Offset(offset).Limit(params.Limit).Find(&cards).Error

	return cards, total, err
}

// AppendVersion inserts next as the new live version of its group. The group's
// current live row is re-read under a row lock so concurrent editors serialize
// on the version number instead of both producing a live row.
func (r *flashcardRepository) AppendVersion(next *models.Flashcard) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		query := tx.Model(&models.Flashcard{})
		// sqlite has no FOR UPDATE; its writes are serialized anyway
		if tx.Dialector.Name() == "postgres" {
			query = query.Clauses(clause.Locking{Strength: "UPDATE"})
		}

		var live models.Flashcard
		err := query.Where("version_group = ? AND is_live = ?", next.VersionGroup, true).
			First(&live).Error
		if err != nil && err != gorm.ErrRecordNotFound {
			return err
		}

		if err == nil {
			next.VersionNumber = live.VersionNumber + 1
			if err := tx.Model(&models.Flashcard{}).
				Where("id = ?", live.ID).
				Update("is_live", false).Error; err != nil {
				return err
			}
		} else {
			// no live row means the group is starting fresh
			next.VersionNumber = 1
		}

		next.IsLive = true
		next.IsActive = true
		return tx.Create(next).Error
	})
}

func (r *flashcardRepository) DeactivateGroup(versionGroup string) error {
	return r.db.Model(&models.Flashcard{}).
		Where("version_group = ?", versionGroup).
		Update("is_active", false).Error
}

func (r *flashcardRepository) GetActiveCards() ([]models.Flashcard, error) {
	var cards []models.Flashcard
	err := r.db.Preload("Tags").
		Where("is_live = ? AND is_active = ?", true, true).
		Find(&cards).Error
	return cards, err
}

func (r *flashcardRepository) CountActiveCards() (int64, error) {
	var count int64
	err := r.db.Model(&models.Flashcard{}).
		Where("is_live = ? AND is_active = ?", true, true).
		Count(&count).Error
	return count, err
}

func (r *flashcardRepository) GetActiveCardsNotInCycle(cycleNumber int) ([]models.Flashcard, error) {
	var cards []models.Flashcard
	err := r.db.Preload("Tags").
		Where("is_live = ? AND is_active = ?", true, true).
		Where("id NOT IN (?)", r.db.Model(&models.CardUsageLog{}).
			Select("card_id").
			Where("cycle_number = ?", cycleNumber)).
		Find(&cards).Error
	return cards, err
}
