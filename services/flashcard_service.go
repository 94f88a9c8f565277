package services

import (
	"errors"

	"yoga-flashcards-api/models"
	"yoga-flashcards-api/repositories"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ErrVersionGroupMismatch is returned when a revert targets a version that
// belongs to a different card.
var ErrVersionGroupMismatch = errors.New("version does not belong to this card")

type FlashcardService interface {
	CreateFlashcard(req models.CreateFlashcardRequest, userID uint) (*models.Flashcard, error)
	GetFlashcard(id uint) (*models.Flashcard, error)
	GetFlashcards(params models.FlashcardListParams) ([]models.Flashcard, int64, error)
	CreateNewVersion(cardID uint, req models.UpdateFlashcardRequest, userID uint) (*models.Flashcard, error)
	RevertToVersion(cardID, versionID, userID uint) (*models.Flashcard, error)
	GetVersionHistory(cardID uint) ([]models.Flashcard, error)
	DeleteFlashcard(cardID uint) error
}

type flashcardService struct {
	cardRepo repositories.FlashcardRepository
	tagRepo  repositories.TagRepository
}

func NewFlashcardService(cardRepo repositories.FlashcardRepository, tagRepo repositories.TagRepository) FlashcardService {
	return &flashcardService{
		cardRepo: cardRepo,
		tagRepo:  tagRepo,
	}
}

func (s *flashcardService) CreateFlashcard(req models.CreateFlashcardRequest, userID uint) (*models.Flashcard, error) {
	tags, err := s.resolveTags(req.TagNames, req.TagIDs, nil)
	if err != nil {
		return nil, err
	}

	card := &models.Flashcard{
		Title:         req.Title,
		Phrase:        req.Phrase,
		Definition:    req.Definition,
		FrontImage:    req.FrontImage,
		BackImage:     req.BackImage,
		Tags:          tags,
		CreatedByID:   userID,
		VersionGroup:  uuid.NewString(),
		VersionNumber: 1,
		IsLive:        true,
		IsActive:      true,
	}

	if err := s.cardRepo.Create(card); err != nil {
		return nil, err
	}

	return s.cardRepo.GetByID(card.ID)
}

func (s *flashcardService) GetFlashcard(id uint) (*models.Flashcard, error) {
	return s.cardRepo.GetByID(id)
}

func (s *flashcardService) GetFlashcards(params models.FlashcardListParams) ([]models.Flashcard, int64, error) {
	return s.cardRepo.GetList(params)
}

// CreateNewVersion appends the next version of the card's group. Fields left
// nil in the request carry over from the current live version; tags carry
// over unless a name or id list is supplied. The card id may reference any
// version in the group, not just the live one.
func (s *flashcardService) CreateNewVersion(cardID uint, req models.UpdateFlashcardRequest, userID uint) (*models.Flashcard, error) {
	source, err := s.cardRepo.GetByID(cardID)
	if err != nil {
		return nil, err
	}

	// fall back to the source row itself when the group has no live version
	base := source
	if live, err := s.cardRepo.GetLiveByGroup(source.VersionGroup); err == nil {
		base = live
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	tags, err := s.resolveTags(req.TagNames, req.TagIDs, base.Tags)
	if err != nil {
		return nil, err
	}

	next := &models.Flashcard{
		Title:        stringOr(req.Title, base.Title),
		Phrase:       stringOr(req.Phrase, base.Phrase),
		Definition:   stringOr(req.Definition, base.Definition),
		FrontImage:   stringOr(req.FrontImage, base.FrontImage),
		BackImage:    stringOr(req.BackImage, base.BackImage),
		Tags:         tags,
		CreatedByID:  userID,
		VersionGroup: source.VersionGroup,
	}

	if err := s.cardRepo.AppendVersion(next); err != nil {
		return nil, err
	}

	return s.cardRepo.GetByID(next.ID)
}

// RevertToVersion appends a new head version carrying the target version's
// content. History stays monotonic: nothing is rewound or deleted.
func (s *flashcardService) RevertToVersion(cardID, versionID, userID uint) (*models.Flashcard, error) {
	card, err := s.cardRepo.GetByID(cardID)
	if err != nil {
		return nil, err
	}

	target, err := s.cardRepo.GetByID(versionID)
	if err != nil {
		return nil, err
	}

	if target.VersionGroup != card.VersionGroup {
		return nil, ErrVersionGroupMismatch
	}

	next := &models.Flashcard{
		Title:        target.Title,
		Phrase:       target.Phrase,
		Definition:   target.Definition,
		FrontImage:   target.FrontImage,
		BackImage:    target.BackImage,
		Tags:         target.Tags,
		CreatedByID:  userID,
		VersionGroup: card.VersionGroup,
	}

	if err := s.cardRepo.AppendVersion(next); err != nil {
		return nil, err
	}

	return s.cardRepo.GetByID(next.ID)
}

func (s *flashcardService) GetVersionHistory(cardID uint) ([]models.Flashcard, error) {
	card, err := s.cardRepo.GetByID(cardID)
	if err != nil {
		return nil, err
	}

	return s.cardRepo.GetVersionsByGroup(card.VersionGroup)
}

// DeleteFlashcard soft-deletes the whole version group. Rows stay in storage
// for history; they just drop out of listings and daily rotation.
func (s *flashcardService) DeleteFlashcard(cardID uint) error {
	card, err := s.cardRepo.GetByID(cardID)
	if err != nil {
		return err
	}

	return s.cardRepo.DeactivateGroup(card.VersionGroup)
}

// resolveTags picks the tag set for a version: explicit ids win over explicit
// names, names are created on first use, and an empty request keeps the
// fallback set.
func (s *flashcardService) resolveTags(names []string, ids []uint, fallback []models.Tag) ([]models.Tag, error) {
	if len(ids) > 0 {
		tags, err := s.tagRepo.GetByIDs(ids)
		if err != nil {
			return nil, err
		}
		if len(tags) != len(ids) {
			return nil, errors.New("one or more tags not found")
		}
		return tags, nil
	}

	if len(names) > 0 {
		var tags []models.Tag
		for _, name := range names {
			tag, err := s.tagRepo.GetByName(name)
			if err != nil {
				if !errors.Is(err, gorm.ErrRecordNotFound) {
					return nil, err
				}
				tag = &models.Tag{Name: name}
				if err := s.tagRepo.Create(tag); err != nil {
					return nil, err
				}
			}
			tags = append(tags, *tag)
		}
		return tags, nil
	}

	return fallback, nil
}

func stringOr(value *string, fallback string) string {
	if value != nil {
		return *value
	}
	return fallback
}
