package services

import (
	"errors"

	"yoga-flashcards-api/models"
	"yoga-flashcards-api/repositories"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// SeedService loads the initial accounts, tags, and Sanskrit card set. Every
// step is gated on an existence check so running it repeatedly is safe.
type SeedService struct {
	userRepo repositories.UserRepository
	tagRepo  repositories.TagRepository
	cardRepo repositories.FlashcardRepository
	cards    FlashcardService
	log      *zap.SugaredLogger
}

func NewSeedService(userRepo repositories.UserRepository, tagRepo repositories.TagRepository, cardRepo repositories.FlashcardRepository, cards FlashcardService, log *zap.SugaredLogger) *SeedService {
	return &SeedService{
		userRepo: userRepo,
		tagRepo:  tagRepo,
		cardRepo: cardRepo,
		cards:    cards,
		log:      log,
	}
}

type seedUser struct {
	username string
	email    string
	password string
	role     models.UserRole
}

type seedCard struct {
	title      string
	phrase     string
	definition string
	tags       []string
}

var seedUsers = []seedUser{
	{"admin", "admin@example.com", "admin123", models.RoleAdmin},
	{"curator1", "curator1@example.com", "curator1", models.RoleCurator},
	{"user1", "user1@example.com", "user1", models.RoleUser},
}

var seedTags = []models.Tag{
	{Name: "8 Limbs", Description: "The eight limbs of yoga according to Patanjali"},
	{Name: "Yamas", Description: "The first limb - ethical restraints"},
	{Name: "Niyamas", Description: "The second limb - observances"},
}

var seedCards = []seedCard{
	{"Yama", "यम", "The first limb of yoga, consisting of ethical restraints and moral disciplines that guide our interactions with others and the world.", []string{"8 Limbs", "Yamas"}},
	{"Niyama", "नियम", "The second limb of yoga, consisting of observances and practices that guide our relationship with ourselves.", []string{"8 Limbs", "Niyamas"}},
	{"Asana", "आसन", "The third limb of yoga, referring to the physical postures and seat for meditation.", []string{"8 Limbs"}},
	{"Pranayama", "प्राणायाम", "The fourth limb of yoga, the practice of breath control and extension of life force energy.", []string{"8 Limbs"}},
	{"Pratyahara", "प्रत्याहार", "The fifth limb of yoga, withdrawal of the senses from external objects to turn attention inward.", []string{"8 Limbs"}},
	{"Dharana", "धारणा", "The sixth limb of yoga, concentration and focused attention on a single object or point.", []string{"8 Limbs"}},
	{"Dhyana", "ध्यान", "The seventh limb of yoga, sustained meditation and unbroken flow of concentration.", []string{"8 Limbs"}},
	{"Samadhi", "समाधि", "The eighth limb of yoga, the state of blissful absorption and union with the object of meditation.", []string{"8 Limbs"}},
}

func (s *SeedService) Run() error {
	admin, err := s.seedUsers()
	if err != nil {
		return err
	}
	if err := s.seedTags(); err != nil {
		return err
	}
	return s.seedCards(admin.ID)
}

func (s *SeedService) seedUsers() (*models.User, error) {
	var admin *models.User

	for _, su := range seedUsers {
		existing, err := s.userRepo.GetByEmail(su.email)
		if err == nil {
			s.log.Infow("seed user exists", "email", su.email)
			if su.role == models.RoleAdmin && admin == nil {
				admin = existing
			}
			continue
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}

		hashed, err := bcrypt.GenerateFromPassword([]byte(su.password), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}

		user := &models.User{
			Username: su.username,
			Email:    su.email,
			Password: string(hashed),
			Role:     su.role,
			IsActive: true,
		}
		if err := s.userRepo.Create(user); err != nil {
			return nil, err
		}
		s.log.Infow("seeded user", "email", su.email, "role", su.role)

		if su.role == models.RoleAdmin && admin == nil {
			admin = user
		}
	}

	if admin == nil {
		return nil, errors.New("no admin user available for seeding")
	}
	return admin, nil
}

func (s *SeedService) seedTags() error {
	for _, st := range seedTags {
		_, err := s.tagRepo.GetByName(st.Name)
		if err == nil {
			continue
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		tag := st
		if err := s.tagRepo.Create(&tag); err != nil {
			return err
		}
		s.log.Infow("seeded tag", "name", tag.Name)
	}
	return nil
}

func (s *SeedService) seedCards(adminID uint) error {
	for _, sc := range seedCards {
		// the search is a substring match, so scan the page for the exact title
		params := models.FlashcardListParams{Search: sc.title, Page: 1, Limit: 50}
		existing, _, err := s.cardRepo.GetList(params)
		if err != nil {
			return err
		}
		if containsTitle(existing, sc.title) {
			continue
		}

		req := models.CreateFlashcardRequest{
			Title:      sc.title,
			Phrase:     sc.phrase,
			Definition: sc.definition,
			TagNames:   sc.tags,
		}
		if _, err := s.cards.CreateFlashcard(req, adminID); err != nil {
			return err
		}
		s.log.Infow("seeded card", "title", sc.title)
	}
	return nil
}

func containsTitle(cards []models.Flashcard, title string) bool {
	for _, c := range cards {
		if c.Title == title {
			return true
		}
	}
	return false
}
