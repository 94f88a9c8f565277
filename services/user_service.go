package services

import (
	"errors"

	"yoga-flashcards-api/models"
	"yoga-flashcards-api/repositories"
)

type UserService interface {
	GetUsers(params models.UserListParams) ([]models.User, int64, error)
	GetUser(id uint) (*models.User, error)
	UpdateUser(id uint, req models.UpdateUserRequest) (*models.User, error)
	DeleteUser(id, actingUserID uint) error
}

type userService struct {
	userRepo repositories.UserRepository
}

func NewUserService(userRepo repositories.UserRepository) UserService {
	return &userService{userRepo: userRepo}
}

func (s *userService) GetUsers(params models.UserListParams) ([]models.User, int64, error) {
	return s.userRepo.GetList(params)
}

func (s *userService) GetUser(id uint) (*models.User, error) {
	return s.userRepo.GetByID(id)
}

func (s *userService) UpdateUser(id uint, req models.UpdateUserRequest) (*models.User, error) {
	user, err := s.userRepo.GetByID(id)
	if err != nil {
		return nil, err
	}

	if req.Role != nil {
		switch *req.Role {
		case models.RoleUser, models.RoleCurator, models.RoleAdmin:
			user.Role = *req.Role
		default:
			return nil, errors.New("invalid role")
		}
	}
	if req.IsActive != nil {
		user.IsActive = *req.IsActive
	}
	if req.DailyEmailEnabled != nil {
		user.DailyEmailEnabled = *req.DailyEmailEnabled
	}

	if err := s.userRepo.Update(user); err != nil {
		return nil, err
	}

	return user, nil
}

func (s *userService) DeleteUser(id, actingUserID uint) error {
	if id == actingUserID {
		return errors.New("cannot delete your own account")
	}

	if _, err := s.userRepo.GetByID(id); err != nil {
		return err
	}

	return s.userRepo.Delete(id)
}
