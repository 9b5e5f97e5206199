package service

import (
	"context"
	"errors"
	"fmt"

	"FileVault/internal/model"
	"FileVault/internal/repo"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// UserService — регистрация и проверка учётных данных.
type UserService struct {
	repo repo.UserRepository
}

func NewUserService(r repo.UserRepository) *UserService {
	return &UserService{repo: r}
}

// Register создаёт пользователя с bcrypt-хэшем пароля.
func (s *UserService) Register(ctx context.Context, login, password string) (*model.User, error) {
	if login == "" || password == "" {
		return nil, fmt.Errorf("%w: login and password are required", ErrInvalidArgument)
	}

	if _, err := s.repo.GetUserByLogin(ctx, login); err == nil {
		return nil, ErrLoginTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user, err := s.repo.CreateUser(ctx, &model.User{Login: login, Password: string(hash)})
	if err != nil {
		// гонка двух регистраций на один логин упирается в уникальный индекс
		return nil, ErrLoginTaken
	}
	return user, nil
}

// Login проверяет пару логин/пароль и возвращает пользователя.
func (s *UserService) Login(ctx context.Context, login, password string) (*model.User, error) {
	user, err := s.repo.GetUserByLogin(ctx, login)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
	}
	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)) != nil {
		return nil, ErrInvalidCredentials
	}
	return user, nil
}
