package user

import (
	"time"

	"golang.org/x/crypto/bcrypt"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) GetByID(id int) (User, error) {
	return s.repo.GetByID(id)
}

// Register hashes the password and stores a new user. Login names are
// unique; a second registration under the same name fails with ErrNameTaken.
func (s *Service) Register(name, phone, password string) (User, error) {
	if _, err := s.repo.GetByName(name); err == nil {
		return User{}, ErrNameTaken
	} else if err != ErrNotFound {
		return User{}, err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return User{}, err
	}

	return s.repo.Create(User{
		Name:         name,
		Phone:        phone,
		PasswordHash: string(hashed),
		CreatedAt:    time.Now().UTC().Format(time.RFC3339),
	})
}

// Authenticate returns the user iff the stored hash verifies against the
// given password. bcrypt's compare is constant-time on the digest.
func (s *Service) Authenticate(name, password string) (User, error) {
	user, err := s.repo.GetByName(name)
	if err != nil {
		return User{}, ErrInvalidCredentials
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return User{}, ErrInvalidCredentials
	}

	return user, nil
}
