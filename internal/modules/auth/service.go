package auth

import (
	"context"
	"errors"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"salonbook/internal/domain"
	"salonbook/internal/repository"
)

// Service handles staff login. Clients never log in; they book through the
// public endpoints.
type Service struct {
	staff StaffReader
	jwt   tokenIssuer
}

func NewService(staff StaffReader, jwt tokenIssuer) *Service {
	return &Service{staff: staff, jwt: jwt}
}

func (s *Service) Login(ctx context.Context, req LoginRequest) (*domain.Staff, string, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	staff, err := s.staff.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, "", ErrInvalidCredentials
		}
		return nil, "", err
	}
	if !staff.Active {
		return nil, "", ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(staff.PasswordHash), []byte(req.Password)); err != nil {
		return nil, "", ErrInvalidCredentials
	}

	token, err := s.jwt.GenerateToken(staff.ID, staff.SalonID, string(staff.Role))
	if err != nil {
		return nil, "", err
	}

	staff.PasswordHash = ""
	return staff, token, nil
}

func (s *Service) GetCurrentStaff(ctx context.Context, staffID int64) (*domain.Staff, error) {
	staff, err := s.staff.GetByID(ctx, staffID)
	if err != nil {
		return nil, err
	}
	staff.PasswordHash = ""
	return staff, nil
}

// HashPassword is used when creating staff accounts (catalog and seed).
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}
