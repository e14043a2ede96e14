package auth

import (
	"context"

	"salonbook/internal/domain"
)

type StaffReader interface {
	GetByEmail(ctx context.Context, email string) (*domain.Staff, error)
	GetByID(ctx context.Context, id int64) (*domain.Staff, error)
}

type tokenIssuer interface {
	GenerateToken(staffID, salonID int64, role string) (string, error)
}
