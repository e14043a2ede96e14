package auth

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"salonbook/internal/database"
	"salonbook/internal/domain"
	jwtsvc "salonbook/internal/pkg/jwt"
	"salonbook/internal/repository"
)

func setupAuth(t *testing.T) (*Service, *gorm.DB, *domain.Staff) {
	t.Helper()

	db, err := database.Connect(":memory:")
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, database.Migrate(db))

	hash, err := HashPassword("s3cret")
	require.NoError(t, err)

	staff := &domain.Staff{
		SalonID:      1,
		Name:         "Alex",
		Active:       true,
		Email:        "alex@example.com",
		PasswordHash: hash,
		Role:         domain.RoleStaff,
	}
	require.NoError(t, db.Create(staff).Error)

	svc := NewService(repository.NewStaffRepository(db), jwtsvc.New("test-secret", time.Hour))
	return svc, db, staff
}

func TestLogin(t *testing.T) {
	svc, _, seeded := setupAuth(t)
	ctx := context.Background()

	staff, token, err := svc.Login(ctx, LoginRequest{Email: "alex@example.com", Password: "s3cret"})
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Equal(t, seeded.ID, staff.ID)
	assert.Empty(t, staff.PasswordHash)

	// Email lookup is case-insensitive on our side.
	_, _, err = svc.Login(ctx, LoginRequest{Email: "  Alex@example.com ", Password: "s3cret"})
	require.NoError(t, err)

	_, _, err = svc.Login(ctx, LoginRequest{Email: "alex@example.com", Password: "wrong"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, _, err = svc.Login(ctx, LoginRequest{Email: "nobody@example.com", Password: "s3cret"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLoginInactiveStaff(t *testing.T) {
	svc, db, seeded := setupAuth(t)
	ctx := context.Background()

	require.NoError(t, db.Model(&domain.Staff{}).Where("id = ?", seeded.ID).Update("active", false).Error)

	_, _, err := svc.Login(ctx, LoginRequest{Email: "alex@example.com", Password: "s3cret"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}
