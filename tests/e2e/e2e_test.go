package e2e

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"salonbook/internal/booking"
	"salonbook/internal/database"
	"salonbook/internal/events"
	"salonbook/internal/middleware"
	"salonbook/internal/modules/auth"
	bookinghttp "salonbook/internal/modules/booking"
	"salonbook/internal/modules/catalog"
	schedulehttp "salonbook/internal/modules/schedule"
	jwtsvc "salonbook/internal/pkg/jwt"
	"salonbook/internal/repository"
)

type suite struct {
	router *gin.Engine
	jwt    *jwtsvc.Service
}

type envelope struct {
	Success bool           `json:"success"`
	Data    map[string]any `json:"data,omitempty"`
	Error   *errorDetail   `json:"error,omitempty"`
}

type errorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func setupSuite(t *testing.T) *suite {
	t.Helper()

	db, err := database.Connect(":memory:")
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, database.Migrate(db))

	salonRepo := repository.NewSalonRepository(db)
	staffRepo := repository.NewStaffRepository(db)
	serviceRepo := repository.NewServiceRepository(db)
	appointmentRepo := repository.NewAppointmentRepository(db)
	exclusionRepo := repository.NewExclusionRepository(db)

	j := jwtsvc.New("test_secret_key_32_characters_min", time.Hour)
	hub := events.NewHub()

	bookingService := booking.NewService(salonRepo, staffRepo, serviceRepo, appointmentRepo, exclusionRepo, hub)
	bookingHandler := bookinghttp.NewHandler(bookingService)
	scheduleHandler := schedulehttp.NewHandler(bookingService)

	authService := auth.NewService(staffRepo, j)
	authHandler := auth.NewHandler(authService)

	catalogService := catalog.NewService(salonRepo, staffRepo, serviceRepo, exclusionRepo)
	catalogHandler := catalog.NewHandler(catalogService)

	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(gin.Recovery())

	v1 := r.Group("/api/v1")
	authHandler.RegisterPublicRoutes(v1)
	catalogHandler.RegisterPublicRoutes(v1)
	scheduleHandler.RegisterRoutes(v1)

	clientGroup := v1.Group("/")
	clientGroup.Use(middleware.OptionalJWT(j))
	bookingHandler.RegisterClientRoutes(clientGroup)

	staffGroup := v1.Group("/")
	staffGroup.Use(middleware.JWTAuth(j))
	authHandler.RegisterProtectedRoutes(staffGroup)
	bookingHandler.RegisterStaffRoutes(staffGroup)

	ownerGroup := v1.Group("/")
	ownerGroup.Use(middleware.JWTAuth(j), middleware.OwnerOnly())
	catalogHandler.RegisterOwnerRoutes(ownerGroup)

	return &suite{router: r, jwt: j}
}

func (s *suite) do(t *testing.T, method, path, token string, body any) (*httptest.ResponseRecorder, envelope) {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)

	var env envelope
	if w.Body.Len() > 0 {
		_ = json.Unmarshal(w.Body.Bytes(), &env)
	}
	return w, env
}

func asID(t *testing.T, data map[string]any, key string) int64 {
	t.Helper()
	obj, ok := data[key].(map[string]any)
	require.True(t, ok, "missing %q in response data", key)
	id, ok := obj["id"].(float64)
	require.True(t, ok, "missing id in %q", key)
	return int64(id)
}

func TestBookingFlow(t *testing.T) {
	s := setupSuite(t)

	// Bootstrap owner token; the owner account itself is created below.
	ownerToken, err := s.jwt.GenerateToken(0, 0, "owner")
	require.NoError(t, err)

	date := time.Now().UTC().AddDate(0, 0, 7)
	// Land on a weekday so the Mon-Sat template is open.
	for date.Weekday() == time.Sunday {
		date = date.AddDate(0, 0, 1)
	}
	dateStr := date.Format("2006-01-02")

	// Owner sets up the salon.
	w, env := s.do(t, http.MethodPost, "/api/v1/salons", ownerToken, gin.H{
		"name": "Main Street Salon",
		"hours": weekHours("09:00", "17:00"),
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	salonID := asID(t, env.Data, "salon")
	base := fmt.Sprintf("/api/v1/salons/%d", salonID)

	w, env = s.do(t, http.MethodPost, base+"/services", ownerToken, gin.H{
		"name": "Haircut", "duration_minutes": 30, "price": 40,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	haircutID := asID(t, env.Data, "service")

	w, env = s.do(t, http.MethodPost, base+"/staff", ownerToken, gin.H{
		"name":        "Alex",
		"email":       "alex@example.com",
		"password":    "s3cret",
		"hours":       weekHours("09:00", "17:00"),
		"service_ids": []int64{haircutID},
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	staffID := asID(t, env.Data, "staff")

	// Staff can log in.
	w, env = s.do(t, http.MethodPost, "/api/v1/auth/login", "", gin.H{
		"email": "alex@example.com", "password": "s3cret",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	staffToken, ok := env.Data["token"].(string)
	require.True(t, ok)

	// Anonymous client books; salon has no auto-confirm, so it's pending.
	chain := []gin.H{{"service_id": haircutID, "staff_id": staffID}}
	w, env = s.do(t, http.MethodPost, base+"/appointments", "", gin.H{
		"staff_id":    staffID,
		"date":        dateStr,
		"start_time":  "10:00",
		"chain":       chain,
		"client_name": "Dana",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	apptID := asID(t, env.Data, "appointment")
	appt := env.Data["appointment"].(map[string]any)
	assert.Equal(t, "pending", appt["status"])
	assert.Equal(t, "10:30", appt["end_time"])

	// Same slot again conflicts.
	w, env = s.do(t, http.MethodPost, base+"/appointments", "", gin.H{
		"staff_id":    staffID,
		"date":        dateStr,
		"start_time":  "10:00",
		"chain":       chain,
		"client_name": "Riley",
	})
	require.Equal(t, http.StatusConflict, w.Code)
	require.NotNil(t, env.Error)
	assert.Equal(t, "SLOT_CONFLICT", env.Error.Code)

	// The booked slot disappears from the public slot list.
	w, env = s.do(t, http.MethodPost, base+"/slots", "", gin.H{
		"date": dateStr, "chain": chain,
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	slots := env.Data["slots"].([]any)
	assert.NotContains(t, slots, "10:00")
	assert.Contains(t, slots, "10:30")

	// Staff confirms, then completes.
	w, env = s.do(t, http.MethodPost, fmt.Sprintf("/api/v1/appointments/%d/confirm", apptID), staffToken, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "confirmed", env.Data["appointment"].(map[string]any)["status"])

	w, env = s.do(t, http.MethodPost, fmt.Sprintf("/api/v1/appointments/%d/complete", apptID), staffToken, nil)
	require.Equal(t, http.StatusOK, w.Code)

	// Terminal appointments reject further transitions.
	w, env = s.do(t, http.MethodPost, fmt.Sprintf("/api/v1/appointments/%d/cancel", apptID), staffToken, gin.H{"reason": "too late"})
	require.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "INVALID_TRANSITION", env.Error.Code)

	// A completed appointment frees the slot.
	w, env = s.do(t, http.MethodPost, base+"/slots", "", gin.H{
		"date": dateStr, "chain": chain,
	})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, env.Data["slots"].([]any), "10:00")
}

func TestAuthBoundaries(t *testing.T) {
	s := setupSuite(t)

	// Catalog writes need an owner token.
	w, _ := s.do(t, http.MethodPost, "/api/v1/salons", "", gin.H{"name": "X"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	staffToken, err := s.jwt.GenerateToken(1, 1, "staff")
	require.NoError(t, err)
	w, _ = s.do(t, http.MethodPost, "/api/v1/salons", staffToken, gin.H{"name": "X"})
	assert.Equal(t, http.StatusForbidden, w.Code)

	// Appointment management needs a staff login.
	w, _ = s.do(t, http.MethodPost, "/api/v1/appointments/1/confirm", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

// weekHours builds the 7-entry JSON array a WeekSchedule unmarshals from:
// index 0 is Sunday (closed), 1-6 are Monday through Saturday.
func weekHours(start, end string) []gin.H {
	day := gin.H{"open": true, "start": start, "end": end}
	week := make([]gin.H, 7)
	week[0] = gin.H{"open": false}
	for i := 1; i <= 6; i++ {
		week[i] = day
	}
	return week
}
