package catalog

import (
	"context"
	"errors"
	"fmt"
	"time"

	"salonbook/internal/domain"
	"salonbook/internal/modules/auth"
	"salonbook/internal/pkg/validator"
	"salonbook/internal/repository"
	"salonbook/internal/schedule"
)

var ErrValidation = errors.New("validation error")

// Service manages the salon catalog: salons, staff, services and exclusions.
type Service struct {
	salons     *repository.SalonRepository
	staff      *repository.StaffRepository
	services   *repository.ServiceRepository
	exclusions *repository.ExclusionRepository
}

func NewService(
	salons *repository.SalonRepository,
	staff *repository.StaffRepository,
	services *repository.ServiceRepository,
	exclusions *repository.ExclusionRepository,
) *Service {
	return &Service{
		salons:     salons,
		staff:      staff,
		services:   services,
		exclusions: exclusions,
	}
}

func (s *Service) CreateSalon(ctx context.Context, req CreateSalonRequest) (*domain.Salon, error) {
	if err := validateWeekSchedule(req.Hours); err != nil {
		return nil, err
	}
	granularity := req.SlotGranularityMinutes
	if granularity == 0 {
		granularity = 30
	}
	if granularity < 0 {
		return nil, fmt.Errorf("%w: slot granularity must be positive", ErrValidation)
	}

	salon := &domain.Salon{
		Name:                   req.Name,
		Address:                req.Address,
		City:                   req.City,
		Phone:                  req.Phone,
		AutoConfirm:            req.AutoConfirm,
		SlotGranularityMinutes: granularity,
		Hours:                  req.Hours,
	}
	if errs := validator.Validate(salon); errs != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, errs)
	}
	if err := s.salons.Create(ctx, salon); err != nil {
		return nil, err
	}
	return salon, nil
}

func (s *Service) GetSalon(ctx context.Context, id int64) (*domain.Salon, error) {
	return s.salons.GetByID(ctx, id)
}

func (s *Service) ListSalons(ctx context.Context) ([]domain.Salon, error) {
	return s.salons.List(ctx)
}

func (s *Service) CreateStaff(ctx context.Context, salonID int64, req CreateStaffRequest) (*domain.Staff, error) {
	if _, err := s.salons.GetByID(ctx, salonID); err != nil {
		return nil, err
	}
	if err := validateWeekSchedule(req.Hours); err != nil {
		return nil, err
	}

	role := domain.StaffRole(req.Role)
	if role == "" {
		role = domain.RoleStaff
	}
	if role != domain.RoleStaff && role != domain.RoleOwner {
		return nil, fmt.Errorf("%w: role must be staff or owner", ErrValidation)
	}

	var hash string
	if req.Password != "" {
		var err error
		hash, err = auth.HashPassword(req.Password)
		if err != nil {
			return nil, err
		}
	}

	// Every capability must reference a service of this salon.
	if len(req.ServiceIDs) > 0 {
		found, err := s.services.GetBySalonAndIDs(ctx, salonID, req.ServiceIDs)
		if err != nil {
			return nil, err
		}
		if len(found) != len(uniqueIDs(req.ServiceIDs)) {
			return nil, fmt.Errorf("%w: unknown service in capability set", ErrValidation)
		}
	}

	staff := &domain.Staff{
		SalonID:      salonID,
		Name:         req.Name,
		Active:       true,
		Email:        req.Email,
		PasswordHash: hash,
		Role:         role,
		Hours:        req.Hours,
		ServiceIDs:   req.ServiceIDs,
	}
	if errs := validator.Validate(staff); errs != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, errs)
	}
	if err := s.staff.Create(ctx, staff); err != nil {
		return nil, err
	}
	staff.PasswordHash = ""
	return staff, nil
}

func (s *Service) ListStaff(ctx context.Context, salonID int64) ([]domain.Staff, error) {
	out, err := s.staff.ListBySalon(ctx, salonID)
	if err != nil {
		return nil, err
	}
	for i := range out {
		out[i].PasswordHash = ""
	}
	return out, nil
}

func (s *Service) CreateService(ctx context.Context, salonID int64, req CreateServiceRequest) (*domain.Service, error) {
	if _, err := s.salons.GetByID(ctx, salonID); err != nil {
		return nil, err
	}

	svc := &domain.Service{
		SalonID:         salonID,
		Name:            req.Name,
		DurationMinutes: req.DurationMinutes,
		Price:           req.Price,
		DiscountPrice:   req.DiscountPrice,
		Active:          true,
	}
	if errs := validator.Validate(svc); errs != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, errs)
	}
	if err := s.services.Create(ctx, svc); err != nil {
		return nil, err
	}
	return svc, nil
}

func (s *Service) ListServices(ctx context.Context, salonID int64) ([]domain.Service, error) {
	return s.services.ListBySalon(ctx, salonID)
}

func (s *Service) CreateExclusion(ctx context.Context, salonID int64, req CreateExclusionRequest) (*domain.Exclusion, error) {
	if _, err := s.salons.GetByID(ctx, salonID); err != nil {
		return nil, err
	}
	if req.StaffID != nil {
		staff, err := s.staff.GetByID(ctx, *req.StaffID)
		if err != nil {
			return nil, err
		}
		if staff.SalonID != salonID {
			return nil, repository.ErrNotFound
		}
	}

	excl := &domain.Exclusion{
		SalonID: salonID,
		StaffID: req.StaffID,
		Type:    domain.ExclusionType(req.Type),
		Kind:    domain.ExclusionKind(req.Kind),
		Label:   req.Label,
		Active:  true,
	}

	var err error
	excl.StartDate, err = parseOptionalDate(req.StartDate)
	if err != nil {
		return nil, err
	}
	excl.EndDate, err = parseOptionalDate(req.EndDate)
	if err != nil {
		return nil, err
	}

	switch excl.Kind {
	case domain.KindOneOff:
		if excl.StartDate == nil {
			return nil, fmt.Errorf("%w: one-off exclusion needs a start date", ErrValidation)
		}
	case domain.KindRecurring:
		if len(req.Weekdays) == 0 {
			return nil, fmt.Errorf("%w: recurring exclusion needs weekdays", ErrValidation)
		}
		for _, d := range req.Weekdays {
			if d < 0 || d > 6 {
				return nil, fmt.Errorf("%w: weekday out of range", ErrValidation)
			}
			excl.Weekdays = append(excl.Weekdays, time.Weekday(d))
		}
	}

	switch excl.Type {
	case domain.ExclusionBreak:
		start, err := schedule.ParseClock(req.StartTime)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid break start time", ErrValidation)
		}
		end, err := schedule.ParseClock(req.EndTime)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid break end time", ErrValidation)
		}
		if end <= start {
			return nil, fmt.Errorf("%w: break must end after it starts", ErrValidation)
		}
		excl.StartTime = start.String()
		excl.EndTime = end.String()
	case domain.ExclusionVacation:
		if req.StartTime != "" || req.EndTime != "" {
			return nil, fmt.Errorf("%w: vacations block whole days, no clock times", ErrValidation)
		}
	}

	if err := s.exclusions.Create(ctx, excl); err != nil {
		return nil, err
	}
	return excl, nil
}

func (s *Service) ListExclusions(ctx context.Context, salonID int64) ([]domain.Exclusion, error) {
	return s.exclusions.ListBySalon(ctx, salonID)
}

// validateWeekSchedule rejects open days whose times do not parse or whose
// window is empty. Closed days carry no constraint.
func validateWeekSchedule(w domain.WeekSchedule) error {
	for d := time.Sunday; d <= time.Saturday; d++ {
		day := w.At(d)
		if !day.Open {
			continue
		}
		start, err := schedule.ParseClock(day.Start)
		if err != nil {
			return fmt.Errorf("%w: invalid start time on %s", ErrValidation, d)
		}
		end, err := schedule.ParseClock(day.End)
		if err != nil {
			return fmt.Errorf("%w: invalid end time on %s", ErrValidation, d)
		}
		if end <= start {
			return fmt.Errorf("%w: %s closes before it opens", ErrValidation, d)
		}
	}
	return nil
}

func parseOptionalDate(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	d, err := time.ParseInLocation("2006-01-02", s, time.UTC)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid date %q", ErrValidation, s)
	}
	return &d, nil
}

func uniqueIDs(ids []int64) []int64 {
	seen := make(map[int64]struct{}, len(ids))
	out := make([]int64, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
