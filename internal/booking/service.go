package booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"salonbook/internal/domain"
	"salonbook/internal/repository"
	"salonbook/internal/schedule"
)

// ChainItem is one (service, staff) pair of a back-to-back booking chain.
type ChainItem struct {
	ServiceID int64 `json:"service_id"`
	StaffID   int64 `json:"staff_id"`
}

type ClientInfo struct {
	Name  string `json:"name"`
	Phone string `json:"phone,omitempty"`
	Email string `json:"email,omitempty"`
}

type BookRequest struct {
	SalonID   int64
	StaffID   int64
	Date      string // "2006-01-02"
	StartTime string // "HH:MM"
	Chain     []ChainItem
	Client    ClientInfo
	Notes     string

	// Initiator is the role of whoever places the booking. Staff- and
	// owner-initiated bookings are confirmed immediately.
	Initiator domain.StaffRole
}

// RescheduleRequest carries only the fields that change; nil means keep.
type RescheduleRequest struct {
	Date      *string
	StartTime *string
	StaffID   *int64
	Chain     []ChainItem
}

type Service struct {
	salons       SalonRepository
	staff        StaffRepository
	services     ServiceRepository
	appointments AppointmentRepository
	exclusions   ExclusionRepository
	events       EventSink

	locks *Locks
	now   func() time.Time
}

func NewService(
	salons SalonRepository,
	staff StaffRepository,
	services ServiceRepository,
	appointments AppointmentRepository,
	exclusions ExclusionRepository,
	events EventSink,
) *Service {
	return &Service{
		salons:       salons,
		staff:        staff,
		services:     services,
		appointments: appointments,
		exclusions:   exclusions,
		events:       events,
		locks:        NewLocks(),
		now:          time.Now,
	}
}

// ComputeDuration sums the durations of the referenced services, in minutes.
// Every identifier must resolve to a service of the salon. Zero is a valid
// result here; only standalone bookings reject it (Book).
func (s *Service) ComputeDuration(ctx context.Context, salonID int64, serviceIDs []int64) (int, error) {
	if len(serviceIDs) == 0 {
		return 0, fmt.Errorf("%w: empty service list", ErrValidation)
	}
	services, err := s.resolveServices(ctx, salonID, serviceIDs)
	if err != nil {
		return 0, err
	}
	total := 0
	for _, svc := range services {
		total += svc.DurationMinutes
	}
	return total, nil
}

// GetWorkingWindow intersects salon and staff hours for the date. ok=false
// means closed.
func (s *Service) GetWorkingWindow(ctx context.Context, staffID, salonID int64, date string) (win schedule.Interval, ok bool, err error) {
	day, err := parseDate(date)
	if err != nil {
		return schedule.Interval{}, false, err
	}
	salon, staff, err := s.loadSalonStaff(ctx, salonID, staffID)
	if err != nil {
		return schedule.Interval{}, false, err
	}
	win, ok = schedule.WorkingWindow(salon.Hours, staff.Hours, day)
	return win, ok, nil
}

// IsAvailable runs the overlap checker for a candidate interval against the
// staff member's appointments, breaks and vacations on that date.
// excludeAppointmentID skips that appointment's own occupancy (reschedule).
func (s *Service) IsAvailable(ctx context.Context, staffID int64, date, startTime string, durationMinutes int, excludeAppointmentID int64) (bool, error) {
	day, err := parseDate(date)
	if err != nil {
		return false, err
	}
	start, err := parseClock(startTime)
	if err != nil {
		return false, err
	}
	if durationMinutes < 0 {
		return false, fmt.Errorf("%w: negative duration", ErrValidation)
	}

	staff, err := s.getStaff(ctx, staffID)
	if err != nil {
		return false, err
	}
	busy, err := s.loadBusy(ctx, staff, day)
	if err != nil {
		return false, err
	}

	candidate := schedule.Interval{Start: start, End: start + schedule.Minutes(durationMinutes)}
	return schedule.IsFree(candidate, busy, excludeAppointmentID), nil
}

// GenerateSlots enumerates the start times at which the whole chain can be
// booked back-to-back on the given date. The window is the chain's first
// staff member's; later legs are checked for conflicts only. Results are
// ascending "HH:MM" strings with no duplicates.
func (s *Service) GenerateSlots(ctx context.Context, salonID int64, date string, chain []ChainItem) ([]string, error) {
	if len(chain) == 0 {
		return nil, fmt.Errorf("%w: empty chain", ErrValidation)
	}
	day, err := parseDate(date)
	if err != nil {
		return nil, err
	}
	salon, err := s.getSalon(ctx, salonID)
	if err != nil {
		return nil, err
	}

	steps, firstStaff, err := s.resolveChain(ctx, salon, day, chain)
	if err != nil {
		return nil, err
	}

	win, ok := schedule.WorkingWindow(salon.Hours, firstStaff.Hours, day)
	if !ok {
		return []string{}, nil
	}

	granularity := salon.SlotGranularityMinutes
	if granularity <= 0 {
		granularity = 30
	}

	notBefore := schedule.Minutes(-1)
	if sameDate(day, s.now().UTC()) {
		notBefore = schedule.ClockOf(s.now().UTC())
	}

	starts := schedule.Slots(win, granularity, steps, 0, notBefore)
	out := make([]string, 0, len(starts))
	var prev string
	for _, st := range starts {
		formatted := st.String()
		if formatted == prev {
			continue
		}
		out = append(out, formatted)
		prev = formatted
	}
	return out, nil
}

// Book runs the full booking transaction: validate, lock the staff member,
// re-check availability against the live appointment set, persist.
// Concurrent attempts on the same slot leave exactly one winner; the loser
// gets ErrSlotConflict.
func (s *Service) Book(ctx context.Context, req BookRequest) (*domain.Appointment, error) {
	// Validating.
	day, err := parseDate(req.Date)
	if err != nil {
		return nil, err
	}
	start, err := parseClock(req.StartTime)
	if err != nil {
		return nil, err
	}
	if len(req.Chain) == 0 {
		return nil, fmt.Errorf("%w: empty chain", ErrValidation)
	}
	// Multi-resource chains are booked as independent appointments; this
	// transaction covers a single staff member.
	for _, item := range req.Chain {
		if item.StaffID != req.StaffID {
			return nil, fmt.Errorf("%w: chain references a different staff member", ErrValidation)
		}
	}

	salon, staff, err := s.loadSalonStaff(ctx, req.SalonID, req.StaffID)
	if err != nil {
		return nil, err
	}
	if !staff.Active {
		return nil, fmt.Errorf("%w: staff member is inactive", ErrValidation)
	}

	serviceIDs := chainServiceIDs(req.Chain)
	services, err := s.resolveServices(ctx, salon.ID, serviceIDs)
	if err != nil {
		return nil, err
	}
	total := 0
	for _, svc := range services {
		if !staff.CanPerform(svc.ID) {
			return nil, ErrCapability
		}
		total += svc.DurationMinutes
	}
	if total == 0 {
		return nil, ErrZeroDuration
	}
	if err := s.rejectPast(day, start); err != nil {
		return nil, err
	}

	// Locking. The lock covers both the re-check and the write; anything
	// less would let two requests observe the same free slot.
	release := s.locks.Acquire(staff.ID)
	defer release()

	// Rechecking, now against the live appointment set.
	if err := s.recheck(ctx, salon, staff, day, start, total, 0); err != nil {
		return nil, err
	}

	// Persisting.
	appt := &domain.Appointment{
		SalonID:         salon.ID,
		StaffID:         staff.ID,
		ServiceIDs:      serviceIDs,
		Date:            day,
		StartTime:       start.String(),
		EndTime:         (start + schedule.Minutes(total)).String(),
		DurationMinutes: total,
		Status:          s.initialStatus(salon, req.Initiator),
		ClientName:      req.Client.Name,
		ClientPhone:     req.Client.Phone,
		ClientEmail:     req.Client.Email,
		Notes:           req.Notes,
	}
	if err := s.appointments.Create(ctx, appt); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrSlotConflict
		}
		return nil, err
	}

	if s.events != nil {
		s.events.AppointmentBooked(appt)
	}
	return appt, nil
}

// Reschedule re-enters the booking transaction for an existing appointment.
// The overlap re-check excludes the appointment's own prior occupancy, so
// shifting it slightly never conflicts with itself.
func (s *Service) Reschedule(ctx context.Context, appointmentID int64, req RescheduleRequest) (*domain.Appointment, error) {
	appt, err := s.getAppointment(ctx, appointmentID)
	if err != nil {
		return nil, err
	}
	if !appt.Status.Occupies() {
		return nil, fmt.Errorf("%w: appointment is %s", ErrValidation, appt.Status)
	}

	date := appt.Date
	if req.Date != nil {
		date, err = parseDate(*req.Date)
		if err != nil {
			return nil, err
		}
	}
	startStr := appt.StartTime
	if req.StartTime != nil {
		startStr = *req.StartTime
	}
	start, err := parseClock(startStr)
	if err != nil {
		return nil, err
	}
	staffID := appt.StaffID
	if req.StaffID != nil {
		staffID = *req.StaffID
	}
	serviceIDs := appt.ServiceIDs
	if req.Chain != nil {
		for _, item := range req.Chain {
			if item.StaffID != staffID {
				return nil, fmt.Errorf("%w: chain references a different staff member", ErrValidation)
			}
		}
		serviceIDs = chainServiceIDs(req.Chain)
	}

	salon, staff, err := s.loadSalonStaff(ctx, appt.SalonID, staffID)
	if err != nil {
		return nil, err
	}
	if !staff.Active {
		return nil, fmt.Errorf("%w: staff member is inactive", ErrValidation)
	}
	services, err := s.resolveServices(ctx, salon.ID, serviceIDs)
	if err != nil {
		return nil, err
	}
	total := 0
	for _, svc := range services {
		if !staff.CanPerform(svc.ID) {
			return nil, ErrCapability
		}
		total += svc.DurationMinutes
	}
	if total == 0 {
		return nil, ErrZeroDuration
	}
	if err := s.rejectPast(date, start); err != nil {
		return nil, err
	}

	release := s.locks.Acquire(staff.ID)
	defer release()

	if err := s.recheck(ctx, salon, staff, date, start, total, appt.ID); err != nil {
		return nil, err
	}

	appt.StaffID = staff.ID
	appt.ServiceIDs = serviceIDs
	appt.Date = date
	appt.StartTime = start.String()
	appt.EndTime = (start + schedule.Minutes(total)).String()
	appt.DurationMinutes = total
	if err := s.appointments.Update(ctx, appt); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrSlotConflict
		}
		return nil, err
	}

	if s.events != nil {
		s.events.AppointmentRescheduled(appt)
	}
	return appt, nil
}

// Transition applies a status change (confirm, cancel, no-show, complete)
// after checking the lifecycle rules. Appointments are never deleted.
func (s *Service) Transition(ctx context.Context, appointmentID int64, to domain.AppointmentStatus, reason string) (*domain.Appointment, error) {
	appt, err := s.getAppointment(ctx, appointmentID)
	if err != nil {
		return nil, err
	}
	if !domain.CanTransition(appt.Status, to) {
		return nil, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, appt.Status, to)
	}
	if err := s.appointments.UpdateStatus(ctx, appt.ID, to, reason); err != nil {
		return nil, err
	}
	updated, err := s.getAppointment(ctx, appt.ID)
	if err != nil {
		return nil, err
	}
	if s.events != nil && to == domain.AppointmentCancelled {
		s.events.AppointmentCancelled(updated)
	}
	return updated, nil
}

// ListDay returns a salon's appointments for one date, all statuses.
func (s *Service) ListDay(ctx context.Context, salonID int64, date string) ([]domain.Appointment, error) {
	day, err := parseDate(date)
	if err != nil {
		return nil, err
	}
	return s.appointments.ListBySalonDate(ctx, salonID, day)
}

// GetAppointment loads one appointment by id.
func (s *Service) GetAppointment(ctx context.Context, id int64) (*domain.Appointment, error) {
	return s.getAppointment(ctx, id)
}

// recheck replays the window and overlap checks inside the lock.
func (s *Service) recheck(ctx context.Context, salon *domain.Salon, staff *domain.Staff, day time.Time, start schedule.Minutes, total int, excludeID int64) error {
	win, ok := schedule.WorkingWindow(salon.Hours, staff.Hours, day)
	if !ok {
		return ErrSlotConflict
	}
	end := start + schedule.Minutes(total)
	if start < win.Start || end > win.End {
		return ErrSlotConflict
	}
	busy, err := s.loadBusy(ctx, staff, day)
	if err != nil {
		return err
	}
	if !schedule.IsFree(schedule.Interval{Start: start, End: end}, busy, excludeID) {
		return ErrSlotConflict
	}
	return nil
}

func (s *Service) initialStatus(salon *domain.Salon, initiator domain.StaffRole) domain.AppointmentStatus {
	if salon.AutoConfirm || initiator == domain.RoleStaff || initiator == domain.RoleOwner {
		return domain.AppointmentConfirmed
	}
	return domain.AppointmentPending
}

func (s *Service) loadBusy(ctx context.Context, staff *domain.Staff, day time.Time) ([]schedule.Busy, error) {
	appts, err := s.appointments.ListForDay(ctx, staff.ID, day)
	if err != nil {
		return nil, err
	}
	excl, err := s.exclusions.ListApplicable(ctx, staff.SalonID, staff.ID)
	if err != nil {
		return nil, err
	}
	busy := schedule.AppointmentBusy(appts)
	return append(busy, schedule.ExclusionBusy(excl, day)...), nil
}

// resolveChain loads and validates every (service, staff) pair, returning
// the slot-generation steps plus the first pair's staff member. Busy sets
// are loaded once per distinct staff member. Inactive staff and services are
// rejected just as Book rejects them. Capability is not checked on the read
// path; only the booking transaction enforces it.
func (s *Service) resolveChain(ctx context.Context, salon *domain.Salon, day time.Time, chain []ChainItem) ([]schedule.ChainStep, *domain.Staff, error) {
	servicesByID := make(map[int64]domain.Service)
	services, err := s.resolveServices(ctx, salon.ID, chainServiceIDs(chain))
	if err != nil {
		return nil, nil, err
	}
	for _, svc := range services {
		servicesByID[svc.ID] = svc
	}

	staffByID := make(map[int64]*domain.Staff)
	busyByStaff := make(map[int64][]schedule.Busy)
	var firstStaff *domain.Staff

	steps := make([]schedule.ChainStep, 0, len(chain))
	for _, item := range chain {
		staff, ok := staffByID[item.StaffID]
		if !ok {
			staff, err = s.getStaff(ctx, item.StaffID)
			if err != nil {
				return nil, nil, err
			}
			if staff.SalonID != salon.ID {
				return nil, nil, ErrNotFound
			}
			// Keep the read path aligned with Book: never surface slots
			// that every booking attempt would refuse.
			if !staff.Active {
				return nil, nil, fmt.Errorf("%w: staff member is inactive", ErrValidation)
			}
			staffByID[item.StaffID] = staff
			busyByStaff[item.StaffID], err = s.loadBusy(ctx, staff, day)
			if err != nil {
				return nil, nil, err
			}
		}
		if firstStaff == nil {
			firstStaff = staff
		}
		svc := servicesByID[item.ServiceID]
		steps = append(steps, schedule.ChainStep{
			Duration: svc.DurationMinutes,
			Busy:     busyByStaff[item.StaffID],
		})
	}
	return steps, firstStaff, nil
}

// resolveServices loads services in the requested order and fails with
// ErrNotFound if any identifier does not belong to the salon.
func (s *Service) resolveServices(ctx context.Context, salonID int64, ids []int64) ([]domain.Service, error) {
	found, err := s.services.GetBySalonAndIDs(ctx, salonID, ids)
	if err != nil {
		return nil, err
	}
	byID := make(map[int64]domain.Service, len(found))
	for _, svc := range found {
		byID[svc.ID] = svc
	}
	out := make([]domain.Service, 0, len(ids))
	for _, id := range ids {
		svc, ok := byID[id]
		if !ok {
			return nil, fmt.Errorf("%w: service %d", ErrNotFound, id)
		}
		out = append(out, svc)
	}
	return out, nil
}

func (s *Service) loadSalonStaff(ctx context.Context, salonID, staffID int64) (*domain.Salon, *domain.Staff, error) {
	salon, err := s.getSalon(ctx, salonID)
	if err != nil {
		return nil, nil, err
	}
	staff, err := s.getStaff(ctx, staffID)
	if err != nil {
		return nil, nil, err
	}
	if staff.SalonID != salon.ID {
		return nil, nil, fmt.Errorf("%w: staff %d does not belong to salon %d", ErrNotFound, staffID, salonID)
	}
	return salon, staff, nil
}

func (s *Service) getSalon(ctx context.Context, id int64) (*domain.Salon, error) {
	salon, err := s.salons.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("%w: salon %d", ErrNotFound, id)
		}
		return nil, err
	}
	return salon, nil
}

func (s *Service) getStaff(ctx context.Context, id int64) (*domain.Staff, error) {
	staff, err := s.staff.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("%w: staff %d", ErrNotFound, id)
		}
		return nil, err
	}
	return staff, nil
}

func (s *Service) getAppointment(ctx context.Context, id int64) (*domain.Appointment, error) {
	appt, err := s.appointments.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("%w: appointment %d", ErrNotFound, id)
		}
		return nil, err
	}
	return appt, nil
}

func (s *Service) rejectPast(day time.Time, start schedule.Minutes) error {
	now := s.now().UTC()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	if day.Before(today) {
		return fmt.Errorf("%w: date is in the past", ErrValidation)
	}
	if day.Equal(today) && start <= schedule.ClockOf(now) {
		return fmt.Errorf("%w: start time is in the past", ErrValidation)
	}
	return nil
}

func chainServiceIDs(chain []ChainItem) []int64 {
	out := make([]int64, 0, len(chain))
	for _, item := range chain {
		out = append(out, item.ServiceID)
	}
	return out
}

func parseDate(s string) (time.Time, error) {
	day, err := time.ParseInLocation("2006-01-02", s, time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: invalid date %q", ErrValidation, s)
	}
	return day, nil
}

func parseClock(s string) (schedule.Minutes, error) {
	m, err := schedule.ParseClock(s)
	if err != nil {
		return 0, fmt.Errorf("%w: invalid time %q", ErrValidation, s)
	}
	return m, nil
}

func sameDate(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
