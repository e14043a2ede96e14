package booking

import (
	"context"
	"errors"

	"salonbook/internal/schedule"
)

// Inconsistency is one appointment whose stored end time disagreed with the
// sum of its services' durations. New writes never produce these; they are
// data damage to repair offline, not logic to tolerate.
type Inconsistency struct {
	AppointmentID int64  `json:"appointment_id"`
	StoredEnd     string `json:"stored_end"`
	ExpectedEnd   string `json:"expected_end"`
	Repaired      bool   `json:"repaired"`
}

// RepairEndTimes scans every occupying appointment, recomputes the end time
// from the authoritative duration sum and fixes any drift. Running it twice
// in a row finds nothing the second time; already-correct rows are never
// touched.
func (s *Service) RepairEndTimes(ctx context.Context) ([]Inconsistency, error) {
	appts, err := s.appointments.ListOccupying(ctx)
	if err != nil {
		return nil, err
	}

	var findings []Inconsistency
	for i := range appts {
		appt := &appts[i]

		services, err := s.resolveServices(ctx, appt.SalonID, appt.ServiceIDs)
		if err != nil {
			if errors.Is(err, ErrNotFound) {
				// A referenced service no longer resolves; there is no
				// authoritative sum to repair against.
				continue
			}
			return findings, err
		}
		total := 0
		for _, svc := range services {
			total += svc.DurationMinutes
		}

		start, err := schedule.ParseClock(appt.StartTime)
		if err != nil {
			continue
		}
		expected := (start + schedule.Minutes(total)).String()
		if appt.EndTime == expected && appt.DurationMinutes == total {
			continue
		}

		finding := Inconsistency{
			AppointmentID: appt.ID,
			StoredEnd:     appt.EndTime,
			ExpectedEnd:   expected,
		}
		appt.EndTime = expected
		appt.DurationMinutes = total
		appt.StartTime = start.String() // drops stray seconds too
		if err := s.appointments.Update(ctx, appt); err == nil {
			finding.Repaired = true
		}
		findings = append(findings, finding)
	}
	return findings, nil
}
