package main

import (
	"context"
	"log"

	"salonbook/internal/booking"
	"salonbook/internal/config"
	"salonbook/internal/database"
	"salonbook/internal/repository"
)

// Offline consistency pass: recompute appointment end times from service
// durations and fix any drifted rows. Safe to run repeatedly.
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatal(err)
	}

	svc := booking.NewService(
		repository.NewSalonRepository(db),
		repository.NewStaffRepository(db),
		repository.NewServiceRepository(db),
		repository.NewAppointmentRepository(db),
		repository.NewExclusionRepository(db),
		nil,
	)

	findings, err := svc.RepairEndTimes(context.Background())
	if err != nil {
		log.Fatal(err)
	}

	if len(findings) == 0 {
		log.Println("No inconsistencies found.")
		return
	}
	for _, f := range findings {
		log.Printf("appointment=%d stored_end=%s expected_end=%s repaired=%t",
			f.AppointmentID, f.StoredEnd, f.ExpectedEnd, f.Repaired)
	}
	log.Printf("Done: %d inconsistent appointment(s).", len(findings))
}
