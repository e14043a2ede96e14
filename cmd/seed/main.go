package main

import (
	"log"
	"time"

	"golang.org/x/crypto/bcrypt"

	"salonbook/internal/database"
	"salonbook/internal/domain"
)

// Seeds a demo salon with staff, services and a recurring lunch break so the
// API is usable out of the box.
func main() {
	db, err := database.Connect("salonbook.db")
	if err != nil {
		log.Fatal("DB connection failed:", err)
	}

	log.Println("Running migrations...")
	if err := database.Migrate(db); err != nil {
		log.Fatal("Migrate failed:", err)
	}

	log.Println("Cleaning old data...")
	db.Exec("DELETE FROM appointments")
	db.Exec("DELETE FROM exclusions")
	db.Exec("DELETE FROM staff")
	db.Exec("DELETE FROM services")
	db.Exec("DELETE FROM salons")

	log.Println("Creating salon...")
	salon := domain.Salon{
		Name:                   "Main Street Salon",
		Address:                "12 Main Street",
		City:                   "Springfield",
		Phone:                  "+1 555 010 0000",
		AutoConfirm:            false,
		SlotGranularityMinutes: 30,
		Hours:                  domain.NewWeekSchedule("09:00", "18:00"),
	}
	db.Create(&salon)

	log.Println("Creating services...")
	haircut := domain.Service{SalonID: salon.ID, Name: "Haircut", DurationMinutes: 30, Price: 40, Active: true}
	coloring := domain.Service{SalonID: salon.ID, Name: "Coloring", DurationMinutes: 90, Price: 120, Active: true}
	beardTrim := domain.Service{SalonID: salon.ID, Name: "Beard trim add-on", DurationMinutes: 0, Price: 5, Active: true}
	db.Create(&haircut)
	db.Create(&coloring)
	db.Create(&beardTrim)

	log.Println("Creating staff...")
	ownerHash, _ := bcrypt.GenerateFromPassword([]byte("owner123"), bcrypt.DefaultCost)
	owner := domain.Staff{
		SalonID:      salon.ID,
		Name:         "Olivia Owner",
		Active:       true,
		Email:        "owner@mainstreet.salon",
		PasswordHash: string(ownerHash),
		Role:         domain.RoleOwner,
		Hours:        domain.NewWeekSchedule("09:00", "18:00"),
		ServiceIDs:   []int64{haircut.ID, coloring.ID, beardTrim.ID},
	}
	db.Create(&owner)

	staffHash, _ := bcrypt.GenerateFromPassword([]byte("staff123"), bcrypt.DefaultCost)
	stylist := domain.Staff{
		SalonID:      salon.ID,
		Name:         "Alex Stylist",
		Active:       true,
		Email:        "alex@mainstreet.salon",
		PasswordHash: string(staffHash),
		Role:         domain.RoleStaff,
		Hours:        domain.NewWeekSchedule("10:00", "18:00"),
		ServiceIDs:   []int64{haircut.ID, beardTrim.ID},
	}
	db.Create(&stylist)

	log.Println("Creating exclusions...")
	lunch := domain.Exclusion{
		SalonID:   salon.ID,
		Type:      domain.ExclusionBreak,
		Kind:      domain.KindRecurring,
		Weekdays:  []time.Weekday{time.Monday, time.Tuesday, time.Wednesday, time.Thursday, time.Friday},
		StartTime: "13:00",
		EndTime:   "14:00",
		Label:     "Lunch",
		Active:    true,
	}
	db.Create(&lunch)

	nextMonth := time.Now().UTC().AddDate(0, 1, 0)
	vacStart := time.Date(nextMonth.Year(), nextMonth.Month(), 1, 0, 0, 0, 0, time.UTC)
	vacEnd := vacStart.AddDate(0, 0, 6)
	vacation := domain.Exclusion{
		SalonID:   salon.ID,
		StaffID:   &stylist.ID,
		Type:      domain.ExclusionVacation,
		Kind:      domain.KindOneOff,
		StartDate: &vacStart,
		EndDate:   &vacEnd,
		Label:     "Annual leave",
		Active:    true,
	}
	db.Create(&vacation)

	log.Println("Seed completed.")
	log.Println("Owner login: owner@mainstreet.salon / owner123")
	log.Println("Staff login: alex@mainstreet.salon / staff123")
}
