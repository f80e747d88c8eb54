package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/pixelclub/pixels-backend/internal/config"
	"github.com/pixelclub/pixels-backend/internal/db"
	"github.com/pixelclub/pixels-backend/internal/model"
	"github.com/pixelclub/pixels-backend/internal/repository"
)

func main() {
	if err := run(); err != nil {
		log.Fatalf("seed failed: %v", err)
	}
}

func run() error {
	ctx := context.Background()
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	gdb, err := db.Connect(cfg)
	if err != nil {
		return fmt.Errorf("connect db: %w", err)
	}
	if err := gdb.AutoMigrate(
		&model.MemberRecord{},
		&model.Semester{},
		&model.Event{},
		&model.EventAttendee{},
		&model.ExcusedAbsence{},
		&model.Activity{},
		&model.ActivityMultiplier{},
		&model.Settings{},
	); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}

	semesterRepo := repository.NewSemesterRepository(gdb)
	settingsRepo := repository.NewSettingsRepository(gdb)
	eventRepo := repository.NewEventRepository(gdb)
	activityRepo := repository.NewActivityRepository(gdb)

	existing, err := semesterRepo.List(ctx)
	if err != nil {
		return fmt.Errorf("list semesters: %w", err)
	}
	if len(existing) > 0 {
		log.Printf("semesters already present; skipping seed")
		return nil
	}

	sem := &model.Semester{Name: "Fall 2026"}
	if err := semesterRepo.Create(ctx, sem); err != nil {
		return fmt.Errorf("create semester: %w", err)
	}
	if err := settingsRepo.SetCurrentSemester(ctx, &sem.ID); err != nil {
		return fmt.Errorf("set current semester: %w", err)
	}

	events := []model.Event{
		{Name: "Kickoff GBM", Date: time.Date(2026, 9, 3, 18, 0, 0, 0, time.UTC), Type: model.EventTypeGBM, Pixels: 10, SemesterID: sem.ID},
		{Name: "Resume Workshop", Date: time.Date(2026, 9, 10, 18, 0, 0, 0, time.UTC), Type: model.EventTypeOtherProfDev, Pixels: 5, SemesterID: sem.ID},
		{Name: "Game Night", Date: time.Date(2026, 9, 17, 19, 0, 0, 0, time.UTC), Type: model.EventTypeSocial, Pixels: 5, SemesterID: sem.ID},
	}
	for i := range events {
		if err := eventRepo.Create(ctx, &events[i]); err != nil {
			return fmt.Errorf("create event %q: %w", events[i].Name, err)
		}
	}

	activities := []model.Activity{
		{Name: "Coffee Chats", Type: model.ActivityTypeCoffeeChat, Pixels: 5, SemesterID: sem.ID},
		{Name: "Mentor Bonding", Type: model.ActivityTypeBonding, Pixels: 3, SemesterID: sem.ID},
	}
	for i := range activities {
		if err := activityRepo.Create(ctx, &activities[i]); err != nil {
			return fmt.Errorf("create activity %q: %w", activities[i].Name, err)
		}
	}

	log.Printf("seeded semester %q with %d events and %d activities", sem.Name, len(events), len(activities))
	return nil
}
