package main

import (
	"context"
	"log"

	"github.com/joho/godotenv"
	"github.com/pixelclub/pixels-backend/internal/config"
	"github.com/pixelclub/pixels-backend/internal/db"
	"github.com/pixelclub/pixels-backend/internal/model"
	"github.com/pixelclub/pixels-backend/internal/server"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config load error: %v", err)
	}

	conn, err := db.Connect(cfg)
	if err != nil {
		log.Fatalf("db connect error: %v", err)
	}
	if err := conn.AutoMigrate(
		&model.MemberRecord{},
		&model.Semester{},
		&model.Event{},
		&model.EventAttendee{},
		&model.ExcusedAbsence{},
		&model.Activity{},
		&model.ActivityMultiplier{},
		&model.Settings{},
	); err != nil {
		log.Fatalf("auto migrate error: %v", err)
	}

	srv, err := server.New(context.Background(), conn, cfg)
	if err != nil {
		log.Fatalf("server init error: %v", err)
	}

	addr := ":" + cfg.Port
	log.Printf("starting server on %s", addr)
	if err := srv.Start(addr); err != nil {
		log.Fatalf("server stopped: %v", err)
	}
}
