package main

import (
	"context"
	"os"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"votehub/internal/config"
	"votehub/internal/db"
	"votehub/internal/model"
	"votehub/internal/repository"
	"votehub/internal/service"
)

// Seeds the initial admin user and, when the database has no polls yet, a
// demo poll so the UI has something to render.
func main() {
	logrus.Info("starting seed")

	cfg := config.Load()

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		logrus.Fatalf("database init: %v", err)
	}

	if err := gormDB.AutoMigrate(
		&model.User{},
		&model.Poll{},
		&model.PollOption{},
		&model.PollMedia{},
		&model.OptionMedia{},
		&model.Vote{},
		&model.NotificationPreference{},
		&model.AuditLog{},
	); err != nil {
		logrus.Fatalf("auto-migrate: %v", err)
	}

	ctx := context.Background()
	userRepo := repository.NewUserRepository(gormDB)
	pollRepo := repository.NewPollRepository(gormDB)

	admin := seedAdmin(ctx, userRepo)
	seedDemoPoll(ctx, pollRepo, admin)

	logrus.Info("seed complete")
}

func seedAdmin(ctx context.Context, userRepo repository.UserRepository) *model.User {
	email := getEnv("ADMIN_EMAIL", "admin@votehub.local")
	password := getEnv("ADMIN_PASSWORD", "change-me-now")

	existing, err := userRepo.FindByEmail(ctx, email)
	if err == nil {
		logrus.Infof("admin %s already exists", email)
		return existing
	}
	if err != gorm.ErrRecordNotFound {
		logrus.Fatalf("check admin: %v", err)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), 10)
	if err != nil {
		logrus.Fatalf("hash admin password: %v", err)
	}

	admin := &model.User{
		Email:        email,
		PasswordHash: string(hashed),
		FirstName:    "Admin",
		Role:         model.RoleAdmin,
		Active:       true,
	}
	if err := userRepo.Create(ctx, admin); err != nil {
		logrus.Fatalf("create admin: %v", err)
	}
	logrus.Infof("created admin %s", email)
	return admin
}

func seedDemoPoll(ctx context.Context, pollRepo repository.PollRepository, admin *model.User) {
	polls, err := pollRepo.List(ctx, "")
	if err != nil {
		logrus.Fatalf("list polls: %v", err)
	}
	if len(polls) > 0 {
		logrus.Info("polls already present, skipping demo poll")
		return
	}

	start := time.Now().Add(-time.Hour)
	end := time.Now().Add(7 * 24 * time.Hour)
	title := "Where should the next team offsite be?"
	poll := &model.Poll{
		Title:       title,
		Slug:        service.TitleToSlug(title),
		Description: "Pick one. Voting closes in a week.",
		Status:      model.PollStatusDraft,
		StartTime:   &start,
		EndTime:     &end,
		CreatedBy:   admin.ID,
	}
	if err := pollRepo.Create(ctx, poll); err != nil {
		logrus.Fatalf("create demo poll: %v", err)
	}

	for i, label := range []string{"Mountains", "Seaside", "City break"} {
		option := &model.PollOption{PollID: poll.ID, Label: label, Position: i}
		if err := pollRepo.CreateOption(ctx, option); err != nil {
			logrus.Fatalf("create demo option: %v", err)
		}
	}

	if err := pollRepo.UpdateStatus(ctx, poll.ID, model.PollStatusActive); err != nil {
		logrus.Fatalf("activate demo poll: %v", err)
	}
	logrus.Infof("created demo poll %s", poll.ID)
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
