// Command seed creates the first admin user and, with -samples, a few example
// questionnaires and demo requests.
package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"framtt_backend/internal/adapters"
	authrepo "framtt_backend/internal/auth/repository"
	authsvc "framtt_backend/internal/auth/service"
	authtransport "framtt_backend/internal/auth/transport"
	authvalidator "framtt_backend/internal/auth/validator"
	demorepo "framtt_backend/internal/demo/repository"
	demosvc "framtt_backend/internal/demo/service"
	"framtt_backend/internal/events"
	leadrepo "framtt_backend/internal/leads/repository"
	leadsvc "framtt_backend/internal/leads/service"
	questionnairerepo "framtt_backend/internal/questionnaire/repository"
	questionnairesvc "framtt_backend/internal/questionnaire/service"
	"framtt_backend/platform/apperr"
	"framtt_backend/platform/config"
	"framtt_backend/platform/db"
	"framtt_backend/platform/httpkit"
	"framtt_backend/platform/logger"
)

func main() {
	samples := flag.Bool("samples", false, "also insert sample questionnaires and demo requests")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		panic("failed to load config: " + err.Error())
	}
	log := logger.New(cfg.Env)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	pool, err := db.NewPool(ctx, cfg)
	if err != nil {
		log.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer pool.Close()

	users := authsvc.New(authrepo.New(pool), cfg, log)
	if err := seedAdmin(ctx, users, log); err != nil {
		log.Error("failed to seed admin user", "error", err)
		os.Exit(1)
	}

	if !*samples {
		return
	}

	// No subscribers: seeding must not send emails.
	bus := events.NewInMemoryBus(log)
	region := cfg.GetDefaultPhoneRegion()
	leads := leadsvc.New(leadrepo.New(pool), bus, region, log)
	demos := demosvc.New(demorepo.New(pool), adapters.NewDemoLeadUpserter(leads), bus, region, log)
	questionnaires := questionnairesvc.New(questionnairerepo.New(pool), bus, log)

	for _, q := range sampleQuestionnaires() {
		if _, err := questionnaires.Submit(ctx, q, httpkit.ClientMeta{}); err != nil {
			log.Error("failed to seed questionnaire", "error", err)
			os.Exit(1)
		}
	}
	for _, d := range sampleDemoRequests() {
		resp, err := demos.Submit(ctx, d, httpkit.ClientMeta{})
		if err != nil {
			log.Error("failed to seed demo request", "error", err)
			os.Exit(1)
		}
		log.Info("seeded demo request", "id", resp.RequestID, "type", resp.Type)
	}
	log.Info("sample data inserted")
}

func seedAdmin(ctx context.Context, users *authsvc.Service, log *logger.Logger) error {
	email := os.Getenv("SEED_ADMIN_EMAIL")
	password := os.Getenv("SEED_ADMIN_PASSWORD")
	if email == "" || password == "" {
		log.Warn("SEED_ADMIN_EMAIL or SEED_ADMIN_PASSWORD not set; skipping admin user")
		return nil
	}
	if !authvalidator.IsStrongPassword(password) {
		return apperr.Validation(authvalidator.PasswordPolicy)
	}

	name := "Administrator"
	profile, err := users.CreateUser(ctx, authtransport.CreateUserRequest{
		Email:    email,
		Password: password,
		Name:     &name,
		Role:     httpkit.RoleAdmin,
	})
	if apperr.Is(err, apperr.KindConflict) {
		log.Info("admin user already exists", "email", email)
		return nil
	}
	if err != nil {
		return err
	}
	log.Info("admin user created", "id", profile.ID, "email", profile.Email)
	return nil
}
