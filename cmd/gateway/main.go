package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/redis/go-redis/v9"

	api "github.com/quizhire/recruitment/internal/api/http"
	auth "github.com/quizhire/recruitment/internal/auth/middleware"
	"github.com/quizhire/recruitment/internal/config"
	"github.com/quizhire/recruitment/internal/db"
	"github.com/quizhire/recruitment/internal/events"
	"github.com/quizhire/recruitment/internal/identity"
	"github.com/quizhire/recruitment/internal/quiz"
	"github.com/quizhire/recruitment/internal/recruit"
	"github.com/quizhire/recruitment/internal/storage"
)

func main() {
	cfg := config.FromEnv()

	// --- DB ---
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	dbh, err := db.Open(ctx, db.Driver(cfg.DBDriver), cfg.DBDSN)
	if err != nil {
		log.Fatalf("db open failed: %v", err)
	}
	defer dbh.Close()

	bs, err := storage.NewFSStore(cfg.BlobBasePath, cfg.ResumeBaseURL)
	if err != nil {
		log.Fatalf("blob store: %v", err)
	}

	eventLog := events.NewLogRepo(dbh)
	pub := publisher(cfg, eventLog)
	authSvc := auth.NewAuthService(cfg.AuthSecret, cfg.AuthTokenTTL)
	recruitStore := recruit.NewSQLStore(dbh)

	var provider identity.Provider
	switch cfg.Identity {
	case config.IdentityOAuth:
		if cfg.OAuthTokenURL == "" {
			log.Fatal("OAUTH_TOKEN_URL is required when IDENTITY_DRIVER=oauth")
		}
		provider = identity.NewOAuthProvider(cfg.OAuthTokenURL, cfg.OAuthClientID, cfg.OAuthClientSecret, cfg.OAuthScopes)
	case config.IdentityLocal:
		provider = identity.NewLocalProvider(dbh)
	default:
		log.Fatalf("unknown IDENTITY_DRIVER %q", cfg.Identity)
	}

	r := api.NewRouter(api.Deps{
		Auth:        authSvc,
		Identity:    identity.NewService(recruitStore, provider, authSvc, cfg.IsAdminEmail),
		Recruit:     recruit.NewService(recruitStore, bs),
		Quiz:        quiz.NewService(quiz.NewSQLStore(dbh), pub),
		Events:      eventLog,
		AttachRole:  auth.AttachRoleFromDB(dbh),
		Ping:        dbh.PingContext,
		CORSOrigins: cfg.CORSOrigins,
	})

	s := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
	}
	log.Printf("listening on %s (db=%s, identity=%s, events=%s)", cfg.HTTPAddr, cfg.DBDriver, cfg.Identity, cfg.EventsDriver)
	log.Fatal(s.ListenAndServe())
}

func publisher(cfg config.Config, eventLog *events.LogRepo) events.Publisher {
	switch cfg.EventsDriver {
	case "db":
		return eventLog
	case "redis":
		client := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr, Password: cfg.RedisPassword})
		return events.NewRedisPublisher(client, cfg.RedisChannel)
	case "none":
		return events.Nop{}
	}
	log.Fatalf("unknown EVENTS_DRIVER %q", cfg.EventsDriver)
	return nil
}
