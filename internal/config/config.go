package config

import (
	"os"
	"strings"
	"time"
)

type IdentityDriver string

const (
	IdentityLocal IdentityDriver = "local"
	IdentityOAuth IdentityDriver = "oauth"
)

type Config struct {
	HTTPAddr string

	DBDriver string
	DBDSN    string

	BlobBasePath  string
	ResumeBaseURL string // public prefix for resume URLs; empty uses the blob store's own URL

	AuthSecret   string
	AuthTokenTTL time.Duration
	AdminEmails  []string

	Identity          IdentityDriver
	OAuthTokenURL     string
	OAuthClientID     string
	OAuthClientSecret string
	OAuthScopes       []string

	EventsDriver  string // db|redis|none
	RedisAddr     string
	RedisPassword string
	RedisChannel  string

	CORSOrigins []string
}

func FromEnv() Config {
	return Config{
		HTTPAddr:          envOr("HTTP_ADDR", ":8080"),
		DBDriver:          envOr("DB_DRIVER", "sqlite"),
		DBDSN:             envOr("DB_DSN", ""),
		BlobBasePath:      envOr("BLOB_BASE_PATH", "./data"),
		ResumeBaseURL:     strings.TrimSuffix(os.Getenv("RESUME_BASE_URL"), "/"),
		AuthSecret:        envOr("AUTH_HMAC_SECRET", "supersecret-dev-key"),
		AuthTokenTTL:      envDuration("AUTH_TOKEN_TTL", 8*time.Hour),
		AdminEmails:       csvOr("ADMIN_EMAILS", ""),
		Identity:          IdentityDriver(envOr("IDENTITY_DRIVER", string(IdentityLocal))),
		OAuthTokenURL:     os.Getenv("OAUTH_TOKEN_URL"),
		OAuthClientID:     os.Getenv("OAUTH_CLIENT_ID"),
		OAuthClientSecret: os.Getenv("OAUTH_CLIENT_SECRET"),
		OAuthScopes:       csvOr("OAUTH_SCOPES", "openid,email"),
		EventsDriver:      envOr("EVENTS_DRIVER", "db"),
		RedisAddr:         envOr("REDIS_ADDR", "localhost:6379"),
		RedisPassword:     os.Getenv("REDIS_PASSWORD"),
		RedisChannel:      envOr("REDIS_CHANNEL", "quiz-events"),
		CORSOrigins:       csvOr("CORS_ORIGINS", "http://localhost:3000"),
	}
}

// IsAdminEmail reports whether email is listed in ADMIN_EMAILS.
func (c Config) IsAdminEmail(email string) bool {
	email = strings.ToLower(strings.TrimSpace(email))
	for _, e := range c.AdminEmails {
		if strings.ToLower(e) == email {
			return true
		}
	}
	return false
}

func envOr(k, def string) string {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	return v
}
func envDuration(k string, def time.Duration) time.Duration {
	d, err := time.ParseDuration(os.Getenv(k))
	if err != nil || d <= 0 {
		return def
	}
	return d
}
func csvOr(k, def string) []string {
	v := envOr(k, def)
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if s := strings.TrimSpace(p); s != "" {
			out = append(out, s)
		}
	}
	return out
}
