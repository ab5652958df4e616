package config

import (
	"os"
	"strconv"
	"time"

	"github.com/BurntSushi/toml"

	id "bureau/pkg/domain"
)

// Server captures process-level configuration. Values come from an optional
// TOML file layered under environment variables, so main stays lean and
// deployments can override single values without rewriting the file.
type Server struct {
	Addr        string `toml:"addr"`
	Environment string `toml:"environment"`

	// AdminPrincipal is the single administrative identity. It is fixed for
	// the lifetime of the process; there is no ownership transfer.
	AdminPrincipal string `toml:"admin_principal"`
	// AdminToken guards the admin HTTP surface. AdminTokenBcrypt, when set,
	// takes precedence and holds a bcrypt hash instead of the plaintext.
	AdminToken       string `toml:"admin_token"`
	AdminTokenBcrypt string `toml:"admin_token_bcrypt"`

	JWTSigningKey string        `toml:"jwt_signing_key"`
	TokenTTL      time.Duration `toml:"-"`
	TokenTTLRaw   string        `toml:"token_ttl"`

	// DatabaseURL switches the profile store from memory to postgres.
	DatabaseURL string `toml:"database_url"`
	// EventsDBPath switches the event store from memory to sqlite.
	EventsDBPath string `toml:"events_db_path"`
	// EventBuffer > 0 enables async event publishing with that buffer size.
	EventBuffer int `toml:"event_buffer"`
}

// DefaultTokenTTL bounds lender token lifetime when none is configured.
const DefaultTokenTTL = 12 * time.Hour

// Load builds the configuration: defaults, then the TOML file named by
// BUREAU_CONFIG (if any), then environment variables.
func Load() (Server, error) {
	cfg := Server{
		Addr:        ":8080",
		Environment: "dev",
		TokenTTL:    DefaultTokenTTL,
	}

	if path := os.Getenv("BUREAU_CONFIG"); path != "" {
		if _, err := toml.DecodeFile(path, &cfg); err != nil {
			return Server{}, err
		}
		if cfg.TokenTTLRaw != "" {
			if d, err := time.ParseDuration(cfg.TokenTTLRaw); err == nil {
				cfg.TokenTTL = d
			}
		}
	}

	applyEnv(&cfg)
	return cfg, nil
}

func applyEnv(cfg *Server) {
	setString(&cfg.Addr, "BUREAU_ADDR")
	setString(&cfg.Environment, "BUREAU_ENV")
	setString(&cfg.AdminPrincipal, "BUREAU_ADMIN_PRINCIPAL")
	setString(&cfg.AdminToken, "BUREAU_ADMIN_TOKEN")
	setString(&cfg.AdminTokenBcrypt, "BUREAU_ADMIN_TOKEN_BCRYPT")
	setString(&cfg.JWTSigningKey, "BUREAU_JWT_SIGNING_KEY")
	setString(&cfg.DatabaseURL, "BUREAU_DATABASE_URL")
	setString(&cfg.EventsDBPath, "BUREAU_EVENTS_DB_PATH")

	if v := os.Getenv("BUREAU_TOKEN_TTL"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.TokenTTL = d
		}
	}
	if v := os.Getenv("BUREAU_EVENT_BUFFER"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.EventBuffer = n
		}
	}
}

func setString(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

// Admin returns the configured admin principal identity.
func (s Server) Admin() id.PrincipalID {
	return id.PrincipalID(s.AdminPrincipal)
}
