package config

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type (
	Config struct {
		HTTP
		Global
		Database
		Audit
		Match
		TMDB
		Cache
		Tasks
		Retention
		Parser
		Export
	}

	HTTP struct {
		Port int32
		Host string
	}
	Global struct {
		ShutdownTimeoutInSeconds int
	}
	Database struct {
		Path string
	}
	Audit struct {
		Enabled bool   // Write raw import snapshots to Dir
		Dir     string
	}
	Match struct {
		ServiceURL  string // Remote match service; empty uses the in-process TMDB matcher
		Language    string
		Concurrency int
		Timeout     time.Duration
	}
	TMDB struct {
		Token          string
		BaseURL        string
		CandidateLimit int
	}
	Cache struct {
		RedisAddr     string // Empty disables the lookup cache
		RedisPassword string
		RedisDB       int
		TTL           time.Duration
	}
	Tasks struct {
		Enabled         bool
		Workers         int
		EnrichTimeout   time.Duration
		ReleaseAfter    time.Duration
		CleanupInterval time.Duration
	}
	Retention struct {
		Enabled  bool
		Schedule string        // Cron format: "0 3 * * *" = daily at 03:00
		MaxAge   time.Duration // Sessions and audit events older than this are purged
	}
	Parser struct {
		LegacyInlineSplit bool
	}
	Export struct {
		BreakMarker string
	}
)

// LoadDotEnv copies variables from the given files (".env" when none are
// given) into the process environment. Variables already set win, and
// missing files are skipped.
func LoadDotEnv(files ...string) error {
	if len(files) == 0 {
		files = []string{DefaultEnvFile}
	}
	for _, file := range files {
		if err := godotenv.Load(file); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return fmt.Errorf("failed to load %s: %w", file, err)
		}
	}
	return nil
}

func NewConfig() *Config {
	v := viper.New()
	v.AutomaticEnv()
	v.SetDefault("port", 8188)
	v.SetDefault("host", "0.0.0.0")
	v.SetDefault("shutdown_timeout_in_seconds", 2)
	v.SetDefault("database_path", DefaultDatabasePath)
	v.SetDefault("audit_enabled", false)
	v.SetDefault("audit_dir", "./audit")

	// Matching defaults
	v.SetDefault("match_service_url", "")
	v.SetDefault("match_language", "en-US")
	v.SetDefault("match_concurrency", 10)
	v.SetDefault("match_timeout", "60s")
	v.SetDefault("tmdb_token", "")
	v.SetDefault("tmdb_base_url", "https://api.themoviedb.org/3")
	v.SetDefault("tmdb_candidate_limit", 5)

	// Lookup cache defaults
	v.SetDefault("redis_addr", "")
	v.SetDefault("redis_password", "")
	v.SetDefault("redis_db", 0)
	v.SetDefault("cache_ttl", "24h")

	// Task queue defaults
	v.SetDefault("tasks_enabled", true)
	v.SetDefault("task_workers", 2)
	v.SetDefault("task_enrich_timeout", "3m")
	v.SetDefault("task_release_after", "15m")
	v.SetDefault("task_cleanup_interval", "1h")

	// Retention defaults
	v.SetDefault("retention_enabled", true)
	v.SetDefault("retention_schedule", DefaultRetentionSchedule)
	v.SetDefault("retention_max_age", "720h") // 30 days

	v.SetDefault("parser_legacy_inline_split", false)
	v.SetDefault("export_break_marker", "<br>")

	return &Config{
		HTTP: HTTP{
			Port: v.GetInt32("PORT"),
			Host: v.GetString("HOST"),
		},
		Global: Global{
			ShutdownTimeoutInSeconds: v.GetInt("SHUTDOWN_TIMEOUT_IN_SECONDS"),
		},
		Database: Database{
			Path: v.GetString("DATABASE_PATH"),
		},
		Audit: Audit{
			Enabled: v.GetBool("AUDIT_ENABLED"),
			Dir:     v.GetString("AUDIT_DIR"),
		},
		Match: Match{
			ServiceURL:  v.GetString("MATCH_SERVICE_URL"),
			Language:    v.GetString("MATCH_LANGUAGE"),
			Concurrency: v.GetInt("MATCH_CONCURRENCY"),
			Timeout:     v.GetDuration("MATCH_TIMEOUT"),
		},
		TMDB: TMDB{
			Token:          v.GetString("TMDB_TOKEN"),
			BaseURL:        v.GetString("TMDB_BASE_URL"),
			CandidateLimit: v.GetInt("TMDB_CANDIDATE_LIMIT"),
		},
		Cache: Cache{
			RedisAddr:     v.GetString("REDIS_ADDR"),
			RedisPassword: v.GetString("REDIS_PASSWORD"),
			RedisDB:       v.GetInt("REDIS_DB"),
			TTL:           v.GetDuration("CACHE_TTL"),
		},
		Tasks: Tasks{
			Enabled:         v.GetBool("TASKS_ENABLED"),
			Workers:         v.GetInt("TASK_WORKERS"),
			EnrichTimeout:   v.GetDuration("TASK_ENRICH_TIMEOUT"),
			ReleaseAfter:    v.GetDuration("TASK_RELEASE_AFTER"),
			CleanupInterval: v.GetDuration("TASK_CLEANUP_INTERVAL"),
		},
		Retention: Retention{
			Enabled:  v.GetBool("RETENTION_ENABLED"),
			Schedule: v.GetString("RETENTION_SCHEDULE"),
			MaxAge:   v.GetDuration("RETENTION_MAX_AGE"),
		},
		Parser: Parser{
			LegacyInlineSplit: v.GetBool("PARSER_LEGACY_INLINE_SPLIT"),
		},
		Export: Export{
			BreakMarker: v.GetString("EXPORT_BREAK_MARKER"),
		},
	}
}
