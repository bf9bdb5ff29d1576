package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

const (
	BackendFile     = "file"
	BackendPostgres = "postgres"
)

const (
	defaultWelcomeMessage = "👋 <b>أهلاً بك في بوت طلبات السنة التحضيرية</b>\n\n" +
		"يمكنك إرسال طلب جديد بالضغط على الزر أدناه."
	defaultUnauthorizedMessage = "⛔ عذراً، ليس لديك صلاحية لاستخدام هذا البوت."
)

type Config struct {
	BotToken  string
	ChannelID string
	AdminID   int64

	AllowedUsers map[int64]bool

	StoreBackend string
	DatabaseFile string

	DBUser     string
	DBPassword string
	DBName     string
	DBHost     string
	DBPort     string

	LogLevel  string
	LogFormat string

	WelcomeMessage      string
	UnauthorizedMessage string
}

func Load() (*Config, error) {
	err := godotenv.Load()
	if err != nil {
		log.Printf("config.Load: no .env file found - using env variables")
	}

	return parse(os.Getenv)
}

func parse(getenv func(string) string) (*Config, error) {
	cfg := &Config{
		BotToken:            strings.TrimSpace(getenv("BOT_TOKEN")),
		ChannelID:           strings.TrimSpace(getenv("CHANNEL_ID")),
		StoreBackend:        strings.ToLower(strings.TrimSpace(getenv("STORE_BACKEND"))),
		DatabaseFile:        getenv("DATABASE_FILE"),
		DBUser:              getenv("DB_USER"),
		DBPassword:          getenv("DB_PASSWORD"),
		DBName:              getenv("DB_NAME"),
		DBHost:              getenv("DB_HOST"),
		DBPort:              getenv("DB_PORT"),
		LogLevel:            getenv("LOG_LEVEL"),
		LogFormat:           getenv("LOG_FORMAT"),
		WelcomeMessage:      getenv("WELCOME_MESSAGE"),
		UnauthorizedMessage: getenv("UNAUTHORIZED_MESSAGE"),
	}

	if cfg.BotToken == "" {
		return nil, fmt.Errorf("config.Load: BOT_TOKEN is required")
	}

	if cfg.ChannelID == "" {
		return nil, fmt.Errorf("config.Load: CHANNEL_ID is required")
	}

	adminID, err := strconv.ParseInt(strings.TrimSpace(getenv("ADMIN_ID")), 10, 64)
	if err != nil {
		return nil, fmt.Errorf("config.Load: ADMIN_ID must be an integer: %w", err)
	}
	cfg.AdminID = adminID

	allowed, err := parseIDList(getenv("ALLOWED_USERS"))
	if err != nil {
		return nil, fmt.Errorf("config.Load: ALLOWED_USERS: %w", err)
	}

	if len(allowed) == 0 {
		return nil, fmt.Errorf("config.Load: ALLOWED_USERS is required")
	}
	cfg.AllowedUsers = allowed

	if cfg.StoreBackend == "" {
		cfg.StoreBackend = BackendFile
	}

	switch cfg.StoreBackend {
	case BackendFile:
		if cfg.DatabaseFile == "" {
			cfg.DatabaseFile = "database.json"
		}
	case BackendPostgres:
		if cfg.DBUser == "" || cfg.DBPassword == "" || cfg.DBName == "" {
			return nil, fmt.Errorf("config.Load: DB_USER, DB_PASSWORD, DB_NAME are required")
		}
	default:
		return nil, fmt.Errorf("config.Load: unknown STORE_BACKEND %q", cfg.StoreBackend)
	}

	if cfg.DBHost == "" {
		cfg.DBHost = "localhost"
	}

	if cfg.DBPort == "" {
		cfg.DBPort = "5432"
	}

	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}

	if cfg.LogFormat == "" {
		cfg.LogFormat = "json"
	}

	if cfg.WelcomeMessage == "" {
		cfg.WelcomeMessage = defaultWelcomeMessage
	}

	if cfg.UnauthorizedMessage == "" {
		cfg.UnauthorizedMessage = defaultUnauthorizedMessage
	}

	return cfg, nil
}

func parseIDList(raw string) (map[int64]bool, error) {
	ids := make(map[int64]bool)

	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}

		id, err := strconv.ParseInt(part, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid user id %q: %w", part, err)
		}

		ids[id] = true
	}

	return ids, nil
}

// IsAllowed reports whether the sender may talk to the bot at all.
func (c *Config) IsAllowed(userID int64) bool {
	return c.AllowedUsers[userID]
}

func (c *Config) IsAdmin(userID int64) bool {
	return userID == c.AdminID
}
