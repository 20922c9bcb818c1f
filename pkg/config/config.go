package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Server    ServerConfig
	Knowledge KnowledgeConfig
	Database  DatabaseConfig
	Auth      AuthConfig
	Logger    LoggerConfig
}

type LoggerConfig struct {
	Level string
}

type ServerConfig struct {
	Port         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	StaticDir    string
	UploadsDir   string
	BodyLimitMB  int
}

type KnowledgeConfig struct {
	CSVPath          string
	DefaultTier      string
	NormalizeText    bool
	Watch            bool
	VOCExampleLimit  int
	MinClassifyChars int
}

type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
}

// Enabled reports whether a knowledge source archive should be used.
func (c DatabaseConfig) Enabled() bool {
	return c.Host != ""
}

type AuthConfig struct {
	SecretKey         string
	Expiration        time.Duration
	AdminPasswordHash string
}

// Enabled reports whether uploads require an admin token.
func (c AuthConfig) Enabled() bool {
	return c.AdminPasswordHash != ""
}

const defaultCSVPath = "Copy of Knowledge Hub - Premium Electronics- Queue 1 -  Electronics Policy.csv"

func Load() (*Config, error) {
	// .env is optional; plain environment variables work the same way
	envFiles := []string{".env", "../.env", "../../.env"}
	for _, envFile := range envFiles {
		if err := godotenv.Load(envFile); err == nil {
			break
		}
	}

	readTimeout, _ := strconv.Atoi(getEnv("SERVER_READ_TIMEOUT", "30"))
	writeTimeout, _ := strconv.Atoi(getEnv("SERVER_WRITE_TIMEOUT", "30"))
	bodyLimit, _ := strconv.Atoi(getEnv("SERVER_BODY_LIMIT_MB", "10"))
	jwtExp, _ := strconv.Atoi(getEnv("JWT_EXPIRATION_HOURS", "12"))
	exampleLimit, _ := strconv.Atoi(getEnv("KB_VOC_EXAMPLE_LIMIT", "3"))
	minChars, _ := strconv.Atoi(getEnv("KB_MIN_CLASSIFY_CHARS", "10"))

	uploadsDir := getEnv("UPLOADS_DIR", "")
	if uploadsDir == "" {
		uploadsDir = "uploads"
		if os.Getenv("VERCEL") != "" {
			uploadsDir = os.TempDir()
		}
	}

	return &Config{
		Server: ServerConfig{
			Port:         getEnv("SERVER_PORT", "8080"),
			ReadTimeout:  time.Duration(readTimeout) * time.Second,
			WriteTimeout: time.Duration(writeTimeout) * time.Second,
			StaticDir:    getEnv("STATIC_DIR", "static"),
			UploadsDir:   uploadsDir,
			BodyLimitMB:  bodyLimit,
		},
		Knowledge: KnowledgeConfig{
			CSVPath:          getEnv("CSV_FILE_PATH", defaultCSVPath),
			DefaultTier:      getEnv("KB_DEFAULT_TIER", ""),
			NormalizeText:    getEnv("KB_NORMALIZE_TEXT", "true") == "true",
			Watch:            getEnv("KB_WATCH", "false") == "true",
			VOCExampleLimit:  exampleLimit,
			MinClassifyChars: minChars,
		},
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", ""),
			Port:     getEnv("DB_PORT", "5432"),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", "postgres"),
			DBName:   getEnv("DB_NAME", "lob_summary"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
		},
		Auth: AuthConfig{
			SecretKey:         getEnv("JWT_SECRET_KEY", "your-secret-key-change-in-production"),
			Expiration:        time.Duration(jwtExp) * time.Hour,
			AdminPasswordHash: getEnv("ADMIN_PASSWORD_HASH", ""),
		},
		Logger: LoggerConfig{
			Level: getEnv("LOG_LEVEL", "info"),
		},
	}, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
