package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port        string
	AppEnv      string
	FrontendURL string

	// Moderator credentials: semicolon-delimited bcrypt hashes.
	PasswordHashes []string
	HashCost       int

	JWTSecret      string
	JWTExpireHours int

	RateLimitMax    int
	RateLimitWindow time.Duration

	SubmitWebhookURL string
	ActionWebhookURL string
	ProfileURLBase   string

	BanlistEnabled bool
	BanlistBackend string
	BanlistPath    string

	GitHubToken  string
	GitHubOwner  string
	GitHubRepo   string
	GitHubBranch string

	MongoURI string
	MongoDB  string
}

func Load() *Config {
	err := godotenv.Load()
	if err != nil {
		log.Println("No .env file found")
	}

	return &Config{
		Port:        getEnv("PORT", "8080"),
		AppEnv:      getEnv("APP_ENV", "development"),
		FrontendURL: getEnv("FRONTEND_URL", "http://localhost:3000"),

		PasswordHashes: splitHashes(getEnv("MOD_PASSWORD_HASHES", "")),
		HashCost:       getEnvInt("HASH_COST", 12),

		JWTSecret:      getEnv("JWT_SECRET", "secret"),
		JWTExpireHours: getEnvInt("JWT_EXPIRE_HOURS", 24),

		RateLimitMax:    getEnvInt("RATE_LIMIT_MAX", 5),
		RateLimitWindow: time.Duration(getEnvInt("RATE_LIMIT_WINDOW_MINUTES", 15)) * time.Minute,

		SubmitWebhookURL: getEnv("SUBMIT_WEBHOOK_URL", ""),
		ActionWebhookURL: getEnv("ACTION_WEBHOOK_URL", ""),
		ProfileURLBase:   getEnv("PROFILE_URL_BASE", "https://www.roblox.com/users"),

		BanlistEnabled: getEnvBool("BANLIST_ENABLED", false),
		BanlistBackend: getEnv("BANLIST_BACKEND", "github"),
		BanlistPath:    getEnv("BANLIST_PATH", "bans.json"),

		GitHubToken:  getEnv("GITHUB_TOKEN", ""),
		GitHubOwner:  getEnv("GITHUB_OWNER", ""),
		GitHubRepo:   getEnv("GITHUB_REPO", ""),
		GitHubBranch: getEnv("GITHUB_BRANCH", "main"),

		MongoURI: getEnv("MONGO_URI", "mongodb://localhost:27017"),
		MongoDB:  getEnv("MONGO_DB", "tribunal"),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		log.Printf("Invalid %s=%q, using %d", key, value, defaultValue)
		return defaultValue
	}
	return n
}

func getEnvBool(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	b, err := strconv.ParseBool(value)
	if err != nil {
		log.Printf("Invalid %s=%q, using %t", key, value, defaultValue)
		return defaultValue
	}
	return b
}

// splitHashes parses the semicolon-delimited hash list, dropping empty
// segments so a trailing semicolon doesn't produce a hash nothing matches.
func splitHashes(raw string) []string {
	var hashes []string
	for _, part := range strings.Split(raw, ";") {
		part = strings.TrimSpace(part)
		if part != "" {
			hashes = append(hashes, part)
		}
	}
	return hashes
}
