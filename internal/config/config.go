package config

import (
	"os"
	"strconv"
	"strings"
)

// Config holds all runtime configuration loaded from environment variables.
type Config struct {
	AppPort string
	AppEnv  string

	AWSRegion      string
	AWSEndpointURL string // empty in prod, set to LocalStack URL in dev
	AWSAccessKeyID string
	AWSSecretKey   string
	DynamoTables   DynamoTables

	// Face matcher thresholds. Two call sites, two distinct risk tradeoffs:
	// login re-confirms a single declared identity, registration compares
	// against every enrolled stranger. Never collapse them into one value.
	LoginFaceThreshold        float64
	RegistrationFaceThreshold float64
	EmbeddingDim              int

	JWTPrivateKeyPath string
	JWTPublicKeyPath  string
	JWTExpiryHours    int

	// Admin credentials for the roster/candidate endpoints. The hash is a
	// bcrypt digest; admin login is disabled when it is unset.
	AdminUsername     string
	AdminPasswordHash string

	SMTPHost     string
	SMTPPort     string
	SMTPFrom     string
	SMTPUsername string
	SMTPPassword string

	AllowedOrigins []string // CORS allowed origins
}

// DynamoTables holds the DynamoDB table name for each entity.
type DynamoTables struct {
	Voters         string
	FaceKeys       string
	Candidates     string
	EligibleVoters string
}

// Load reads all configuration from environment variables.
func Load() *Config {
	return &Config{
		AppPort: getEnv("APP_PORT", "3000"),
		AppEnv:  getEnv("APP_ENV", "development"),

		AWSRegion:      getEnv("AWS_REGION", "us-east-1"),
		AWSEndpointURL: getEnv("AWS_ENDPOINT_URL", ""),
		AWSAccessKeyID: getEnv("AWS_ACCESS_KEY_ID", ""),
		AWSSecretKey:   getEnv("AWS_SECRET_ACCESS_KEY", ""),
		DynamoTables: DynamoTables{
			Voters:         getEnv("DYNAMO_TABLE_VOTERS", "voters"),
			FaceKeys:       getEnv("DYNAMO_TABLE_FACE_KEYS", "face_keys"),
			Candidates:     getEnv("DYNAMO_TABLE_CANDIDATES", "candidates"),
			EligibleVoters: getEnv("DYNAMO_TABLE_ELIGIBLE_VOTERS", "eligible_voters"),
		},

		LoginFaceThreshold:        getEnvFloat("LOGIN_FACE_THRESHOLD", 0.6),
		RegistrationFaceThreshold: getEnvFloat("REGISTRATION_FACE_THRESHOLD", 0.45),
		EmbeddingDim:              getEnvInt("EMBEDDING_DIM", 128),

		JWTPrivateKeyPath: getEnv("JWT_PRIVATE_KEY_PATH", "./private_key.pem"),
		JWTPublicKeyPath:  getEnv("JWT_PUBLIC_KEY_PATH", "./public_key.pem"),
		JWTExpiryHours:    getEnvInt("JWT_EXPIRY_HOURS", 12),

		AdminUsername:     getEnv("ADMIN_USERNAME", "admin"),
		AdminPasswordHash: getEnv("ADMIN_PASSWORD_HASH", ""),

		SMTPHost:     getEnv("SMTP_HOST", "localhost"),
		SMTPPort:     getEnv("SMTP_PORT", "1025"),
		SMTPFrom:     getEnv("SMTP_FROM", "noreply@example.com"),
		SMTPUsername: getEnv("SMTP_USERNAME", ""),
		SMTPPassword: getEnv("SMTP_PASSWORD", ""),

		AllowedOrigins: strings.Split(getEnv("ALLOWED_ORIGINS", "*"), ","),
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func getEnvFloat(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return fallback
}
