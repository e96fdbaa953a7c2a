package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"

	"github.com/estatehq/sales-service/internal/utils"
)

type Config struct {
	AppName string
	AppPort string

	DBUrl string

	// Auth
	JWTSecret []byte

	// Outbound integrations; empty disables the integration
	OpenAIAPIKey     string
	SendGridAPIKey   string
	TwilioAccountSID string
	TwilioAuthToken  string

	// Lead notification contact points
	SendgridFromEmail string
	SalesTeamEmail    string
	TwilioFromPhone   string
	SalesTeamPhone    string
	OrganizationName  string

	// Image storage: S3-compatible when a bucket is set, local dir otherwise
	S3Bucket          string
	S3Region          string
	S3Endpoint        string
	S3AccessKeyID     string
	S3SecretAccessKey string
	UploadDir         string

	CORSAllowedOrigin string
	SeedTestData      bool
}

func LoadConfig() *Config {
	// .env is a dev convenience; in deployments the env is already set
	if err := godotenv.Load(); err != nil {
		utils.Logger.Debug("No .env file found, using environment")
	}

	cfg := &Config{
		AppName:           envOr("APP_NAME", "sales-service"),
		AppPort:           envOr("APP_PORT", "8080"),
		DBUrl:             mustEnv("DB_URL"),
		JWTSecret:         []byte(mustEnv("JWT_SECRET")),
		OpenAIAPIKey:      os.Getenv("OPENAI_API_KEY"),
		SendGridAPIKey:    os.Getenv("SENDGRID_API_KEY"),
		TwilioAccountSID:  os.Getenv("TWILIO_ACCOUNT_SID"),
		TwilioAuthToken:   os.Getenv("TWILIO_AUTH_TOKEN"),
		SendgridFromEmail: envOr("SENDGRID_FROM_EMAIL", "no-reply@example.com"),
		SalesTeamEmail:    os.Getenv("SALES_TEAM_EMAIL"),
		TwilioFromPhone:   os.Getenv("TWILIO_FROM_PHONE"),
		SalesTeamPhone:    os.Getenv("SALES_TEAM_PHONE"),
		OrganizationName:  envOr("ORGANIZATION_NAME", "EstateHQ"),
		S3Bucket:          os.Getenv("S3_BUCKET"),
		S3Region:          envOr("S3_REGION", "us-east-1"),
		S3Endpoint:        os.Getenv("S3_ENDPOINT"),
		S3AccessKeyID:     os.Getenv("S3_ACCESS_KEY_ID"),
		S3SecretAccessKey: os.Getenv("S3_SECRET_ACCESS_KEY"),
		UploadDir:         envOr("UPLOAD_DIR", "uploads"),
		CORSAllowedOrigin: envOr("CORS_ALLOWED_ORIGIN", "*"),
		SeedTestData:      envBool("SEED_TEST_DATA"),
	}

	if cfg.S3Bucket != "" && (cfg.S3AccessKeyID == "" || cfg.S3SecretAccessKey == "") {
		utils.Logger.Fatal("S3_BUCKET set but S3 credentials are missing")
	}
	return cfg
}

func mustEnv(key string) string {
	v := os.Getenv(key)
	if v == "" {
		utils.Logger.Fatalf("%s env var is missing", key)
	}
	return v
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envBool(key string) bool {
	b, err := strconv.ParseBool(os.Getenv(key))
	return err == nil && b
}
