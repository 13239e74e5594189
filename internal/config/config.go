package config

import (
	"fmt"
	"log"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds the application configuration
type Config struct {
	Port     string `mapstructure:"port"`
	BaseURL  string `mapstructure:"base_url"` // frontend origin, used for redirects
	PageSize int    `mapstructure:"page_size"`

	// APIBaseURL is where this server is reachable; the OAuth callback hangs off it.
	APIBaseURL string `mapstructure:"api_base_url"`

	DatabaseURL string `mapstructure:"database_url"`

	JWTSecret     string `mapstructure:"jwt_secret"`
	SessionSecret string `mapstructure:"session_secret"`

	GoogleClientID     string `mapstructure:"google_client_id"`
	GoogleClientSecret string `mapstructure:"google_client_secret"`

	// Without GMAIL_CREDENTIALS_FILE confirmation links are only logged.
	GmailCredentialsFile string `mapstructure:"gmail_credentials_file"`
	GmailTokenFile       string `mapstructure:"gmail_token_file"`
	MailFrom             string `mapstructure:"mail_from"`

	LLMProvider  string `mapstructure:"llm_provider"` // openai, googleai
	LLMModel     string `mapstructure:"llm_model"`
	OpenAIAPIKey string `mapstructure:"openai_api_key"`
	GeminiAPIKey string `mapstructure:"gemini_api_key"`

	AWSRegion        string `mapstructure:"aws_region"`
	S3Bucket         string `mapstructure:"s3_bucket"`
	S3Endpoint       string `mapstructure:"s3_endpoint"`
	S3PublicBaseURL  string `mapstructure:"s3_public_base_url"`
	DynamoTableName  string `mapstructure:"dynamodb_table"`
	DynamoEndpoint   string `mapstructure:"dynamodb_endpoint"`
	CORSAllowOrigins string `mapstructure:"cors_allow_origins"`
}

var keys = []string{
	"port", "base_url", "api_base_url", "page_size", "database_url", "jwt_secret", "session_secret",
	"google_client_id", "google_client_secret", "gmail_credentials_file", "gmail_token_file",
	"mail_from", "llm_provider", "llm_model",
	"openai_api_key", "gemini_api_key", "aws_region", "s3_bucket", "s3_endpoint",
	"s3_public_base_url", "dynamodb_table", "dynamodb_endpoint", "cors_allow_origins",
}

// Load reads .env (if present) and the process environment into a Config.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using process environment")
	}

	v := viper.New()
	v.SetDefault("port", "8080")
	v.SetDefault("base_url", "http://localhost:3000")
	v.SetDefault("api_base_url", "http://localhost:8080")
	v.SetDefault("page_size", 10)
	v.SetDefault("database_url", "host=localhost user=postgres password=password dbname=jobtracker port=5432 sslmode=disable")
	v.SetDefault("gmail_token_file", "token.json")
	v.SetDefault("llm_provider", "openai")
	v.SetDefault("llm_model", "")
	v.SetDefault("aws_region", "us-west-2")
	v.SetDefault("s3_bucket", "documents")
	v.SetDefault("dynamodb_table", "JobPostings")
	v.SetDefault("cors_allow_origins", "*")

	// AutomaticEnv only resolves keys viper already knows about during Unmarshal.
	for _, key := range keys {
		if err := v.BindEnv(key, strings.ToUpper(key)); err != nil {
			return nil, fmt.Errorf("failed to bind %s: %w", key, err)
		}
	}
	v.AutomaticEnv()

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if strings.TrimSpace(c.JWTSecret) == "" {
		return fmt.Errorf("JWT_SECRET environment variable is not set")
	}
	if strings.TrimSpace(c.SessionSecret) == "" {
		return fmt.Errorf("SESSION_SECRET environment variable is not set")
	}
	switch c.LLMProvider {
	case "openai", "googleai":
	default:
		return fmt.Errorf("unsupported LLM_PROVIDER: %q", c.LLMProvider)
	}
	if c.PageSize <= 0 {
		return fmt.Errorf("PAGE_SIZE must be positive, got %d", c.PageSize)
	}
	c.BaseURL = strings.TrimSuffix(c.BaseURL, "/")
	c.APIBaseURL = strings.TrimSuffix(c.APIBaseURL, "/")
	return nil
}

// LLMAPIKey returns the key matching the configured provider.
func (c *Config) LLMAPIKey() string {
	if c.LLMProvider == "googleai" {
		return c.GeminiAPIKey
	}
	return c.OpenAIAPIKey
}

// AllowedOrigins splits CORS_ALLOW_ORIGINS on commas. "*" means all.
func (c *Config) AllowedOrigins() []string {
	var origins []string
	for _, o := range strings.Split(c.CORSAllowOrigins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}
	return origins
}
