package config

import (
	"fmt"
	"os"

	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"
)

// Config holds every configuration parameter of the application, loaded
// once at process start and injected into the components that need it.
type Config struct {
	ServerPort string `env:"SERVER_PORT" envDefault:"8080"`

	// Document store (MongoDB)
	MongoURI      string `env:"MONGO_URI,required"`
	MongoDatabase string `env:"MONGO_DB_NAME" envDefault:"CloudGalleryDB"`

	// AWS settings, shared by S3 and the legacy DynamoDB scripts
	AWSAccessKey string `env:"AWS_ACCESS_KEY,required"`
	AWSSecretKey string `env:"AWS_SECRET_KEY,required"`
	AWSRegion    string `env:"AWS_REGION" envDefault:"us-east-2"`
	BucketName   string `env:"BUCKET_NAME" envDefault:"my-cloud-gallery-2026"`

	// Secret used to sign the session cookie
	SessionSecret string `env:"SESSION_SECRET,required"`

	// Local directories and templates
	MediaDir      string `env:"MEDIA_DIR" envDefault:"media"`
	AssetsDir     string `env:"ASSETS_DIR" envDefault:"assets"`
	TemplatesGlob string `env:"TEMPLATES_GLOB" envDefault:"web/templates/*.html"`

	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"json"`
}

// LoadConfig reads configuration from environment variables. A .env file is
// loaded first when present, so development setups match the legacy app.
func LoadConfig() (*Config, error) {
	if _, err := os.Stat(".env"); !os.IsNotExist(err) {
		if err := godotenv.Load(); err != nil {
			return nil, fmt.Errorf("failed to load .env file: %w", err)
		}
	}

	cfg := Config{}
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse configuration from environment: %w", err)
	}

	return &cfg, nil
}
