package config

import (
	"time"

	"github.com/caarlos0/env/v11"
)

// Config holds the server's environment configuration.
type Config struct {
	Port           string        `env:"PORT" envDefault:"8080"`
	AWSRegion      string        `env:"AWS_REGION" envDefault:"us-east-1"`
	S3Bucket       string        `env:"S3_BUCKET_NAME"`
	JWTSecret      string        `env:"JWT_SECRET,required"`
	OpenAIAPIKey   string        `env:"OPENAI_API_KEY"`
	OpenAIModel    string        `env:"OPENAI_MODEL"`
	CodeTTL        time.Duration `env:"INTERACTION_CODE_TTL" envDefault:"15m"`
	CodeLength     int           `env:"INTERACTION_CODE_LENGTH" envDefault:"6"`
	AllowedOrigins []string      `env:"CORS_ALLOWED_ORIGINS" envDefault:"*"`
}

// Load parses the configuration from the environment.
func Load() (Config, error) {
	return env.ParseAs[Config]()
}
