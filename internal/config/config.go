package config

import (
	"net/url"

	"github.com/caarlos0/env/v6"
)

type Config struct {
	IsTestMode bool   `env:"TEST_MODE" envDefault:"false"`
	Address    string `env:"ADDRESS" envDefault:"0.0.0.0:9090"`

	Secret           string `env:"SECRET,required,notEmpty"`
	PostgresqlURL    string `env:"POSTGRESQL_URL,required,notEmpty"`
	RedisURL         string `env:"REDIS_URL,required,notEmpty"`
	BcryptHasherCost int    `env:"BCRYPT_HASHER_COST" envDefault:"10"`

	PasswordResetTokenTTLMinutes int     `env:"PASSWORD_RESET_TOKEN_TTL_MINUTES" envDefault:"30"`
	PasswordResetBaseURL         url.URL `env:"PASSWORD_RESET_BASE_URL,required"`

	AwsRegion      string `env:"AWS_REGION" envDefault:"eu-west-1"`
	AwsAccessKey   string `env:"AWS_ACCESS_KEY,required"`
	AwsSecretKey   string `env:"AWS_SECRET_KEY,required,unset"`
	AwsEmailSender string `env:"AWS_EMAIL_SENDER,required"`
}

func Load() (*Config, error) {
	config := &Config{}
	if err := env.Parse(config); err != nil {
		return nil, err
	}
	return config, nil
}
