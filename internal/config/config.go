package config

import (
	"fmt"

	"github.com/ilyakaznacheev/cleanenv"
)

type Config struct {
	LogLevel      string  `yaml:"log-level" env:"LOG_LEVEL" env-default:"info"`
	PlayerOneName string  `yaml:"player-one-name" env:"PLAYER_ONE_NAME" env-default:""`
	PlayerTwoName string  `yaml:"player-two-name" env:"PLAYER_TWO_NAME" env-default:""`
	Results       Results `yaml:"results"`
}

// Results - where finished games are recorded. Recording is off unless enabled.
type Results struct {
	Enabled bool  `yaml:"enabled" env:"RESULTS_ENABLED" env-default:"false"`
	Redis   Redis `yaml:"redis"`
}

type Redis struct {
	Host string `yaml:"host" env:"REDIS_HOST" env-default:"localhost"`
	Port string `yaml:"port" env:"REDIS_PORT" env-default:"6379"`
}

// Load - reads the config file at path, env variables take precedence.
func Load(path string) (*Config, error) {
	config := &Config{}

	if err := cleanenv.ReadConfig(path, config); err != nil {
		return nil, fmt.Errorf("unable to load config file: %w", err)
	}

	return config, nil
}

// MustLoad - load all configurations in config.yml file.
func MustLoad(path string) *Config {
	config, err := Load(path)
	if err != nil {
		panic(err)
	}

	return config
}

func (that *Redis) GetRedisAddr() string {
	return fmt.Sprintf("%s:%s", that.Host, that.Port)
}
