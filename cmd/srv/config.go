package main

import (
	"os"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
	"github.com/questx-lab/rewards/config"
	"github.com/urfave/cli/v2"
)

func defaultConfigs() config.Configs {
	return config.Configs{
		Env:      "development",
		LogLevel: "info",
		Database: config.DatabaseConfigs{
			Driver:   "mysql",
			Host:     "localhost",
			Port:     "3306",
			Database: "rewards",
			User:     "mysql",
			LogLevel: "error",
		},
		ApiServer: config.APIServerConfigs{
			ServerConfigs: config.ServerConfigs{Port: "8080"},
			MaxLimit:      50,
			DefaultLimit:  10,
		},
		Auth: config.AuthConfigs{
			AccessToken: config.TokenConfigs{
				Name:       "access_token",
				Expiration: 7 * 24 * time.Hour,
			},
		},
		Twitter: config.TwitterConfigs{
			Timeout:    10 * time.Second,
			ProfileTTL: time.Hour,
		},
		Classifier: config.ClassifierConfigs{
			Timeout: 10 * time.Second,
		},
		Marketing: config.MarketingConfigs{
			Topic: "marketing",
		},
		Rewards: config.RewardsConfigs{
			VerificationBonus: 2,
			RecentSubmissions: 10,
		},
	}
}

// loadDotEnvs loads the .env files, the more specific file wins because
// godotenv never overrides a variable which is already set.
func loadDotEnvs() {
	env := os.Getenv("REWARDS_ENV")
	if env == "" {
		env = "development"
	}

	_ = godotenv.Load(".env." + env + ".local")
	_ = godotenv.Load(".env.local")
	_ = godotenv.Load(".env." + env)
	_ = godotenv.Load(".env")
}

func (s *srv) loadConfig(cctx *cli.Context) error {
	loadDotEnvs()

	cfg := defaultConfigs()
	if path := cctx.String("config"); path != "" {
		if _, err := toml.DecodeFile(path, &cfg); err != nil {
			return err
		}
	}

	// Secrets are never read from the config file.
	overrideFromEnv(&cfg.Env, "REWARDS_ENV")
	overrideFromEnv(&cfg.Database.Password, "REWARDS_DB_PASSWORD")
	overrideFromEnv(&cfg.Auth.TokenSecret, "REWARDS_TOKEN_SECRET")
	overrideFromEnv(&cfg.Twitter.AppAccessToken, "REWARDS_TWITTER_TOKEN")
	overrideFromEnv(&cfg.Classifier.APIKey, "REWARDS_CLASSIFIER_KEY")
	overrideFromEnv(&cfg.Marketing.APIKey, "REWARDS_MARKETING_KEY")

	s.configs = &cfg
	return nil
}

func overrideFromEnv(field *string, key string) {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		*field = v
	}
}
