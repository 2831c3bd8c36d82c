package config

import (
	"fmt"
	"log"
	"os"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/ilyakaznacheev/cleanenv"
)

type Config struct {
	Env      string `yaml:"env" env:"ENV" env-default:"local"`
	Telegram struct {
		ApiKey  string `yaml:"api_key" env:"TELEGRAM_BOT_TOKEN" validate:"required"`
		BotName string `yaml:"bot_name" env:"TELEGRAM_BOT_NAME" env-default:"PromoPilotBot"`
		Polling bool   `yaml:"polling" env:"TELEGRAM_POLLING" env-default:"false"`
	} `yaml:"telegram"`
	Google struct {
		Credentials   string `yaml:"credentials" env:"GOOGLE_CREDENTIALS" validate:"required"`
		SheetID       string `yaml:"sheet_id" env:"GOOGLE_SHEET_ID" validate:"required"`
		SheetRange    string `yaml:"sheet_range" env:"GOOGLE_SHEET_RANGE" env-default:"A1:Z"`
		DriveFolderID string `yaml:"drive_folder_id" env:"GOOGLE_DRIVE_FOLDER_ID" env-default:""`
	} `yaml:"google"`
	DeepSeek struct {
		ApiKey     string `yaml:"api_key" env:"DEEPSEEK_API_KEY" validate:"required"`
		BaseURL    string `yaml:"base_url" env:"DEEPSEEK_BASE_URL" env-default:"https://api.deepseek.com/v1"`
		Model      string `yaml:"model" env:"DEEPSEEK_MODEL" env-default:"deepseek-chat"`
		TimeoutSec int    `yaml:"timeout_sec" env:"DEEPSEEK_TIMEOUT_SEC" env-default:"30"`
		Workers    int    `yaml:"workers" env:"DEEPSEEK_WORKERS" env-default:"3"`
	} `yaml:"deepseek"`
	Mongo struct {
		Enabled  bool   `yaml:"enabled" env:"MONGO_ENABLED" env-default:"false"`
		Host     string `yaml:"host" env:"MONGO_HOST" env-default:"127.0.0.1"`
		Port     string `yaml:"port" env:"MONGO_PORT" env-default:"27017"`
		User     string `yaml:"user" env:"MONGO_USER" env-default:""`
		Password string `yaml:"password" env:"MONGO_PASSWORD" env-default:""`
		Database string `yaml:"database" env:"MONGO_DATABASE" env-default:"promopilot"`
	} `yaml:"mongo"`
	Listen struct {
		BindIP string `yaml:"bind_ip" env:"LISTEN_BIND_IP" env-default:"127.0.0.1"`
		Port   string `yaml:"port" env:"LISTEN_PORT" env-default:"9200"`
	} `yaml:"listen"`
}

var instance *Config
var once sync.Once

// MustLoad reads configuration from the YAML file at path, falling back to
// environment variables only when the file does not exist. Missing required
// secrets are fatal.
func MustLoad(path string) *Config {
	once.Do(func() {
		instance = &Config{}

		var err error
		if _, statErr := os.Stat(path); statErr == nil {
			err = cleanenv.ReadConfig(path, instance)
		} else {
			err = cleanenv.ReadEnv(instance)
		}
		if err != nil {
			desc, _ := cleanenv.GetDescription(instance, nil)
			instance = nil
			log.Fatal(fmt.Errorf("%s; %s", err, desc))
		}

		if err = validator.New().Struct(instance); err != nil {
			instance = nil
			log.Fatal(fmt.Errorf("config validation: %w", err))
		}
	})
	return instance
}
