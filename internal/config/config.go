// Load envs from .env
// Load YAML config
// Validate config
// Provide default values

package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

type Config struct {
	TelegramToken  string `yaml:"telegram_token" env:"TELEGRAM_TOKEN"`
	TelegramChatID int64  `yaml:"telegram_chat_id" env:"TELEGRAM_CHAT_ID"`

	//Local Ollama endpoint for the AI validator
	OllamaModel string `yaml:"ollama_model" env:"OLLAMA_MODEL"`
	OllamaURL   string `yaml:"ollama_url" env:"OLLAMA_URL"`

	//Scan settings
	ScanIntervalSeconds int    `yaml:"scan_interval_seconds"`
	DBPath              string `yaml:"db_path"`
	ExportPath          string `yaml:"export_path"`

	//ATS company slugs
	GreenhouseCompanies []string `yaml:"greenhouse_companies"`
	LeverCompanies      []string `yaml:"lever_companies"`
	AshbyCompanies      []string `yaml:"ashby_companies"`
	WorkableCompanies   []string `yaml:"workable_companies"`

	//Web discovery
	DiscoveryBatchSize int `yaml:"discovery_batch_size"`
	CrawlMaxDomains    int `yaml:"crawl_max_domains"`
}

func Load() *Config {
	_ = godotenv.Load()

	//Load yaml config
	cfg := &Config{}

	data, err := os.ReadFile("configs/config.yaml")
	if err != nil {
		logrus.Warnf("Could not read config.yaml: %v", err)
	} else {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			logrus.Fatalf("Error parsing config.yaml: %v", err)
		}
	}

	//Override with env vars
	if token := os.Getenv("TELEGRAM_TOKEN"); token != "" {
		cfg.TelegramToken = token
	}

	if chatID := os.Getenv("TELEGRAM_CHAT_ID"); chatID != "" {
		id, err := strconv.ParseInt(chatID, 10, 64)
		if err != nil {
			logrus.Fatalf("Invalid TELEGRAM_CHAT_ID: %v", err)
		}
		cfg.TelegramChatID = id
	}

	if model := os.Getenv("OLLAMA_MODEL"); model != "" {
		cfg.OllamaModel = model
	}

	if url := os.Getenv("OLLAMA_URL"); url != "" {
		cfg.OllamaURL = url
	}

	//Set default values if not set
	if cfg.OllamaModel == "" {
		cfg.OllamaModel = "llama3:latest"
	}

	if cfg.OllamaURL == "" {
		cfg.OllamaURL = "http://localhost:11434/api/generate"
	}

	if cfg.ScanIntervalSeconds == 0 {
		cfg.ScanIntervalSeconds = 120
	}

	if cfg.DBPath == "" {
		cfg.DBPath = "jobs.db"
	}

	if cfg.ExportPath == "" {
		cfg.ExportPath = "jobs_export.csv"
	}

	if cfg.DiscoveryBatchSize == 0 {
		cfg.DiscoveryBatchSize = 10
	}

	if cfg.CrawlMaxDomains == 0 {
		cfg.CrawlMaxDomains = 20
	}

	//Telegram is best-effort: missing credentials only disable
	//notifications, they never block a scan cycle
	if cfg.TelegramToken == "" || cfg.TelegramChatID == 0 {
		logrus.Warn("TELEGRAM_TOKEN/TELEGRAM_CHAT_ID not set — notifications disabled")
	}

	return cfg
}
