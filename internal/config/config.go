package config

import (
	"log"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

type EscrowConfig struct {
	Env           string `yaml:"env"`
	HTTPServer    `yaml:"http_server"`
	EscrowDB      `yaml:"escrow_db"`
	LogConfig     `yaml:"log_config"`
	StripeService `yaml:"stripe-service"`
	KafkaService  `yaml:"kafka-service"`
	MetricsServer `yaml:"metrics_server"`
	Reconciler    `yaml:"reconciler"`
	AuthService   `yaml:"auth-service"`
}

type HTTPServer struct {
	Host string `yaml:"host"`
	Port string `yaml:"port"`
}

type EscrowDB struct {
	Dsn string `yaml:"dsn"`
}

type LogConfig struct {
	LogLevel  string `yaml:"log_level"`
	LogFormat string `yaml:"log_format"`
	LogOutput string `yaml:"log_output"`
}

type StripeService struct {
	BaseURL   string        `yaml:"base_url" env-default:"https://api.stripe.com"`
	SecretKey string        `yaml:"secret_key" env:"STRIPE_SECRET_KEY"`
	Timeout   time.Duration `yaml:"timeout" env-default:"10s"`
}

type KafkaService struct {
	Host         string `yaml:"host"`
	Port         string `yaml:"port"`
	EscrowTopic  string `yaml:"escrow_topic" env-default:"escrow-events"`
	DisputeTopic string `yaml:"dispute_topic" env-default:"dispute-events"`
}

type MetricsServer struct {
	Host string `yaml:"host"`
	Port string `yaml:"port" env-default:"9090"`
}

type Reconciler struct {
	Interval     time.Duration `yaml:"interval" env-default:"5m"`
	StaleHoldAge time.Duration `yaml:"stale_hold_age" env-default:"24h"`
	IntentAge    time.Duration `yaml:"intent_age" env-default:"1m"`
}

type AuthService struct {
	JWTSecret string `yaml:"jwt_secret" env:"ESCROW_JWT_SECRET"`
}

func MustLoad() *EscrowConfig {

	// Processing env config variable and file
	configPath := os.Getenv("ESCROW_CONFIG_PATH")

	if configPath == "" {
		log.Fatalf("ESCROW_CONFIG_PATH was not found\n")
	}

	if _, err := os.Stat(configPath); err != nil {
		log.Fatalf("failed to find config file: %v\n", err)
	}

	// YAML to struct object
	var cfg EscrowConfig
	if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
		log.Fatalf("failed to read config file: %v", err)
	}

	return &cfg
}
