package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/mitchellh/mapstructure"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

type Config struct {
	App            App            `mapstructure:",squash"`
	Server         Server         `mapstructure:",squash"`
	Database       Database       `mapstructure:",squash"`
	Redis          Redis          `mapstructure:",squash"`
	Executor       Executor       `mapstructure:",squash"`
	Alerting       Alerting       `mapstructure:",squash"`
	Margin         Margin         `mapstructure:",squash"`
	Notification   Notification   `mapstructure:",squash"`
	AlertRetention AlertRetention `mapstructure:",squash"`
	ActionSweep    ActionSweep    `mapstructure:",squash"`
	Auth           Auth           `mapstructure:",squash"`
}

type App struct {
	LogLevel string `mapstructure:"log_level"`
}

type Server struct {
	Host string `mapstructure:"host"`
	Port string `mapstructure:"port"`
}

type Database struct {
	DSN      string `mapstructure:"-"`
	Driver   string `mapstructure:"database_driver"`
	Password string `mapstructure:"database_password"`
	URL      string `mapstructure:"database_url"`
	User     string `mapstructure:"database_user"`
}

type Redis struct {
	Addr     string `mapstructure:"redis_addr"`
	Password string `mapstructure:"redis_password"`
	DB       int    `mapstructure:"redis_db"`
	Enabled  bool   `mapstructure:"redis_enabled"`
}

type Executor struct {
	URL            string `mapstructure:"executor_url"`
	APIKey         string `mapstructure:"executor_api_key"`
	TimeoutSeconds int    `mapstructure:"executor_timeout_seconds"`
	MaxRetries     int    `mapstructure:"executor_max_retries"`
}

type Alerting struct {
	DefaultCooldownMinutes int `mapstructure:"alerting_default_cooldown_minutes"`
}

type Margin struct {
	DefaultSafetyPct float64 `mapstructure:"margin_default_safety_pct"`
}

type Notification struct {
	EmailGatewayURL    string `mapstructure:"notification_email_gateway_url"`
	EmailGatewayKey    string `mapstructure:"notification_email_gateway_key"`
	EmailFrom          string `mapstructure:"notification_email_from"`
	EmailTo            string `mapstructure:"notification_email_to"`
	WebhookURL         string `mapstructure:"notification_webhook_url"`
	TimeoutSeconds     int    `mapstructure:"notification_timeout_seconds"`
	MaxAttempts        int    `mapstructure:"notification_max_attempts"`
	DedupWindowMinutes int    `mapstructure:"notification_dedup_window_minutes"`
}

type AlertRetention struct {
	CronSchedule  string `mapstructure:"alert_retention_cron"`
	RetentionDays int    `mapstructure:"alert_retention_days"`
	Enabled       bool   `mapstructure:"alert_retention_enabled"`
}

type ActionSweep struct {
	CronSchedule            string `mapstructure:"action_sweep_cron"`
	DispatchDeadlineMinutes int    `mapstructure:"action_sweep_dispatch_deadline_minutes"`
	Enabled                 bool   `mapstructure:"action_sweep_enabled"`
}

type Auth struct {
	ServiceToken string `mapstructure:"auth_service_token"`
}

func SetDefaults() {
	viper.SetDefault("HOST", "localhost")
	viper.SetDefault("PORT", 8000)

	viper.SetDefault("DATABASE_DRIVER", "postgres")
	viper.SetDefault("DATABASE_URL", "localhost:5432/ml_automation")
	viper.SetDefault("DATABASE_USER", "postgres")
	viper.SetDefault("DATABASE_PASSWORD", "root")

	viper.SetDefault("REDIS_ADDR", "localhost:6379")
	viper.SetDefault("REDIS_PASSWORD", "")
	viper.SetDefault("REDIS_DB", 0)
	viper.SetDefault("REDIS_ENABLED", false) // Sem Redis o barramento roda em memória

	viper.SetDefault("EXECUTOR_URL", "http://localhost:8010")
	viper.SetDefault("EXECUTOR_API_KEY", "")
	viper.SetDefault("EXECUTOR_TIMEOUT_SECONDS", 10)
	viper.SetDefault("EXECUTOR_MAX_RETRIES", 3)

	viper.SetDefault("ALERTING_DEFAULT_COOLDOWN_MINUTES", 60)

	viper.SetDefault("MARGIN_DEFAULT_SAFETY_PCT", 10.0)

	viper.SetDefault("NOTIFICATION_EMAIL_GATEWAY_URL", "")
	viper.SetDefault("NOTIFICATION_EMAIL_GATEWAY_KEY", "")
	viper.SetDefault("NOTIFICATION_EMAIL_FROM", "alertas@ml-automation.com.br")
	viper.SetDefault("NOTIFICATION_EMAIL_TO", "")
	viper.SetDefault("NOTIFICATION_WEBHOOK_URL", "")
	viper.SetDefault("NOTIFICATION_TIMEOUT_SECONDS", 10)
	viper.SetDefault("NOTIFICATION_MAX_ATTEMPTS", 3)
	viper.SetDefault("NOTIFICATION_DEDUP_WINDOW_MINUTES", 5)

	viper.SetDefault("ALERT_RETENTION_CRON", "0 3 * * *") // Todos os dias às 3h da manhã
	viper.SetDefault("ALERT_RETENTION_DAYS", 90)
	viper.SetDefault("ALERT_RETENTION_ENABLED", false)

	viper.SetDefault("ACTION_SWEEP_CRON", "*/15 * * * *") // A cada 15 minutos
	viper.SetDefault("ACTION_SWEEP_DISPATCH_DEADLINE_MINUTES", 30)
	viper.SetDefault("ACTION_SWEEP_ENABLED", false)

	viper.SetDefault("AUTH_SERVICE_TOKEN", "")

	viper.SetDefault("LOG_LEVEL", "debug")
}

func NewConfig() (*Config, error) {
	loadEnvFile() // ONLY LOCAL

	config := &Config{}

	SetDefaults()

	viper.SetConfigType("env")
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		logrus.Info("Usando variáveis carregadas pelo godotenv (viper não conseguiu ler .env):", err)
	} else {
		logrus.Info("Arquivo .env lido pelo Viper com sucesso")
	}

	err := viper.Unmarshal(&config, viper.DecodeHook(
		mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		),
	))
	if err != nil {
		return nil, err
	}

	config.Database.DSN = fmt.Sprintf(
		"%s://%s:%s@%s",
		config.Database.Driver,
		config.Database.User,
		config.Database.Password,
		config.Database.URL,
	)

	return config, nil
}

// loadEnvFile carrega o arquivo .env usando godotenv
func loadEnvFile() {
	cwd, err := os.Getwd()
	if err != nil {
		logrus.Warn("Não foi possível obter o diretório atual:", err)
		return
	}

	locations := []string{
		filepath.Join(cwd, ".env"),
		filepath.Join(filepath.Dir(cwd), ".env"),
		filepath.Join(cwd, "../.env"),
		filepath.Join(cwd, "../../.env"),
	}

	for _, location := range locations {
		err := godotenv.Load(location)
		if err == nil {
			logrus.Info("Arquivo .env carregado com sucesso de:", location)
			return
		}
	}

	logrus.Warn("Não foi possível carregar o arquivo .env de nenhuma localização conhecida")
}
