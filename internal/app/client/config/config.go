package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	EnvLocal = "local"
	EnvDev   = "dev"
	EnvProd  = "prod"
)

// Стратегии поведения после успешной регистрации. В исходном клиенте
// существовали оба варианта одновременно, поэтому выбор отдан конфигурации.
const (
	// SignupFlowNotify - показать "проверьте почту" и ждать подтверждения.
	SignupFlowNotify = "notify"
	// SignupFlowAutoConfirm - сразу перейти по ссылке подтверждения с токеном.
	SignupFlowAutoConfirm = "autoconfirm"
)

// Бэкенды хранения сессии.
const (
	SessionBackendFile   = "file"
	SessionBackendSQLite = "sqlite"
	SessionBackendMemory = "memory"
)

const (
	defaultServerAddress = "localhost:8000"
	defaultEnv           = EnvLocal
	defaultConfigDir     = ".photoshare"
)

type Config struct {
	Env            string        `mapstructure:"app_env"`
	ServerAddress  string        `mapstructure:"server_address"`
	EnableTLS      bool          `mapstructure:"enable_tls"`
	ConfigDir      string        `mapstructure:"config_dir"`
	SessionBackend string        `mapstructure:"session_backend"`
	SessionPath    string        `mapstructure:"session_path"`
	SignupFlow     string        `mapstructure:"signup_flow"`
	RequestTimeout time.Duration `mapstructure:"request_timeout"`
	SearchIdle     time.Duration `mapstructure:"search_idle"`
}

// MustLoad загружает конфигурацию клиента
func MustLoad() *Config {
	// Загружаем .env файл если существует
	envPath := ".env"
	if _, err := os.Stat(envPath); os.IsNotExist(err) {
		envPath = "../.env"
	}
	if _, err := os.Stat(envPath); err == nil {
		if err := godotenv.Load(envPath); err != nil {
			fmt.Printf("Ошибка загрузки .env файла: %v\n", err)
		}
	}

	viper.AutomaticEnv()

	// Значения по умолчанию
	viper.SetDefault("APP_ENV", defaultEnv)
	viper.SetDefault("SERVER_ADDRESS", defaultServerAddress)
	viper.SetDefault("ENABLE_TLS", false)
	viper.SetDefault("CONFIG_DIR", defaultConfigDir)
	viper.SetDefault("SESSION_BACKEND", SessionBackendFile)
	viper.SetDefault("SIGNUP_FLOW", SignupFlowNotify)
	viper.SetDefault("REQUEST_TIMEOUT_SECONDS", 30)
	viper.SetDefault("SEARCH_IDLE_SECONDS", 5)

	homeDir, err := os.UserHomeDir()
	if err != nil {
		homeDir = "."
	}

	configDir := viper.GetString("CONFIG_DIR")
	if configDir == defaultConfigDir {
		configDir = filepath.Join(homeDir, configDir)
	}

	if err := os.MkdirAll(configDir, 0700); err != nil {
		fmt.Printf("Ошибка создания директории конфигурации: %v\n", err)
	}

	sessionPath := viper.GetString("SESSION_PATH")
	if sessionPath == "" {
		switch viper.GetString("SESSION_BACKEND") {
		case SessionBackendSQLite:
			sessionPath = filepath.Join(configDir, "session.db")
		default:
			sessionPath = filepath.Join(configDir, "session.json")
		}
	}

	config := &Config{
		Env:            viper.GetString("APP_ENV"),
		ServerAddress:  viper.GetString("SERVER_ADDRESS"),
		EnableTLS:      viper.GetBool("ENABLE_TLS"),
		ConfigDir:      configDir,
		SessionBackend: viper.GetString("SESSION_BACKEND"),
		SessionPath:    sessionPath,
		SignupFlow:     viper.GetString("SIGNUP_FLOW"),
		RequestTimeout: time.Duration(viper.GetInt("REQUEST_TIMEOUT_SECONDS")) * time.Second,
		SearchIdle:     time.Duration(viper.GetInt("SEARCH_IDLE_SECONDS")) * time.Second,
	}

	if err := config.validate(); err != nil {
		panic(fmt.Sprintf("Ошибка конфигурации: %v", err))
	}

	return config
}

func (c *Config) validate() error {
	if c.ServerAddress == "" {
		return fmt.Errorf("server_address не может быть пустым")
	}
	switch c.SignupFlow {
	case SignupFlowNotify, SignupFlowAutoConfirm:
	default:
		return fmt.Errorf("неизвестная стратегия signup_flow: %q", c.SignupFlow)
	}
	switch c.SessionBackend {
	case SessionBackendFile, SessionBackendSQLite, SessionBackendMemory:
	default:
		return fmt.Errorf("неизвестный session_backend: %q", c.SessionBackend)
	}
	if c.RequestTimeout <= 0 {
		return fmt.Errorf("request_timeout должен быть положительным")
	}
	return nil
}

// BaseURL собирает базовый адрес API с учетом TLS.
func (c *Config) BaseURL() string {
	scheme := "http://"
	if c.EnableTLS {
		scheme = "https://"
	}
	return scheme + c.ServerAddress
}

// IsProd проверяет, prod ли окружение
func (c *Config) IsProd() bool {
	return c.Env == EnvProd
}

// IsDev проверяет, dev ли окружение
func (c *Config) IsDev() bool {
	return c.Env == EnvDev
}

// IsLocal проверяет, local ли окружение
func (c *Config) IsLocal() bool {
	return c.Env == EnvLocal || c.Env == ""
}
