package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/mitchellh/mapstructure"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
	"github.com/vfg2006/chai-ledger/internal/domain"
)

const (
	BackendFile     = "file"
	BackendPostgres = "postgres"
	BackendSQLite   = "sqlite"
)

type Config struct {
	App           App           `mapstructure:",squash"`
	Server        Server        `mapstructure:",squash"`
	Storage       Storage       `mapstructure:",squash"`
	Database      Database      `mapstructure:",squash"`
	Business      Business      `mapstructure:",squash"`
	Auth          Auth          `mapstructure:",squash"`
	Render        Render        `mapstructure:",squash"`
	AMQP          AMQP          `mapstructure:",squash"`
	InvoiceExport InvoiceExport `mapstructure:",squash"`
	SecretKey     string        `mapstructure:"secret_key"`
}

type App struct {
	LogLevel       string   `mapstructure:"log_level"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

type Server struct {
	Host string `mapstructure:"host"`
	Port string `mapstructure:"port"`
}

type Storage struct {
	Backend    string `mapstructure:"data_backend"`
	DataFile   string `mapstructure:"data_file"`
	SQLitePath string `mapstructure:"sqlite_path"`
}

type Database struct {
	DSN      string `mapstructure:"-"`
	Driver   string `mapstructure:"database_driver"`
	Password string `mapstructure:"database_password"`
	URL      string `mapstructure:"database_url"`
	User     string `mapstructure:"database_user"`
}

type Business struct {
	Name         string `mapstructure:"business_name"`
	Address      string `mapstructure:"business_address"`
	Phone        string `mapstructure:"business_phone"`
	TeaLabel     string `mapstructure:"business_tea_label"`
	CoffeeLabel  string `mapstructure:"business_coffee_label"`
	QuantityUnit string `mapstructure:"business_quantity_unit"`
	Currency     string `mapstructure:"business_currency"`
	DueDays      int    `mapstructure:"invoice_due_days"`
}

type Auth struct {
	Users    []string      `mapstructure:"auth_users"`
	TokenTTL time.Duration `mapstructure:"auth_token_ttl"`
}

type Render struct {
	APIKey          string `mapstructure:"render_api_key"`
	ServiceID       string `mapstructure:"render_service_id"`
	UsersSecretName string `mapstructure:"render_users_secret_name"`
}

type AMQP struct {
	URL      string `mapstructure:"amqp_url"`
	Exchange string `mapstructure:"amqp_exchange"`
	Queue    string `mapstructure:"amqp_queue"`
}

type InvoiceExport struct {
	CronSchedule      string `mapstructure:"invoice_export_cron"`
	Enabled           bool   `mapstructure:"invoice_export_enabled"`
	OutputDir         string `mapstructure:"invoice_export_output_dir"`
	Format            string `mapstructure:"invoice_export_format"`
	MaxConcurrentJobs int    `mapstructure:"invoice_export_max_concurrent_jobs"`
	MonthLookBack     int    `mapstructure:"invoice_export_month_lookback"`
}

func SetDefaults() {
	profile := domain.DefaultBusinessProfile()

	viper.SetDefault("HOST", "localhost")
	viper.SetDefault("PORT", 8000)
	viper.SetDefault("ALLOWED_ORIGINS", "http://localhost:3000")

	viper.SetDefault("DATA_BACKEND", BackendFile)
	viper.SetDefault("DATA_FILE", "data.json")
	viper.SetDefault("SQLITE_PATH", "data/chai.db")

	viper.SetDefault("DATABASE_DRIVER", "postgres")
	viper.SetDefault("DATABASE_URL", "localhost:5432/chai?sslmode=disable")
	viper.SetDefault("DATABASE_USER", "postgres")
	viper.SetDefault("DATABASE_PASSWORD", "root")

	viper.SetDefault("BUSINESS_NAME", profile.Name)
	viper.SetDefault("BUSINESS_ADDRESS", profile.Address)
	viper.SetDefault("BUSINESS_PHONE", profile.Phone)
	viper.SetDefault("BUSINESS_TEA_LABEL", profile.TeaLabel)
	viper.SetDefault("BUSINESS_COFFEE_LABEL", profile.CoffeeLabel)
	viper.SetDefault("BUSINESS_QUANTITY_UNIT", profile.QuantityUnit)
	viper.SetDefault("BUSINESS_CURRENCY", profile.Currency)
	viper.SetDefault("INVOICE_DUE_DAYS", 0)

	viper.SetDefault("SECRET_KEY", "your_secret_key")
	viper.SetDefault("AUTH_USERS", "")
	viper.SetDefault("AUTH_TOKEN_TTL", "24h")

	viper.SetDefault("RENDER_API_KEY", "")
	viper.SetDefault("RENDER_SERVICE_ID", "")
	viper.SetDefault("RENDER_USERS_SECRET_NAME", "users")

	// Sem URL o publicador de eventos fica desligado
	viper.SetDefault("AMQP_URL", "")
	viper.SetDefault("AMQP_EXCHANGE", "chai.events")
	viper.SetDefault("AMQP_QUEUE", "chai.ledger")

	viper.SetDefault("INVOICE_EXPORT_CRON", "0 6 1 * *") // Dia 1 de cada mês às 6h
	viper.SetDefault("INVOICE_EXPORT_ENABLED", false)
	viper.SetDefault("INVOICE_EXPORT_OUTPUT_DIR", "invoices")
	viper.SetDefault("INVOICE_EXPORT_FORMAT", "pdf")
	viper.SetDefault("INVOICE_EXPORT_MAX_CONCURRENT_JOBS", 3)
	viper.SetDefault("INVOICE_EXPORT_MONTH_LOOKBACK", 1)

	viper.SetDefault("LOG_LEVEL", "info")
}

func NewConfig() (*Config, error) {
	loadEnvFile()

	config := &Config{}

	SetDefaults()

	viper.SetConfigType("env")
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		logrus.Debug("config: usando apenas variáveis de ambiente: ", err)
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

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// Validate reúne todos os problemas da configuração em um único erro
func (c *Config) Validate() error {
	var problems []string

	switch c.Storage.Backend {
	case BackendFile:
		if strings.TrimSpace(c.Storage.DataFile) == "" {
			problems = append(problems, "DATA_FILE é obrigatório para o backend file")
		}
	case BackendSQLite:
		if strings.TrimSpace(c.Storage.SQLitePath) == "" {
			problems = append(problems, "SQLITE_PATH é obrigatório para o backend sqlite")
		}
	case BackendPostgres:
		if strings.TrimSpace(c.Database.URL) == "" {
			problems = append(problems, "DATABASE_URL é obrigatório para o backend postgres")
		}
	default:
		problems = append(problems, fmt.Sprintf("DATA_BACKEND inválido: %q", c.Storage.Backend))
	}

	if strings.TrimSpace(c.SecretKey) == "" {
		problems = append(problems, "SECRET_KEY é obrigatório")
	}

	if c.Business.DueDays < 0 {
		problems = append(problems, "INVOICE_DUE_DAYS não pode ser negativo")
	}

	if c.InvoiceExport.Enabled {
		if c.InvoiceExport.MaxConcurrentJobs < 1 {
			problems = append(problems, "INVOICE_EXPORT_MAX_CONCURRENT_JOBS deve ser maior que zero")
		}
		if strings.TrimSpace(c.InvoiceExport.OutputDir) == "" {
			problems = append(problems, "INVOICE_EXPORT_OUTPUT_DIR é obrigatório com a exportação habilitada")
		}
	}

	if len(problems) > 0 {
		return errors.New("config: " + strings.Join(problems, "; "))
	}
	return nil
}

// BusinessProfile monta o cabeçalho da fatura a partir da configuração
func (c *Config) BusinessProfile() domain.BusinessProfile {
	return domain.BusinessProfile{
		Name:         c.Business.Name,
		Address:      c.Business.Address,
		Phone:        c.Business.Phone,
		TeaLabel:     c.Business.TeaLabel,
		CoffeeLabel:  c.Business.CoffeeLabel,
		QuantityUnit: c.Business.QuantityUnit,
		Currency:     c.Business.Currency,
		DueDays:      c.Business.DueDays,
	}
}

// Credentials converte AUTH_USERS (usuario:senha,...) em credenciais
func (c *Config) Credentials() []domain.Credential {
	credentials := make([]domain.Credential, 0, len(c.Auth.Users))
	for _, entry := range c.Auth.Users {
		username, password, ok := strings.Cut(strings.TrimSpace(entry), ":")
		if !ok || strings.TrimSpace(username) == "" {
			logrus.WithField("entry", entry).Warn("config: entrada de AUTH_USERS ignorada")
			continue
		}
		credentials = append(credentials, domain.Credential{
			Username: strings.TrimSpace(username),
			Password: password,
		})
	}
	return credentials
}

// loadEnvFile carrega o .env do diretório atual ou de um dos diretórios acima
func loadEnvFile() {
	cwd, err := os.Getwd()
	if err != nil {
		logrus.Warn("config: não foi possível obter o diretório atual: ", err)
		return
	}

	locations := []string{
		filepath.Join(cwd, ".env"),
		filepath.Join(filepath.Dir(cwd), ".env"),
		filepath.Join(cwd, "../../.env"),
	}

	for _, location := range locations {
		if err := godotenv.Load(location); err == nil {
			logrus.Debug("config: .env carregado de ", location)
			return
		}
	}

	logrus.Debug("config: nenhum arquivo .env encontrado")
}
