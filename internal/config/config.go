package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

type HTTPConfig struct {
	Host           string
	Port           int
	AllowedOrigins []string
}

type DBConfig struct {
	DSN             string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime string
}

type AuthConfig struct {
	AccessSecret string
}

// CompanyConfig is printed on every generated document.
type CompanyConfig struct {
	Name    string
	Address string
	Phone   string
	Email   string
	Website string
}

type MailConfig struct {
	SendGridAPIKey string
	FromEmail      string
	FromName       string
}

type DocumentsConfig struct {
	DefaultVATPercentage float64
	InvoiceDueDays       int
	NumberingMaxAttempts int
}

type Config struct {
	Environment string
	HTTP        HTTPConfig
	DB          DBConfig
	Auth        AuthConfig
	Company     CompanyConfig
	Mail        MailConfig
	Documents   DocumentsConfig
}

func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigName("app")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("./deploy")
	v.AddConfigPath("./internal/config")
	v.AutomaticEnv()

	v.SetDefault("DOCUMENTS_DEFAULT_VAT", 15)
	v.SetDefault("INVOICE_DUE_DAYS", 30)
	v.SetDefault("NUMBERING_MAX_ATTEMPTS", 5)

	_ = v.ReadInConfig()

	cfg := &Config{
		Environment: v.GetString("APP_ENV"),
		HTTP: HTTPConfig{
			Host:           v.GetString("HTTP_HOST"),
			Port:           v.GetInt("HTTP_PORT"),
			AllowedOrigins: parseList(v.GetString("CORS_ALLOWED_ORIGINS")),
		},
		DB: DBConfig{
			DSN:             v.GetString("DB_DSN"),
			MaxOpenConns:    v.GetInt("DB_MAX_OPEN_CONNS"),
			MaxIdleConns:    v.GetInt("DB_MAX_IDLE_CONNS"),
			ConnMaxLifetime: v.GetString("DB_CONN_MAX_LIFETIME"),
		},
		Auth: AuthConfig{
			AccessSecret: v.GetString("JWT_ACCESS_SECRET"),
		},
		Company: CompanyConfig{
			Name:    v.GetString("COMPANY_NAME"),
			Address: v.GetString("COMPANY_ADDRESS"),
			Phone:   v.GetString("COMPANY_PHONE"),
			Email:   v.GetString("COMPANY_EMAIL"),
			Website: v.GetString("COMPANY_WEBSITE"),
		},
		Mail: MailConfig{
			SendGridAPIKey: v.GetString("SENDGRID_API_KEY"),
			FromEmail:      v.GetString("MAIL_FROM_EMAIL"),
			FromName:       v.GetString("MAIL_FROM_NAME"),
		},
		Documents: DocumentsConfig{
			DefaultVATPercentage: v.GetFloat64("DOCUMENTS_DEFAULT_VAT"),
			InvoiceDueDays:       v.GetInt("INVOICE_DUE_DAYS"),
			NumberingMaxAttempts: v.GetInt("NUMBERING_MAX_ATTEMPTS"),
		},
	}

	applyDefaults(cfg)

	if err := validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func applyDefaults(cfg *Config) {
	if cfg.Environment == "" {
		cfg.Environment = "development"
	}
	if cfg.HTTP.Host == "" {
		cfg.HTTP.Host = "0.0.0.0"
	}
	if cfg.HTTP.Port == 0 {
		cfg.HTTP.Port = 7090
	}
	if len(cfg.HTTP.AllowedOrigins) == 0 {
		cfg.HTTP.AllowedOrigins = []string{"*"}
	}
	if cfg.Company.Name == "" {
		cfg.Company.Name = "Removals Office"
	}
	if cfg.Mail.FromEmail == "" {
		cfg.Mail.FromEmail = cfg.Company.Email
	}
	if cfg.Mail.FromName == "" {
		cfg.Mail.FromName = cfg.Company.Name
	}
	if cfg.Documents.NumberingMaxAttempts <= 0 {
		cfg.Documents.NumberingMaxAttempts = 5
	}
	if cfg.Documents.InvoiceDueDays <= 0 {
		cfg.Documents.InvoiceDueDays = 30
	}
}

func validate(cfg *Config) error {
	if cfg.DB.DSN == "" {
		return fmt.Errorf("DB_DSN is required")
	}
	if cfg.Auth.AccessSecret == "" {
		return fmt.Errorf("JWT_ACCESS_SECRET is required")
	}
	if cfg.Documents.DefaultVATPercentage < 0 || cfg.Documents.DefaultVATPercentage > 100 {
		return fmt.Errorf("DOCUMENTS_DEFAULT_VAT must be between 0 and 100")
	}
	if cfg.Mail.SendGridAPIKey != "" && cfg.Mail.FromEmail == "" {
		return fmt.Errorf("MAIL_FROM_EMAIL is required when SENDGRID_API_KEY is set")
	}
	return nil
}

func parseList(raw string) []string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	items := strings.Split(raw, ",")
	result := make([]string, 0, len(items))
	for _, item := range items {
		item = strings.TrimSpace(item)
		if item != "" {
			result = append(result, item)
		}
	}
	return result
}
