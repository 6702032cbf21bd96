package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config del servicio. Se carga de un YAML opcional (CONFIG_PATH) y las
// env vars pisan lo que venga del archivo, para que el deploy pueda
// overridear sin tocar el archivo.
type Config struct {
	Addr string `yaml:"addr"`

	// Base pública para armar links de invitación
	// (p.ej. https://cal.example.com).
	PublicBaseURL string `yaml:"public_base_url"`

	DB struct {
		DSN string `yaml:"dsn"` // vacío => repos in-memory
	} `yaml:"db"`

	Auth struct {
		// Mode: "none" (dev, headers X-Debug-*), "jwt" (HS256 local),
		// "gotrue" (verificación remota contra el IdP).
		Mode      string `yaml:"mode"`
		JWTSecret string `yaml:"jwt_secret"`
		IdPURL    string `yaml:"idp_url"`
		IdPAPIKey string `yaml:"idp_api_key"`
	} `yaml:"auth"`

	SMTP struct {
		Addr string `yaml:"addr"` // host:port; vacío => mailer de log
		From string `yaml:"from"`
		User string `yaml:"user"`
		Pass string `yaml:"pass"`
	} `yaml:"smtp"`

	Log struct {
		Level  string `yaml:"level"`
		Format string `yaml:"format"`
	} `yaml:"log"`
}

func defaults() Config {
	var c Config
	c.Addr = ":8080"
	c.PublicBaseURL = "http://localhost:3000"
	c.Auth.Mode = "none"
	return c
}

// Load lee CONFIG_PATH (si existe) y aplica overrides de entorno.
func Load() (Config, error) {
	c := defaults()

	if path := strings.TrimSpace(os.Getenv("CONFIG_PATH")); path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("config: read %s: %w", path, err)
		}
		if err := yaml.Unmarshal(b, &c); err != nil {
			return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
		}
	}

	applyEnv(&c)

	if err := c.validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

func applyEnv(c *Config) {
	if v := os.Getenv("PORT"); v != "" {
		c.Addr = ":" + v
	}
	setIfEnv(&c.Addr, "ADDR")
	setIfEnv(&c.PublicBaseURL, "PUBLIC_BASE_URL")
	setIfEnv(&c.DB.DSN, "DB_DSN")
	setIfEnv(&c.Auth.Mode, "AUTH_MODE")
	setIfEnv(&c.Auth.JWTSecret, "JWT_SECRET")
	setIfEnv(&c.Auth.IdPURL, "IDP_URL")
	setIfEnv(&c.Auth.IdPAPIKey, "IDP_API_KEY")
	setIfEnv(&c.SMTP.Addr, "SMTP_ADDR")
	setIfEnv(&c.SMTP.From, "SMTP_FROM")
	setIfEnv(&c.SMTP.User, "SMTP_USER")
	setIfEnv(&c.SMTP.Pass, "SMTP_PASS")
	setIfEnv(&c.Log.Level, "LOG_LEVEL")
	setIfEnv(&c.Log.Format, "LOG_FORMAT")
}

func setIfEnv(dst *string, key string) {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		*dst = v
	}
}

func (c Config) validate() error {
	switch strings.ToLower(strings.TrimSpace(c.Auth.Mode)) {
	case "", "none":
	case "jwt":
		if strings.TrimSpace(c.Auth.JWTSecret) == "" {
			return fmt.Errorf("config: auth.mode=jwt requires jwt_secret")
		}
	case "gotrue":
		if strings.TrimSpace(c.Auth.IdPURL) == "" {
			return fmt.Errorf("config: auth.mode=gotrue requires idp_url")
		}
	default:
		return fmt.Errorf("config: unknown auth.mode %q", c.Auth.Mode)
	}

	if strings.TrimSpace(c.SMTP.Addr) != "" && strings.TrimSpace(c.SMTP.From) == "" {
		return fmt.Errorf("config: smtp.addr requires smtp.from")
	}
	return nil
}
