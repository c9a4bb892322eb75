package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
)

// Config holds all configuration for the kapso-mcp tools.
type Config struct {
	Kapso       KapsoConfig       `toml:"kapso"`
	Executor    ExecutorConfig    `toml:"executor"`
	Webhook     WebhookConfig     `toml:"webhook"`
	Idempotency IdempotencyConfig `toml:"idempotency"`
	Gateway     GatewayConfig     `toml:"gateway"`
	Log         LogConfig         `toml:"log"`
}

type KapsoConfig struct {
	APIKey            string   `toml:"api_key"`
	MCPURL            string   `toml:"mcp_url"`
	CredentialTestURL string   `toml:"credential_test_url"`
	Timeout           Duration `toml:"timeout"`
}

type ExecutorConfig struct {
	ContinueOnFail bool   `toml:"continue_on_fail"`
	ResponseFormat string `toml:"response_format"`
}

type WebhookConfig struct {
	Addr            string   `toml:"addr"`
	Path            string   `toml:"path"`
	Events          []string `toml:"events"`
	VerifySignature bool     `toml:"verify_signature"`
	Secret          string   `toml:"secret"`
	Funnel          bool     `toml:"funnel"`
	// MaxBodyBytes caps a delivery body; 0 means 1 MiB.
	MaxBodyBytes int64 `toml:"max_body_bytes"`
}

type IdempotencyConfig struct {
	// Backend is "" (disabled), "memory" or "redis".
	Backend       string   `toml:"backend"`
	TTL           Duration `toml:"ttl"`
	RedisAddr     string   `toml:"redis_addr"`
	RedisPassword string   `toml:"redis_password"`
	RedisDB       int      `toml:"redis_db"`
}

type GatewayConfig struct {
	URL   string `toml:"url"`
	Token string `toml:"token"`
}

type LogConfig struct {
	Level string `toml:"level"`
}

// Duration is a time.Duration written as a string such as "30s" in TOML.
type Duration struct {
	time.Duration
}

func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

func defaults() Config {
	return Config{
		Kapso: KapsoConfig{
			MCPURL:            "https://app.kapso.ai/mcp",
			CredentialTestURL: "https://api.kapso.ai/platform/v1/customers",
			Timeout:           Duration{30 * time.Second},
		},
		Executor: ExecutorConfig{
			ResponseFormat: "concise",
		},
		Webhook: WebhookConfig{
			Addr:   ":18790",
			Path:   "/webhook",
			Events: []string{"whatsapp.message.received"},
		},
		Idempotency: IdempotencyConfig{
			TTL:       Duration{24 * time.Hour},
			RedisAddr: "127.0.0.1:6379",
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// Load reads configuration from the TOML config file (if it exists) and
// applies environment variable overrides. Env vars always win.
//
// Config file resolution: KAPSO_CONFIG env var → ~/.config/kapso-mcp/config.toml → skip.
func Load() (*Config, error) {
	cfg := defaults()

	path := Path()
	if path != "" {
		if _, err := os.Stat(path); err == nil {
			if _, err := toml.DecodeFile(path, &cfg); err != nil {
				return nil, fmt.Errorf("read config %s: %w", path, err)
			}
		}
	}

	applyEnv(&cfg)
	return &cfg, nil
}

// Path returns the config file location, or "" when it cannot be determined.
func Path() string {
	if p := os.Getenv("KAPSO_CONFIG"); p != "" {
		return expandHome(p)
	}
	home := os.Getenv("HOME")
	if home == "" {
		return ""
	}
	return filepath.Join(home, ".config", "kapso-mcp", "config.toml")
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("KAPSO_API_KEY"); v != "" {
		cfg.Kapso.APIKey = v
	}
	if v := os.Getenv("KAPSO_MCP_URL"); v != "" {
		cfg.Kapso.MCPURL = v
	}
	if v := os.Getenv("KAPSO_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.Kapso.Timeout.Duration = d
		}
	}

	if v := os.Getenv("KAPSO_CONTINUE_ON_FAIL"); v != "" {
		cfg.Executor.ContinueOnFail = parseBool(v)
	}
	if v := os.Getenv("KAPSO_RESPONSE_FORMAT"); v != "" {
		cfg.Executor.ResponseFormat = v
	}

	if v := os.Getenv("KAPSO_WEBHOOK_ADDR"); v != "" {
		cfg.Webhook.Addr = v
	}
	if v := os.Getenv("KAPSO_WEBHOOK_PATH"); v != "" {
		cfg.Webhook.Path = v
	}
	if v := os.Getenv("KAPSO_WEBHOOK_EVENTS"); v != "" {
		cfg.Webhook.Events = splitList(v)
	}
	if v := os.Getenv("KAPSO_WEBHOOK_SECRET"); v != "" {
		cfg.Webhook.Secret = v
	}
	if v := os.Getenv("KAPSO_WEBHOOK_VERIFY_SIGNATURE"); v != "" {
		cfg.Webhook.VerifySignature = parseBool(v)
	}
	if v := os.Getenv("KAPSO_WEBHOOK_FUNNEL"); v != "" {
		cfg.Webhook.Funnel = parseBool(v)
	}

	if v := os.Getenv("KAPSO_IDEMPOTENCY"); v != "" {
		cfg.Idempotency.Backend = v
	}
	if v := os.Getenv("KAPSO_IDEMPOTENCY_TTL"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.Idempotency.TTL.Duration = d
		}
	}
	if v := os.Getenv("KAPSO_REDIS_ADDR"); v != "" {
		cfg.Idempotency.RedisAddr = v
	}
	if v := os.Getenv("KAPSO_REDIS_PASSWORD"); v != "" {
		cfg.Idempotency.RedisPassword = v
	}
	if v := os.Getenv("KAPSO_REDIS_DB"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Idempotency.RedisDB = n
		}
	}

	if v := os.Getenv("KAPSO_GATEWAY_URL"); v != "" {
		cfg.Gateway.URL = v
	}
	if v := os.Getenv("KAPSO_GATEWAY_TOKEN"); v != "" {
		cfg.Gateway.Token = v
	}

	if v := os.Getenv("KAPSO_LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
}

// Validate normalises values and rejects settings that cannot work.
func (c *Config) Validate() error {
	if c.Kapso.Timeout.Duration <= 0 {
		c.Kapso.Timeout.Duration = 30 * time.Second
	}

	switch c.Executor.ResponseFormat {
	case "":
		c.Executor.ResponseFormat = "concise"
	case "concise", "detailed":
	default:
		return fmt.Errorf("executor.response_format must be concise or detailed, got %q", c.Executor.ResponseFormat)
	}

	if c.Webhook.Path == "" {
		c.Webhook.Path = "/webhook"
	}
	if !strings.HasPrefix(c.Webhook.Path, "/") {
		c.Webhook.Path = "/" + c.Webhook.Path
	}

	backend := strings.ToLower(c.Idempotency.Backend)
	switch backend {
	case "", "memory", "redis":
		c.Idempotency.Backend = backend
	default:
		return fmt.Errorf("idempotency.backend must be memory or redis, got %q", c.Idempotency.Backend)
	}
	if c.Idempotency.TTL.Duration <= 0 {
		c.Idempotency.TTL.Duration = 24 * time.Hour
	}

	return nil
}

func parseBool(v string) bool {
	b, err := strconv.ParseBool(v)
	return err == nil && b
}

func splitList(v string) []string {
	var out []string
	for _, s := range strings.Split(v, ",") {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

func expandHome(path string) string {
	if strings.HasPrefix(path, "~/") {
		if home := os.Getenv("HOME"); home != "" {
			return filepath.Join(home, path[2:])
		}
	}
	return path
}
