package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

// Endpoint keys understood by Config.URL. The table is keyed identically
// for sandbox and production.
const (
	EndpointToken            = "token"
	EndpointTokenRefresh     = "token/refresh"
	EndpointCreate           = "create"
	EndpointExecute          = "execute"
	EndpointQuery            = "query"
	EndpointRefund           = "refund"
	EndpointRefundStatus     = "refund/status"
	EndpointSearch           = "search"
	EndpointAgreementCreate  = "agreement/create"
	EndpointAgreementExecute = "agreement/execute"
	EndpointAgreementQuery   = "agreement/query"
	EndpointAgreementCancel  = "agreement/cancel"
)

type Credentials struct {
	AppKey    string
	AppSecret string
	Username  string
	Password  string
}

type Validation struct {
	StrictMode bool
	MinAmount  float64
	MaxAmount  float64
}

// Config is an immutable snapshot of everything the client needs.
// Load it once at startup; the client never mutates it.
type Config struct {
	Sandbox         bool
	LogTransactions bool

	Credentials Credentials

	CallbackURL string
	RedirectURL string

	Timeout    time.Duration
	MaxRetries int
	RetryDelay time.Duration
	TokenTTL   time.Duration
	Currency   string

	Validation Validation

	SandboxURLs    map[string]string
	ProductionURLs map[string]string
}

// Default returns a sandbox configuration with the real bKash tokenized
// checkout URL tables. Credentials must still be supplied by the caller.
func Default() *Config {
	return &Config{
		Sandbox:         true,
		LogTransactions: true,
		CallbackURL:     "/bkash/callback",
		RedirectURL:     "/payment/redirect",
		Timeout:         30 * time.Second,
		MaxRetries:      3,
		RetryDelay:      time.Second,
		// The gateway token lives 60 minutes; cache for 55 to stay clear
		// of edge-of-expiry races.
		TokenTTL: 3300 * time.Second,
		Currency: "BDT",
		Validation: Validation{
			StrictMode: true,
			MinAmount:  1.00,
			MaxAmount:  999999.99,
		},
		SandboxURLs:    endpointTable("https://tokenized.sandbox.bka.sh/v1.2.0-beta/tokenized"),
		ProductionURLs: endpointTable("https://tokenized.pay.bka.sh/v1.2.0-beta/tokenized"),
	}
}

func endpointTable(base string) map[string]string {
	return map[string]string{
		EndpointToken:            base + "/checkout/token/grant",
		EndpointTokenRefresh:     base + "/checkout/token/refresh",
		EndpointCreate:           base + "/checkout/create",
		EndpointExecute:          base + "/checkout/execute",
		EndpointQuery:            base + "/checkout/payment/status",
		EndpointRefund:           base + "/checkout/payment/refund",
		EndpointRefundStatus:     base + "/checkout/payment/refund",
		EndpointSearch:           base + "/checkout/general/searchTransaction",
		EndpointAgreementCreate:  base + "/checkout/create",
		EndpointAgreementExecute: base + "/checkout/execute",
		EndpointAgreementQuery:   base + "/checkout/agreement/status",
		EndpointAgreementCancel:  base + "/checkout/agreement/cancel",
	}
}

// FromEnv loads configuration from BKASH_* environment variables on top of
// Default. Unset variables keep their defaults.
func FromEnv() *Config {
	v := viper.New()
	v.SetEnvPrefix("BKASH")
	v.AutomaticEnv()

	cfg := Default()

	v.SetDefault("sandbox", cfg.Sandbox)
	v.SetDefault("log_transactions", cfg.LogTransactions)
	v.SetDefault("callback_url", cfg.CallbackURL)
	v.SetDefault("redirect_url", cfg.RedirectURL)
	v.SetDefault("timeout", int(cfg.Timeout.Seconds()))
	v.SetDefault("retry_attempts", cfg.MaxRetries)
	v.SetDefault("retry_delay", int(cfg.RetryDelay.Milliseconds()))
	v.SetDefault("token_cache_ttl", int(cfg.TokenTTL.Seconds()))
	v.SetDefault("currency", cfg.Currency)
	v.SetDefault("strict_validation", cfg.Validation.StrictMode)
	v.SetDefault("min_amount", cfg.Validation.MinAmount)
	v.SetDefault("max_amount", cfg.Validation.MaxAmount)

	cfg.Sandbox = v.GetBool("sandbox")
	cfg.LogTransactions = v.GetBool("log_transactions")
	cfg.Credentials = Credentials{
		AppKey:    v.GetString("app_key"),
		AppSecret: v.GetString("app_secret"),
		Username:  v.GetString("username"),
		Password:  v.GetString("password"),
	}
	cfg.CallbackURL = v.GetString("callback_url")
	cfg.RedirectURL = v.GetString("redirect_url")
	cfg.Timeout = time.Duration(v.GetInt("timeout")) * time.Second
	cfg.MaxRetries = v.GetInt("retry_attempts")
	cfg.RetryDelay = time.Duration(v.GetInt("retry_delay")) * time.Millisecond
	cfg.TokenTTL = time.Duration(v.GetInt("token_cache_ttl")) * time.Second
	cfg.Currency = v.GetString("currency")
	cfg.Validation.StrictMode = v.GetBool("strict_validation")
	cfg.Validation.MinAmount = v.GetFloat64("min_amount")
	cfg.Validation.MaxAmount = v.GetFloat64("max_amount")

	return cfg
}

// URL resolves the endpoint for the active environment.
func (c *Config) URL(endpoint string) (string, error) {
	urls := c.ProductionURLs
	mode := "production"
	if c.Sandbox {
		urls = c.SandboxURLs
		mode = "sandbox"
	}

	u, ok := urls[endpoint]
	if !ok {
		return "", fmt.Errorf("config: endpoint %q not found for %s mode", endpoint, mode)
	}
	return u, nil
}
