// Package bkash is the public client for the bKash tokenized checkout
// API. It composes the token manager, dispatcher, validator, and
// normalizer; hosts inject the cache, transaction store, event bus, and
// logger they want.
package bkash

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/sabitahmadumid/bkash-go/config"
	"github.com/sabitahmadumid/bkash-go/dispatch"
	"github.com/sabitahmadumid/bkash-go/events"
	"github.com/sabitahmadumid/bkash-go/logging"
	"github.com/sabitahmadumid/bkash-go/metrics"
	"github.com/sabitahmadumid/bkash-go/response"
	"github.com/sabitahmadumid/bkash-go/storage"
	"github.com/sabitahmadumid/bkash-go/token"
)

type dispatcher interface {
	Do(ctx context.Context, method, url string, payload map[string]any) (response.Payload, error)
}

type Client struct {
	cfg        *config.Config
	dispatcher dispatcher
	store      storage.TransactionStore
	bus        events.Bus
	log        logging.Logger
	now        func() time.Time
}

type Option func(*options)

type options struct {
	cache      token.Cache
	httpClient *http.Client
	store      storage.TransactionStore
	bus        events.Bus
	logger     logging.Logger
	counters   *metrics.Counters
}

// WithCache replaces the bundled in-memory token cache, e.g. with one
// backed by a store shared across processes.
func WithCache(c token.Cache) Option {
	return func(o *options) { o.cache = c }
}

func WithHTTPClient(c *http.Client) Option {
	return func(o *options) { o.httpClient = c }
}

// WithTransactionStore enables best-effort transaction logging.
func WithTransactionStore(s storage.TransactionStore) Option {
	return func(o *options) { o.store = s }
}

// WithEventBus enables lifecycle events on successful execute calls.
func WithEventBus(b events.Bus) Option {
	return func(o *options) { o.bus = b }
}

func WithLogger(l logging.Logger) Option {
	return func(o *options) { o.logger = l }
}

func WithMetrics(c *metrics.Counters) Option {
	return func(o *options) { o.counters = c }
}

func New(cfg *config.Config, opts ...Option) *Client {
	o := &options{}
	for _, opt := range opts {
		opt(o)
	}

	if o.cache == nil {
		o.cache = token.NewMemoryCache()
	}
	if o.httpClient == nil {
		o.httpClient = &http.Client{Timeout: cfg.Timeout}
	}
	if o.logger == nil {
		o.logger = logging.Nop{}
	}

	tokens := token.NewManager(cfg, o.cache, o.httpClient, o.logger, o.counters)

	return &Client{
		cfg: cfg,
		dispatcher: &dispatch.Dispatcher{
			Tokens:     tokens,
			Client:     o.httpClient,
			MaxRetries: cfg.MaxRetries,
			RetryDelay: cfg.RetryDelay,
			Logger:     o.logger,
			Metrics:    o.counters,
		},
		store: o.store,
		bus:   o.bus,
		log:   o.logger,
		now:   time.Now,
	}
}

// Config returns the client's configuration snapshot.
func (c *Client) Config() *config.Config {
	return c.cfg
}

func (c *Client) IsSandbox() bool {
	return c.cfg.Sandbox
}

func (c *Client) post(ctx context.Context, endpoint string, payload map[string]any) (response.Payload, error) {
	url, err := c.cfg.URL(endpoint)
	if err != nil {
		return nil, err
	}
	return c.dispatcher.Do(ctx, http.MethodPost, url, payload)
}

// logTransaction writes the raw response to the transaction store. The
// write is best-effort: failures are logged and swallowed.
func (c *Client) logTransaction(typ string, raw response.Payload) {
	if c.store == nil || !c.cfg.LogTransactions || raw == nil {
		return
	}

	entry := &storage.TransactionLog{
		Type:      typ,
		CreatedAt: c.now().UTC(),
		UpdatedAt: c.now().UTC(),
	}

	if id, ok := raw.String("paymentID"); ok {
		entry.PaymentID = id
	} else if id, ok := raw.String("agreementID"); ok {
		entry.PaymentID = id
	}
	if trx, ok := raw.String("trxID"); ok {
		entry.TrxID = trx
	}
	if amount, ok := raw.Float("amount"); ok {
		entry.Amount = amount
	}
	entry.Status = transactionLogStatus(raw)
	if code, ok := raw.String("statusCode"); ok {
		entry.StatusCode = code
	}
	if msg, ok := raw.String("statusMessage"); ok {
		entry.StatusMessage = msg
	}
	if body, err := json.Marshal(raw); err == nil {
		entry.Response = body
	}

	if err := c.store.Save(entry); err != nil {
		c.log.Warn("failed to log transaction", map[string]any{
			"type":  typ,
			"error": err.Error(),
		})
	}
}

func transactionLogStatus(raw response.Payload) string {
	if s, ok := raw.String("transactionStatus"); ok {
		return s
	}
	if s, ok := raw.String("agreementStatus"); ok {
		return s
	}
	if code, ok := raw.String("statusCode"); ok && code == "0000" {
		return storage.StatusSuccess
	}
	return storage.StatusFailed
}

func (c *Client) publish(evt events.Event) {
	if c.bus == nil {
		return
	}
	if err := c.bus.Publish(evt); err != nil {
		c.log.Warn("event handler failed", map[string]any{
			"event": string(evt.Type),
			"error": err.Error(),
		})
	}
}
