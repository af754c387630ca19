package petstore

import (
	"encoding/json"
	"fmt"

	"github.com/Adda-Baaj/petstore-client/pkg/httpclient"
)

// Client bundles the pet, store and user wrappers over one transport.
type Client struct {
	Pets  *PetAPI
	Store *StoreAPI
	Users *UserAPI

	transport *Transport
}

// Option customizes New.
type Option func(*options)

type options struct {
	httpClient httpclient.Client
	log        Logger
}

// WithHTTPClient replaces the default resty-backed client.
func WithHTTPClient(c httpclient.Client) Option {
	return func(o *options) { o.httpClient = c }
}

// WithLogger sets the logger used by the transport and wrappers.
func WithLogger(log Logger) Option {
	return func(o *options) { o.log = log }
}

// New builds a client from cfg. Empty config fields fall back to DefaultConfig.
func New(cfg Config, opts ...Option) *Client {
	cfg = cfg.normalized()

	var o options
	for _, opt := range opts {
		opt(&o)
	}
	log := ensureLogger(o.log)
	if o.httpClient == nil {
		o.httpClient = httpclient.NewRestyClient(httpclient.Options{
			Timeout:    cfg.Timeout,
			RetryCount: cfg.RetryCount,
			Logger:     log,
		})
	}

	t := NewTransport(cfg.BaseURL, o.httpClient, log)
	return &Client{
		Pets:      NewPetAPI(t, log, cfg.LogResponseHeaders),
		Store:     NewStoreAPI(t),
		Users:     NewUserAPI(t, cfg.LegacyUserPath),
		transport: t,
	}
}

// BaseURL returns the service root the client talks to.
func (c *Client) BaseURL() string { return c.transport.BaseURL() }

func mustJSON(v any) []byte {
	data, err := json.Marshal(v)
	if err != nil {
		panic(fmt.Sprintf("petstore: encode %T: %v", v, err))
	}
	return data
}
