package contentapi

import (
	"context"
	"fmt"
	"sync"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"
)

const (
	// DefaultEarlyExpiry is how long before expiry a token is refreshed.
	DefaultEarlyExpiry = 100 * time.Second

	// DefaultTokenTTL is assumed for tokens that carry no expiry.
	DefaultTokenTTL = 3500 * time.Second
)

// Authorizer supplies the Authorization header of API requests.
type Authorizer interface {
	// Header returns a valid Authorization header value.
	Header(ctx context.Context) (string, error)
	// Refresh discards the current token and obtains a new one.
	Refresh(ctx context.Context) error
}

// Credential holds a bearer token and renews it shortly before it expires.
// It is safe for concurrent use.
type Credential struct {
	fetch       func(ctx context.Context) (*oauth2.Token, error)
	earlyExpiry time.Duration
	defaultTTL  time.Duration
	now         func() time.Time

	mu        sync.Mutex
	token     *oauth2.Token
	expiresAt time.Time
}

var _ Authorizer = (*Credential)(nil)

// CredentialOption configures a Credential.
type CredentialOption func(*Credential)

// WithEarlyExpiry sets how long before expiry the token is refreshed.
// Default is DefaultEarlyExpiry.
func WithEarlyExpiry(d time.Duration) CredentialOption {
	return func(c *Credential) {
		c.earlyExpiry = d
	}
}

// WithTokenTTL sets the lifetime assumed for tokens without expiry.
// Default is DefaultTokenTTL.
func WithTokenTTL(d time.Duration) CredentialOption {
	return func(c *Credential) {
		c.defaultTTL = d
	}
}

// withClock replaces time.Now in tests.
func withClock(now func() time.Time) CredentialOption {
	return func(c *Credential) {
		c.now = now
	}
}

// NewCredential creates a Credential drawing tokens from source.
// No token is requested until Acquire or Header is called.
func NewCredential(source oauth2.TokenSource, opts ...CredentialOption) *Credential {
	return newCredential(func(context.Context) (*oauth2.Token, error) {
		return source.Token()
	}, opts...)
}

// NewClientCredentials creates a Credential using the OAuth2 client
// credentials grant against the token URL of cfg.
func NewClientCredentials(cfg *Config, opts ...CredentialOption) *Credential {
	grant := &clientcredentials.Config{
		ClientID:     cfg.ClientID,
		ClientSecret: cfg.ClientSecret,
		TokenURL:     cfg.TokenURL,
	}
	return newCredential(grant.Token, opts...)
}

func newCredential(fetch func(ctx context.Context) (*oauth2.Token, error), opts ...CredentialOption) *Credential {
	c := &Credential{
		fetch:       fetch,
		earlyExpiry: DefaultEarlyExpiry,
		defaultTTL:  DefaultTokenTTL,
		now:         time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Acquire obtains a token if the credential holds none.
func (c *Credential) Acquire(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.token != nil {
		return nil
	}
	return c.refreshLocked(ctx)
}

// Refresh discards the current token and obtains a new one.
func (c *Credential) Refresh(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.refreshLocked(ctx)
}

// Header returns the Authorization header value, refreshing the token
// when it is missing or about to expire.
func (c *Credential) Header(ctx context.Context) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.token == nil || !c.now().Before(c.expiresAt.Add(-c.earlyExpiry)) {
		if err := c.refreshLocked(ctx); err != nil {
			return "", err
		}
	}
	return c.token.Type() + " " + c.token.AccessToken, nil
}

// ExpiresAt returns when the current token expires.
func (c *Credential) ExpiresAt() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.expiresAt
}

func (c *Credential) refreshLocked(ctx context.Context) error {
	token, err := c.fetch(ctx)
	if err != nil {
		return fmt.Errorf("obtaining token: %w", err)
	}

	c.token = token
	if token.Expiry.IsZero() {
		c.expiresAt = c.now().Add(c.defaultTTL)
	} else {
		c.expiresAt = token.Expiry
	}
	return nil
}
