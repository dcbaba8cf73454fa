package portal

import (
	"context"
	"net/http"
	"net/url"

	"github.com/rs/zerolog"

	"github.com/rezonia/earsiv-client/internal/model"
)

// anonymousPassword is the fixed password of portal-suggested anonymous
// test accounts.
const anonymousPassword = "1"

// RecoveryFunc is invoked when a dispatch call fails with a session
// timeout, before the call is retried. It normally re-authenticates.
type RecoveryFunc func(ctx context.Context, c *Client) error

// Client is a stateful session against the e-Arşiv portal. It is a single
// logical session: token and credential mutation is not synchronized, so a
// Client must not be shared by concurrently dispatching goroutines.
type Client struct {
	httpClient *http.Client
	prodBase   string
	testBase   string

	username string
	password string
	token    string
	testMode bool

	maxRetries       int
	onSessionTimeout RecoveryFunc
	logger           zerolog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithBaseURLs overrides the production and test portal URLs. Used by tests
// to point the client at a local server.
func WithBaseURLs(prod, test string) Option {
	return func(c *Client) {
		c.prodBase = prod
		c.testBase = test
	}
}

// WithCredentials sets the portal account up front.
func WithCredentials(username, password string) Option {
	return func(c *Client) {
		c.username = username
		c.password = password
	}
}

// WithTestMode routes all traffic to the test portal.
func WithTestMode(enabled bool) Option {
	return func(c *Client) {
		c.testMode = enabled
	}
}

// WithMaxRetries bounds how many session-timeout recoveries a single
// operation may attempt.
func WithMaxRetries(n int) Option {
	return func(c *Client) {
		c.maxRetries = n
	}
}

// WithSessionTimeoutHook replaces the default recovery behavior, which is
// re-acquiring an access token with the stored credentials.
func WithSessionTimeoutHook(hook RecoveryFunc) Option {
	return func(c *Client) {
		c.onSessionTimeout = hook
	}
}

// WithLogger attaches a logger. The default discards everything.
func WithLogger(logger zerolog.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// NewClient creates a portal client. Without options it talks to the
// production portal with a 10 second request timeout.
func NewClient(opts ...Option) *Client {
	c := &Client{
		httpClient: &http.Client{Timeout: DefaultTimeout},
		prodBase:   BaseURL,
		testBase:   TestBaseURL,
		maxRetries: DefaultMaxRetries,
		logger:     zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// SetCredentials updates only the provided fields; a nil pointer leaves the
// stored value alone.
func (c *Client) SetCredentials(username, password *string) {
	if username != nil {
		c.username = *username
	}
	if password != nil {
		c.password = *password
	}
}

// Credentials returns the stored portal account.
func (c *Client) Credentials() model.Credentials {
	return model.Credentials{Username: c.username, Password: c.password}
}

// TestMode reports whether traffic goes to the test portal.
func (c *Client) TestMode() bool {
	return c.testMode
}

// SetTestMode switches between the production and test portals. The stored
// token is kept; tokens are not portable between the two, so callers
// normally reconnect afterwards.
func (c *Client) SetTestMode(enabled bool) {
	c.testMode = enabled
}

// Token returns the current access token, empty when disconnected.
func (c *Client) Token() string {
	return c.token
}

// SetToken installs an externally obtained access token.
func (c *Client) SetToken(token string) {
	c.token = token
}

func (c *Client) checkToken() error {
	if c.token == "" {
		return &model.MissingTokenError{}
	}
	return nil
}

func (c *Client) checkCredentials() error {
	if c.username == "" || c.password == "" {
		return &model.MissingCredentialsError{Credentials: c.Credentials()}
	}
	return nil
}

// AccessToken authenticates with the stored credentials and returns a fresh
// token. It never mutates the client; use Connect or InitAccessToken to
// start a session.
func (c *Client) AccessToken(ctx context.Context) (string, error) {
	if err := c.checkCredentials(); err != nil {
		return "", err
	}

	assoscmd := "anologin"
	if c.testMode {
		assoscmd = "login"
	}

	params := url.Values{}
	params.Set("rtype", "json")
	params.Set("userid", c.username)
	params.Set("sifre", c.password)
	params.Set("sifre2", c.password)
	params.Set("parola", "1")
	params.Set("assoscmd", assoscmd)

	body, err := c.post(ctx, tokenPath, params)
	if err != nil {
		return "", err
	}

	token, ok := body["token"].(string)
	if !ok || token == "" {
		return "", model.NewAPIError(model.ErrInvalidAccessToken, "portal returned no access token", body)
	}
	return token, nil
}

// InitAccessToken acquires a token and installs it on the client.
func (c *Client) InitAccessToken(ctx context.Context) error {
	token, err := c.AccessToken(ctx)
	if err != nil {
		return err
	}
	c.token = token
	c.logger.Debug().Bool("test_mode", c.testMode).Msg("session established")
	return nil
}

// Connect starts a session with the stored credentials.
func (c *Client) Connect(ctx context.Context) error {
	return c.InitAccessToken(ctx)
}

// ConnectAnonymous asks the portal for a throwaway test account and starts
// a session with it. The client is forced into test mode.
func (c *Client) ConnectAnonymous(ctx context.Context) error {
	if err := c.UseAnonymousAccount(ctx); err != nil {
		return err
	}
	return c.InitAccessToken(ctx)
}

// Logout ends the portal session and clears the stored token.
func (c *Client) Logout(ctx context.Context) error {
	if err := c.checkToken(); err != nil {
		return err
	}

	params := url.Values{}
	params.Set("rtype", "json")
	params.Set("token", c.token)
	params.Set("assoscmd", "logout")

	if _, err := c.post(ctx, tokenPath, params); err != nil {
		return err
	}
	c.token = ""
	return nil
}

// AnonymousCredentials asks the portal to suggest an anonymous test
// account. The account only works on the test portal.
func (c *Client) AnonymousCredentials(ctx context.Context) (model.Credentials, error) {
	params := url.Values{}
	params.Set("rtype", "json")
	params.Set("assoscmd", "kullaniciOner")

	body, err := c.post(ctx, esignPath, params)
	if err != nil {
		return model.Credentials{}, err
	}

	userid, ok := body["userid"].(string)
	if !ok || userid == "" {
		return model.Credentials{}, model.NewAPIError(model.ErrInvalidAnonymousUserID, "portal returned no anonymous user id", body)
	}
	return model.Credentials{Username: userid, Password: anonymousPassword}, nil
}

// UseAnonymousAccount stores portal-suggested anonymous credentials and
// switches the client to test mode.
func (c *Client) UseAnonymousAccount(ctx context.Context) error {
	// The suggestion endpoint only answers on the test portal.
	c.testMode = true
	creds, err := c.AnonymousCredentials(ctx)
	if err != nil {
		return err
	}
	c.username = creds.Username
	c.password = creds.Password
	return nil
}
