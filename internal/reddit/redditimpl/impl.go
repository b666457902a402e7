package redditimpl

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/orgball2608/reddit-videogen/internal/ratelimit"
	"github.com/orgball2608/reddit-videogen/internal/reddit"
	"github.com/orgball2608/reddit-videogen/pkg/config"
	"github.com/orgball2608/reddit-videogen/pkg/logger"
	"github.com/orgball2608/reddit-videogen/pkg/retry"
	goreddit "github.com/vartanbeno/go-reddit/v2/reddit"
	"go.uber.org/fx"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"
)

const (
	oauthBaseURL   = "https://oauth.reddit.com"
	tokenURL       = "https://www.reddit.com/api/v1/access_token"
	webBaseURL     = "https://www.reddit.com"
	limiterKey     = "reddit"
	requestTimeout = 30 * time.Second
)

type Opts struct {
	fx.In

	Config  *config.Config
	Logger  logger.Logger
	Limiter ratelimit.Limiter
}

type RedditImpl struct {
	client  *goreddit.Client
	logger  logger.Logger
	limiter ratelimit.Limiter
	retry   retry.Config
}

func New(opts Opts) (*RedditImpl, error) {
	client, err := newClient(opts.Config)
	if err != nil {
		return nil, fmt.Errorf("failed to create reddit client: %w", err)
	}

	return &RedditImpl{
		client:  client,
		logger:  opts.Logger.WithComponent("RedditClient"),
		limiter: opts.Limiter,
		retry:   retry.DefaultConfig(),
	}, nil
}

var _ reddit.Client = (*RedditImpl)(nil)

// newClient uses app-only OAuth when credentials are configured and falls
// back to the anonymous read-only endpoint otherwise.
func newClient(cfg *config.Config) (*goreddit.Client, error) {
	opts := []goreddit.Opt{goreddit.WithUserAgent(cfg.Reddit.UserAgent)}

	if cfg.Reddit.ClientID != "" && cfg.Reddit.ClientSecret != "" {
		cc := clientcredentials.Config{
			ClientID:     cfg.Reddit.ClientID,
			ClientSecret: cfg.Reddit.ClientSecret,
			TokenURL:     tokenURL,
		}

		// The token endpoint rejects requests without a descriptive user agent.
		tokenClient := &http.Client{
			Timeout:   requestTimeout,
			Transport: &userAgentTransport{userAgent: cfg.Reddit.UserAgent, base: http.DefaultTransport},
		}
		ctx := context.WithValue(context.Background(), oauth2.HTTPClient, tokenClient)

		httpClient := cc.Client(ctx)
		httpClient.Timeout = requestTimeout

		opts = append(opts,
			goreddit.WithHTTPClient(httpClient),
			goreddit.WithBaseURL(oauthBaseURL),
		)
	} else {
		opts = append(opts, goreddit.WithHTTPClient(&http.Client{Timeout: requestTimeout}))
	}

	return goreddit.NewReadonlyClient(opts...)
}

type userAgentTransport struct {
	userAgent string
	base      http.RoundTripper
}

func (t *userAgentTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	r := req.Clone(req.Context())
	r.Header.Set("User-Agent", t.userAgent)
	return t.base.RoundTrip(r)
}

func absoluteURL(permalink string) string {
	if permalink == "" || strings.HasPrefix(permalink, "http://") || strings.HasPrefix(permalink, "https://") {
		return permalink
	}
	return webBaseURL + permalink
}
