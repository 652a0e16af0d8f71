// Package directory implements user.Directory against a remote HTTP user
// directory. Requests go through httpclient.Client, so they are rate limited,
// retried and guarded by a circuit breaker.
package directory

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/jsamuelsen11/tryconstruct/internal/domain"
	"github.com/jsamuelsen11/tryconstruct/internal/platform/httpclient"
	"github.com/jsamuelsen11/tryconstruct/internal/ports"
)

// ExistsPath is the directory endpoint that answers whether an email is taken.
const ExistsPath = "/api/v1/users/exists"

// ServiceName is the peer name used for the directory's httpclient.Client.
const ServiceName = "email-directory"

var (
	_ ports.EmailDirectory = (*Client)(nil)
	_ ports.HealthChecker  = (*Client)(nil)
)

type existsResponse struct {
	Exists *bool `json:"exists"`
}

// Client asks a remote directory whether an email is registered.
type Client struct {
	http   *httpclient.Client
	logger *slog.Logger
}

// NewClient returns a Client that sends its requests through c. A nil logger
// discards output.
func NewClient(c *httpclient.Client, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Client{http: c, logger: logger}
}

// Exists reports whether email is already registered. Context errors are
// returned unwrapped; every other failure wraps domain.ErrUnavailable, since
// the directory gave no answer.
func (c *Client) Exists(ctx context.Context, email string) (bool, error) {
	var body existsResponse
	if err := c.getJSON(ctx, ExistsPath, url.Values{"email": {email}}, &body); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return false, ctxErr
		}
		c.logger.WarnContext(ctx, "directory lookup failed",
			slog.String("operation", "directory.Exists"),
			slog.Any("error", err),
		)
		if errors.Is(err, domain.ErrUnavailable) {
			return false, err
		}
		return false, fmt.Errorf("%w: %s: %w", domain.ErrUnavailable, c.Name(), err)
	}
	if body.Exists == nil {
		return false, fmt.Errorf("%w: %s: response has no exists field", domain.ErrUnavailable, c.Name())
	}
	return *body.Exists, nil
}

// getJSON fetches path and decodes a 200 body into out. Any other status is
// translated with TranslateHTTPError.
func (c *Client) getJSON(ctx context.Context, path string, query url.Values, out any) error {
	resp, err := c.http.Get(ctx, path, query)
	if resp != nil {
		defer func() {
			if cerr := resp.Body.Close(); cerr != nil {
				c.logger.DebugContext(ctx, "closing directory response", slog.Any("error", cerr))
			}
		}()
	}
	switch {
	case resp != nil && resp.StatusCode != http.StatusOK:
		return TranslateHTTPError(resp)
	case err != nil:
		return err
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decoding %s response: %w", path, err)
	}
	return nil
}
