// Package redis provides an email directory backed by a Redis set.
package redis

import (
	"context"
	"errors"
	"fmt"
	"strings"

	goredis "github.com/redis/go-redis/v9"

	"github.com/jsamuelsen11/tryconstruct/internal/domain"
	"github.com/jsamuelsen11/tryconstruct/internal/ports"
)

// Compile-time interface checks.
var (
	_ ports.EmailDirectory = (*Directory)(nil)
	_ ports.HealthChecker  = (*Directory)(nil)
)

// ErrHealthcheckFailed is returned by HealthCheck when Redis does not answer
// a PING.
var ErrHealthcheckFailed = errors.New("redis healthcheck failed")

// Directory answers email lookups with SISMEMBER on one set key. Emails are
// stored lower-cased.
type Directory struct {
	client goredis.UniversalClient
	key    string
}

// NewDirectory returns a directory reading the set at key.
func NewDirectory(client goredis.UniversalClient, key string) *Directory {
	return &Directory{client: client, key: key}
}

// Connect parses a redis:// URL and returns a client for it.
func Connect(url string) (*goredis.Client, error) {
	opts, err := goredis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parse redis URL: %w", err)
	}
	return goredis.NewClient(opts), nil
}

// Exists reports whether email is in the set. Context errors are returned
// as they are; any other failure wraps domain.ErrUnavailable.
func (d *Directory) Exists(ctx context.Context, email string) (bool, error) {
	ok, err := d.client.SIsMember(ctx, d.key, normalize(email)).Result()
	if err != nil {
		return false, d.wrap(ctx, "sismember", err)
	}
	return ok, nil
}

// Add registers emails in the set.
func (d *Directory) Add(ctx context.Context, emails ...string) error {
	if len(emails) == 0 {
		return nil
	}
	members := make([]any, len(emails))
	for i, e := range emails {
		members[i] = normalize(e)
	}
	if err := d.client.SAdd(ctx, d.key, members...).Err(); err != nil {
		return d.wrap(ctx, "sadd", err)
	}
	return nil
}

func (d *Directory) wrap(ctx context.Context, op string, err error) error {
	if ctxErr := ctx.Err(); ctxErr != nil {
		return ctxErr
	}
	return fmt.Errorf("%w: redis %s %s: %w", domain.ErrUnavailable, op, d.key, err)
}

// Name identifies the directory in health reports.
func (d *Directory) Name() string {
	return "redis-directory"
}

// HealthCheck pings Redis.
func (d *Directory) HealthCheck(ctx context.Context) error {
	if _, err := d.client.Ping(ctx).Result(); err != nil {
		return errors.Join(ErrHealthcheckFailed, err)
	}
	return nil
}

func normalize(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
