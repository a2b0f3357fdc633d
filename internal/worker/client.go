package worker

import (
	"crypto/tls"
	"net/url"
	"strconv"
	"strings"

	"github.com/hibiken/asynq"
)

// ParseRedisURL turns a redis:// or rediss:// URL (or a bare host:port)
// into asynq connection options.
func ParseRedisURL(redisURL string) (asynq.RedisClientOpt, error) {
	if !strings.HasPrefix(redisURL, "redis://") && !strings.HasPrefix(redisURL, "rediss://") {
		return asynq.RedisClientOpt{Addr: redisURL}, nil
	}

	u, err := url.Parse(redisURL)
	if err != nil {
		return asynq.RedisClientOpt{}, err
	}

	opt := asynq.RedisClientOpt{Addr: u.Host}

	if u.User != nil {
		opt.Username = u.User.Username()
		if password, ok := u.User.Password(); ok {
			opt.Password = password
		}
	}

	// A path like /2 selects a database number.
	if p := strings.TrimPrefix(u.Path, "/"); p != "" {
		if db, err := strconv.Atoi(p); err == nil {
			opt.DB = db
		}
	}

	if u.Scheme == "rediss" {
		opt.TLSConfig = &tls.Config{InsecureSkipVerify: false}
	}

	return opt, nil
}

// NewClient creates an asynq client for enqueueing tasks.
func NewClient(redisURL string) *asynq.Client {
	opt, err := ParseRedisURL(redisURL)
	if err != nil {
		panic("failed to parse Redis URL: " + err.Error())
	}
	return asynq.NewClient(opt)
}
