package gcs

import (
	"time"

	"cloud.google.com/go/storage"
	"google.golang.org/api/option"
)

type Option func(*Client)

func WithPrefix(prefix string) Option {
	return func(c *Client) {
		c.prefix = prefix
	}
}

func WithClient(client *storage.Client) Option {
	return func(c *Client) {
		c.client = client
	}
}

// WithClientOptions configures the storage client created by New.
func WithClientOptions(options ...option.ClientOption) Option {
	return func(c *Client) {
		c.options = append(c.options, options...)
	}
}

func WithRetries(retries int, backoff time.Duration) Option {
	return func(c *Client) {
		c.retries = retries
		c.backoff = backoff
	}
}
