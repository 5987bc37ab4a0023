package gcs

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/adrianliechti/cardsheet/pkg/publisher"
	"github.com/adrianliechti/cardsheet/pkg/report"

	"cloud.google.com/go/storage"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
)

var _ publisher.Provider = &Client{}

type Client struct {
	client  *storage.Client
	options []option.ClientOption

	bucket string
	prefix string

	retries int
	backoff time.Duration
}

func New(ctx context.Context, bucket string, options ...Option) (*Client, error) {
	if bucket == "" {
		return nil, errors.New("bucket is required")
	}

	c := &Client{
		bucket: bucket,

		retries: 4,
		backoff: time.Second,
	}

	for _, option := range options {
		option(c)
	}

	if c.client == nil {
		client, err := storage.NewClient(ctx, c.options...)

		if err != nil {
			return nil, fmt.Errorf("failed to create storage client: %w", err)
		}

		c.client = client
	}

	return c, nil
}

func (c *Client) Publish(ctx context.Context, name string, data []byte) (string, error) {
	object := c.prefix + name
	location := fmt.Sprintf("gs://%s/%s", c.bucket, object)

	backoff := c.backoff

	var lastErr error

	for i := 0; i < max(c.retries, 1); i++ {
		err := c.upload(ctx, object, data)

		if err == nil {
			return location, nil
		}

		if isPreconditionFailed(err) {
			slog.Info("report already published", "object", location)
			return location, nil
		}

		lastErr = err

		slog.Warn("upload failed, will retry",
			"object", location,
			"attempt", i+1,
			"backoff", backoff.String(),
			"error", err,
		)

		select {
		case <-time.After(backoff):
			backoff *= 2
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}

	return "", fmt.Errorf("upload of %s failed after all retries: %w", location, lastErr)
}

func (c *Client) upload(ctx context.Context, object string, data []byte) error {
	w := c.client.Bucket(c.bucket).Object(object).If(storage.Conditions{DoesNotExist: true}).NewWriter(ctx)
	w.ContentType = report.ContentType

	if _, err := io.Copy(w, bytes.NewReader(data)); err != nil {
		w.Close()
		return err
	}

	return w.Close()
}

func (c *Client) Close() error {
	return c.client.Close()
}

func isPreconditionFailed(err error) bool {
	var gerr *googleapi.Error

	if errors.As(err, &gerr) {
		return gerr.Code == http.StatusPreconditionFailed
	}

	return false
}
