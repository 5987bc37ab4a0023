package config

import (
	"context"
	"errors"
	"strings"

	"github.com/adrianliechti/cardsheet/pkg/otel"
	"github.com/adrianliechti/cardsheet/pkg/publisher"
	"github.com/adrianliechti/cardsheet/pkg/publisher/gcs"

	"google.golang.org/api/option"
)

type publisherConfig struct {
	Type string `yaml:"type"`

	Bucket string `yaml:"bucket"`
	Prefix string `yaml:"prefix"`

	Endpoint  string `yaml:"endpoint"`
	Anonymous bool   `yaml:"anonymous"`
}

func (c *Config) registerPublishers(f *configFile) error {
	if f.Publishers.Kind == 0 {
		return nil
	}

	var configs map[string]publisherConfig

	if err := f.Publishers.Decode(&configs); err != nil {
		return err
	}

	// mapping nodes alternate key and value
	for i := 0; i+1 < len(f.Publishers.Content); i += 2 {
		id := f.Publishers.Content[i].Value

		config, ok := configs[id]

		if !ok {
			continue
		}

		p, err := createPublisher(config)

		if err != nil {
			return errors.New("publisher " + id + ": " + err.Error())
		}

		c.publishers = append(c.publishers, otel.NewPublisher(id, p))
	}

	return nil
}

func createPublisher(cfg publisherConfig) (publisher.Provider, error) {
	switch strings.ToLower(cfg.Type) {
	case "gcs", "google":
		return gcsPublisher(cfg)

	default:
		return nil, errors.New("invalid publisher type: " + cfg.Type)
	}
}

func gcsPublisher(cfg publisherConfig) (publisher.Provider, error) {
	var clientOptions []option.ClientOption

	if cfg.Endpoint != "" {
		clientOptions = append(clientOptions, option.WithEndpoint(cfg.Endpoint))
	}

	if cfg.Anonymous {
		clientOptions = append(clientOptions, option.WithoutAuthentication())
	}

	options := []gcs.Option{
		gcs.WithPrefix(cfg.Prefix),
		gcs.WithClientOptions(clientOptions...),
	}

	return gcs.New(context.Background(), cfg.Bucket, options...)
}
