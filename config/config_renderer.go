package config

import (
	"errors"
	"strings"
	"time"

	"github.com/adrianliechti/cardsheet/pkg/limiter"
	"github.com/adrianliechti/cardsheet/pkg/otel"
	"github.com/adrianliechti/cardsheet/pkg/renderer"
	"github.com/adrianliechti/cardsheet/pkg/renderer/fitz"
	"github.com/adrianliechti/cardsheet/pkg/renderer/multi"
	"github.com/adrianliechti/cardsheet/pkg/renderer/poppler"
	"github.com/adrianliechti/cardsheet/pkg/renderer/preflight"
)

type rendererConfig struct {
	Type string `yaml:"type"`

	Path    string `yaml:"path"`
	Timeout string `yaml:"timeout"`

	Preflight *bool `yaml:"preflight"`

	Limit *int `yaml:"limit"`

	Fallback *rendererConfig `yaml:"fallback"`
}

func (c *Config) registerRenderer(f *configFile) error {
	config := rendererConfig{}

	if f.Renderer != nil {
		config = *f.Renderer
	}

	r, err := createRenderer(config)

	if err != nil {
		return err
	}

	if config.Preflight == nil || *config.Preflight {
		r = preflight.New(r)
	}

	if l := createLimiter(config.Limit); l != nil {
		r = limiter.NewRenderer(l, r)
	}

	name := strings.ToLower(config.Type)

	if name == "" {
		name = "fitz"
	}

	c.renderer = otel.NewRenderer(name, r)

	return nil
}

func createRenderer(cfg rendererConfig) (renderer.Renderer, error) {
	r, err := createEngine(cfg)

	if err != nil || cfg.Fallback == nil {
		return r, err
	}

	fallback, err := createRenderer(*cfg.Fallback)

	if err != nil {
		return nil, err
	}

	return multi.New(r, fallback), nil
}

func createEngine(cfg rendererConfig) (renderer.Renderer, error) {
	switch strings.ToLower(cfg.Type) {
	case "", "fitz", "mupdf":
		return fitzRenderer(cfg)

	case "pdftoppm", "poppler":
		return popplerRenderer(cfg)

	default:
		return nil, errors.New("invalid renderer type: " + cfg.Type)
	}
}

func fitzRenderer(cfg rendererConfig) (renderer.Renderer, error) {
	return fitz.New()
}

func popplerRenderer(cfg rendererConfig) (renderer.Renderer, error) {
	var options []poppler.Option

	if cfg.Path != "" {
		options = append(options, poppler.WithBinary(cfg.Path))
	}

	if cfg.Timeout != "" {
		timeout, err := time.ParseDuration(cfg.Timeout)

		if err != nil {
			return nil, err
		}

		options = append(options, poppler.WithTimeout(timeout))
	}

	return poppler.New(options...)
}
