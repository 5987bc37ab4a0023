package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"

	"github.com/adrianliechti/cardsheet/pkg/auth"
	"github.com/adrianliechti/cardsheet/pkg/extractor"
	"github.com/adrianliechti/cardsheet/pkg/layout"
	"github.com/adrianliechti/cardsheet/pkg/opener"
	"github.com/adrianliechti/cardsheet/pkg/publisher"
	"github.com/adrianliechti/cardsheet/pkg/renderer"
	"github.com/adrianliechti/cardsheet/pkg/session"

	"golang.org/x/time/rate"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Address string

	Template string
	Output   string

	Region extractor.Region
	Width  int

	Authorizers []auth.Provider

	renderer   renderer.Renderer
	publishers []publisher.Provider
}

// Parse reads the configuration at path. An empty path yields the defaults.
func Parse(path string) (*Config, error) {
	file := &configFile{}

	if path != "" {
		f, err := parseFile(path)

		if err != nil {
			return nil, err
		}

		file = f
	}

	c := &Config{
		Address: ":8080",

		Region: extractor.DefaultRegion,
		Width:  layout.DefaultWidth,
	}

	if file.Address != "" {
		c.Address = file.Address
	}

	c.Template = file.Template
	c.Output = file.Output

	if err := c.registerRegion(file); err != nil {
		return nil, err
	}

	if err := c.registerLayout(file); err != nil {
		return nil, err
	}

	if err := c.registerRenderer(file); err != nil {
		return nil, err
	}

	if err := c.registerAuthorizer(file); err != nil {
		return nil, err
	}

	if err := c.registerPublishers(file); err != nil {
		return nil, err
	}

	return c, nil
}

type configFile struct {
	Address string `yaml:"address"`

	Template string `yaml:"template"`
	Output   string `yaml:"output"`

	Region *regionConfig `yaml:"region"`
	Layout *layoutConfig `yaml:"layout"`

	Renderer *rendererConfig `yaml:"renderer"`

	Authorizers []authorizerConfig `yaml:"authorizers"`

	Publishers yaml.Node `yaml:"publishers"`
}

func parseFile(path string) (*configFile, error) {
	data, err := os.ReadFile(path)

	if err != nil {
		return nil, err
	}

	data = []byte(os.ExpandEnv(string(data)))

	var config configFile

	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)

	if err := decoder.Decode(&config); err != nil {
		return nil, err
	}

	return &config, nil
}

type regionConfig struct {
	Left   *float64 `yaml:"left"`
	Top    *float64 `yaml:"top"`
	Right  *float64 `yaml:"right"`
	Bottom *float64 `yaml:"bottom"`

	Zoom *float64 `yaml:"zoom"`
}

func (c *Config) registerRegion(f *configFile) error {
	if f.Region == nil {
		return nil
	}

	set := func(dst *float64, val *float64) {
		if val != nil {
			*dst = *val
		}
	}

	set(&c.Region.Left, f.Region.Left)
	set(&c.Region.Top, f.Region.Top)
	set(&c.Region.Right, f.Region.Right)
	set(&c.Region.Bottom, f.Region.Bottom)
	set(&c.Region.Zoom, f.Region.Zoom)

	return c.Region.Validate()
}

type layoutConfig struct {
	Width int `yaml:"width"`
}

func (c *Config) registerLayout(f *configFile) error {
	if f.Layout == nil || f.Layout.Width == 0 {
		return nil
	}

	if f.Layout.Width < 0 {
		return fmt.Errorf("invalid layout width %d", f.Layout.Width)
	}

	c.Width = f.Layout.Width

	return nil
}

func (c *Config) Renderer() (renderer.Renderer, error) {
	if c.renderer == nil {
		return nil, errors.New("renderer not configured")
	}

	return c.renderer, nil
}

func (c *Config) Publishers() []publisher.Provider {
	return c.publishers
}

// Extractor returns the region extractor backed by the configured renderer.
func (c *Config) Extractor() (*extractor.Extractor, error) {
	r, err := c.Renderer()

	if err != nil {
		return nil, err
	}

	return extractor.New(r, c.Region)
}

// Driver returns the session driver for this configuration. The platform
// folder opener is attached where available.
func (c *Config) Driver(options ...session.Option) (*session.Driver, error) {
	e, err := c.Extractor()

	if err != nil {
		return nil, err
	}

	defaults := []session.Option{
		session.WithTemplate(c.Template),
		session.WithOutput(c.Output),
		session.WithWidth(c.Width),
		session.WithPublisher(c.publishers...),
	}

	if o := opener.Default(); o != nil {
		defaults = append(defaults, session.WithOpener(o))
	}

	return session.New(e, append(defaults, options...)...)
}

func createLimiter(limit *int) *rate.Limiter {
	if limit == nil {
		return nil
	}

	return rate.NewLimiter(rate.Limit(*limit), *limit)
}
