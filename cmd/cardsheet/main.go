package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/adrianliechti/cardsheet/config"
	"github.com/adrianliechti/cardsheet/pkg/extractor"
	"github.com/adrianliechti/cardsheet/pkg/layout"
	"github.com/adrianliechti/cardsheet/pkg/session"
)

func main() {
	configFlag := flag.String("config", os.Getenv("CONFIG"), "config file")
	templateFlag := flag.String("template", "", "back template image")
	outputFlag := flag.String("output", "", "output directory")

	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "usage: %s [flags] file.pdf...\n", filepath.Base(os.Args[0]))
		flag.PrintDefaults()
	}

	flag.Parse()

	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn})))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, *configFlag, *templateFlag, *outputFlag, flag.Args()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(ctx context.Context, path, template, output string, names []string) error {
	cfg, err := config.Parse(path)

	if err != nil {
		return err
	}

	if template != "" {
		cfg.Template = template
	}

	if output != "" {
		cfg.Output = output
	}

	driver, err := cfg.Driver()

	if err != nil {
		return err
	}

	if err := driver.CheckTemplate(); err != nil {
		return err
	}

	fmt.Printf("Using back template %s\n", driver.TemplatePath())

	files, err := readFiles(names)

	if err != nil {
		return err
	}

	result, err := driver.Execute(ctx, files, &printer{})

	if err != nil {
		return err
	}

	fmt.Println("Extraction complete!")

	for _, name := range result.Skipped {
		fmt.Printf("Skipped: %s\n", name)
	}

	for _, location := range result.Locations {
		fmt.Printf("Published: %s\n", location)
	}

	fmt.Printf("File saved: %s\n", result.Path)

	return nil
}

func readFiles(names []string) ([]extractor.File, error) {
	var files []extractor.File

	for _, name := range names {
		data, err := os.ReadFile(name)

		if err != nil {
			return nil, err
		}

		files = append(files, extractor.File{
			Name: filepath.Base(name),

			Content:     data,
			ContentType: "application/pdf",
		})
	}

	return files, nil
}

type printer struct{}

func (p *printer) Layout(params layout.Params) {
	fmt.Printf("Target cell size: %dx%d px\n", params.Width, params.Height)
}

func (p *printer) Status(index int, name string) {
	fmt.Printf("Processing: %s\n", name)
}

func (p *printer) Progress(done, total int) {
	fmt.Printf("[%d/%d]\n", done, total)
}

var _ session.Observer = (*printer)(nil)
