package main

import (
	"context"
	"fmt"
	"os"

	"github.com/jonathan/resume-radar/internal/dom"
	"github.com/jonathan/resume-radar/internal/locate"
	"github.com/jonathan/resume-radar/internal/render"
	"github.com/spf13/cobra"
)

var extractCmd = &cobra.Command{
	Use:   "extract",
	Short: "Extract a job description from a page",
	Long:  "Locate the 'About the job' section on a job posting page and print the extracted description text, without contacting the scoring backend.",
	RunE:  runExtract,
}

var (
	extractURL        string
	extractHTMLFile   string
	extractConfigPath string
	extractBrowser    bool
	extractVerbose    bool
)

func init() {
	extractCmd.Flags().StringVarP(&extractURL, "url", "u", "", "URL of a job posting page")
	extractCmd.Flags().StringVarP(&extractHTMLFile, "html-file", "f", "", "Path to a saved HTML file")
	extractCmd.Flags().StringVarP(&extractConfigPath, "config", "c", "", "Path to JSON config file")
	extractCmd.Flags().BoolVar(&extractBrowser, "browser", false, "Render the page in a headless browser before extraction")
	extractCmd.Flags().BoolVarP(&extractVerbose, "verbose", "v", false, "Enable verbose output")

	rootCmd.AddCommand(extractCmd)
}

func runExtract(_ *cobra.Command, _ []string) error {
	// Validate mutually exclusive flags
	if extractURL == "" && extractHTMLFile == "" {
		return fmt.Errorf("either --url or --html-file must be provided")
	}
	if extractURL != "" && extractHTMLFile != "" {
		return fmt.Errorf("--url and --html-file are mutually exclusive; provide only one")
	}

	cfg, err := resolveConfig(extractConfigPath)
	if err != nil {
		return err
	}
	if extractBrowser {
		cfg.UseBrowser = true
	}
	if extractVerbose {
		cfg.Verbose = true
	}

	ctx := context.Background()

	var html, source string
	if extractURL != "" {
		source = extractURL
		html, err = pageHTML(ctx, cfg, extractURL)
		if err != nil {
			return fmt.Errorf("failed to fetch page: %w", err)
		}
	} else {
		source = extractHTMLFile
		raw, err := os.ReadFile(extractHTMLFile)
		if err != nil {
			return fmt.Errorf("failed to read HTML file: %w", err)
		}
		html = string(raw)
	}

	doc, err := dom.Parse(html)
	if err != nil {
		return fmt.Errorf("failed to parse page: %w", err)
	}
	text, err := locate.Extract(doc)
	if err != nil {
		return err
	}

	render.NewPrinter(os.Stdout).PrintExtraction(source, text)
	return nil
}
