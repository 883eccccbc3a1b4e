package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/jonathan/resume-radar/internal/agent"
	"github.com/jonathan/resume-radar/internal/config"
	"github.com/jonathan/resume-radar/internal/controller"
	"github.com/jonathan/resume-radar/internal/dom"
	"github.com/jonathan/resume-radar/internal/fetch"
	"github.com/jonathan/resume-radar/internal/history"
	"github.com/jonathan/resume-radar/internal/render"
	"github.com/jonathan/resume-radar/internal/scan"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

var scanCmd = &cobra.Command{
	Use:   "scan",
	Short: "Score a resume against a job description",
	Long:  "Upload a resume, obtain a job description from a page, file, or pasted text, and submit both to the scoring backend.",
	RunE:  runScan,
}

var (
	scanResume     string
	scanJDText     string
	scanJDFile     string
	scanURL        string
	scanTab        bool
	scanConfigPath string
	scanBackend    string
	scanTimeout    int
	scanBrowser    bool
	scanVerbose    bool
	scanNoHistory  bool
)

func init() {
	scanCmd.Flags().StringVarP(&scanResume, "resume", "r", "", "Path to resume file, PDF or DOCX (required)")
	scanCmd.Flags().StringVar(&scanJDText, "jd-text", "", "Job description text")
	scanCmd.Flags().StringVar(&scanJDFile, "jd-file", "", "Path to file containing job description text")
	scanCmd.Flags().StringVarP(&scanURL, "url", "u", "", "URL of a job posting page to extract the description from")
	scanCmd.Flags().BoolVar(&scanTab, "tab", false, "Extract from the active tab of a browser reachable at the DevTools URL")
	scanCmd.Flags().StringVarP(&scanConfigPath, "config", "c", "", "Path to JSON config file")
	scanCmd.Flags().StringVar(&scanBackend, "backend", "", "Scoring backend base URL (overrides config)")
	scanCmd.Flags().IntVar(&scanTimeout, "timeout", 0, "Scan timeout in seconds (overrides config)")
	scanCmd.Flags().BoolVar(&scanBrowser, "browser", false, "Render the page in a headless browser before extraction")
	scanCmd.Flags().BoolVarP(&scanVerbose, "verbose", "v", false, "Enable verbose output")
	scanCmd.Flags().BoolVar(&scanNoHistory, "no-history", false, "Do not record this scan in the local history database")

	scanCmd.MarkFlagRequired("resume")

	rootCmd.AddCommand(scanCmd)
}

func runScan(_ *cobra.Command, _ []string) error {
	cfg, err := resolveConfig(scanConfigPath)
	if err != nil {
		return err
	}
	if scanBackend != "" {
		cfg.BackendURL = scanBackend
	}
	if scanTimeout > 0 {
		cfg.TimeoutSeconds = scanTimeout
	}
	if scanBrowser {
		cfg.UseBrowser = true
	}
	if scanVerbose {
		cfg.Verbose = true
	}

	// Validate mutually exclusive JD sources
	sources := 0
	for _, set := range []bool{scanJDText != "", scanJDFile != "", scanURL != "", scanTab} {
		if set {
			sources++
		}
	}
	if sources == 0 {
		return fmt.Errorf("one of --jd-text, --jd-file, --url or --tab must be provided")
	}
	if sources > 1 {
		return fmt.Errorf("--jd-text, --jd-file, --url and --tab are mutually exclusive; provide only one")
	}

	data, err := os.ReadFile(scanResume)
	if err != nil {
		return fmt.Errorf("failed to read resume: %w", err)
	}

	client := scan.NewClient(cfg.BackendURL, &scan.Options{Timeout: cfg.Timeout()})

	ctx := context.Background()
	g, gctx := errgroup.WithContext(ctx)
	agentCtx, stopAgent := context.WithCancel(gctx)
	defer stopAgent()

	ctrlCfg := controller.Config{
		Scanner:   client,
		Supported: fetch.SupportedSite,
	}

	sourceURL := scanURL
	if scanTab {
		if cfg.DevtoolsURL == "" {
			return fmt.Errorf("--tab requires a DevTools URL (set %s or devtools_url in the config file)", config.EnvDevtoolsURL)
		}
		ctrlCfg.Tabs = func(ctx context.Context) (string, bool) {
			return fetch.ActiveTabURL(ctx, cfg.DevtoolsURL)
		}
		url, ok := fetch.ActiveTabURL(gctx, cfg.DevtoolsURL)
		if !ok {
			return fmt.Errorf("no active browser tab found at %s", cfg.DevtoolsURL)
		}
		sourceURL = url
		if cfg.Verbose {
			log.Printf("[VERBOSE] active tab: %s", sourceURL)
		}
	}

	if sourceURL != "" {
		pageAgent := agent.New(agent.SourceFunc(func(ctx context.Context) (*dom.Document, error) {
			html, err := pageHTML(ctx, cfg, sourceURL)
			if err != nil {
				return nil, err
			}
			return dom.Parse(html)
		}))
		ctrlCfg.Page = pageAgent
		g.Go(func() error {
			if err := pageAgent.Run(agentCtx); !errors.Is(err, context.Canceled) {
				return err
			}
			return nil
		})
	}

	ctrl := controller.New(ctrlCfg)
	ctrl.Mount(gctx)

	printer := render.NewPrinter(os.Stdout)

	if err := ctrl.Upload(filepath.Base(scanResume), resumeMIME(scanResume), data); err != nil {
		return err
	}
	uploaded := ctrl.State()
	printer.PrintUpload(uploaded.ResumeFilename, uploaded.ResumeSizeKB)

	switch {
	case scanJDText != "":
		ctrl.SetJD(scanJDText)
	case scanJDFile != "":
		raw, err := os.ReadFile(scanJDFile)
		if err != nil {
			return fmt.Errorf("failed to read job description file: %w", err)
		}
		ctrl.SetJD(string(raw))
	default:
		text, err := ctrl.ScanPage(gctx)
		if err != nil {
			return err
		}
		if cfg.Verbose {
			log.Printf("[VERBOSE] extracted %d characters from %s", len(text), sourceURL)
		}
	}

	result, err := ctrl.Scan(gctx)
	stopAgent()
	if err != nil {
		return err
	}
	if gerr := g.Wait(); gerr != nil {
		return gerr
	}

	printer.PrintScanResult(result)

	if !scanNoHistory && cfg.HistoryPath != "" {
		jdChars := len(ctrl.State().PastedJD)
		if err := recordScan(ctx, cfg.HistoryPath, sourceURL, filepath.Base(scanResume), result, jdChars); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: failed to record scan history: %v\n", err)
		}
	}

	return nil
}

// pageHTML fetches a page either over plain HTTP or through a headless
// browser, which also measures element heights for the extraction
// heuristics.
func pageHTML(ctx context.Context, cfg config.Config, url string) (string, error) {
	if cfg.UseBrowser {
		return fetch.Rendered(ctx, url, cfg.Timeout(), cfg.Verbose)
	}
	res, err := fetch.URL(ctx, url, &fetch.Options{Timeout: cfg.Timeout()})
	if err != nil {
		return "", err
	}
	return res.HTML, nil
}

func recordScan(ctx context.Context, path, sourceURL, resumeName string, result *scan.ScanResponse, jdChars int) error {
	store, err := history.Open(path)
	if err != nil {
		return err
	}
	defer store.Close()

	return store.Record(ctx, history.Entry{
		SourceURL:      sourceURL,
		ResumeFilename: resumeName,
		ATSScore:       result.ATSScore,
		JDChars:        jdChars,
	})
}

func resumeMIME(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".pdf":
		return "application/pdf"
	case ".docx":
		return "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	default:
		return "application/octet-stream"
	}
}
