package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jonathan/resume-radar/internal/stubserver"
	"github.com/spf13/cobra"
)

var demoCmd = &cobra.Command{
	Use:   "demo",
	Short: "Run a local demo backend",
	Long:  "Start a local HTTP server with a deterministic scoring endpoint and sample job posting pages, for trying the scanner without the real backend.",
	RunE:  runDemo,
}

var demoPort int

func init() {
	demoCmd.Flags().IntVar(&demoPort, "port", 8000, "Port to listen on")
	rootCmd.AddCommand(demoCmd)
}

func runDemo(_ *cobra.Command, _ []string) error {
	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", demoPort),
		Handler: stubserver.New().Router(),
	}

	errCh := make(chan error, 1)
	go func() {
		fmt.Fprintf(os.Stdout, "Demo backend listening on http://localhost:%d\n", demoPort)
		fmt.Fprintf(os.Stdout, "Sample pages: /jobs/sample and /jobs/sparse\n")
		errCh <- srv.ListenAndServe()
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-stop:
	}

	fmt.Fprintln(os.Stdout, "Shutting down...")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return srv.Shutdown(ctx)
}
