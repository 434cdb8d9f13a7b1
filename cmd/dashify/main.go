// Package main provides the CLI entry point for dashify.
package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	flag "github.com/ogier/pflag"

	"dashify/internal/orchestrator"
	"dashify/internal/output"
	"dashify/internal/watcher"
)

var (
	verbose  = flag.BoolP("verbose", "v", false, "print each rename as it happens")
	watch    = flag.BoolP("watch", "w", false, "keep running and rename new entries as they arrive")
	debounce = flag.DurationP("debounce", "d", 2*time.Second, "watch mode delay before a pass runs after events settle")
)

func main() {
	flag.Parse()

	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "Usage: dashify [flags] <directory>")
		flag.PrintDefaults()
		os.Exit(1)
	}
	directory := flag.Arg(0)

	cfg := output.DefaultConfig()
	cfg.Verbose = *verbose
	out := output.New(cfg)
	opts := orchestrator.Options{Output: out}

	// Initial pass
	summary, err := orchestrator.Run(directory, opts)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	out.Verbose("Pass completed in %v", summary.Duration)
	fmt.Println(summary.PrintSummary())

	if !*watch {
		return
	}

	// Watch mode: rerun a pass whenever new underscored entries settle.
	w := watcher.New(&watcher.WatchConfig{Debounce: *debounce}, func() (int, error) {
		s, err := orchestrator.Run(directory, opts)
		if err != nil {
			out.Error("Error: %v", err)
			// A pass that failed mid-apply still renamed entries.
			if s != nil {
				return s.Renamed, err
			}
			return 0, err
		}
		if s.Renamed > 0 {
			out.Info("%s", s.PrintSummary())
		}
		return s.Renamed, nil
	})
	if err := w.Start(directory); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	out.Info("Watching %s for new entries (Ctrl+C to stop)", directory)

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	watchSummary := w.Stop()
	out.Info("Watched for %v: %d passes, %d entries renamed, %d failures",
		watchSummary.Duration.Round(time.Second),
		watchSummary.Passes, watchSummary.Renamed, watchSummary.Failures)

	if watchSummary.Failures > 0 {
		os.Exit(1)
	}
}
