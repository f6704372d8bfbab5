// cmd/ssdeepx/main.go

// Command ssdeepx hashes a batch of files with the external ssdeep
// tool, writing one artifact per input and printing a batch summary.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/pflag"

	"ssdeepx/internal/adapters/output"
	"ssdeepx/internal/adapters/pipe"
	"ssdeepx/internal/adapters/storage"
	"ssdeepx/internal/core/domain"
	"ssdeepx/internal/core/usecases"
	"ssdeepx/internal/hasher/ssdeep"
	"ssdeepx/internal/platform/config"
	"ssdeepx/internal/platform/logx"
)

var (
	// Set via -ldflags at build time
	version = "dev"
	commit  = "none"
)

func main() {
	fs := pflag.NewFlagSet("ssdeepx", pflag.ContinueOnError)
	pipeResult := fs.String("pipe-result", "", "Base64-encoded result of a prior pipeline stage (takes precedence over file args)")
	workflowID := fs.String("workflow-id", "", "Workflow identifier carried into the batch result")
	printResult := fs.Bool("print-result", false, "Print the base64-encoded batch result to stdout")
	showVersion := fs.Bool("version", false, "Print version and exit")

	cfg, files, err := config.Load(fs, os.Args[1:])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: configuration load failed: %v\n", err)
		os.Exit(2)
	}

	if *showVersion {
		fmt.Printf("ssdeepx %s (%s)\n", version, commit)
		os.Exit(0)
	}

	logger := logx.NewWithLevel(logx.ParseLevel(cfg.Log.Level))

	if *pipeResult == "" && len(files) == 0 {
		fmt.Fprintln(os.Stderr, "Error: no input files")
		fmt.Fprintln(os.Stderr, "Usage: ssdeepx [flags] <file>...")
		fmt.Fprintln(os.Stderr, "Try: ssdeepx --help")
		os.Exit(2)
	}

	ctx, cancel := rootContextWithSignals()
	defer cancel()

	// Resolve the effective input sequence: piped envelope first, then
	// the files named on the command line.
	piped, err := pipe.DecodeInputFiles(*pipeResult)
	if err != nil {
		logger.Err(err, "phase", "input-resolution")
		os.Exit(2)
	}
	inputs := usecases.ResolveInputs(piped, inputFilesFromArgs(files))

	runner := ssdeep.NewWithConfig(logger, cfg.Tool.Path, cfg.ToolTimeout())
	defer runner.Close()

	if err := runner.Initialize(); err != nil {
		// Not fatal: a missing binary is reported per file through the
		// normal error classification path.
		logger.Warn("ssdeep binary check failed", "error", err.Error())
	}

	hasher := usecases.NewBatchHasher(usecases.BatchHasherOptions{
		Runner: runner,
		Store:  storage.NewLocalStore(cfg.Output.Dir, logger),
		Logger: logger,
	})

	result, err := hasher.Run(ctx, inputs, *workflowID)
	if err != nil {
		logger.Err(err, "phase", "run")
		os.Exit(1)
	}

	if !cfg.Output.TableDisabled {
		if err := output.PrintSummary(result); err != nil {
			logger.Err(err, "phase", "output")
		}
	}

	if *printResult {
		encoded, err := pipe.EncodeResult(result)
		if err != nil {
			logger.Err(err, "phase", "output")
			os.Exit(1)
		}
		fmt.Println(encoded)
	}
}

// inputFilesFromArgs turns positional file paths into input descriptors.
func inputFilesFromArgs(paths []string) []domain.InputFile {
	inputs := make([]domain.InputFile, 0, len(paths))
	for _, p := range paths {
		inputs = append(inputs, domain.InputFile{
			Path:     p,
			Filename: filepath.Base(p),
		})
	}
	return inputs
}

// rootContextWithSignals creates a root context canceled by SIGINT or
// SIGTERM.
func rootContextWithSignals() (context.Context, context.CancelFunc) {
	base, baseCancel := context.WithCancel(context.Background())

	ch := make(chan os.Signal, 1)
	signal.Notify(ch, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		select {
		case <-ch:
			baseCancel()
		case <-base.Done():
		}
	}()

	cleanup := func() {
		signal.Stop(ch)
		baseCancel()
	}

	return base, cleanup
}
