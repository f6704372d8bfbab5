// cmd/ssdeepx-worker/main.go

// Command ssdeepx-worker consumes hashing tasks from a Redis list, runs
// each batch, and pushes the encoded result to the task's reply list.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/pflag"

	"ssdeepx/internal/adapters/pipe"
	"ssdeepx/internal/adapters/queue"
	"ssdeepx/internal/adapters/storage"
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
	fs := pflag.NewFlagSet("ssdeepx-worker", pflag.ContinueOnError)
	showVersion := fs.Bool("version", false, "Print version and exit")

	cfg, _, err := config.Load(fs, os.Args[1:])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: configuration load failed: %v\n", err)
		os.Exit(2)
	}

	if *showVersion {
		fmt.Printf("ssdeepx-worker %s (%s)\n", version, commit)
		os.Exit(0)
	}

	logger := logx.NewWithLevel(logx.ParseLevel(cfg.Log.Level))

	logger.Info("ssdeepx-worker starting",
		"version", version,
		"queue_url", cfg.Queue.URL,
		"task_list", cfg.Queue.TaskList,
	)

	ctx, cancel := rootContextWithSignals()
	defer cancel()

	consumer, err := queue.NewConsumer(cfg.Queue.URL, cfg.Queue.TaskList, logger)
	if err != nil {
		logger.Err(err, "phase", "broker-connect")
		os.Exit(2)
	}
	defer consumer.Close()

	if err := consumer.Ping(ctx); err != nil {
		logger.Err(err, "phase", "broker-connect")
		os.Exit(2)
	}

	runner := ssdeep.NewWithConfig(logger, cfg.Tool.Path, cfg.ToolTimeout())
	defer runner.Close()

	if err := runner.Initialize(); err != nil {
		logger.Warn("ssdeep binary check failed", "error", err.Error())
	}

	if err := run(ctx, cfg, consumer, runner, logger); err != nil {
		logger.Err(err, "phase", "run")
		os.Exit(1)
	}

	logger.Info("ssdeepx-worker stopped")
}

// run is the worker loop: pop, process, reply, until ctx is canceled.
func run(ctx context.Context, cfg config.Config, consumer *queue.Consumer, runner *ssdeep.Runner, logger logx.Logger) error {
	for {
		select {
		case <-ctx.Done():
			return nil
		default:
		}

		task, err := consumer.Next(ctx, cfg.QueueBlock())
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return err
		}
		if task == nil {
			continue
		}

		handleTask(ctx, task, runner, logger, consumer)
	}
}

// handleTask runs one batch. Per-file failures are already data inside
// the batch result; only collaborator faults produce a failure message.
func handleTask(ctx context.Context, task *queue.TaskMessage, runner *ssdeep.Runner, logger logx.Logger, consumer *queue.Consumer) {
	taskLogger := logger.With("task_id", task.TaskID, "workflow_id", task.WorkflowID)

	piped, err := pipe.DecodeInputFiles(task.PipeResult)
	if err != nil {
		taskLogger.Err(err, "phase", "input-resolution")
		reply(ctx, consumer, task, queue.ResultMessage{
			TaskID: task.TaskID,
			Status: queue.StatusFailure,
			Error:  err.Error(),
		}, taskLogger)
		return
	}
	inputs := usecases.ResolveInputs(piped, task.InputFiles)

	hasher := usecases.NewBatchHasher(usecases.BatchHasherOptions{
		Runner: runner,
		Store:  storage.NewLocalStore(task.OutputPath, taskLogger),
		Logger: taskLogger,
	})

	result, err := hasher.Run(ctx, inputs, task.WorkflowID)
	if err != nil {
		taskLogger.Err(err, "phase", "batch")
		reply(ctx, consumer, task, queue.ResultMessage{
			TaskID: task.TaskID,
			Status: queue.StatusFailure,
			Error:  err.Error(),
		}, taskLogger)
		return
	}

	encoded, err := pipe.EncodeResult(result)
	if err != nil {
		taskLogger.Err(err, "phase", "encode")
		reply(ctx, consumer, task, queue.ResultMessage{
			TaskID: task.TaskID,
			Status: queue.StatusFailure,
			Error:  err.Error(),
		}, taskLogger)
		return
	}

	taskLogger.Info("task completed", "artifacts", result.TotalOutputFiles())
	reply(ctx, consumer, task, queue.ResultMessage{
		TaskID: task.TaskID,
		Status: queue.StatusSuccess,
		Result: encoded,
	}, taskLogger)
}

func reply(ctx context.Context, consumer *queue.Consumer, task *queue.TaskMessage, msg queue.ResultMessage, logger logx.Logger) {
	if err := consumer.Publish(ctx, task.ReplyTo, msg); err != nil {
		logger.Err(err, "phase", "reply", "reply_to", task.ReplyTo)
	}
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
