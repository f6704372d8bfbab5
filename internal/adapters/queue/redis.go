// internal/adapters/queue/redis.go

// Package queue implements the task transport for worker deployments: a
// Redis list carries JSON task messages in, and each task names the
// list its encoded result should be pushed to.
package queue

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"ssdeepx/internal/core/domain"
	"ssdeepx/internal/platform/logx"
)

// Result statuses reported back to the collector.
const (
	StatusSuccess = "success"
	StatusFailure = "failure"
)

// TaskMessage is one unit of work popped from the task list.
type TaskMessage struct {
	// TaskID identifies the task for result correlation.
	TaskID string `json:"task_id"`

	// PipeResult is the optional base64 envelope from a prior stage.
	// When present it takes precedence over InputFiles.
	PipeResult string `json:"pipe_result,omitempty"`

	// InputFiles is the optional explicit input list.
	InputFiles []domain.InputFile `json:"input_files,omitempty"`

	// OutputPath is the directory artifacts are written under.
	OutputPath string `json:"output_path"`

	// WorkflowID identifies the surrounding workflow.
	WorkflowID string `json:"workflow_id,omitempty"`

	// TaskConfig is accepted for boundary compatibility; the hashing
	// task recognizes no options.
	TaskConfig map[string]any `json:"task_config,omitempty"`

	// ReplyTo names the list the result message is pushed to.
	ReplyTo string `json:"reply_to,omitempty"`
}

// ResultMessage reports one finished task.
type ResultMessage struct {
	TaskID string `json:"task_id"`
	Status string `json:"status"`

	// Result is the base64 envelope of the batch result (success only).
	Result string `json:"result,omitempty"`

	// Error describes a collaborator fault (failure only).
	Error string `json:"error,omitempty"`
}

// Consumer pops tasks from a Redis list and pushes results back.
type Consumer struct {
	client *redis.Client
	list   string
	logger logx.Logger
}

// NewConsumer connects to Redis using a URL of the form
// redis://[:password@]host:port/db and consumes from list.
func NewConsumer(redisURL, list string, logger logx.Logger) (*Consumer, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("invalid redis url: %w", err)
	}

	return &Consumer{
		client: redis.NewClient(opts),
		list:   list,
		logger: logger.With("queue", list),
	}, nil
}

// Ping verifies the broker connection.
func (c *Consumer) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

// Next blocks up to the given duration for the next task. It returns
// (nil, nil) when the wait times out with no task available.
func (c *Consumer) Next(ctx context.Context, block time.Duration) (*TaskMessage, error) {
	vals, err := c.client.BRPop(ctx, block, c.list).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to pop task: %w", err)
	}

	// BRPop returns [list, payload].
	if len(vals) != 2 {
		return nil, fmt.Errorf("unexpected BRPOP reply length %d", len(vals))
	}

	var task TaskMessage
	if err := json.Unmarshal([]byte(vals[1]), &task); err != nil {
		return nil, fmt.Errorf("failed to decode task message: %w", err)
	}

	c.logger.Debug("received task",
		"task_id", task.TaskID,
		"workflow_id", task.WorkflowID,
		"inputs", len(task.InputFiles),
	)

	return &task, nil
}

// Publish pushes a result message to the task's reply list. Tasks
// without a reply list are fire-and-forget.
func (c *Consumer) Publish(ctx context.Context, replyTo string, msg ResultMessage) error {
	if replyTo == "" {
		return nil
	}

	payload, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("failed to encode result message: %w", err)
	}

	if err := c.client.LPush(ctx, replyTo, payload).Err(); err != nil {
		return fmt.Errorf("failed to push result: %w", err)
	}

	return nil
}

// Close releases the broker connection.
func (c *Consumer) Close() error {
	return c.client.Close()
}
