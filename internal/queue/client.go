package queue

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/hibiken/asynq"

	"github.com/nikhilbhutani/kiswahili/internal/config"
)

// RedisOpt converts the shared redis settings into asynq connection options.
func RedisOpt(cfg config.RedisConfig) asynq.RedisClientOpt {
	return asynq.RedisClientOpt{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	}
}

type Client struct {
	client *asynq.Client
}

func NewClient(cfg config.RedisConfig) *Client {
	return &Client{client: asynq.NewClient(RedisOpt(cfg))}
}

func (c *Client) Close() error {
	return c.client.Close()
}

// EnqueueVocabularyImport schedules words for insertion and returns the task id.
func (c *Client) EnqueueVocabularyImport(payload VocabularyImportPayload) (string, error) {
	if len(payload.Words) == 0 {
		return "", fmt.Errorf("enqueue %s: no words", TypeVocabularyImport)
	}
	return c.enqueue(TypeVocabularyImport, payload, asynq.MaxRetry(5), asynq.Timeout(2*time.Minute))
}

func (c *Client) enqueue(taskType string, payload any, opts ...asynq.Option) (string, error) {
	task, err := newTask(taskType, payload)
	if err != nil {
		return "", err
	}
	info, err := c.client.Enqueue(task, opts...)
	if err != nil {
		return "", fmt.Errorf("enqueue %s: %w", taskType, err)
	}
	return info.ID, nil
}

func newTask(taskType string, payload any) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal payload: %w", err)
	}
	return asynq.NewTask(taskType, data), nil
}
