package cracker

import (
	"time"

	"github.com/pkg/errors"
)

const (
	DefaultProgressEvery  = 4096
	DefaultProgressPeriod = 500 * time.Millisecond
)

type Config struct {
	// Workers is the number of goroutines per length, 0 means runtime.NumCPU().
	Workers        int           `yaml:"workers"`
	ProgressEvery  uint64        `yaml:"progress_every"`
	ProgressPeriod time.Duration `yaml:"progress_period"`
	Progress       bool          `yaml:"progress"`
}

func (c *Config) Validate() error {
	if c.Workers < 0 {
		return errors.Wrapf(ErrInvalidTask, "workers must not be negative, got %d", c.Workers)
	}

	if c.ProgressPeriod < 0 {
		return errors.Wrapf(ErrInvalidTask, "progress period must not be negative, got %s", c.ProgressPeriod)
	}

	return nil
}

func ValidateTask(task *Task) error {
	if task == nil {
		return errors.Wrap(ErrInvalidTask, "task is required")
	}

	if task.MaxLength < 0 {
		return errors.Wrapf(ErrInvalidTask, "max length must not be negative, got %d", task.MaxLength)
	}

	return nil
}
