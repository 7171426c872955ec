package server

import (
	"errors"
	"fmt"
	"sync"

	"dr-failover-lambda/internal/config"
	"dr-failover-lambda/internal/handlers"
	"dr-failover-lambda/internal/logging"

	"github.com/sirupsen/logrus"
)

// Container holds all application dependencies
type Container struct {
	Config    *config.Config
	Logger    *logrus.Logger
	DRHandler *handlers.DRHandler

	closeOnce sync.Once
}

// NewContainer creates a new dependency injection container
func NewContainer(cfg *config.Config) (*Container, error) {
	if cfg == nil {
		return nil, errors.New("failed to create container: nil configuration")
	}

	logger, err := logging.New(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}

	return newContainer(cfg, logger)
}

func newContainer(cfg *config.Config, logger *logrus.Logger) (*Container, error) {
	drHandler, err := handlers.NewDRHandler(logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create DR handler: %w", err)
	}

	return &Container{
		Config:    cfg,
		Logger:    logger,
		DRHandler: drHandler,
	}, nil
}

// Close cleans up all resources. It is safe to call more than once.
func (c *Container) Close() error {
	c.closeOnce.Do(func() {
		c.Logger.Debug("Container closed")
	})
	return nil
}
