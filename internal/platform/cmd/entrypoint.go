package cmd

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"strings"

	"github.com/louisbranch/boardplay/internal/platform/config"
	"github.com/louisbranch/boardplay/internal/platform/logging"
	"go.uber.org/zap"
)

// Command identifiers used as logger names.
const (
	CommandPlay = "boardplay"
)

// ParseConfig loads environment defaults into cfg.
func ParseConfig[T any](cfg *T) error {
	if cfg == nil {
		return errors.New("config target is required")
	}
	return config.ParseEnv(cfg)
}

// ParseArgs parses command-line flags.
func ParseArgs(fs *flag.FlagSet, args []string) error {
	if fs == nil {
		return errors.New("flag parser is required")
	}
	if args == nil {
		args = []string{}
	}
	return fs.Parse(args)
}

// RunWithLogger builds a named logger at level and executes run with it.
// The logger is flushed after run returns.
func RunWithLogger(ctx context.Context, command, level string, run func(context.Context, *zap.Logger) error) error {
	command = strings.TrimSpace(command)
	if command == "" {
		return fmt.Errorf("command name is required")
	}
	if run == nil {
		return fmt.Errorf("run function is required")
	}
	logger, err := logging.New(level)
	if err != nil {
		return err
	}
	logger = logger.Named(command)
	defer func() {
		_ = logger.Sync()
	}()
	if err := run(ctx, logger); err != nil {
		logger.Debug("command failed", zap.Error(err))
		return err
	}
	return nil
}
