package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/mikey/mailecho/internal/config"
	"github.com/mikey/mailecho/internal/core"
	"github.com/mikey/mailecho/internal/di"
	"go.uber.org/dig"
	"go.uber.org/zap"
)

const version = "0.4.1"

var (
	configFile  = flag.String("config", "", "Path to config file")
	inputFile   = flag.String("file", "", "Input message file (use stdin if not specified)")
	dryRun      = flag.Bool("dry-run", false, "Print the reply to stdout instead of sending it")
	verbose     = flag.Bool("verbose", false, "Enable verbose logging")
	jsonLog     = flag.Bool("json-log", false, "Output logs in JSON format")
	showVersion = flag.Bool("version", false, "Print version and exit")
)

func main() {
	flag.Parse()

	if *showVersion {
		fmt.Printf("mailecho %s\n", version)
		return
	}

	// Build the dependency injection container
	container, err := di.BuildContainer(di.Options{
		ConfigPath: *configFile,
		DryRun:     *dryRun,
		Verbose:    *verbose,
		JSONLog:    *jsonLog,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to build dependency container: %v\n", err)
		os.Exit(1)
	}

	// Provider failures (unreadable config file, logger init) happen before
	// run ever gets a logger, so the root cause must reach stderr here.
	if err := container.Invoke(run); err != nil {
		fmt.Fprintln(os.Stderr, invokeErrorMessage(err))
		os.Exit(1)
	}
}

// invokeErrorMessage strips dig's wrapping so the underlying failure is what
// reaches stderr.
func invokeErrorMessage(err error) string {
	return fmt.Sprintf("mailecho: %v", dig.RootCause(err))
}

// run is the single-invocation application function with all dependencies injected
func run(cfg *config.Config, logger *zap.Logger, service *core.EchoService) error {
	defer logger.Sync()

	raw, err := readMessage(cfg.MaxMessageSize())
	if err != nil {
		logger.Error("Failed to read inbound message", zap.Error(err))
		return err
	}

	if _, err := service.Process(context.Background(), raw); err != nil {
		var loopErr *core.LoopDetectedError
		if errors.As(err, &loopErr) {
			// Intentionally no reply at all: answering a looped message
			// would keep the ping-pong going.
			logger.Info("Dropping looped reply", zap.String("in_reply_to", loopErr.InReplyTo))
			return err
		}
		logger.Error("Failed to process message", zap.Error(err))
		return err
	}

	return nil
}

// readMessage reads the complete inbound message from stdin or, when the
// -file flag is given, from a file. Input beyond the configured size bound
// is a clean failure rather than an unbounded read.
func readMessage(maxSize int64) ([]byte, error) {
	var reader io.Reader = os.Stdin

	if *inputFile != "" {
		file, err := os.Open(*inputFile)
		if err != nil {
			return nil, fmt.Errorf("failed to open input file: %w", err)
		}
		defer file.Close()
		reader = file
	}

	data, err := io.ReadAll(io.LimitReader(reader, maxSize+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read message: %w", err)
	}
	if int64(len(data)) > maxSize {
		return nil, fmt.Errorf("message exceeds maximum size of %d bytes", maxSize)
	}

	return data, nil
}
