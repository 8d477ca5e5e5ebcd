// Command formfields renders a single form field group from a JSON or YAML
// record file.
//
//	formfields -data article.yaml -field title -label Headline
//	formfields -data article.yaml -errors errors.json -control textarea -field body
//	formfields -data article.yaml -interactive
package main

import (
	"context"
	"fmt"
	"os"

	"go.uber.org/zap"
)

func main() {
	cfg, err := parseFlags(os.Args[1:])
	if err != nil {
		os.Exit(2)
	}

	logger := zap.NewNop()
	if cfg.verbose {
		if dev, err := zap.NewDevelopment(); err == nil {
			logger = dev
		}
	}
	defer func() { _ = logger.Sync() }()

	if err := run(context.Background(), cfg, os.Stdout, logger, nil); err != nil {
		logger.Error("render field", zap.Error(err))
		_ = logger.Sync()
		fmt.Fprintf(os.Stderr, "formfields: %v\n", err)
		os.Exit(1)
	}
}
