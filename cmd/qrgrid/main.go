package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/gompdf/qrgrid/internal/cli"
)

var version = "dev"

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	return cli.NewRootCmd(version).ExecuteContext(ctx)
}
