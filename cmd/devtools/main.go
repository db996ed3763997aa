package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/scrutinytools/devtools/pkg/cli"
	"github.com/scrutinytools/devtools/pkg/console"
)

// version is stamped at build time through -ldflags.
var version = "dev"

var rootCmd = cli.NewRootCommand(version)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, console.FormatErrorMessage(err.Error()))
		os.Exit(1)
	}
}
