// Command decorate marks hot C functions with a placement macro.
package main

import (
	"context"
	"os"
	"os/signal"

	"decorate/internal/cli"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	if err := cli.ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}
