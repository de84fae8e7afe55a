// Command kbot is a local knowledge base with semantic retrieval.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/rdcfuch/FC-knowledge-bot/internal/adapters/driving/cli"
)

func main() {
	// A missing .env file is fine; the environment may already carry the key.
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cli.SetBootstrap(bootstrap)
	if err := cli.Execute(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}
