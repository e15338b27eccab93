// Command deckgen builds the "Building Leaders from the Ground Up" deck.
//
// Run without arguments to write presentation.pptx into the working
// directory. Subcommands render previews, inspect a deck, regenerate on asset
// changes and serve previews over HTTP.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"deckgen/internal/logging"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := newRootCmd().ExecuteContext(ctx)
	stop()
	if err != nil {
		logging.Error("deckgen failed", "error", err)
		os.Exit(1)
	}
}
