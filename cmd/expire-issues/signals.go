package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
)

// setupSignalContext cancels rootCtx on SIGINT/SIGTERM so an in-flight API
// call is abandoned instead of finishing the whole list.
func setupSignalContext() {
	if rootCtx != nil {
		return
	}
	rootCtx, rootCancel = signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
}
