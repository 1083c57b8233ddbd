package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/brandbridge/bridgeboard/internal/cmd"
	log "github.com/sirupsen/logrus"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := cmd.Execute(ctx); err != nil {
		log.WithError(err).Error("bridgeboard failed")
		stop()
		os.Exit(1)
	}
}
