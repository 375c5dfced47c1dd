package main

import (
	"context"
	"os"
	"os/signal"

	"github.com/RobsonDevCode/depcheckdocx/cmd"
)

func main() {
	// SIGINT cancels the run, reports not yet converted are listed as failed
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	code := cmd.Execute(ctx, os.Args[1:], os.Stdout)
	stop()

	os.Exit(code)
}
