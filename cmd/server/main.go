package main

import (
	"context"
	"log"
	"os"

	"github.com/dmitrijs2005/userauth/internal/buildinfo"
	"github.com/dmitrijs2005/userauth/internal/server"
	"github.com/dmitrijs2005/userauth/internal/server/config"
)

func main() {

	buildinfo.PrintBuildData(os.Stderr)

	ctx := context.Background()
	cfg, err := config.LoadConfig(os.Args[1:])
	if err != nil {
		log.Fatalf("config error: %v", err)
	}

	app, err := server.NewApp(ctx, cfg, os.Stdout)
	if err != nil {
		log.Fatalf("%v", err)
	}

	if err := app.Run(ctx); err != nil {
		os.Exit(1)
	}

}
