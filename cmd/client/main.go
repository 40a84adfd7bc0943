package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/dmitrijs2005/userauth/internal/buildinfo"
	"github.com/dmitrijs2005/userauth/internal/client/cli"
	"github.com/dmitrijs2005/userauth/internal/client/config"
)

func main() {

	buildinfo.PrintBuildData(os.Stderr)

	ctx := context.Background()
	cfg, args, err := config.LoadConfig(os.Args[1:])
	if err != nil {
		fmt.Fprintf(os.Stderr, "config error: %v\n", err)
		os.Exit(2)
	}

	app := cli.NewApp(cfg)
	if err := app.Run(ctx, args); err != nil {
		if errors.Is(err, cli.ErrUsage) {
			os.Exit(2)
		}
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

}
