// FILE: lixenwraith/dlog/cmd/dlog/main.go
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/urfave/cli/v3"
)

func main() {
	app := &cli.Command{
		Name:  "dlog",
		Usage: "Inspect and exercise dlog configurations",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "config",
				Usage: "Configuration file path",
				Value: "dlog.toml",
			},
		},
		Commands: []*cli.Command{
			initCommand(),
			showCommand(),
			printCommand(),
			historyCommand(),
			watchCommand(),
		},
	}

	if err := app.Run(context.Background(), os.Args); err != nil {
		fmt.Fprintln(os.Stderr, errorStyle.Render(err.Error()))
		os.Exit(1)
	}
}
