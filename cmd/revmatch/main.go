package main

import (
	"fmt"
	"os"

	"github.com/urfave/cli/v2"
)

func main() {
	if err := newApp().Run(os.Args); err != nil {
		fmt.Println("Error: ", err)
		os.Exit(1)
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:  "revmatch",
		Usage: "Utility for assigning reviewers to papers",
		Commands: []*cli.Command{
			solveCmd,
			serveCmd,
		},
	}
}

var configFlag = &cli.StringFlag{
	Name:    "config",
	Aliases: []string{"c"},
	Usage:   "specify the config.yaml",
}

var solveCmd = &cli.Command{
	Name:    "solve",
	Usage:   "Solve a venue request file",
	Aliases: []string{"s"},
	Flags: []cli.Flag{
		configFlag,
		&cli.StringFlag{
			Name:     "input",
			Aliases:  []string{"i"},
			Required: true,
			Usage:    "specify the input request.json",
		},
		&cli.StringFlag{
			Name:    "output",
			Aliases: []string{"o"},
			Value:   "-",
			Usage:   "specify the output response.json (- for stdout)",
		},
		&cli.DurationFlag{
			Name:  "timeout",
			Usage: "specify the solver timeout (0 for none)",
		},
		&cli.Float64Flag{
			Name:  "neutral",
			Usage: "specify the affinity of unscored pairs",
		},
		&cli.BoolFlag{
			Name:    "verbose",
			Aliases: []string{"v"},
			Usage:   "log at debug level",
		},
	},
	Action: func(ctx *cli.Context) error {
		cfg, err := loadConfig(ctx)
		if err != nil {
			return err
		}
		return doSolve(ctx.Context, cfg, ctx.String("input"), ctx.String("output"))
	},
}

var serveCmd = &cli.Command{
	Name:  "serve",
	Usage: "Serve venue requests over HTTP",
	Flags: []cli.Flag{
		configFlag,
		&cli.StringFlag{
			Name:  "addr",
			Usage: "specify the listen address",
		},
		&cli.BoolFlag{
			Name:    "verbose",
			Aliases: []string{"v"},
			Usage:   "log at debug level",
		},
	},
	Action: func(ctx *cli.Context) error {
		cfg, err := loadConfig(ctx)
		if err != nil {
			return err
		}
		return doServe(ctx.Context, cfg)
	},
}
