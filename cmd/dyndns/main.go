package main

import (
	"fmt"
	"os"
	"runtime"

	"github.com/judwhite/go-svc"
	"github.com/urfave/cli/v2"

	"github.com/jxo-me/dyndns/consts"
	"github.com/jxo-me/dyndns/core/logger"
	xlogger "github.com/jxo-me/dyndns/sdk/logger"
)

var (
	Version   = "DEV"
	BuildTime = "unknown"
)

func init() {
	logger.SetDefault(xlogger.NewLogger())
}

func main() {
	app := &cli.App{
		Name:    "dyndns",
		Usage:   "DynDNS server providing an interface for updates via generic URL",
		Version: fmt.Sprintf("%s (built %s, %s %s/%s)", Version, BuildTime, runtime.Version(), runtime.GOOS, runtime.GOARCH),
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "config file for the DynDNS server",
				Value:   consts.DefaultConfigFile,
			},
			&cli.StringFlag{
				Name:  "output-format",
				Usage: "write the effective configuration to stdout (yaml, json or toml) and exit",
			},
		},
		Action: func(c *cli.Context) error {
			return svc.Run(&program{
				cfgFile:      c.String("config"),
				outputFormat: c.String("output-format"),
			})
		},
	}

	if err := app.Run(os.Args); err != nil {
		logger.Default().Fatal(err)
	}
}
