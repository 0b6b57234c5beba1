package main

import (
	"log"
	"os"
	"time"

	"github.com/Corrado-von-Planta/TGV-Website/internal/migrate"
	"github.com/Corrado-von-Planta/TGV-Website/internal/report"
	"github.com/Corrado-von-Planta/TGV-Website/internal/scan"
	"github.com/Corrado-von-Planta/TGV-Website/pkg/db"
	"github.com/urfave/cli/v2"
)

func main() {
	app := &cli.App{
		Name:  "tgv-migrate",
		Usage: "fix up exported background images in the TGV website",
		// Running the binary with no arguments reproduces the original
		// zero-argument migration behavior.
		DefaultCommand: "migrate",
		Commands: []*cli.Command{
			{
				Name:  "migrate",
				Usage: "download placeholder background images and rewrite the HTML",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "dir",
						Value: "_",
						Usage: "root directory containing the exported HTML files",
					},
					&cli.StringFlag{
						Name:  "host",
						Value: "https://tgv4plus.com",
						Usage: "remote host serving the real images",
					},
					&cli.DurationFlag{
						Name:  "timeout",
						Value: 10 * time.Second,
						Usage: "per-request download timeout",
					},
					&cli.StringFlag{
						Name:  "format",
						Value: "yaml",
						Usage: "summary output format (yaml or json)",
					},
					&cli.StringFlag{
						Name:  "ledger",
						Value: db.DefaultDBName,
						Usage: "path to the migration ledger database",
					},
					&cli.BoolFlag{
						Name:  "no-ledger",
						Usage: "skip recording the run in the ledger",
					},
					&cli.BoolFlag{
						Name:  "quiet",
						Usage: "only log errors",
					},
				},
				Action: migrate.Action,
			},
			{
				Name:  "scan",
				Usage: "audit background images without modifying anything",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "dir",
						Value: "_",
						Usage: "root directory containing the exported HTML files",
					},
					&cli.StringFlag{
						Name:  "format",
						Value: "yaml",
						Usage: "report output format (yaml or json)",
					},
					&cli.BoolFlag{
						Name:  "quiet",
						Usage: "only log errors",
					},
				},
				Action: scan.Action,
			},
			{
				Name:  "report",
				Usage: "show recorded migration runs and their downloads",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "ledger",
						Value: db.DefaultDBName,
						Usage: "path to the migration ledger database",
					},
					&cli.IntFlag{
						Name:  "run",
						Usage: "show download records for one run",
					},
					&cli.IntFlag{
						Name:  "limit",
						Value: 10,
						Usage: "number of recent runs to list",
					},
					&cli.StringFlag{
						Name:  "format",
						Value: "yaml",
						Usage: "output format (yaml or json)",
					},
				},
				Action: report.Action,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}
