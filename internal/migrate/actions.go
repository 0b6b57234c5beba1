package migrate

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/Corrado-von-Planta/TGV-Website/models"
	"github.com/Corrado-von-Planta/TGV-Website/pkg/db"
	"github.com/Corrado-von-Planta/TGV-Website/pkg/fetcher"
	"github.com/Corrado-von-Planta/TGV-Website/pkg/storage"
	"github.com/urfave/cli/v2"
	"gopkg.in/yaml.v3"
)

func Action(c *cli.Context) error {
	logLevel := slog.LevelInfo
	if c.Bool("quiet") {
		logLevel = slog.LevelError
	}
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel}))
	startTime := time.Now()

	config := &models.MigrateConfig{
		RootDir:    c.String("dir"),
		RemoteHost: c.String("host"),
		Timeout:    c.Duration("timeout"),
		Ledger:     !c.Bool("no-ledger"),
		LedgerPath: c.String("ledger"),
	}

	store := &storage.Storage{}
	files, err := store.ListHTMLFiles(config.RootDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if len(files) == 0 {
		fmt.Fprintf(os.Stderr, "No HTML files found in %s/ directory\n", config.RootDir)
		os.Exit(1)
	}
	fmt.Printf("Found %d HTML files\n", len(files))

	var ledger *db.DB
	var runID int64
	if config.Ledger {
		ledger, err = db.Open(config.LedgerPath)
		if err != nil {
			logger.Warn("ledger unavailable, continuing without it", "error", err)
			ledger = nil
		} else {
			defer ledger.Close()
			runID, err = ledger.StartRun()
			if err != nil {
				logger.Warn("failed to start ledger run, continuing without it", "error", err)
				ledger = nil
			}
		}
	}

	f := fetcher.New(config.RemoteHost, config.RootDir, config.Timeout, logger)
	results, stats := run(logger, f, files, ledger, runID)
	stats.TotalTimeSeconds = time.Since(startTime).Seconds()

	if ledger != nil {
		if err := ledger.FinishRun(runID, stats.TotalFiles, stats.FilesWithMarker, stats.FilesModified); err != nil {
			logger.Warn("failed to record run summary in ledger", "error", err)
		}
	}

	fmt.Printf("\n=== Summary ===\n")
	fmt.Printf("Total HTML files: %d\n", stats.TotalFiles)
	fmt.Printf("Files with target class: %d\n", stats.FilesWithMarker)
	fmt.Printf("Files modified: %d\n", stats.FilesModified)

	finalOutput := FinalOutput{Status: "success", Results: results, Stats: stats}
	for _, r := range results {
		if r.Error != "" {
			finalOutput.Status = "partial_failure"
			break
		}
	}

	var outputData []byte
	var marshalErr error
	if strings.ToLower(c.String("format")) == "json" {
		outputData, marshalErr = json.MarshalIndent(finalOutput, "", "  ")
	} else {
		outputData, marshalErr = yaml.Marshal(finalOutput)
	}
	if marshalErr != nil {
		logger.Error("failed to marshal final output", "error", marshalErr)
		os.Exit(2)
	}
	fmt.Println(string(outputData))

	return nil
}
