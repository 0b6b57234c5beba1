package scan

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"strings"

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

	store := &storage.Storage{}
	files, err := store.ListHTMLFiles(c.String("dir"))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if len(files) == 0 {
		fmt.Fprintf(os.Stderr, "No HTML files found in %s/ directory\n", c.String("dir"))
		os.Exit(1)
	}
	logger.Info("scanning HTML files", "count", len(files))

	report, err := Inspect(files)
	if err != nil {
		logger.Error("scan failed", "error", err)
		os.Exit(2)
	}

	var outputData []byte
	var marshalErr error
	if strings.ToLower(c.String("format")) == "json" {
		outputData, marshalErr = json.MarshalIndent(report, "", "  ")
	} else {
		outputData, marshalErr = yaml.Marshal(report)
	}
	if marshalErr != nil {
		logger.Error("failed to marshal report", "error", marshalErr)
		os.Exit(2)
	}
	fmt.Println(string(outputData))

	return nil
}
