package migrate

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/Corrado-von-Planta/TGV-Website/models"
	"github.com/Corrado-von-Planta/TGV-Website/pkg/db"
	"github.com/Corrado-von-Planta/TGV-Website/pkg/rewriter"
	"github.com/Corrado-von-Planta/TGV-Website/pkg/storage"
)

// recordingFetcher wraps an ImageFetcher and records every attempt in the
// ledger. Ledger failures are warnings, never fatal.
type recordingFetcher struct {
	inner  rewriter.ImageFetcher
	ledger *db.DB
	runID  int64
	file   string
	logger *slog.Logger
}

func (rf *recordingFetcher) Fetch(logicalPath string) models.Download {
	d := rf.inner.Fetch(logicalPath)
	if _, err := rf.ledger.InsertDownload(rf.runID, rf.file, d); err != nil {
		rf.logger.Warn("failed to record download in ledger", "image", logicalPath, "error", err)
	}
	return d
}

// run processes every candidate file sequentially: a cheap marker substring
// pre-check first, then the rewriter for files that pass it. Per-file
// errors are logged and counted, not fatal to the batch.
func run(logger *slog.Logger, fetch rewriter.ImageFetcher, files []string, ledger *db.DB, runID int64) ([]models.FileResult, Stats) {
	store := &storage.Storage{}
	stats := Stats{TotalFiles: len(files)}
	results := make([]models.FileResult, 0, len(files))

	for _, file := range files {
		raw, err := store.ReadText(file)
		if err != nil {
			logger.Error("failed to read file", "file", file, "error", err)
			results = append(results, models.FileResult{File: file, Error: err.Error()})
			continue
		}
		if !strings.Contains(raw, rewriter.MarkerClass) {
			continue
		}
		stats.FilesWithMarker++

		fmt.Printf("\nProcessing: %s\n", file)

		fileFetch := fetch
		if ledger != nil {
			fileFetch = &recordingFetcher{inner: fetch, ledger: ledger, runID: runID, file: file, logger: logger}
		}

		result, err := rewriter.New(fileFetch, logger).Process(file)
		if err != nil {
			logger.Error("failed to process file", "file", file, "error", err)
			result.Error = err.Error()
		}

		stats.ImagesDownloaded += result.Downloaded
		stats.ImagesMissing += result.Missing
		if result.Modified {
			stats.FilesModified++
			fmt.Printf("  Updated %d background image URL(s)\n", result.Downloaded)
		}
		results = append(results, *result)
	}

	return results, stats
}
