package db

import (
	"fmt"

	"github.com/Corrado-von-Planta/TGV-Website/models"
)

// Run is one recorded migration run.
type Run struct {
	RunID           int64  `json:"run_id" yaml:"run_id"`
	StartedAt       string `json:"started_at" yaml:"started_at"`
	FinishedAt      string `json:"finished_at,omitempty" yaml:"finished_at,omitempty"`
	TotalFiles      int    `json:"total_files" yaml:"total_files"`
	FilesWithMarker int    `json:"files_with_marker" yaml:"files_with_marker"`
	FilesModified   int    `json:"files_modified" yaml:"files_modified"`
}

// DownloadRecord is one recorded image download attempt.
type DownloadRecord struct {
	DownloadID int64  `json:"download_id" yaml:"download_id"`
	RunID      int64  `json:"run_id" yaml:"run_id"`
	HTMLFile   string `json:"html_file" yaml:"html_file"`
	ImagePath  string `json:"image_path" yaml:"image_path"`
	Extension  string `json:"extension,omitempty" yaml:"extension,omitempty"`
	RemoteURL  string `json:"remote_url,omitempty" yaml:"remote_url,omitempty"`
	LocalPath  string `json:"local_path,omitempty" yaml:"local_path,omitempty"`
	Status     string `json:"status" yaml:"status"`
	SizeBytes  int64  `json:"size_bytes" yaml:"size_bytes"`
	CreatedAt  string `json:"created_at" yaml:"created_at"`
}

const (
	StatusOK       = "ok"
	StatusNotFound = "not_found"
)

// StartRun inserts a new run row and returns its ID.
func (db *DB) StartRun() (int64, error) {
	res, err := db.Exec("INSERT INTO runs DEFAULT VALUES")
	if err != nil {
		return 0, fmt.Errorf("failed to insert run: %w", err)
	}
	return res.LastInsertId()
}

// FinishRun stamps the run with its final counters.
func (db *DB) FinishRun(runID int64, totalFiles, filesWithMarker, filesModified int) error {
	_, err := db.Exec(`
		UPDATE runs
		SET finished_at = datetime('now'),
		    total_files = ?,
		    files_with_marker = ?,
		    files_modified = ?
		WHERE run_id = ?
	`, totalFiles, filesWithMarker, filesModified, runID)
	if err != nil {
		return fmt.Errorf("failed to finish run: %w", err)
	}
	return nil
}

// InsertDownload records one download attempt for a run.
func (db *DB) InsertDownload(runID int64, htmlFile string, d models.Download) (int64, error) {
	status := StatusNotFound
	if d.OK {
		status = StatusOK
	}
	res, err := db.Exec(`
		INSERT INTO downloads (run_id, html_file, image_path, extension, remote_url, local_path, status, size_bytes)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`, runID, htmlFile, d.ImagePath, d.Extension, d.RemoteURL, d.LocalPath, status, d.Size)
	if err != nil {
		return 0, fmt.Errorf("failed to insert download: %w", err)
	}
	return res.LastInsertId()
}

// ListRuns returns the most recent runs, newest first.
func (db *DB) ListRuns(limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 10
	}
	rows, err := db.Query(`
		SELECT run_id, started_at, COALESCE(finished_at, ''), total_files, files_with_marker, files_modified
		FROM runs
		ORDER BY run_id DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var r Run
		if err := rows.Scan(&r.RunID, &r.StartedAt, &r.FinishedAt, &r.TotalFiles, &r.FilesWithMarker, &r.FilesModified); err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		runs = append(runs, r)
	}
	return runs, rows.Err()
}

// ListDownloads returns all download records for a run in insertion order.
func (db *DB) ListDownloads(runID int64) ([]DownloadRecord, error) {
	rows, err := db.Query(`
		SELECT download_id, run_id, html_file, image_path, extension, remote_url, local_path, status, size_bytes, created_at
		FROM downloads
		WHERE run_id = ?
		ORDER BY download_id
	`, runID)
	if err != nil {
		return nil, fmt.Errorf("failed to query downloads: %w", err)
	}
	defer rows.Close()

	var records []DownloadRecord
	for rows.Next() {
		var d DownloadRecord
		if err := rows.Scan(&d.DownloadID, &d.RunID, &d.HTMLFile, &d.ImagePath, &d.Extension, &d.RemoteURL, &d.LocalPath, &d.Status, &d.SizeBytes, &d.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan download: %w", err)
		}
		records = append(records, d)
	}
	return records, rows.Err()
}
