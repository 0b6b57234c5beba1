package db

import (
	"testing"

	"github.com/Corrado-von-Planta/TGV-Website/models"
)

// setupTestDB creates an in-memory SQLite database for testing
func setupTestDB(t *testing.T) *DB {
	t.Helper()

	database := &DB{path: ":memory:"}
	var err error
	database.DB, err = openDB(":memory:")
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}

	if err := database.InitSchema(); err != nil {
		t.Fatalf("failed to initialize schema: %v", err)
	}

	return database
}

func TestStartAndFinishRun(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	runID, err := db.StartRun()
	if err != nil {
		t.Fatalf("StartRun() error = %v", err)
	}
	if runID == 0 {
		t.Fatal("StartRun() returned 0 ID")
	}

	if err := db.FinishRun(runID, 12, 5, 3); err != nil {
		t.Fatalf("FinishRun() error = %v", err)
	}

	runs, err := db.ListRuns(10)
	if err != nil {
		t.Fatalf("ListRuns() error = %v", err)
	}
	if len(runs) != 1 {
		t.Fatalf("got %d runs, want 1", len(runs))
	}

	r := runs[0]
	if r.RunID != runID {
		t.Errorf("run_id = %d, want %d", r.RunID, runID)
	}
	if r.TotalFiles != 12 || r.FilesWithMarker != 5 || r.FilesModified != 3 {
		t.Errorf("counters = %d/%d/%d, want 12/5/3", r.TotalFiles, r.FilesWithMarker, r.FilesModified)
	}
	if r.FinishedAt == "" {
		t.Error("finished_at not stamped")
	}
}

func TestInsertDownload(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	runID, err := db.StartRun()
	if err != nil {
		t.Fatalf("StartRun() error = %v", err)
	}

	tests := []struct {
		name       string
		download   models.Download
		wantStatus string
	}{
		{
			name: "successful download",
			download: models.Download{
				ImagePath: "_/uploads/1/2/banner",
				Extension: ".png",
				RemoteURL: "https://tgv4plus.com/uploads/1/2/banner.png",
				LocalPath: "_/uploads/1/2/banner.png",
				LocalRef:  "./uploads/1/2/banner.png",
				Size:      2048,
				OK:        true,
			},
			wantStatus: StatusOK,
		},
		{
			name: "exhausted probe list",
			download: models.Download{
				ImagePath: "_/uploads/1/2/missing",
			},
			wantStatus: StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, err := db.InsertDownload(runID, "_/index.html", tt.download)
			if err != nil {
				t.Fatalf("InsertDownload() error = %v", err)
			}
			if id == 0 {
				t.Error("InsertDownload() returned 0 ID")
			}
		})
	}

	records, err := db.ListDownloads(runID)
	if err != nil {
		t.Fatalf("ListDownloads() error = %v", err)
	}
	if len(records) != len(tests) {
		t.Fatalf("got %d records, want %d", len(records), len(tests))
	}

	for i, tt := range tests {
		rec := records[i]
		if rec.Status != tt.wantStatus {
			t.Errorf("record %d status = %q, want %q", i, rec.Status, tt.wantStatus)
		}
		if rec.ImagePath != tt.download.ImagePath {
			t.Errorf("record %d image_path = %q, want %q", i, rec.ImagePath, tt.download.ImagePath)
		}
		if rec.SizeBytes != tt.download.Size {
			t.Errorf("record %d size = %d, want %d", i, rec.SizeBytes, tt.download.Size)
		}
		if rec.HTMLFile != "_/index.html" {
			t.Errorf("record %d html_file = %q", i, rec.HTMLFile)
		}
	}
}

func TestListRuns_NewestFirstWithLimit(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	var ids []int64
	for i := 0; i < 3; i++ {
		id, err := db.StartRun()
		if err != nil {
			t.Fatalf("StartRun() error = %v", err)
		}
		ids = append(ids, id)
	}

	runs, err := db.ListRuns(2)
	if err != nil {
		t.Fatalf("ListRuns() error = %v", err)
	}
	if len(runs) != 2 {
		t.Fatalf("got %d runs, want 2", len(runs))
	}
	if runs[0].RunID != ids[2] || runs[1].RunID != ids[1] {
		t.Errorf("runs not newest first: %d, %d", runs[0].RunID, runs[1].RunID)
	}
}

func TestListDownloads_EmptyRun(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	records, err := db.ListDownloads(999)
	if err != nil {
		t.Fatalf("ListDownloads() error = %v", err)
	}
	if len(records) != 0 {
		t.Errorf("got %d records for unknown run, want 0", len(records))
	}
}
