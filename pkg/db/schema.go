package db

// schema defines the migration ledger: one row per run, one row per
// attempted image download.
const schema = `
CREATE TABLE IF NOT EXISTS runs (
    run_id            INTEGER PRIMARY KEY AUTOINCREMENT,
    started_at        TEXT NOT NULL DEFAULT (datetime('now')),
    finished_at       TEXT,
    total_files       INTEGER NOT NULL DEFAULT 0,
    files_with_marker INTEGER NOT NULL DEFAULT 0,
    files_modified    INTEGER NOT NULL DEFAULT 0
);

CREATE TABLE IF NOT EXISTS downloads (
    download_id INTEGER PRIMARY KEY AUTOINCREMENT,
    run_id      INTEGER NOT NULL REFERENCES runs(run_id) ON DELETE CASCADE,
    html_file   TEXT NOT NULL,
    image_path  TEXT NOT NULL,
    extension   TEXT NOT NULL DEFAULT '',
    remote_url  TEXT NOT NULL DEFAULT '',
    local_path  TEXT NOT NULL DEFAULT '',
    status      TEXT NOT NULL,
    size_bytes  INTEGER NOT NULL DEFAULT 0,
    created_at  TEXT NOT NULL DEFAULT (datetime('now'))
);

CREATE INDEX IF NOT EXISTS idx_downloads_run ON downloads(run_id);
`
