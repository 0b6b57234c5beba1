package fetcher

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// newImageServer serves fixed bodies for the given paths and records every
// request path in order.
func newImageServer(t *testing.T, bodies map[string]string) (*httptest.Server, *[]string) {
	t.Helper()
	requests := &[]string{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*requests = append(*requests, r.URL.Path)
		body, ok := bodies[r.URL.Path]
		if !ok {
			http.NotFound(w, r)
			return
		}
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv, requests
}

func TestFetch_FirstExtensionHit(t *testing.T) {
	srv, requests := newImageServer(t, map[string]string{
		"/uploads/1/2/banner.png": "pngdata",
	})
	root := t.TempDir()

	f := New(srv.URL, root, time.Second, discardLogger())
	d := f.Fetch("_/uploads/1/2/banner")

	if !d.OK {
		t.Fatal("Fetch() failed, want success on .png")
	}
	if d.Extension != ".png" {
		t.Errorf("extension = %q, want .png", d.Extension)
	}
	if d.LocalRef != "./uploads/1/2/banner.png" {
		t.Errorf("local ref = %q, want ./uploads/1/2/banner.png", d.LocalRef)
	}
	if len(*requests) != 1 {
		t.Errorf("made %d requests, want 1", len(*requests))
	}

	data, err := os.ReadFile(filepath.Join(root, "uploads", "1", "2", "banner.png"))
	if err != nil {
		t.Fatalf("mirrored file missing: %v", err)
	}
	if string(data) != "pngdata" {
		t.Errorf("mirrored bytes = %q, want %q", data, "pngdata")
	}
	if d.Size != int64(len("pngdata")) {
		t.Errorf("size = %d, want %d", d.Size, len("pngdata"))
	}
}

func TestFetch_FallsBackToJPGAndStops(t *testing.T) {
	srv, requests := newImageServer(t, map[string]string{
		"/uploads/1/2/photo.jpg": "jpgdata",
	})
	root := t.TempDir()

	f := New(srv.URL, root, time.Second, discardLogger())
	d := f.Fetch("_/uploads/1/2/photo")

	if !d.OK || d.Extension != ".jpg" {
		t.Fatalf("download = %+v, want .jpg hit", d)
	}

	want := []string{"/uploads/1/2/photo.png", "/uploads/1/2/photo.jpg"}
	if len(*requests) != len(want) {
		t.Fatalf("requests = %v, want %v", *requests, want)
	}
	for i, p := range want {
		if (*requests)[i] != p {
			t.Errorf("request %d = %q, want %q", i, (*requests)[i], p)
		}
	}
	for _, p := range *requests {
		if strings.HasSuffix(p, ".jpeg") {
			t.Error("a .jpeg attempt was made after the .jpg hit")
		}
	}
}

func TestFetch_AllExtensionsMiss(t *testing.T) {
	srv, requests := newImageServer(t, nil)
	root := t.TempDir()

	f := New(srv.URL, root, time.Second, discardLogger())
	d := f.Fetch("_/uploads/1/2/missing")

	if d.OK {
		t.Fatal("Fetch() succeeded, want not found")
	}
	if len(*requests) != len(Extensions) {
		t.Errorf("made %d requests, want %d", len(*requests), len(Extensions))
	}

	entries, err := os.ReadDir(root)
	if err != nil {
		t.Fatalf("failed to read local root: %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("local root not empty after a full miss: %v", entries)
	}
}

func TestFetch_RootMarkerStripping(t *testing.T) {
	tests := []struct {
		name        string
		logicalPath string
		wantPath    string
		wantRef     string
	}{
		{
			name:        "marker prefix stripped",
			logicalPath: "_/uploads/a/b",
			wantPath:    "/uploads/a/b.png",
			wantRef:     "./uploads/a/b.png",
		},
		{
			name:        "already stripped path unchanged",
			logicalPath: "uploads/a/b",
			wantPath:    "/uploads/a/b.png",
			wantRef:     "./uploads/a/b.png",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv, requests := newImageServer(t, map[string]string{
				"/uploads/a/b.png": "x",
			})
			root := t.TempDir()

			d := New(srv.URL, root, time.Second, discardLogger()).Fetch(tt.logicalPath)
			if !d.OK {
				t.Fatal("Fetch() failed")
			}
			if (*requests)[0] != tt.wantPath {
				t.Errorf("remote path = %q, want %q", (*requests)[0], tt.wantPath)
			}
			if d.LocalRef != tt.wantRef {
				t.Errorf("local ref = %q, want %q", d.LocalRef, tt.wantRef)
			}
		})
	}
}

func TestFetch_OverwritesExistingLocalFile(t *testing.T) {
	srv, _ := newImageServer(t, map[string]string{
		"/uploads/a/b.png": "fresh",
	})
	root := t.TempDir()

	localPath := filepath.Join(root, "uploads", "a", "b.png")
	if err := os.MkdirAll(filepath.Dir(localPath), 0750); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(localPath, []byte("stale"), 0644); err != nil {
		t.Fatal(err)
	}

	d := New(srv.URL, root, time.Second, discardLogger()).Fetch("_/uploads/a/b")
	if !d.OK {
		t.Fatal("Fetch() failed")
	}

	data, err := os.ReadFile(localPath)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "fresh" {
		t.Errorf("local file = %q, want re-downloaded %q", data, "fresh")
	}
}
