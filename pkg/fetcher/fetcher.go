// Package fetcher downloads the real image behind an exporter placeholder
// path and mirrors it under the local site root.
package fetcher

import (
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/Corrado-von-Planta/TGV-Website/models"
	"github.com/Corrado-von-Planta/TGV-Website/pkg/storage"
)

// Extensions is the fixed probe order. The exporter produced PNGs for most
// section backgrounds and JPEGs for photography.
var Extensions = []string{".png", ".jpg", ".jpeg"}

// RootMarker is the site-root prefix the exporter puts on uploads paths.
const RootMarker = "_/"

type Fetcher struct {
	client    *http.Client
	store     *storage.Storage
	host      string
	localRoot string
	logger    *slog.Logger
}

func New(host, localRoot string, timeout time.Duration, logger *slog.Logger) *Fetcher {
	return &Fetcher{
		client:    &http.Client{Timeout: timeout},
		store:     &storage.Storage{},
		host:      strings.TrimSuffix(host, "/"),
		localRoot: localRoot,
		logger:    logger,
	}
}

// Fetch tries each known extension for the logical image path, mirrors the
// first hit under the local root and returns the ./-relative reference for
// the HTML. Transport errors and non-200 responses are logged and never
// propagated; an exhausted probe list comes back as OK=false, which the
// caller must treat as "leave this occurrence unmodified".
func (f *Fetcher) Fetch(logicalPath string) models.Download {
	// The remote URL and the local save path both use the stripped form so
	// downloaded files and HTML references stay in lockstep.
	stripped := strings.TrimPrefix(logicalPath, RootMarker)

	d := models.Download{ImagePath: logicalPath}
	for _, ext := range Extensions {
		remoteURL := fmt.Sprintf("%s/%s%s", f.host, stripped, ext)
		f.logger.Info("trying download", "url", remoteURL)

		data, err := f.get(remoteURL)
		if err != nil {
			f.logger.Warn("download attempt failed", "url", remoteURL, "error", err)
			continue
		}

		localPath := filepath.Join(f.localRoot, filepath.FromSlash(stripped+ext))
		if err := f.store.SaveImage(localPath, data); err != nil {
			f.logger.Warn("failed to save image", "path", localPath, "error", err)
			continue
		}

		d.Extension = ext
		d.RemoteURL = remoteURL
		d.LocalPath = localPath
		d.LocalRef = "./" + stripped + ext
		d.Size = int64(len(data))
		d.OK = true
		f.logger.Info("downloaded and saved", "url", remoteURL, "path", localPath, "bytes", d.Size)
		return d
	}
	return d
}

// get performs a single GET attempt and returns the body on HTTP 200.
func (f *Fetcher) get(url string) ([]byte, error) {
	resp, err := f.client.Get(url)
	if err != nil {
		return nil, fmt.Errorf("failed to make HTTP request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}
	return body, nil
}
