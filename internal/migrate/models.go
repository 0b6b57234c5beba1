package migrate

import (
	"github.com/Corrado-von-Planta/TGV-Website/models"
)

// Stats provides summary statistics for the run.
type Stats struct {
	TotalFiles       int     `json:"total_files" yaml:"total_files"`
	FilesWithMarker  int     `json:"files_with_marker" yaml:"files_with_marker"`
	FilesModified    int     `json:"files_modified" yaml:"files_modified"`
	ImagesDownloaded int     `json:"images_downloaded" yaml:"images_downloaded"`
	ImagesMissing    int     `json:"images_missing" yaml:"images_missing"`
	TotalTimeSeconds float64 `json:"total_time_seconds" yaml:"total_time_seconds"`
}

// FinalOutput is the structured output for the entire run.
type FinalOutput struct {
	Status  string              `json:"status" yaml:"status"`
	Results []models.FileResult `json:"results" yaml:"results"`
	Stats   Stats               `json:"stats" yaml:"stats"`
}
