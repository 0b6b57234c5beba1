package models

// FileResult is the outcome of processing one HTML file.
type FileResult struct {
	File       string `json:"file" yaml:"file"`
	Matches    int    `json:"matches" yaml:"matches"`
	Downloaded int    `json:"downloaded" yaml:"downloaded"`
	Missing    int    `json:"missing" yaml:"missing"`
	Modified   bool   `json:"modified" yaml:"modified"`
	Error      string `json:"error,omitempty" yaml:"error,omitempty"`
}
