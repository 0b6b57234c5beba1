package models

// Match is one background-image placeholder found in a document.
// The span indexes into the original document text.
type Match struct {
	StyleValue string // full captured style-attribute value
	StyleStart int
	StyleEnd   int
	ImagePath  string // logical path between url( and .html)
}

// Replacement is a pending span substitution against the working copy.
// Spans never overlap; they are applied back to front so earlier offsets
// stay valid.
type Replacement struct {
	Start    int
	End      int
	NewValue string
}

// Download is the outcome of resolving one logical image path.
type Download struct {
	ImagePath string // logical path as captured from the HTML
	Extension string
	RemoteURL string
	LocalPath string // on-disk mirror path
	LocalRef  string // ./-relative reference for the HTML
	Size      int64
	OK        bool
}
