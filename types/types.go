package types

// ImageRecord holds the perceptual fingerprints computed for one image
type ImageRecord struct {
	Path  string `json:"path"`
	DHash string `json:"dhash"`
	PHash string `json:"phash"`
}

// DuplicateGroup is one original image plus the images found to duplicate it.
// Duplicates is empty for an image with no duplicates.
type DuplicateGroup struct {
	Original   string   `json:"original"`
	Duplicates []string `json:"duplicates"`
}

// Result is the outcome of one duplicate detection batch.
// TotalProcessed counts input paths, including ones that could not be read.
type Result struct {
	UniqueImages    []string         `json:"unique_images"`
	DuplicateGroups []DuplicateGroup `json:"duplicate_groups"`
	TotalDuplicates int              `json:"total_duplicates"`
	TotalProcessed  int              `json:"total_processed"`
}

// RunSummary is a stored snapshot of a Result
type RunSummary struct {
	ID              string           `json:"id"`
	CreatedAt       string           `json:"created_at"`
	Source          string           `json:"source"`
	TotalProcessed  int              `json:"total_processed"`
	TotalDuplicates int              `json:"total_duplicates"`
	UniqueCount     int              `json:"unique_count"`
	DuplicateGroups []DuplicateGroup `json:"duplicate_groups,omitempty"`
}
