package scanner

// ScanOptions defines the options for scanning
type ScanOptions struct {
	FolderPath string
	// Recursive descends into sub-folders
	Recursive bool
}

// FileStats tracks information about files found by a scan
type FileStats struct {
	TotalFiles int
	TifFiles   int
	Skipped    int
}
