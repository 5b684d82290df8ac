package domain

// ValidationResult is the outcome of validating one candidate tag.
// Valid is true exactly when Errors is empty.
type ValidationResult struct {
	Valid  bool     `json:"valid"`
	Errors []string `json:"errors"`
}

// FileStatus is the state of one file in the working tree
type FileStatus string

const (
	StatusModified  FileStatus = "modified"
	StatusAdded     FileStatus = "added"
	StatusDeleted   FileStatus = "deleted"
	StatusUntracked FileStatus = "untracked"
	StatusUnknown   FileStatus = "unknown"
)

// FileChange is one uncommitted change under the tags directory
type FileChange struct {
	Status FileStatus `json:"status"`
	File   string     `json:"file"`
}

// GitStatus summarizes uncommitted changes to the tag files.
// Error is set instead of failing when git itself is unavailable.
type GitStatus struct {
	HasChanges bool         `json:"hasChanges"`
	Changes    []FileChange `json:"changes"`
	Error      string       `json:"error,omitempty"`
}

// Commit is one line of the tag files' history
type Commit struct {
	Hash    string `json:"hash"`
	Subject string `json:"subject"`
}
