package domain

// Theme job statuses stored by the queue repository
const (
	ThemeStatusReadyToGenerate = "ReadyToGenerate"
	ThemeStatusDone            = "Done"
	ThemeStatusFailed          = "Failed"
)

// ThemeJob represents a queued cursor set export and its status
type ThemeJob struct {
	ID          int
	Theme       string
	Status      string
	ArchivePath string
}
