package resumes

import "time"

// Record is the stored extracted text of one uploaded resume document.
// Records are anonymous and short-lived: the caller keeps only the opaque ID
// and the sweeper removes anything older than the configured TTL.
type Record struct {
	ID         string
	FileName   string
	StorageKey string
	Text       string
	CreatedAt  time.Time
}
