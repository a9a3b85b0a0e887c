package domain

import "time"

// ProcessingStatus is the extraction lifecycle state of a source document.
type ProcessingStatus string

const (
	ProcessingStatusPending    ProcessingStatus = "pending"
	ProcessingStatusProcessing ProcessingStatus = "processing"
	ProcessingStatusDone       ProcessingStatus = "done"
	ProcessingStatusError      ProcessingStatus = "error"
)

func (s ProcessingStatus) String() string { return string(s) }

func (s ProcessingStatus) IsValid() bool {
	switch s {
	case ProcessingStatusPending, ProcessingStatusProcessing, ProcessingStatusDone, ProcessingStatusError:
		return true
	}
	return false
}

// Source is a document (book, PDF) that extracts are drawn from.
// ProcessingStatus, ExtractCount and LastError are owned by the extraction pipeline.
type Source struct {
	ID               int64
	Title            string
	Author           *string
	FilePath         string
	FileHash         *string
	ProcessingStatus ProcessingStatus
	ExtractCount     int
	LastError        *string
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// NeedsExtraction reports whether a batch run should pick this source up.
func (s *Source) NeedsExtraction() bool {
	return s.ProcessingStatus == ProcessingStatusPending || s.ProcessingStatus == ProcessingStatusError
}

// NewSource is the input for registering a document found in the library.
type NewSource struct {
	Title    string
	Author   *string
	FilePath string
	FileHash *string
}

// DocumentMeta is what can be read from a document file without analyzing it.
type DocumentMeta struct {
	Title     string
	Author    string
	PageCount int
}

// SourceWithExtracts is a source together with everything extracted from it.
type SourceWithExtracts struct {
	Source
	Extracts []Extract
}

// ScanResult summarizes one pass over the library directory.
type ScanResult struct {
	Scanned int
	Added   int
	Sources []Source
}
