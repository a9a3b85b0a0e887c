package domain

// Document is what gets submitted to the document analyzer.
type Document struct {
	SourceID int64
	Title    string
	Author   *string
	FilePath string
}

// JobHandle identifies an analysis job on the analyzer side.
type JobHandle string

// JobState is the analyzer-reported state of a job.
type JobState string

const (
	JobStateProcessing JobState = "processing"
	JobStateReady      JobState = "ready"
	JobStateFailed     JobState = "failed"
)

func (s JobState) String() string { return string(s) }

// JobStatus is the result of one poll. Message carries the raw upstream
// failure text when State is JobStateFailed.
type JobStatus struct {
	State   JobState
	Message string
}
