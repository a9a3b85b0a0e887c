package domain

// Feed is one build of the reader's feed.
type Feed struct {
	Posts       []ExtractWithSource
	Count       int
	Quota       int
	AllCaughtUp bool
}
