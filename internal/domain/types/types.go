// Package types contains common types used across the application
package types

// Entry represents one row of a final ranking.
type Entry struct {
	Rank  int    `json:"rank"`
	Item  string `json:"item"`
	Score int    `json:"score"`
}

// PairView is the wire shape of a pair shown to a voter.
type PairView struct {
	Left  string `json:"left"`
	Right string `json:"right"`
}
