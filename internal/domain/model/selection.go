package model

// Selection names the items of a new tournament, either by name or by
// catalog position. Names win when both are given.
type Selection struct {
	Items   []string `json:"items,omitempty"`
	Indices []int    `json:"indices,omitempty"`
}
