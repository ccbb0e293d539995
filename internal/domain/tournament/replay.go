package tournament

// Replay folds history over zeroed scores for items.
func Replay(items []Item, history []Vote) map[Item]int {
	scores := make(map[Item]int, len(items))
	for _, it := range items {
		scores[it] = 0
	}
	for _, v := range history {
		apply(scores, v, 1)
	}
	return scores
}
