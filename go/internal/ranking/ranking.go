// Package ranking holds the competition ranking rule shared by game results and leaderboards.
package ranking

// Competition assigns standard competition ranks ("1224") to n entries that are
// already ordered best-first. equal reports whether two adjacent entries tie.
func Competition(n int, equal func(i, j int) bool) []int {
	ranks := make([]int, n)
	for i := 0; i < n; i++ {
		if i > 0 && equal(i-1, i) {
			ranks[i] = ranks[i-1]
			continue
		}
		ranks[i] = i + 1
	}
	return ranks
}
