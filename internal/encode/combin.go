// Package encode implements the position coding scheme: the
// decomposition of a canonicalized Dōbutsu Shōgi position into a
// (cohort, lionpos, map, ownership) tuple, and the pure function that
// turns that tuple into a dense byte offset.
package encode

// choose returns the binomial coefficient C(n, k). Every call in this
// package has n <= NumSquares and k <= 2, so the naive product loop
// never risks overflowing uint64.
func choose(n, k int) uint64 {
	if k < 0 || k > n {
		return 0
	}
	if k == 0 || k == n {
		return 1
	}
	if k > n-k {
		k = n - k
	}
	var result uint64 = 1
	for i := 0; i < k; i++ {
		result = result * uint64(n-i) / uint64(i+1)
	}
	return result
}

// rankSubset returns the lexicographic rank of idx, an ascending
// k-element subset of {0, ..., n-1}, among all such subsets listed in
// ascending order. It is the inverse of unrankSubset.
func rankSubset(n int, idx []int) uint64 {
	k := len(idx)
	var r uint64
	prev := -1
	for i, x := range idx {
		for v := prev + 1; v < x; v++ {
			r += choose(n-v-1, k-i-1)
		}
		prev = x
	}
	return r
}

// unrankSubset reconstructs the ascending k-subset of {0, ..., n-1}
// with the given lexicographic rank.
func unrankSubset(n, k int, rank uint64) []int {
	idx := make([]int, 0, k)
	v := 0
	for i := 0; i < k; i++ {
		for {
			c := choose(n-v-1, k-i-1)
			if rank < c {
				idx = append(idx, v)
				v++
				break
			}
			rank -= c
			v++
		}
	}
	return idx
}
