// Package merge implements the stable two-pointer merge used for
// incremental view maintenance.
package merge

// Stable merges two sorted slices into one sorted slice in O(len(a)+len(b)).
// On ties the element from a wins, so callers that pass the previously
// ordered elements as a and the freshly sorted delta as b preserve prior
// relative positions.
func Stable[T any](a, b []T, cmp func(x, y T) int) []T {
	out := make([]T, 0, len(a)+len(b))
	i, j := 0, 0
	for i < len(a) && j < len(b) {
		if cmp(a[i], b[j]) <= 0 {
			out = append(out, a[i])
			i++
		} else {
			out = append(out, b[j])
			j++
		}
	}
	out = append(out, a[i:]...)
	out = append(out, b[j:]...)
	return out
}
