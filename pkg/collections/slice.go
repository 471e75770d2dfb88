package collections

// SliceRemoveIndex returns a new slice without the element at index i.  The
// given slice is not modified.
func SliceRemoveIndex[T any](slice []T, i int) []T {
	result := make([]T, 0, len(slice)-1)
	result = append(result, slice[:i]...)
	result = append(result, slice[i+1:]...)
	return result
}
