package ptr

// Ptr returns a pointer to the given value.
// Useful for building optional filter fields inline.
func Ptr[T any](v T) *T {
	return &v
}
