package client

// Optimistic applies a local change before the remote call confirms it and
// rolls the change back when the call fails. Toggle-style mutations all go
// through this so the rollback behavior is uniform instead of hand-rolled
// per call site.
func Optimistic[T any](local *T, next T, call func() error) error {
	prev := *local
	*local = next
	if err := call(); err != nil {
		*local = prev
		return err
	}
	return nil
}
