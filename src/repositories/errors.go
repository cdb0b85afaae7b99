package repositories

// StorageError is what every store-level failure surfaces as. The message is
// fixed; the underlying driver error stays reachable through Unwrap.
type StorageError struct {
	cause error
}

func (e *StorageError) Error() string {
	return "Some error occurred while executing the query"
}

func (e *StorageError) Unwrap() error {
	return e.cause
}

func wrapStorage(err error) error {
	if err == nil {
		return nil
	}
	if _, ok := err.(*StorageError); ok {
		return err
	}
	return &StorageError{cause: err}
}
