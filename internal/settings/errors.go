package settings

import "fmt"

// StorageError reports a durable-store failure: the settings file or its
// directory is unreadable, unwritable, or corrupt. A missing file is not a
// storage error.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("settings storage %s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }

// ValidationError reports a replacement document or merge-patch result that
// does not conform to the settings schema. The store is left unchanged.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string { return e.Reason }
