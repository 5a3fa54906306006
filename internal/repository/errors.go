package repository

import "fmt"

// StorageError reports a failed storage operation on the lat_long table
type StorageError struct {
	Op  string // insert, update_terrain, list, ...
	ID  int64  // pk_id involved, 0 when not applicable
	Err error
}

func (e *StorageError) Error() string {
	if e.ID != 0 {
		return fmt.Sprintf("storage %s (pk_id=%d): %v", e.Op, e.ID, e.Err)
	}
	return fmt.Sprintf("storage %s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}
