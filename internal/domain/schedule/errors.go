package schedule

import (
	"errors"
	"fmt"
)

var ErrEmployeeNotFound = errors.New("schedule: employee not found")

// StorageError sinaliza falha na camada de consulta externa.
// O motor não faz retry nem aplica resultados parciais.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("schedule: %s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

func storageErr(op string, err error) error {
	return &StorageError{Op: op, Err: err}
}
