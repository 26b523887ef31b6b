package model

// ErrUniqueConstraintViolation is returned by model functions when an
// insertion violates a unique constraint.
type ErrUniqueConstraintViolation struct {
	Err error
}

func (e ErrUniqueConstraintViolation) Error() string {
	return "Unique constraint violation: " + e.Err.Error()
}
