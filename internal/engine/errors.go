package engine

// ValidationError reports invalid caller input. It is always raised
// before any write happens, so a validation failure never leaves
// partial state behind.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string {
	return e.Msg
}
