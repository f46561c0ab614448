package kb

import "errors"

// Store errors. All are local and recoverable; callers discriminate
// with errors.Is and translate to their own surface (exit code, HTTP
// status).
var (
	ErrDuplicateID       = errors.New("duplicate rule id")
	ErrUnknownID         = errors.New("unknown rule id")
	ErrInvalidCondition  = errors.New("conditions must be non-empty canonical tokens")
	ErrInvalidConclusion = errors.New("conclusion must be a non-empty canonical token")
	ErrInvalidPriority   = errors.New("priority must be an integer")
	ErrEmptyFact         = errors.New("fact is empty after normalization")
	ErrDuplicateFact     = errors.New("fact already known")
	ErrUnknownFact       = errors.New("unknown fact")
)
