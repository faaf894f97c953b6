package puzzle

import "errors"

// Pour rule violations, checked in this order by Tube.CanPourInto.
var (
	ErrMaxCapacity = errors.New("destination tube is full")
	ErrNoContent   = errors.New("source tube is empty")
	ErrCantMove    = errors.New("tube is already complete")
	ErrDiffColor   = errors.New("top colors differ")

	// ErrInvalidMove matches any *InvalidMoveError via errors.Is.
	ErrInvalidMove = errors.New("invalid move")
)

// InvalidMoveError reports a move that addresses a tube that does not exist.
type InvalidMoveError struct {
	Reason string
}

func (e *InvalidMoveError) Error() string {
	return "invalid move: " + e.Reason
}

// Is reports whether target is ErrInvalidMove.
func (e *InvalidMoveError) Is(target error) bool {
	return target == ErrInvalidMove
}
