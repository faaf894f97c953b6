package watersort

import (
	"github.com/SeamusWaldron/watersort/internal/playback"
	"github.com/SeamusWaldron/watersort/internal/puzzle"
	"github.com/SeamusWaldron/watersort/internal/puzzlefile"
	"github.com/SeamusWaldron/watersort/pkg/types"
)

// Sentinel errors for the watersort package. Use errors.Is to match them.
var (
	// Pour errors
	ErrMaxCapacity = puzzle.ErrMaxCapacity
	ErrNoContent   = puzzle.ErrNoContent
	ErrCantMove    = puzzle.ErrCantMove
	ErrDiffColor   = puzzle.ErrDiffColor
	ErrInvalidMove = puzzle.ErrInvalidMove

	// Replay errors
	ErrReplayDiverged = playback.ErrReplayDiverged

	// Parsing errors
	ErrInvalidNotation = types.ErrInvalidNotation
	ErrInvalidFile     = puzzlefile.ErrInvalid
)
