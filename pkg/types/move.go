// Package types contains shared type definitions for the watersort application.
package types

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrInvalidNotation is returned when a move string cannot be parsed.
var ErrInvalidNotation = errors.New("invalid move notation")

// Move represents a single pour between two tubes.
// Indices are zero-based; notation is one-based for display.
type Move struct {
	From int `json:"from"`
	To   int `json:"to"`
}

// Notation returns the display notation for this move.
// Examples: 1>2, 3>1
func (m Move) Notation() string {
	return strconv.Itoa(m.From+1) + ">" + strconv.Itoa(m.To+1)
}

// String returns the notation string (alias for Notation).
func (m Move) String() string {
	return m.Notation()
}

// Reverse returns the move pouring in the opposite direction.
// A pour is not in general undone by its reverse.
func (m Move) Reverse() Move {
	return Move{From: m.To, To: m.From}
}

// ParseMove parses display notation ("1>2") into a zero-based Move.
func ParseMove(s string) (Move, error) {
	s = strings.TrimSpace(s)
	from, to, ok := strings.Cut(s, ">")
	if !ok {
		return Move{}, fmt.Errorf("%w: %q", ErrInvalidNotation, s)
	}

	f, err := strconv.Atoi(strings.TrimSpace(from))
	if err != nil || f < 1 {
		return Move{}, fmt.Errorf("%w: %q", ErrInvalidNotation, s)
	}
	t, err := strconv.Atoi(strings.TrimSpace(to))
	if err != nil || t < 1 {
		return Move{}, fmt.Errorf("%w: %q", ErrInvalidNotation, s)
	}
	if f == t {
		return Move{}, fmt.Errorf("%w: %q pours into itself", ErrInvalidNotation, s)
	}

	return Move{From: f - 1, To: t - 1}, nil
}

// ParseMoves parses a space-separated sequence of moves.
// Example: "1>2 3>1"
// Unlike single-move parsing, the first invalid token aborts the whole sequence.
func ParseMoves(s string) ([]Move, error) {
	parts := strings.Fields(s)
	moves := make([]Move, 0, len(parts))

	for _, part := range parts {
		move, err := ParseMove(part)
		if err != nil {
			return nil, err
		}
		moves = append(moves, move)
	}

	return moves, nil
}

// FormatMoves formats a slice of moves as a space-separated notation string.
func FormatMoves(moves []Move) string {
	if len(moves) == 0 {
		return ""
	}

	parts := make([]string, len(moves))
	for i, m := range moves {
		parts[i] = m.Notation()
	}

	return strings.Join(parts, " ")
}
