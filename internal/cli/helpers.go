package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/SeamusWaldron/watersort/internal/palette"
	"github.com/SeamusWaldron/watersort/internal/puzzle"
	"github.com/SeamusWaldron/watersort/internal/puzzlefile"
	"github.com/SeamusWaldron/watersort/internal/storage"
)

// openDB opens the history database named by --db, or the default one,
// and brings its schema up to date.
func openDB(ctx context.Context) (*storage.DB, error) {
	var db *storage.DB
	var err error

	if dbPath == "" {
		db, err = storage.OpenDefault()
	} else {
		db, err = storage.Open(dbPath)
	}

	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.MigrateUp(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	loggerFromContext(ctx).Debug("Opened history", "path", db.Path())
	return db, nil
}

func openPalette() (*palette.Palette, error) {
	var p *palette.Palette
	var err error

	if palettePath == "" {
		p, err = palette.OpenDefault()
	} else {
		p, err = palette.Open(palettePath)
	}

	if err != nil {
		return nil, fmt.Errorf("failed to open palette: %w", err)
	}
	return p, nil
}

// loadPuzzle reads a puzzle file, resolving color names through the palette.
func loadPuzzle(path string) (*puzzlefile.File, *puzzle.Puzzle, error) {
	f, err := puzzlefile.Load(path)
	if err != nil {
		return nil, nil, err
	}

	pal, err := openPalette()
	if err != nil {
		return nil, nil, err
	}

	p, err := f.Puzzle(pal)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to build puzzle from %s: %w", path, err)
	}
	return f, p, nil
}

// encodePuzzle renders f as TOML for storage.
func encodePuzzle(f *puzzlefile.File) (string, error) {
	var b strings.Builder
	if err := f.Encode(&b); err != nil {
		return "", fmt.Errorf("failed to encode puzzle: %w", err)
	}
	return b.String(), nil
}

func formatDuration(d time.Duration) string {
	if d < time.Second {
		return fmt.Sprintf("%dms", d.Milliseconds())
	}
	if d < time.Minute {
		return fmt.Sprintf("%.2fs", d.Seconds())
	}
	mins := int(d.Minutes())
	secs := d.Seconds() - float64(mins*60)
	return fmt.Sprintf("%dm%.1fs", mins, secs)
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}
