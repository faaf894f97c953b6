package cli

import (
	"errors"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/SeamusWaldron/watersort/internal/palette"
	"github.com/SeamusWaldron/watersort/internal/puzzle"
	"github.com/SeamusWaldron/watersort/internal/puzzlefile"
)

var enterOut string

var enterCmd = &cobra.Command{
	Use:   "enter",
	Short: "Build a puzzle file interactively",
	Long: `Describe a puzzle through a series of prompts.

New colors are added to the palette so they can be reused. Tubes are
filled from the top down, the way they appear on screen. Choose "done"
to leave the rest of a tube empty.`,
	RunE: runEnter,
}

func init() {
	rootCmd.AddCommand(enterCmd)
	enterCmd.Flags().StringVarP(&enterOut, "out", "o", "", "Output file (default: prompt)")
}

// doneOption ends a tube early.
const doneOption = "\x00done"

func runEnter(cmd *cobra.Command, args []string) error {
	logger := loggerFromContext(cmd.Context())

	pal, err := openPalette()
	if err != nil {
		return err
	}

	if err := promptColors(pal); err != nil {
		return err
	}
	if len(pal.Entries()) == 0 {
		return fmt.Errorf("the palette is empty; add at least one color")
	}

	var capStr, countStr string
	err = huh.NewForm(huh.NewGroup(
		huh.NewInput().Title("Tube capacity").Value(&capStr).Validate(validatePositive),
		huh.NewInput().Title("Number of tubes").Value(&countStr).Validate(validatePositive),
	)).Run()
	if err != nil {
		return err
	}
	capacity, _ := strconv.Atoi(strings.TrimSpace(capStr))
	count, _ := strconv.Atoi(strings.TrimSpace(countStr))

	tubes := make([]*puzzle.Tube, count)
	for i := range tubes {
		topDown, err := promptTube(pal, i, capacity)
		if err != nil {
			return err
		}
		tube, err := tubeFromTopDown(capacity, topDown, pal)
		if err != nil {
			return err
		}
		tubes[i] = tube
	}
	p := puzzle.New(tubes...)

	out := enterOut
	if out == "" {
		out = "puzzle.toml"
		if err := huh.NewInput().Title("Save as").Value(&out).Run(); err != nil {
			return err
		}
	}

	name := strings.TrimSuffix(filepath.Base(out), filepath.Ext(out))
	if err := puzzlefile.FromPuzzle(name, p).Save(out); err != nil {
		return err
	}
	logger.Info("Saved puzzle", "path", out, "tubes", p.Len(), "capacity", capacity)

	fmt.Println(renderPuzzle(p))
	return nil
}

// promptColors offers to add colors until the user declines.
func promptColors(pal *palette.Palette) error {
	for {
		add := len(pal.Entries()) == 0
		err := huh.NewConfirm().
			Title(fmt.Sprintf("Add a color? (%d in palette)", len(pal.Entries()))).
			Value(&add).
			Run()
		if err != nil {
			return err
		}
		if !add {
			return nil
		}

		var name, rgb string
		err = huh.NewForm(huh.NewGroup(
			huh.NewInput().Title("Color name").Value(&name).Validate(func(s string) error {
				if strings.TrimSpace(s) == "" {
					return errors.New("name is required")
				}
				if _, err := pal.Lookup(s); err == nil {
					return palette.ErrDuplicate
				}
				return nil
			}),
			huh.NewInput().Title("RGB").Placeholder("255 0 123").Value(&rgb).Validate(func(s string) error {
				_, _, _, err := palette.ParseRGB(s)
				return err
			}),
		)).Run()
		if err != nil {
			return err
		}

		r, g, b, _ := palette.ParseRGB(rgb)
		if err := pal.Add(puzzle.NewColor(strings.TrimSpace(name), r, g, b)); err != nil {
			return err
		}
	}
}

// promptTube asks for a tube's colors from the top down.
func promptTube(pal *palette.Palette, index, capacity int) ([]string, error) {
	options := []huh.Option[string]{huh.NewOption("done (rest empty)", doneOption)}
	for _, e := range pal.Entries() {
		options = append(options, huh.NewOption(e.Name, e.Name))
	}

	var topDown []string
	for level := 0; level < capacity; level++ {
		var choice string
		err := huh.NewSelect[string]().
			Title(fmt.Sprintf("Tube %d, unit %d from the top", index+1, level+1)).
			Options(options...).
			Value(&choice).
			Run()
		if err != nil {
			return nil, err
		}
		if choice == doneOption {
			break
		}
		topDown = append(topDown, choice)
	}
	return topDown, nil
}

// tubeFromTopDown builds a tube from color names listed top first.
func tubeFromTopDown(capacity int, topDown []string, lookup puzzlefile.Lookup) (*puzzle.Tube, error) {
	if len(topDown) > capacity {
		return nil, fmt.Errorf("%d colors do not fit in a tube of capacity %d", len(topDown), capacity)
	}
	content := make([]puzzle.Color, len(topDown))
	for i, name := range topDown {
		c, err := lookup.Lookup(name)
		if err != nil {
			return nil, err
		}
		content[len(topDown)-1-i] = c
	}
	return puzzle.NewTube(capacity, content...), nil
}

func validatePositive(s string) error {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return errors.New("enter a whole number")
	}
	if n <= 0 {
		return errors.New("must be greater than zero")
	}
	return nil
}
