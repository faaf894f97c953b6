package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/SeamusWaldron/watersort/internal/palette"
	"github.com/SeamusWaldron/watersort/internal/puzzle"
)

var paletteCmd = &cobra.Command{
	Use:   "palette",
	Short: "Manage named colors",
	Long: `Puzzle files may refer to colors by name. Names are resolved against
colors defined in the file first and then against the palette.`,
}

var paletteListCmd = &cobra.Command{
	Use:   "list",
	Short: "List palette colors",
	Args:  cobra.NoArgs,
	RunE:  runPaletteList,
}

var paletteAddCmd = &cobra.Command{
	Use:   "add <name> <r g b>",
	Short: "Add a color",
	Long: `Add a color to the palette. The channels may be given as separate
arguments or as one quoted string:

  watersort palette add Pink 255 0 123
  watersort palette add Pink "255,0,123"`,
	Args: cobra.MinimumNArgs(2),
	RunE: runPaletteAdd,
}

var paletteRemoveCmd = &cobra.Command{
	Use:     "remove <name>",
	Aliases: []string{"rm"},
	Short:   "Remove a color",
	Args:    cobra.ExactArgs(1),
	RunE:    runPaletteRemove,
}

func init() {
	rootCmd.AddCommand(paletteCmd)
	paletteCmd.AddCommand(paletteListCmd)
	paletteCmd.AddCommand(paletteAddCmd)
	paletteCmd.AddCommand(paletteRemoveCmd)
}

func runPaletteList(cmd *cobra.Command, args []string) error {
	pal, err := openPalette()
	if err != nil {
		return err
	}

	entries := pal.Entries()
	if len(entries) == 0 {
		fmt.Println("The palette is empty")
		fmt.Println("Add a color with: watersort palette add <name> <r g b>")
		return nil
	}

	fmt.Printf("Palette %s (%d colors):\n", pal.Path(), len(entries))
	fmt.Println()
	for _, e := range entries {
		fmt.Println(swatchLine(e.Color()))
	}
	return nil
}

func swatchLine(c puzzle.Color) string {
	swatch := lipgloss.NewStyle().Background(lipgloss.Color(c.Hex())).Render("    ")
	return fmt.Sprintf("  %s  %-16s %3d %3d %3d  %s", swatch, c.Name, c.R, c.G, c.B, c.Hex())
}

func runPaletteAdd(cmd *cobra.Command, args []string) error {
	r, g, b, err := palette.ParseRGB(strings.Join(args[1:], " "))
	if err != nil {
		return fmt.Errorf("invalid color %q: %w", args[0], err)
	}

	pal, err := openPalette()
	if err != nil {
		return err
	}

	c := puzzle.NewColor(args[0], r, g, b)
	if err := pal.Add(c); err != nil {
		return fmt.Errorf("failed to add color: %w", err)
	}

	loggerFromContext(cmd.Context()).Debug("Saved palette", "path", pal.Path())
	fmt.Println("Added:")
	fmt.Println(swatchLine(c))
	return nil
}

func runPaletteRemove(cmd *cobra.Command, args []string) error {
	pal, err := openPalette()
	if err != nil {
		return err
	}

	if err := pal.Remove(args[0]); err != nil {
		return fmt.Errorf("failed to remove color: %w", err)
	}

	fmt.Printf("Removed %s\n", args[0])
	return nil
}
