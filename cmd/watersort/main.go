// watersort - CLI application for solving and replaying water sort puzzles.
package main

import (
	"github.com/SeamusWaldron/watersort/internal/cli"
)

func main() {
	cli.Execute()
}
