// Command trackgen edits level files: it fills the walls layer around the
// road and shifts the waypoint circuit.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"

	"github.com/milk9111/racer/levels"
	"github.com/milk9111/racer/nav"
)

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}
		log.Fatal(err)
	}
}

func run(args []string, out io.Writer) error {
	fs := flag.NewFlagSet("trackgen", flag.ContinueOnError)
	fs.SetOutput(out)
	levelName := fs.String("level", "", "level name to load from levels/ (basename, .json optional)")
	in := fs.String("in", "", "level file to read; overrides -level")
	outPath := fs.String("out", "", "file to write; defaults to the input file or levels/<level>.json")
	walls := fs.Bool("walls", true, "fill the walls layer with every non-road cell inside the bounds")
	minX := fs.Int("min-x", 0, "inclusive lower X bound in cells")
	minY := fs.Int("min-y", 0, "inclusive lower Y bound in cells")
	maxX := fs.Int("max-x", -1, "inclusive upper X bound in cells; -1 is the level's last column")
	maxY := fs.Int("max-y", -1, "inclusive upper Y bound in cells; -1 is the level's last row")
	shiftY := fs.Float64("shift-y", 0, "world units to add to every waypoint's Y")
	dryRun := fs.Bool("n", false, "report changes without writing")
	if err := fs.Parse(args); err != nil {
		return err
	}

	lvl, src, err := load(*in, *levelName)
	if err != nil {
		return err
	}

	if *walls {
		hi := nav.Cell{X: *maxX, Y: *maxY}
		if hi.X < 0 {
			hi.X = lvl.Width - 1
		}
		if hi.Y < 0 {
			hi.Y = lvl.Height - 1
		}
		added := lvl.GenerateBoundaries(nav.Cell{X: *minX, Y: *minY}, hi)
		fmt.Fprintf(out, "walls: added %d cells in (%d,%d)-(%d,%d)\n", added, *minX, *minY, hi.X, hi.Y)
	}
	if *shiftY != 0 {
		lvl.ShiftWaypoints(*shiftY)
		fmt.Fprintf(out, "waypoints: shifted %d by %g\n", len(lvl.Waypoints), *shiftY)
	}

	dst := *outPath
	if dst == "" {
		dst = src
	}
	if *dryRun {
		fmt.Fprintf(out, "dry run: not writing %s\n", dst)
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return fmt.Errorf("trackgen: %w", err)
	}
	if err := lvl.Save(dst); err != nil {
		return fmt.Errorf("trackgen: %w", err)
	}
	fmt.Fprintf(out, "wrote %s\n", dst)
	return nil
}

// load returns the level and the path it should be written back to.
func load(in, name string) (*levels.Level, string, error) {
	switch {
	case in != "":
		lvl, err := levels.LoadFile(in)
		return lvl, in, err
	case name != "":
		lvl, err := levels.Load(name)
		if err != nil {
			return nil, "", err
		}
		base := filepath.Base(name)
		if filepath.Ext(base) != ".json" {
			base += ".json"
		}
		return lvl, filepath.Join("levels", base), nil
	default:
		return nil, "", errors.New("trackgen: one of -in or -level is required")
	}
}
