package main

import (
	"errors"
	"flag"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/racer/ecs/entity"
	"github.com/milk9111/racer/levels"
)

func main() {
	debug := flag.Bool("debug", false, "enable debug overlays and prefab hot reload")
	baseMonitor := flag.Bool("m", false, "use base monitor instead of primary (for multi-monitor setups)")
	levelName := flag.String("level", "", "level name in levels/ (basename, .json optional); defaults to race.yaml")
	aiCount := flag.Int("ai", -1, "number of AI cars; -1 uses every AI spawn of the level")
	flag.Parse()

	specs, err := entity.LoadSpecs()
	if err != nil {
		log.Fatal(err)
	}
	name := *levelName
	if name == "" && specs.Race != nil {
		name = specs.Race.Level
	}
	lvl, err := levels.Load(name)
	if err != nil {
		log.Fatal(err)
	}

	if *baseMonitor {
		ebiten.SetMonitor(ebiten.AppendMonitors(nil)[0])
	}
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowSize(1280, 720)
	ebiten.SetWindowTitle("racer")

	game, err := NewGame(lvl, specs, *aiCount, *debug)
	if err != nil {
		log.Fatal(err)
	}
	if err := ebiten.RunGame(game); err != nil && !errors.Is(err, ebiten.Termination) {
		log.Fatal(err)
	}
}
