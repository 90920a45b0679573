package component

import (
	"github.com/milk9111/racer/ai"
	"github.com/milk9111/racer/levels"
	"github.com/milk9111/racer/nav"
)

// Track is the singleton holding the loaded level and its derived views.
type Track struct {
	Level *levels.Level
	Grid  *nav.Grid
	Path  *ai.WaypointPath
}

var TrackComponent = NewComponent[Track]()
