package levels

import (
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/racer/nav"
)

//go:embed *.json
var LevelsFS embed.FS

const (
	RoadLayer  = "road"
	WallsLayer = "walls"
)

var ErrNoRoadLayer = errors.New("levels: no road layer")

// Level is a track stored as JSON. Layers are flat row-major arrays of
// Width*Height ints indexed by y*Width+x; a non-zero value is a tile.
type Level struct {
	Width      int      `json:"width"`
	Height     int      `json:"height"`
	CellSize   float64  `json:"cell_size"`
	OriginX    float64  `json:"origin_x"`
	OriginY    float64  `json:"origin_y"`
	Layers     [][]int  `json:"layers"`
	LayerNames []string `json:"layer_names"`
	Waypoints  []Point  `json:"waypoints"`
	Loop       bool     `json:"loop"`
	GoalA      Point    `json:"goal_a"`
	GoalB      Point    `json:"goal_b"`
	FinishLine Rect     `json:"finish_line"`
	Spawns     Spawns   `json:"spawns"`
	TargetLaps int      `json:"target_laps,omitempty"`
}

type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

func (p Point) Vector() cp.Vector { return cp.Vector{X: p.X, Y: p.Y} }

// Rect is axis aligned with its min corner at X, Y.
type Rect struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	W float64 `json:"w"`
	H float64 `json:"h"`
}

func (r Rect) Contains(p cp.Vector) bool {
	return p.X >= r.X && p.X <= r.X+r.W && p.Y >= r.Y && p.Y <= r.Y+r.H
}

func (r Rect) Center() cp.Vector {
	return cp.Vector{X: r.X + r.W/2, Y: r.Y + r.H/2}
}

// Spawn is a world position and heading in degrees.
type Spawn struct {
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
	Angle float64 `json:"angle"`
}

func (s Spawn) Vector() cp.Vector { return cp.Vector{X: s.X, Y: s.Y} }

type Spawns struct {
	Player *Spawn  `json:"player,omitempty"`
	AI     []Spawn `json:"ai,omitempty"`
	Runner *Spawn  `json:"runner,omitempty"`
}

// TileLayer views one layer of a level as a nav.TileSet.
type TileLayer struct {
	Width  int
	Height int
	Tiles  []int
}

func (l *TileLayer) index(c nav.Cell) (int, bool) {
	if l == nil || c.X < 0 || c.Y < 0 || c.X >= l.Width || c.Y >= l.Height {
		return 0, false
	}
	i := c.Y*l.Width + c.X
	if i >= len(l.Tiles) {
		return 0, false
	}
	return i, true
}

func (l *TileLayer) HasTile(c nav.Cell) bool {
	i, ok := l.index(c)
	return ok && l.Tiles[i] != 0
}

func (l *TileLayer) Set(c nav.Cell, v int) bool {
	i, ok := l.index(c)
	if !ok {
		return false
	}
	l.Tiles[i] = v
	return true
}

// Load reads a level by name, preferring levels/<name> on disk over the
// embedded copy.
func Load(name string) (*Level, error) {
	clean := cleanLevelPath(name)
	data, err := os.ReadFile(filepath.Join("levels", filepath.FromSlash(clean)))
	if err != nil {
		data, err = fs.ReadFile(LevelsFS, clean)
		if err != nil {
			return nil, fmt.Errorf("levels: read %s: %w", clean, err)
		}
	}
	lvl, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("levels: %s: %w", clean, err)
	}
	return lvl, nil
}

// LoadFile reads a level from an explicit path.
func LoadFile(path string) (*Level, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("levels: read %s: %w", path, err)
	}
	lvl, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("levels: %s: %w", path, err)
	}
	return lvl, nil
}

func Parse(data []byte) (*Level, error) {
	var lvl Level
	if err := json.Unmarshal(data, &lvl); err != nil {
		return nil, fmt.Errorf("unmarshal level: %w", err)
	}
	if err := lvl.Validate(); err != nil {
		return nil, err
	}
	return &lvl, nil
}

func (l *Level) Validate() error {
	if l.Width <= 0 || l.Height <= 0 {
		return fmt.Errorf("invalid level dimensions: %dx%d", l.Width, l.Height)
	}
	if l.CellSize <= 0 {
		l.CellSize = 1
	}
	if len(l.LayerNames) > len(l.Layers) {
		return fmt.Errorf("%d layer names for %d layers", len(l.LayerNames), len(l.Layers))
	}
	for i, layer := range l.Layers {
		if len(layer) != l.Width*l.Height {
			return fmt.Errorf("layer %d has %d tiles, want %d", i, len(layer), l.Width*l.Height)
		}
	}
	if _, ok := l.Layer(RoadLayer); !ok {
		return ErrNoRoadLayer
	}
	return nil
}

// Save writes the level as indented JSON.
func (l *Level) Save(path string) error {
	data, err := json.MarshalIndent(l, "", "  ")
	if err != nil {
		return fmt.Errorf("levels: marshal: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("levels: write %s: %w", path, err)
	}
	return nil
}

func (l *Level) Layer(name string) (*TileLayer, bool) {
	for i, n := range l.LayerNames {
		if n == name && i < len(l.Layers) {
			return &TileLayer{Width: l.Width, Height: l.Height, Tiles: l.Layers[i]}, true
		}
	}
	return nil, false
}

// EnsureLayer returns the named layer, appending an empty one if needed.
func (l *Level) EnsureLayer(name string) *TileLayer {
	if layer, ok := l.Layer(name); ok {
		return layer
	}
	for len(l.LayerNames) < len(l.Layers) {
		l.LayerNames = append(l.LayerNames, "")
	}
	l.Layers = append(l.Layers, make([]int, l.Width*l.Height))
	l.LayerNames = append(l.LayerNames, name)
	layer, _ := l.Layer(name)
	return layer
}

func (l *Level) Origin() cp.Vector { return cp.Vector{X: l.OriginX, Y: l.OriginY} }

// Grid builds the planner's map view. A missing walls layer means no walls.
func (l *Level) Grid() (*nav.Grid, error) {
	road, ok := l.Layer(RoadLayer)
	if !ok {
		return nil, ErrNoRoadLayer
	}
	var walls nav.TileSet
	if w, ok := l.Layer(WallsLayer); ok {
		walls = w
	}
	return nav.NewGrid(l.CellSize, l.Origin(), road, walls), nil
}

func (l *Level) WaypointVectors() []cp.Vector {
	out := make([]cp.Vector, len(l.Waypoints))
	for i, p := range l.Waypoints {
		out[i] = p.Vector()
	}
	return out
}

// GenerateBoundaries puts a wall on every non-road cell inside the inclusive
// bounds and returns how many walls were added.
func (l *Level) GenerateBoundaries(min, max nav.Cell) int {
	road, ok := l.Layer(RoadLayer)
	if !ok {
		return 0
	}
	walls := l.EnsureLayer(WallsLayer)

	added := 0
	for y := min.Y; y <= max.Y; y++ {
		for x := min.X; x <= max.X; x++ {
			c := nav.Cell{X: x, Y: y}
			if road.HasTile(c) || walls.HasTile(c) {
				continue
			}
			if walls.Set(c, 1) {
				added++
			}
		}
	}
	return added
}

// ShiftWaypoints moves every waypoint by dy on the Y axis.
func (l *Level) ShiftWaypoints(dy float64) {
	for i := range l.Waypoints {
		l.Waypoints[i].Y += dy
	}
}

// List returns the embedded level names.
func List() []string {
	entries, err := fs.ReadDir(LevelsFS, ".")
	if err != nil {
		return nil
	}
	var names []string
	for _, e := range entries {
		if !e.IsDir() && strings.HasSuffix(e.Name(), ".json") {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)
	return names
}

func cleanLevelPath(name string) string {
	s := filepath.ToSlash(name)
	s = strings.TrimPrefix(s, "levels/")
	if !strings.HasSuffix(s, ".json") {
		s += ".json"
	}
	return s
}
