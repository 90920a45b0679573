package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/ebitenui/ebitenui"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/milk9111/racer/common"
	"github.com/milk9111/racer/ecs"
	"github.com/milk9111/racer/ecs/entity"
	"github.com/milk9111/racer/ecs/system"
	"github.com/milk9111/racer/levels"
	"github.com/milk9111/racer/prefabs"
)

const fixedDt = 1.0 / 60

type Game struct {
	frames    int
	debug     bool
	paused    bool
	quit      bool
	countdown int
	startWait int

	world     *ecs.World
	session   *entity.Session
	scheduler *ecs.Scheduler
	lap       *system.LapSystem
	hudSystem *system.HUDSystem
	debugDraw *system.DebugDrawSystem
	// driving systems are held during the start countdown
	driving []ecs.System

	watcher *prefabs.Watcher
	hud     *HUD
	pauseUI *ebitenui.UI
}

func NewGame(lvl *levels.Level, specs *entity.Specs, aiCount int, debug bool) (*Game, error) {
	w := ecs.NewWorld()
	session, err := entity.SpawnRace(w, lvl, specs, aiCount)
	if err != nil {
		return nil, err
	}

	ppu := 0.0
	wait := 0
	if specs.Race != nil {
		ppu = specs.Race.PixelsPer
		wait = specs.Race.Countdown
	}

	playerController := system.NewPlayerControllerSystem()
	route := system.NewRouteSystem()
	aiDriver := system.NewAIDriverSystem()
	physics := system.NewPhysicsSystem()
	lap := system.NewLapSystem(session.Race)
	hud := system.NewHUDSystem(session.Race, session.Player)
	debugDraw := system.NewDebugDrawSystem(physics, debug)

	g := &Game{
		debug:     debug,
		startWait: wait,
		world:     w,
		session:   session,
		scheduler: ecs.NewScheduler(
			system.NewInputSystem(),
			playerController,
			route,
			aiDriver,
			system.NewMotorSystem(),
			system.NewRespawnSystem(),
			physics,
			lap,
			hud,
			system.NewCameraSystem(common.BaseWidth, common.BaseHeight, ppu),
			system.NewRenderSystem(),
			debugDraw,
		),
		lap:       lap,
		hudSystem: hud,
		debugDraw: debugDraw,
		driving:   []ecs.System{playerController, route, aiDriver},
		hud:       NewHUD(),
	}
	g.pauseUI = NewPauseUI(g)
	g.startCountdown()

	if debug {
		g.watchPrefabs()
	}
	return g, nil
}

func (g *Game) watchPrefabs() {
	if !isDir(prefabs.Dir) {
		log.Printf("game: no %s directory, hot reload off", prefabs.Dir)
		return
	}
	dirs := []string{prefabs.Dir}
	if scripts := filepath.Join(prefabs.Dir, "scripts"); isDir(scripts) {
		dirs = append(dirs, scripts)
	}
	watcher, err := prefabs.NewWatcher(dirs...)
	if err != nil {
		log.Printf("game: watch prefabs: %v", err)
		return
	}
	g.watcher = watcher
}

func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

func (g *Game) startCountdown() {
	g.countdown = g.startWait
	for _, s := range g.driving {
		g.scheduler.SetPaused(s, g.countdown > 0)
	}
}

func (g *Game) restart() {
	g.session.Restart()
	g.lap.Reset()
	g.startCountdown()
}

func (g *Game) Update() error {
	g.frames++
	if g.quit {
		g.close()
		return ebiten.Termination
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		g.paused = !g.paused
	}
	if g.paused {
		g.pauseUI.Update()
		return nil
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		g.restart()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF1) {
		g.debugDraw.Enabled = !g.debugDraw.Enabled
	}
	g.reloadPrefabs()

	if g.countdown > 0 {
		g.countdown--
		if g.countdown == 0 {
			for _, s := range g.driving {
				g.scheduler.SetPaused(s, false)
			}
		}
	}

	g.scheduler.Step(g.world, fixedDt)
	g.logEvents()
	g.hud.Update(g.hudSystem.State(), g.countdown)
	return nil
}

func (g *Game) logEvents() {
	for _, evt := range g.world.Events().Peek() {
		switch evt.Kind {
		case ecs.EventLapCompleted:
			if g.debug {
				log.Printf("game: %v completed lap %v", evt.Entity, evt.Data)
			}
		case ecs.EventRouteBlocked:
			if g.debug {
				log.Printf("game: runner %v blocked heading to %v", evt.Entity, evt.Data)
			}
		}
	}
}

func (g *Game) reloadPrefabs() {
	if g.watcher == nil {
		return
	}
	changed := g.watcher.Poll()
	if len(changed) == 0 {
		return
	}
	specs, err := entity.LoadSpecs()
	if err != nil {
		log.Printf("game: reload prefabs %v: %v", changed, err)
		return
	}
	if err := g.session.ApplySpecs(specs); err != nil {
		log.Printf("game: apply prefabs: %v", err)
		return
	}
	log.Printf("game: reloaded prefabs after change to %v", changed)
}

func (g *Game) close() {
	if g.watcher != nil {
		_ = g.watcher.Close()
	}
}

func (g *Game) Draw(screen *ebiten.Image) {
	g.scheduler.Draw(g.world, screen)
	g.hud.Draw(screen)
	if g.paused {
		g.pauseUI.Draw(screen)
	}
	if g.debug {
		ebitenutil.DebugPrint(screen, fmt.Sprintf("Frames: %d    FPS: %.2f", g.frames, ebiten.ActualFPS()))
	}
}

func (g *Game) LayoutF(outsideWidth, outsideHeight float64) (float64, float64) {
	return common.BaseWidth, common.BaseHeight
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	panic("shouldn't use Layout")
}
