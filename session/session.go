package session

import (
	"time"

	"github.com/milk9111/skyrunner/config"
	"github.com/milk9111/skyrunner/level"
	"github.com/milk9111/skyrunner/player"
	"github.com/milk9111/skyrunner/prefabs"
	"github.com/milk9111/skyrunner/scoreboard"
	"github.com/rs/zerolog"
	"golang.org/x/image/colornames"
)

// Options configures a run.
type Options struct {
	Settings config.Settings
	// Setup is the built scene file. Nil runs a single plain scene.
	Setup  *prefabs.Setup
	Logger zerolog.Logger
	// Scoreboard records finished runs when set.
	Scoreboard *scoreboard.Store
	// Source tags recorded runs with the binary that produced them.
	Source string
	// AutoScroll moves the camera at a fixed speed instead of following the
	// player.
	AutoScroll float64
}

// Session owns one player and its level across restarts.
type Session struct {
	Player  *player.Player
	Level   *level.LevelManager
	CameraX float64

	opts   Options
	log    zerolog.Logger
	width  float64
	height float64
	seed   int64

	frames int
	scenes int
	over   bool
	last   scoreboard.Run
}

func New(opts Options) *Session {
	s := &Session{
		opts:   opts,
		log:    opts.Logger,
		width:  float64(opts.Settings.Screen.Width),
		height: float64(opts.Settings.Screen.Height),
	}
	s.Player = player.New(s.width/3, s.height-300)
	if opts.Settings.Player.Speed > 0 {
		s.Player.Speed = opts.Settings.Player.Speed
	}
	s.build(opts.Setup)
	return s
}

func (s *Session) build(setup *prefabs.Setup) {
	s.seed = s.opts.Settings.Level.Seed
	if s.seed == 0 {
		s.seed = time.Now().UnixNano()
	}

	lo := level.Options{
		ScreenWidth:         s.width,
		ScreenHeight:        s.height,
		BlockSize:           s.opts.Settings.Level.BlockSize,
		SceneChangeDistance: s.opts.Settings.Level.SceneChangeDistance,
		Rand:                level.NewRand(s.seed),
	}
	if setup != nil {
		lo.Scenes = setup.Scenes
		lo.GlobalPlatforms = setup.Global
	}

	s.Level = level.NewLevelManager(s.Player, lo)
	s.Level.OnSceneChange = s.sceneChanged
	s.Level.OnCoin = func(score int) {
		s.log.Debug().Int("score", score).Msg("coin collected")
	}
	s.Level.OnPlayerDeath = s.playerDied

	s.Player.Reset()
	s.resetRun()
	s.log.Info().Int64("seed", s.seed).Int("scenes", s.Level.SceneManager().SceneCount()).Msg("level built")
}

func (s *Session) resetRun() {
	s.CameraX = s.followX()
	s.frames = 0
	s.scenes = 0
	s.over = false
}

func (s *Session) followX() float64 {
	return s.Player.Pos.X - s.width/3
}

// Step runs one frame with the given held input.
func (s *Session) Step(in player.Input, deltaMs float64) {
	if s.over {
		return
	}
	s.frames++

	s.Player.Input = in
	s.Player.Update(s.height)

	if s.opts.AutoScroll > 0 {
		s.CameraX += s.opts.AutoScroll
	} else {
		s.CameraX = s.followX()
	}

	s.Level.Update(deltaMs, s.CameraX)
}

func (s *Session) sceneChanged(from, to int) {
	s.scenes++
	name := ""
	if scene := s.Level.SceneManager().Parallax().Scene(to); scene != nil {
		name = scene.Name
	}
	s.log.Info().Int("from", from).Int("to", to).Str("scene", name).Float64("distance", s.Level.TotalDistance()).Msg("scene changed")
}

func (s *Session) playerDied() {
	s.log.Info().Int("frames", s.frames).Msg("player died")
	s.Finish()
}

// Finish ends the run and records it. It is a no-op once the run is over.
func (s *Session) Finish() {
	if s.over {
		return
	}
	s.over = true
	s.last = scoreboard.Run{
		Score:    s.Level.Score(),
		Distance: s.Level.TotalDistance(),
		Scenes:   s.scenes,
		Seed:     s.seed,
		Source:   s.opts.Source,
	}
	s.log.Info().
		Int("score", s.last.Score).
		Float64("distance", s.last.Distance).
		Int("scenes", s.last.Scenes).
		Msg("run finished")

	if s.opts.Scoreboard == nil {
		return
	}
	rec, err := s.opts.Scoreboard.Record(s.last)
	if err != nil {
		s.log.Error().Err(err).Msg("failed to record run")
		return
	}
	s.last = rec
}

// Restart resets the level and the player for a new life.
func (s *Session) Restart() {
	s.Level.ResetLevel()
	s.Player.Reset()
	s.resetRun()
	s.log.Info().Msg("run restarted")
}

// Reload rebuilds the level from a new scene setup and restarts.
func (s *Session) Reload(setup *prefabs.Setup) {
	s.opts.Setup = setup
	s.build(setup)
}

// Render draws the level and the player.
func (s *Session) Render(surf level.Surface) {
	surf.FillRect(0, 0, s.width, s.height, colornames.Black)
	s.Level.Render(surf, s.CameraX)

	p := s.Player
	x := p.Pos.X - s.CameraX
	surf.FillRect(x, p.Pos.Y, p.Size.Width, p.Size.Height, p.State.Current().Color())
	surf.StrokeRect(x, p.Pos.Y, p.Size.Width, p.Size.Height, 1, colornames.White)
}

func (s *Session) Over() bool              { return s.over }
func (s *Session) Frames() int             { return s.frames }
func (s *Session) ScenesReached() int      { return s.scenes }
func (s *Session) Seed() int64             { return s.seed }
func (s *Session) LastRun() scoreboard.Run { return s.last }
