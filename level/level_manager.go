package level

import (
	"github.com/milk9111/skyrunner/player"
)

const (
	DefaultSceneChangeDistance = 2400
	DefaultSpawnInterval       = 3000 // ms
	MaxEnemies                 = 5
	MinCoinDistance            = 40

	coinWindow      = 400
	coinLift        = 50
	enemySpawnRange = 200
	enemyMinY       = 100
)

// EnemyFactory builds an enemy at x, y. Returning nil skips the spawn.
type EnemyFactory func(rng Rand, x, y float64) *Enemy

// EnemySpawner is a scene's enemy record: its factories and spawn timer.
type EnemySpawner struct {
	Factories []EnemyFactory
	// Interval is the time between spawns in milliseconds.
	Interval float64
	timer    float64
}

// SceneSetup is everything the level needs to know about one scene.
type SceneSetup struct {
	Name   string
	Layers []*ParallaxLayer
	Effect *ParallaxLayer
	// Span is the width of the scene window; zero uses the scene change
	// distance.
	Span      float64
	Platforms []SpawnConfig
	Weights   []Weight
	Enemies   EnemySpawner
}

// Options configures a LevelManager.
type Options struct {
	ScreenWidth         float64
	ScreenHeight        float64
	BlockSize           float64
	SceneChangeDistance float64
	Rand                Rand
	Scenes              []SceneSetup
	GlobalPlatforms     []SpawnConfig
}

// LevelManager is the per-frame entry point tying scenes, terrain, coins and
// enemies together around one player.
type LevelManager struct {
	player *player.Player
	rng    Rand

	screenWidth  float64
	screenHeight float64

	scenes    []SceneSetup
	parallax  *ParallaxManager
	platforms *PlatformManager
	sceneMgr  *SceneManager

	sceneChangeDistance float64
	totalDistance       float64
	maxPlayerX          float64
	scenesPassed        int
	pendingAdvance      bool
	// claimed is set once the running blend has satisfied a distance request.
	claimed bool
	current int

	coins   []*Coin
	enemies []*Enemy
	score   int

	deathReported bool

	// OnSceneChange fires after a scene switch commits.
	OnSceneChange func(from, to int)
	// OnCoin fires when a coin is collected with the new score.
	OnCoin func(score int)
	// OnPlayerDeath fires once per life when the player dies.
	OnPlayerDeath func()
}

// NewLevelManager builds the scenes and the initial terrain.
func NewLevelManager(pl *player.Player, opts Options) *LevelManager {
	if opts.Rand == nil {
		opts.Rand = NewRand(0)
	}
	if opts.SceneChangeDistance <= 0 {
		opts.SceneChangeDistance = DefaultSceneChangeDistance
	}
	if len(opts.Scenes) == 0 {
		opts.Scenes = []SceneSetup{{Name: "default"}}
	}

	m := &LevelManager{
		player:              pl,
		rng:                 opts.Rand,
		screenWidth:         opts.ScreenWidth,
		screenHeight:        opts.ScreenHeight,
		scenes:              append([]SceneSetup(nil), opts.Scenes...),
		sceneChangeDistance: opts.SceneChangeDistance,
	}

	m.platforms = NewPlatformManager(opts.BlockSize, opts.ScreenWidth, opts.ScreenHeight, opts.Rand)
	m.platforms.ConfigureGlobalPlatforms(opts.GlobalPlatforms)

	parallaxScenes := make([]*ParallaxScene, len(m.scenes))
	x := 0.0
	for i, s := range m.scenes {
		span := s.Span
		if span <= 0 {
			span = m.sceneChangeDistance
		}
		parallaxScenes[i] = NewParallaxScene(s.Name, s.Layers, s.Effect, x, span)
		x += span

		m.platforms.ConfigureScenePlatforms(i, s.Platforms)
		if s.Weights != nil {
			m.platforms.SetWeights(i, s.Weights)
		}
		if m.scenes[i].Enemies.Interval <= 0 {
			m.scenes[i].Enemies.Interval = DefaultSpawnInterval
		}
	}
	m.parallax = NewParallaxManager(parallaxScenes)
	m.sceneMgr = NewSceneManager(m.parallax, m.platforms, opts.ScreenWidth)
	m.platforms.InitializePlatforms(0)
	return m
}

// SetEnemyFactory adds a factory to a scene. The interval is only taken from
// the first factory registered for the scene.
func (m *LevelManager) SetEnemyFactory(sceneIndex int, f EnemyFactory, intervalMs float64) {
	if sceneIndex < 0 || sceneIndex >= len(m.scenes) || f == nil {
		return
	}
	sp := &m.scenes[sceneIndex].Enemies
	if len(sp.Factories) == 0 && intervalMs > 0 {
		sp.Interval = intervalMs
		sp.timer = 0
	}
	sp.Factories = append(sp.Factories, f)
}

// Update runs one frame. The player is expected to have moved already.
func (m *LevelManager) Update(deltaMs, cameraX float64) {
	pl := m.player

	if !m.sceneMgr.IsTransitioning() {
		m.claimed = false
	}
	m.sceneMgr.Update(cameraX, pl.Speed, pl.Pos.X)
	m.UpdateDistanceTracking(pl.Pos.X)
	m.applyPending()

	m.sceneMgr.ExtendPlatformsIfNeeded(cameraX)
	m.SpawnCoinsNearNewPlatforms(cameraX)
	m.HandleEnemySpawning(deltaMs, cameraX)

	m.platforms.UpdatePlatforms(pl)
	m.platforms.HandlePlatformCollisions(pl)

	m.updateCoins(cameraX)

	for _, e := range m.enemies {
		e.Update(pl)
	}
	for _, e := range m.enemies {
		if pl.Dead {
			break
		}
		if e.HitsPlayer(pl) {
			pl.Die()
		}
	}
	m.cleanupEnemies(cameraX)

	if pl.Dead && !m.deathReported {
		m.deathReported = true
		if m.OnPlayerDeath != nil {
			m.OnPlayerDeath()
		}
	}

	if idx := m.sceneMgr.CurrentSceneIndex(); idx != m.current {
		from := m.current
		m.current = idx
		if m.OnSceneChange != nil {
			m.OnSceneChange(from, idx)
		}
	}
}

// UpdateDistanceTracking adds forward progress past the furthest X reached so
// far. Every sceneChangeDistance covered requests one advance to the next
// scene.
func (m *LevelManager) UpdateDistanceTracking(playerX float64) {
	if playerX > m.maxPlayerX {
		m.totalDistance += playerX - m.maxPlayerX
		m.maxPlayerX = playerX
	}

	n := m.sceneMgr.SceneCount()
	if n < 2 || m.sceneChangeDistance <= 0 {
		return
	}
	passed := int(m.totalDistance / m.sceneChangeDistance)
	for m.scenesPassed < passed {
		m.scenesPassed++
		m.requestAdvance()
	}
}

// requestAdvance starts a forward blend. A forward blend already running that
// no request has claimed yet counts as the advance; otherwise the request is
// kept as the single pending advance.
func (m *LevelManager) requestAdvance() {
	if !m.sceneMgr.IsTransitioning() {
		m.advance()
		return
	}
	if !m.claimed && m.blendingForward() {
		m.claimed = true
		return
	}
	m.pendingAdvance = true
}

func (m *LevelManager) blendingForward() bool {
	next, dir := m.parallax.Target()
	n := m.sceneMgr.SceneCount()
	return dir > 0 && next == (m.sceneMgr.CurrentSceneIndex()+1)%n
}

func (m *LevelManager) advance() {
	n := m.sceneMgr.SceneCount()
	m.claimed = m.sceneMgr.HandleSceneSwitch((m.sceneMgr.CurrentSceneIndex() + 1) % n)
}

func (m *LevelManager) applyPending() {
	if !m.pendingAdvance || m.sceneMgr.IsTransitioning() {
		return
	}
	m.pendingAdvance = false
	m.advance()
}

// SpawnCoinsNearNewPlatforms places at most one coin over each platform that
// has just entered the strip beyond the right screen edge.
func (m *LevelManager) SpawnCoinsNearNewPlatforms(cameraX float64) {
	right := cameraX + m.screenWidth
	for _, p := range m.platforms.Platforms() {
		if p.Pos.X <= right || p.Pos.X >= right+coinWindow {
			continue
		}
		if m.coinNear(p.Pos.X) {
			continue
		}
		x := p.Pos.X + m.rng.Float64()*p.Size.Width
		if m.coinNear(x) {
			continue
		}
		m.coins = append(m.coins, NewCoin(x, p.Pos.Y-coinLift))
	}
}

func (m *LevelManager) coinNear(x float64) bool {
	for _, c := range m.coins {
		if d := c.Pos.X - x; d > -MinCoinDistance && d < MinCoinDistance {
			return true
		}
	}
	return false
}

func (m *LevelManager) updateCoins(cameraX float64) {
	kept := m.coins[:0]
	for _, c := range m.coins {
		c.Update()
		if c.Collect(m.player) {
			m.score++
			if m.OnCoin != nil {
				m.OnCoin(m.score)
			}
			continue
		}
		if c.Right() < cameraX-recycleMargin {
			continue
		}
		kept = append(kept, c)
	}
	clear(m.coins[len(kept):])
	m.coins = kept
}

// HandleEnemySpawning advances the active scene's spawn timer and spawns one
// enemy off the right edge when it elapses, unless MaxEnemies are live.
func (m *LevelManager) HandleEnemySpawning(deltaMs, cameraX float64) {
	if m.current < 0 || m.current >= len(m.scenes) {
		return
	}
	sp := &m.scenes[m.current].Enemies
	if len(sp.Factories) == 0 {
		return
	}
	sp.timer += deltaMs
	if sp.timer < sp.Interval {
		return
	}
	sp.timer = 0
	if len(m.enemies) >= MaxEnemies {
		return
	}

	f := sp.Factories[m.rng.Intn(len(sp.Factories))]
	x := cameraX + m.screenWidth + m.rng.Float64()*enemySpawnRange
	y := enemyMinY + m.rng.Float64()*(m.screenHeight-2*enemyMinY)
	if e := f(m.rng, x, y); e != nil {
		m.enemies = append(m.enemies, e)
	}
}

func (m *LevelManager) cleanupEnemies(cameraX float64) {
	kept := m.enemies[:0]
	for _, e := range m.enemies {
		if e.MarkedForRemoval || e.Right() < cameraX-recycleMargin {
			continue
		}
		kept = append(kept, e)
	}
	clear(m.enemies[len(kept):])
	m.enemies = kept
}

// Render draws scenery, terrain, coins and enemies.
func (m *LevelManager) Render(s Surface, cameraX float64) {
	m.sceneMgr.Render(s, cameraX)
	for _, c := range m.coins {
		c.Render(s, cameraX)
	}
	for _, e := range m.enemies {
		e.Render(s, cameraX)
	}
}

// ResetLevel clears progress and rebuilds the terrain. The player is reset
// by the caller.
func (m *LevelManager) ResetLevel() {
	m.totalDistance = 0
	m.maxPlayerX = 0
	m.scenesPassed = 0
	m.pendingAdvance = false
	m.claimed = false
	m.current = 0
	m.score = 0
	m.coins = nil
	m.enemies = nil
	m.deathReported = false
	for i := range m.scenes {
		m.scenes[i].Enemies.timer = 0
	}
	m.sceneMgr.Reset()
}

// SwitchEnvironment requests a blend to index unless one is already running.
func (m *LevelManager) SwitchEnvironment(index int) bool {
	if index < 0 || index >= m.sceneMgr.SceneCount() || m.sceneMgr.IsTransitioning() {
		return false
	}
	return m.sceneMgr.HandleSceneSwitch(index)
}

func (m *LevelManager) SetSceneChangeDistance(d float64) {
	if d > 0 {
		m.sceneChangeDistance = d
	}
}

func (m *LevelManager) CurrentSceneIndex() int      { return m.current }
func (m *LevelManager) TotalDistance() float64      { return m.totalDistance }
func (m *LevelManager) Score() int                  { return m.score }
func (m *LevelManager) Coins() []*Coin              { return m.coins }
func (m *LevelManager) Enemies() []*Enemy           { return m.enemies }
func (m *LevelManager) Platforms() *PlatformManager { return m.platforms }
func (m *LevelManager) SceneManager() *SceneManager { return m.sceneMgr }
func (m *LevelManager) Player() *player.Player      { return m.player }
func (m *LevelManager) PendingAdvance() bool        { return m.pendingAdvance }
