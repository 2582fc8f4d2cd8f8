package level

import (
	"github.com/milk9111/skyrunner/player"
)

const (
	// spawnLookahead is how far past the right screen edge terrain is kept.
	spawnLookahead = 500
	// recycleMargin is how far behind the camera's left edge a platform may
	// fall before it is dropped.
	recycleMargin = 100
	// specialOffsetX separates a non-ground platform from the frontier.
	specialOffsetX = 100
	// startWidthBlocks is the width of the ground under the spawn point.
	startWidthBlocks = 20

	specialMinY  = 100
	specialRange = 300
)

// SpawnConfig describes how one platform kind is spawned in a scene.
type SpawnConfig struct {
	Kind         Kind
	HeightBlocks float64
	WidthBlocks  float64
	// Y is the platform top. Zero picks a random height in the play band.
	Y float64
	// Scenes limits the config to the listed scene indexes; empty means all.
	Scenes []int
	// Condition is an extra activation predicate keyed by scene index.
	Condition func(sceneIndex int) bool
}

// Active reports whether the config applies in sceneIndex.
func (c SpawnConfig) Active(sceneIndex int) bool {
	if c.Condition != nil && !c.Condition(sceneIndex) {
		return false
	}
	if len(c.Scenes) == 0 {
		return true
	}
	for _, s := range c.Scenes {
		if s == sceneIndex {
			return true
		}
	}
	return false
}

// defaultSpawnConfig is used when a scene declares nothing for kind.
func defaultSpawnConfig(kind Kind) SpawnConfig {
	switch kind {
	case KindFalling:
		return SpawnConfig{Kind: kind, HeightBlocks: groundHeightBlocks, Y: 250}
	case KindBase:
		return SpawnConfig{Kind: kind, HeightBlocks: groundHeightBlocks}
	default:
		return SpawnConfig{Kind: kind, HeightBlocks: floatHeightBlocks, WidthBlocks: 4}
	}
}

// Weight is one bucket of the platform kind table.
type Weight struct {
	Kind   Kind
	Weight float64
}

// DefaultWeights is used for scenes without their own table.
var DefaultWeights = []Weight{
	{Kind: KindBase, Weight: 2},
	{Kind: KindBouncing, Weight: 1},
	{Kind: KindSlippery, Weight: 1},
	{Kind: KindFalling, Weight: 1},
}

// PickWeighted draws in [0,total) and walks the table subtracting weights
// until the draw lands in a bucket. Non-positive weights never win.
func PickWeighted(rng Rand, table []Weight) Kind {
	var total float64
	for _, w := range table {
		if w.Weight > 0 {
			total += w.Weight
		}
	}
	if total <= 0 {
		return KindBase
	}
	r := rng.Float64() * total
	last := KindBase
	for _, w := range table {
		if w.Weight <= 0 {
			continue
		}
		if r < w.Weight {
			return w.Kind
		}
		r -= w.Weight
		last = w.Kind
	}
	return last
}

// PlatformManager owns the live platform strip and the generation frontier.
type PlatformManager struct {
	blockSize   float64
	floorY      float64
	screenWidth float64
	rng         Rand

	platforms     []*Platform
	lastPlatformX float64
	nextID        PlatformID

	globalConfigs []SpawnConfig
	sceneConfigs  map[int][]SpawnConfig
	sceneWeights  map[int][]Weight
}

// NewPlatformManager creates an empty manager; call InitializePlatforms
// before use.
func NewPlatformManager(blockSize, screenWidth, screenHeight float64, rng Rand) *PlatformManager {
	if blockSize <= 0 {
		blockSize = DefaultBlockSize
	}
	return &PlatformManager{
		blockSize:    blockSize,
		floorY:       screenHeight,
		screenWidth:  screenWidth,
		rng:          rng,
		sceneConfigs: map[int][]SpawnConfig{},
		sceneWeights: map[int][]Weight{},
	}
}

// ConfigureScenePlatforms sets the spawn configs for one scene.
func (m *PlatformManager) ConfigureScenePlatforms(sceneIndex int, configs []SpawnConfig) {
	m.sceneConfigs[sceneIndex] = append([]SpawnConfig(nil), configs...)
}

// ConfigureGlobalPlatforms sets configs that apply in every scene.
func (m *PlatformManager) ConfigureGlobalPlatforms(configs []SpawnConfig) {
	m.globalConfigs = append([]SpawnConfig(nil), configs...)
}

// SetWeights sets the kind table for one scene. A nil table restores the
// default.
func (m *PlatformManager) SetWeights(sceneIndex int, table []Weight) {
	if table == nil {
		delete(m.sceneWeights, sceneIndex)
		return
	}
	m.sceneWeights[sceneIndex] = append([]Weight(nil), table...)
}

func (m *PlatformManager) Platforms() []*Platform {
	return m.platforms
}

func (m *PlatformManager) LastPlatformX() float64 {
	return m.lastPlatformX
}

func (m *PlatformManager) BlockSize() float64 {
	return m.blockSize
}

// Lookup resolves a platform ID against the live set.
func (m *PlatformManager) Lookup(id PlatformID) (*Platform, bool) {
	if id == 0 {
		return nil, false
	}
	for _, p := range m.platforms {
		if p.ID == id {
			return p, true
		}
	}
	return nil, false
}

// AddPlatform inserts p, assigning an ID and pushing the frontier if needed.
func (m *PlatformManager) AddPlatform(p *Platform) {
	m.nextID++
	p.ID = m.nextID
	m.platforms = append(m.platforms, p)
	if r := p.Right(); r > m.lastPlatformX {
		m.lastPlatformX = r
	}
}

// InitializePlatforms clears the strip, plants the starting ground and fills
// the first screen.
func (m *PlatformManager) InitializePlatforms(sceneIndex int) {
	m.platforms = nil
	m.lastPlatformX = 0

	first := NewBasePlatform(0, m.floorY, startWidthBlocks*m.blockSize, m.blockSize)
	m.AddPlatform(first)

	m.ExtendPlatformsIfNeeded(0, m.screenWidth, sceneIndex)
}

// Reset discards every live platform and re-runs initialisation.
func (m *PlatformManager) Reset() {
	m.InitializePlatforms(0)
}

// ExtendPlatformsIfNeeded drops platforms behind the camera and generates new
// ones until the frontier is spawnLookahead past the right screen edge.
func (m *PlatformManager) ExtendPlatformsIfNeeded(cameraX, screenWidth float64, sceneIndex int) {
	m.recycle(cameraX)

	target := cameraX + screenWidth + spawnLookahead
	for m.lastPlatformX < target {
		kind := PickWeighted(m.rng, m.weightsFor(sceneIndex))
		m.spawn(kind, m.configFor(kind, sceneIndex))
	}
}

func (m *PlatformManager) weightsFor(sceneIndex int) []Weight {
	if table, ok := m.sceneWeights[sceneIndex]; ok {
		return table
	}
	return DefaultWeights
}

// configFor picks among the active configs for kind, falling back to the
// built-in default.
func (m *PlatformManager) configFor(kind Kind, sceneIndex int) SpawnConfig {
	var candidates []SpawnConfig
	collect := func(cfgs []SpawnConfig) {
		for _, c := range cfgs {
			if c.Kind == kind && c.Active(sceneIndex) {
				candidates = append(candidates, c)
			}
		}
	}
	collect(m.globalConfigs)
	collect(m.sceneConfigs[sceneIndex])

	switch len(candidates) {
	case 0:
		return defaultSpawnConfig(kind)
	case 1:
		return candidates[0]
	default:
		return candidates[m.rng.Intn(len(candidates))]
	}
}

func (m *PlatformManager) spawn(kind Kind, cfg SpawnConfig) {
	if kind == KindBase {
		m.chainBase()
		return
	}

	x := m.lastPlatformX + specialOffsetX
	y := cfg.Y
	if y == 0 {
		y = specialMinY + m.rng.Float64()*specialRange
	}
	width := cfg.WidthBlocks * m.blockSize
	if width <= 0 {
		width = float64(MinWidthBlocks) * m.blockSize
	}

	var p *Platform
	switch kind {
	case KindFloating:
		p = NewFloatingPlatform(x, y, width, m.blockSize)
	case KindBouncing:
		p = NewBouncingPlatform(x, y, width, m.blockSize)
	case KindSlippery:
		p = NewSlipperyPlatform(x, y, width, m.blockSize)
	case KindFalling:
		p = NewFallingPlatform(x, y, m.blockSize)
	default:
		m.chainBase()
		return
	}
	if cfg.HeightBlocks > 0 {
		p.SetHeightInBlocks(cfg.HeightBlocks)
	}
	m.AddPlatform(p)

	// keep the ground continuous underneath the new platform
	for m.lastBaseRight() < p.Right() {
		m.chainBase()
	}
}

// chainBase appends the next ground segment after the last one. Without a
// base platform to chain from it builds a fresh one at the frontier.
func (m *PlatformManager) chainBase() {
	last := m.lastBase()
	if last == nil {
		width := float64(MinWidthBlocks) * m.blockSize
		m.AddPlatform(NewBasePlatform(m.lastPlatformX, m.floorY, width, m.blockSize))
		return
	}
	m.AddPlatform(last.CreateNextPlatform(m.rng, last.Right(), m.floorY))
}

func (m *PlatformManager) lastBase() *Platform {
	for i := len(m.platforms) - 1; i >= 0; i-- {
		if m.platforms[i].Kind == KindBase {
			return m.platforms[i]
		}
	}
	return nil
}

func (m *PlatformManager) lastBaseRight() float64 {
	if b := m.lastBase(); b != nil {
		return b.Right()
	}
	return m.lastPlatformX
}

func (m *PlatformManager) recycle(cameraX float64) {
	limit := cameraX - recycleMargin
	kept := m.platforms[:0]
	for _, p := range m.platforms {
		if p.Right() < limit {
			continue
		}
		kept = append(kept, p)
	}
	clear(m.platforms[len(kept):])
	m.platforms = kept
}

// UpdatePlatforms runs each platform's motion step once for this frame.
func (m *PlatformManager) UpdatePlatforms(pl *player.Player) {
	for _, p := range m.platforms {
		p.step(pl)
		p.stepped = true
	}
}

// HandlePlatformCollisions resolves the player against every platform,
// stepping any platform not yet moved this frame, then drops platforms marked
// for removal.
func (m *PlatformManager) HandlePlatformCollisions(pl *player.Player) {
	for _, p := range m.platforms {
		if !p.stepped {
			p.step(pl)
		}
		p.stepped = false
		p.resolve(pl)
	}

	kept := m.platforms[:0]
	for _, p := range m.platforms {
		if p.MarkedForRemoval {
			if pl.CurrentPlatform == uint64(p.ID) {
				pl.CurrentPlatform = 0
			}
			continue
		}
		kept = append(kept, p)
	}
	clear(m.platforms[len(kept):])
	m.platforms = kept
}

// OnSceneChange is called when the active scene commits. Terrain already
// generated is kept; new spawns use the new scene's configs.
func (m *PlatformManager) OnSceneChange(sceneIndex int) {}

// Render draws every platform overlapping the screen.
func (m *PlatformManager) Render(s Surface, cameraX float64) {
	width, _ := s.Size()
	for _, p := range m.platforms {
		if p.Right() < cameraX || p.Left() > cameraX+width {
			continue
		}
		p.Render(s, cameraX)
	}
}
