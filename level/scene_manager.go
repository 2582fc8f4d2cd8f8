package level

import (
	"github.com/milk9111/skyrunner/player"
)

// SceneManager pairs the parallax scenes with the platform strip.
type SceneManager struct {
	parallax    *ParallaxManager
	platforms   *PlatformManager
	screenWidth float64
	current     int
}

func NewSceneManager(parallax *ParallaxManager, platforms *PlatformManager, screenWidth float64) *SceneManager {
	return &SceneManager{parallax: parallax, platforms: platforms, screenWidth: screenWidth}
}

// Update advances the scene blend and reports whether a switch committed.
func (m *SceneManager) Update(cameraX, playerSpeed, playerX float64) bool {
	if !m.parallax.Update(playerX, playerSpeed) {
		return false
	}
	m.current = m.parallax.ActiveIndex()
	m.platforms.OnSceneChange(m.current)
	return true
}

// HandleSceneSwitch requests a blend towards index. It reports false when the
// request was ignored because a blend is already running or index is current.
func (m *SceneManager) HandleSceneSwitch(index int) bool {
	if index == m.current || m.parallax.IsTransitioning() {
		return false
	}
	dir := 1
	if index < m.current && !(m.current == m.SceneCount()-1 && index == 0) {
		dir = -1
	}
	return m.parallax.RequestTransition(index, dir)
}

func (m *SceneManager) ExtendPlatformsIfNeeded(cameraX float64) {
	m.platforms.ExtendPlatformsIfNeeded(cameraX, m.screenWidth, m.current)
}

func (m *SceneManager) HandleCollisions(pl *player.Player) {
	m.platforms.HandlePlatformCollisions(pl)
}

func (m *SceneManager) Render(s Surface, cameraX float64) {
	m.parallax.Render(s, cameraX)
	m.platforms.Render(s, cameraX)
}

func (m *SceneManager) Reset() {
	m.current = 0
	m.parallax.Reset()
	m.platforms.InitializePlatforms(0)
}

func (m *SceneManager) CurrentSceneIndex() int     { return m.current }
func (m *SceneManager) SceneCount() int            { return m.parallax.SceneCount() }
func (m *SceneManager) IsTransitioning() bool      { return m.parallax.IsTransitioning() }
func (m *SceneManager) Platforms() []*Platform     { return m.platforms.Platforms() }
func (m *SceneManager) Parallax() *ParallaxManager { return m.parallax }
