package level

import (
	"github.com/milk9111/skyrunner/common"
)

const (
	// transitionDistance is the capped movement needed to complete a blend.
	transitionDistance = 500
	// movementCap scales player speed into the per-frame movement limit.
	movementCap = 0.1
)

// TransitionState is the blend state machine's phase.
type TransitionState int

const (
	Idle TransitionState = iota
	Transitioning
)

func (s TransitionState) String() string {
	if s == Transitioning {
		return "transitioning"
	}
	return "idle"
}

// ParallaxManager owns the scenes and cross-fades between them as the player
// leaves the active scene's window.
type ParallaxManager struct {
	scenes []*ParallaxScene
	active int

	state     TransitionState
	next      int
	dir       int
	progress  float64
	lastX     float64
	haveLastX bool
}

func NewParallaxManager(scenes []*ParallaxScene) *ParallaxManager {
	return &ParallaxManager{scenes: scenes}
}

func (m *ParallaxManager) SceneCount() int                { return len(m.scenes) }
func (m *ParallaxManager) ActiveIndex() int               { return m.active }
func (m *ParallaxManager) State() TransitionState         { return m.state }
func (m *ParallaxManager) IsTransitioning() bool          { return m.state == Transitioning }
func (m *ParallaxManager) Scene(i int) *ParallaxScene     { return m.scenes[i] }
func (m *ParallaxManager) Progress() float64              { return m.progress }
func (m *ParallaxManager) Target() (index, direction int) { return m.next, m.dir }

// RequestTransition starts a blend towards index. It is ignored while a blend
// is running, for the active scene and for out-of-range indexes.
func (m *ParallaxManager) RequestTransition(index, dir int) bool {
	if m.state == Transitioning || index == m.active || index < 0 || index >= len(m.scenes) {
		return false
	}
	if dir >= 0 {
		dir = 1
	} else {
		dir = -1
	}
	m.state = Transitioning
	m.next = index
	m.dir = dir
	m.progress = 0
	return true
}

// Update advances the state machine and reports whether a switch committed
// this frame.
func (m *ParallaxManager) Update(playerX, playerSpeed float64) bool {
	if len(m.scenes) == 0 {
		return false
	}
	if !m.haveLastX {
		m.lastX = playerX
		m.haveLastX = true
	}
	moved := playerX - m.lastX
	m.lastX = playerX

	if m.state == Idle {
		n := len(m.scenes)
		cur := m.scenes[m.active]
		switch {
		case playerX > cur.EndX:
			m.RequestTransition((m.active+1)%n, 1)
		case playerX < cur.StartX:
			m.RequestTransition((m.active-1+n)%n, -1)
		}
		return false
	}

	limit := playerSpeed * movementCap
	step := common.Clamp(moved, -limit, limit) * float64(m.dir)
	m.progress += step / transitionDistance

	switch {
	case m.progress >= 1:
		m.active = m.next
		m.scenes[m.active].anchor(playerX, m.dir)
		m.state = Idle
		m.progress = 0
		return true
	case m.progress <= 0 && step < 0:
		m.state = Idle
		m.progress = 0
	case m.progress < 0:
		m.progress = 0
	}
	return false
}

// Reset returns to the first scene with every window laid end to end from 0.
func (m *ParallaxManager) Reset() {
	x := 0.0
	for _, s := range m.scenes {
		s.anchor(x, 1)
		x = s.EndX
	}
	m.active = 0
	m.state = Idle
	m.progress = 0
	m.haveLastX = false
}

// Render draws the active scene, cross-fading into the incoming one while a
// blend runs.
func (m *ParallaxManager) Render(s Surface, cameraX float64) {
	if len(m.scenes) == 0 {
		return
	}
	if m.state == Idle {
		m.scenes[m.active].Render(s, cameraX, 0, 1)
		return
	}
	width, _ := s.Size()
	shift := common.Lerp(0, width, m.progress) * float64(m.dir)
	m.scenes[m.active].Render(s, cameraX, -shift, 1-m.progress)
	m.scenes[m.next].Render(s, cameraX, float64(m.dir)*width-shift, m.progress)
}
