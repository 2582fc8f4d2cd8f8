package level

import (
	"fmt"
	"math"

	"github.com/milk9111/skyrunner/common"
)

// Kind tags a platform variant.
type Kind int

const (
	KindBase Kind = iota
	KindFloating
	KindBouncing
	KindSlippery
	KindFalling
)

var kindNames = map[Kind]string{
	KindBase:     "base",
	KindFloating: "floating",
	KindBouncing: "bouncing",
	KindSlippery: "slippery",
	KindFalling:  "falling",
}

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// ParseKind maps a config name to a Kind.
func ParseKind(s string) (Kind, bool) {
	for k, name := range kindNames {
		if name == s {
			return k, true
		}
	}
	return KindBase, false
}

// PlatformID identifies a live platform. Zero is never assigned.
type PlatformID uint64

const (
	DefaultBlockSize = 32

	MinGapBlocks   = 1
	MaxGapBlocks   = 3
	MinWidthBlocks = 4
	MaxWidthBlocks = 10

	groundHeightBlocks = 2
	floatHeightBlocks  = 0.5

	DefaultBounceVelocity = -20

	fallingWidth     = 160
	fallingAmplitude = 80
	fallingSpeed     = 0.02
)

// Oscillation is the vertical motion payload of a falling-floating platform.
type Oscillation struct {
	CenterY   float64
	Amplitude float64
	Speed     float64
	Offset    float64
	// VelocityY is the position delta of the last step, used to carry the
	// player on the next one.
	VelocityY float64
	lastY     float64
}

// Platform is a closed tagged variant; behaviour is selected by Kind.
type Platform struct {
	Entity

	ID             PlatformID
	Kind           Kind
	BlockSize      float64
	HeightInBlocks float64

	BounceVelocity float64
	Slippery       bool
	Osc            Oscillation

	MarkedForRemoval bool

	// stepped is set when the motion step already ran this frame.
	stepped bool
}

func newPlatform(kind Kind, x, y, width, blockSize float64) *Platform {
	if blockSize <= 0 {
		blockSize = DefaultBlockSize
	}
	p := &Platform{
		Entity:         NewEntity(x, y, width, blockSize),
		Kind:           kind,
		BlockSize:      blockSize,
		HeightInBlocks: 1,
	}
	return p
}

// NewBasePlatform creates a ground segment resting on floorY.
func NewBasePlatform(x, floorY, width, blockSize float64) *Platform {
	p := newPlatform(KindBase, x, 0, width, blockSize)
	p.SetHeightInBlocks(groundHeightBlocks)
	return p.PositionAtBottom(floorY)
}

func NewFloatingPlatform(x, y, width, blockSize float64) *Platform {
	p := newPlatform(KindFloating, x, y, width, blockSize)
	return p.SetHeightInBlocks(floatHeightBlocks)
}

func NewBouncingPlatform(x, y, width, blockSize float64) *Platform {
	p := newPlatform(KindBouncing, x, y, width, blockSize)
	p.BounceVelocity = DefaultBounceVelocity
	return p.SetHeightInBlocks(floatHeightBlocks)
}

func NewSlipperyPlatform(x, y, width, blockSize float64) *Platform {
	p := newPlatform(KindSlippery, x, y, width, blockSize)
	p.Slippery = true
	return p.SetHeightInBlocks(floatHeightBlocks)
}

// NewFallingPlatform creates a platform that bobs around y.
func NewFallingPlatform(x, y, blockSize float64) *Platform {
	p := newPlatform(KindFalling, x, y, fallingWidth, blockSize)
	p.SetHeightInBlocks(groundHeightBlocks)
	p.Osc = Oscillation{
		CenterY:   y,
		Amplitude: fallingAmplitude,
		Speed:     fallingSpeed,
		lastY:     y,
	}
	return p
}

// SetBlockSize changes the quantisation factor and recomputes the height.
func (p *Platform) SetBlockSize(size float64) *Platform {
	if size <= 0 {
		return p
	}
	p.BlockSize = size
	p.Size.Height = p.HeightInBlocks * size
	return p
}

// SetHeightInBlocks sets the height in block units.
func (p *Platform) SetHeightInBlocks(blocks float64) *Platform {
	p.HeightInBlocks = blocks
	p.Size.Height = blocks * p.BlockSize
	return p
}

// PositionAtBottom rests the platform on floorY.
func (p *Platform) PositionAtBottom(floorY float64) *Platform {
	p.Pos.Y = floorY - p.Size.Height
	return p
}

// RandomGap returns a gap of minBlocks..maxBlocks whole blocks, at least one.
func (p *Platform) RandomGap(rng Rand, minBlocks, maxBlocks int) float64 {
	lo := max(1, minBlocks)
	if maxBlocks < lo {
		maxBlocks = lo
	}
	blocks := lo + rng.Intn(maxBlocks-lo+1)
	return float64(blocks) * p.BlockSize
}

// RandomWidth returns a width of minBlocks..maxBlocks whole blocks.
func (p *Platform) RandomWidth(rng Rand, minBlocks, maxBlocks int) float64 {
	lo := max(1, minBlocks)
	if maxBlocks < lo {
		maxBlocks = lo
	}
	blocks := lo + rng.Intn(maxBlocks-lo+1)
	return float64(blocks) * p.BlockSize
}

// CreateNextPlatform chains a new ground segment after lastX, keeping this
// platform's height.
func (p *Platform) CreateNextPlatform(rng Rand, lastX, floorY float64) *Platform {
	gap := p.RandomGap(rng, MinGapBlocks, MaxGapBlocks)
	width := p.RandomWidth(rng, MinWidthBlocks, MaxWidthBlocks)
	next := newPlatform(KindBase, lastX+gap, 0, width, p.BlockSize)
	next.SetHeightInBlocks(p.HeightInBlocks)
	return next.PositionAtBottom(floorY)
}

// oscillate advances a falling-floating platform one frame.
func (p *Platform) oscillate() {
	o := &p.Osc
	o.Offset += o.Speed
	y := o.CenterY + math.Sin(o.Offset)*o.Amplitude
	y = common.Clamp(y, o.CenterY-o.Amplitude, o.CenterY+o.Amplitude)
	p.Pos.Y = y
	o.VelocityY = p.Pos.Y - o.lastY
	o.lastY = p.Pos.Y
}
