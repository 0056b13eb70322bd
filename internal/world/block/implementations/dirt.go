package implementations

import (
	"time"

	"github.com/annel0/blockworld/internal/world/block"
)

// DirtBehavior реализует поведение блока земли
type DirtBehavior struct{}

func (b *DirtBehavior) ID() block.ID {
	return block.Dirt
}

func (b *DirtBehavior) Name() string {
	return "Dirt"
}

func (b *DirtBehavior) Solid() bool {
	return true
}

func (b *DirtBehavior) Hardness() time.Duration {
	return 500 * time.Millisecond
}

func (b *DirtBehavior) Drop() block.ID {
	return block.Dirt
}

// SandBehavior: песок ломается как земля
type SandBehavior struct {
	DirtBehavior
}

func (b *SandBehavior) ID() block.ID {
	return block.Sand
}

func (b *SandBehavior) Name() string {
	return "Sand"
}

func (b *SandBehavior) Drop() block.ID {
	return block.Sand
}
