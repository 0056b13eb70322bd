package implementations

import (
	"time"

	"github.com/annel0/blockworld/internal/world/block"
)

// GrassBehavior реализует поведение блока травы
type GrassBehavior struct{}

// ID возвращает идентификатор блока
func (b *GrassBehavior) ID() block.ID {
	return block.Grass
}

// Name возвращает имя блока
func (b *GrassBehavior) Name() string {
	return "Grass"
}

// Solid возвращает true: трава занимает весь куб
func (b *GrassBehavior) Solid() bool {
	return true
}

// Hardness возвращает время разрушения травы
func (b *GrassBehavior) Hardness() time.Duration {
	return 600 * time.Millisecond
}

// Drop возвращает землю
func (b *GrassBehavior) Drop() block.ID {
	return block.Dirt
}
