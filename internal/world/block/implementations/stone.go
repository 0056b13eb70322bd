package implementations

import (
	"time"

	"github.com/annel0/blockworld/internal/world/block"
)

// StoneBehavior реализует поведение блока камня
type StoneBehavior struct{}

// ID возвращает идентификатор блока
func (b *StoneBehavior) ID() block.ID {
	return block.Stone
}

// Name возвращает имя блока
func (b *StoneBehavior) Name() string {
	return "Stone"
}

// Solid возвращает true
func (b *StoneBehavior) Solid() bool {
	return true
}

// Hardness возвращает прочность камня, самую большую из разрушаемых блоков
func (b *StoneBehavior) Hardness() time.Duration {
	return 1500 * time.Millisecond
}

// Drop возвращает сам камень
func (b *StoneBehavior) Drop() block.ID {
	return block.Stone
}

// BedrockBehavior: дно мира, удержание его не разрушает
type BedrockBehavior struct {
	StoneBehavior
}

func (b *BedrockBehavior) ID() block.ID {
	return block.Bedrock
}

func (b *BedrockBehavior) Name() string {
	return "Bedrock"
}

func (b *BedrockBehavior) Hardness() time.Duration {
	return -1
}

func (b *BedrockBehavior) Drop() block.ID {
	return block.Air
}
