package implementations

import "github.com/annel0/blockworld/internal/world/block"

// Регистрируем все типы блоков при импорте пакета
func init() {
	// Базовые блоки
	block.Register(block.Air, &AirBehavior{})
	block.Register(block.Grass, &GrassBehavior{})
	block.Register(block.Dirt, &DirtBehavior{})
	block.Register(block.Stone, &StoneBehavior{})
	block.Register(block.Bedrock, &BedrockBehavior{})
	block.Register(block.Sand, &SandBehavior{})

	// Растительность
	block.Register(block.Wood, &WoodBehavior{})
	block.Register(block.Leaf, &LeafBehavior{})

	// Строительные блоки
	block.Register(block.Planks, &PlanksBehavior{})
	block.Register(block.Glass, &GlassBehavior{})
}
