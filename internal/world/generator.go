package world

import (
	"math"
	"math/rand"

	"github.com/annel0/blockworld/internal/util"
	"github.com/annel0/blockworld/internal/vec"
	"github.com/annel0/blockworld/internal/world/block"
)

// Константы вертикального профиля колонки
const (
	DirtDepth     = 3 // Слоёв земли под травой
	TreeMinHeight = 4 // Минимальная высота ствола
	treeMargin    = 2 // Отступ дерева от края колонки, чтобы крона не вылезала в соседний чанк
)

// WorldGenerator генерирует ландшафт мира детерминированно по сиду
type WorldGenerator struct {
	Seed       int64   // Сид для генерации шума
	NoiseScale float64 // Масштаб основного шума (высота)
	BaseHeight int     // Средняя высота поверхности
	Amplitude  int     // Размах высот относительно BaseHeight
	MinY       int     // Нижний слой (bedrock)
	TreeChance float64 // Шанс дерева на травяной колонке (от 0 до 1)

	noise *util.HeightNoise
}

// NewWorldGenerator создаёт новый генератор мира
func NewWorldGenerator(seed int64) *WorldGenerator {
	return &WorldGenerator{
		Seed:       seed,
		NoiseScale: 0.05, // Настройка сглаженности ландшафта
		BaseHeight: 0,
		Amplitude:  4,
		MinY:       -6,
		TreeChance: 0.02, // 2% шанс появления дерева на траве
		noise:      util.NewHeightNoise(seed),
	}
}

// HeightAt возвращает Y верхнего блока колонки (x,z)
func (wg *WorldGenerator) HeightAt(x, z int) int {
	n := wg.noise.Noise2D(float64(x)*wg.NoiseScale, float64(z)*wg.NoiseScale)
	h := wg.BaseHeight + int(math.Round((n*2-1)*float64(wg.Amplitude)))
	if h < wg.MinY+1 {
		h = wg.MinY + 1
	}
	return h
}

// GenerateChunk генерирует колонку по её координатам
func (wg *WorldGenerator) GenerateChunk(coords vec.Vec2) *ChunkData {
	chunk := NewChunkData(coords)

	// Для каждой колонки создаем уникальный сид на основе глобального сида и координат
	chunkSeed := wg.Seed + int64(coords.X)*341873128712 + int64(coords.Y)*132897987541
	rng := rand.New(rand.NewSource(chunkSeed))

	origin := coords.Origin()

	for lx := 0; lx < vec.ChunkSize; lx++ {
		for lz := 0; lz < vec.ChunkSize; lz++ {
			x := origin.X + lx
			z := origin.Y + lz
			top := wg.HeightAt(x, z)
			chunk.Top[lx][lz] = top

			for y := wg.MinY; y <= top; y++ {
				chunk.set(vec.Vec3{X: x, Y: y, Z: z}, wg.blockForDepth(y, top))
			}
		}
	}

	// Деревья ставим вторым проходом, чтобы крона не затиралась рельефом
	for lx := treeMargin; lx < vec.ChunkSize-treeMargin; lx++ {
		for lz := treeMargin; lz < vec.ChunkSize-treeMargin; lz++ {
			if rng.Float64() >= wg.TreeChance {
				continue
			}
			top := chunk.Top[lx][lz]
			base := vec.Vec3{X: origin.X + lx, Y: top, Z: origin.Y + lz}
			if chunk.Cells[base] != block.Grass {
				continue
			}
			wg.placeTree(chunk, base, TreeMinHeight+rng.Intn(2))
		}
	}

	return chunk
}

// blockForDepth возвращает блок для высоты y в колонке с поверхностью top
func (wg *WorldGenerator) blockForDepth(y, top int) block.ID {
	switch {
	case y == wg.MinY:
		return block.Bedrock
	case y == top:
		if top <= wg.BaseHeight-wg.Amplitude+1 {
			return block.Sand // Низины засыпаны песком
		}
		return block.Grass
	case y >= top-DirtDepth:
		return block.Dirt
	default:
		return block.Stone
	}
}

// placeTree ставит ствол на base и крону вокруг его вершины
func (wg *WorldGenerator) placeTree(chunk *ChunkData, base vec.Vec3, height int) {
	trunkTop := base.Y + height
	for y := base.Y + 1; y <= trunkTop; y++ {
		chunk.set(vec.Vec3{X: base.X, Y: y, Z: base.Z}, block.Wood)
	}

	for dy := -1; dy <= 0; dy++ {
		for dx := -1; dx <= 1; dx++ {
			for dz := -1; dz <= 1; dz++ {
				chunk.setIfEmpty(vec.Vec3{X: base.X + dx, Y: trunkTop + dy, Z: base.Z + dz}, block.Leaf)
			}
		}
	}
	chunk.setIfEmpty(vec.Vec3{X: base.X, Y: trunkTop + 1, Z: base.Z}, block.Leaf)
}
