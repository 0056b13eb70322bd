package world

import (
	"testing"

	"github.com/annel0/blockworld/internal/vec"
	"github.com/annel0/blockworld/internal/world/block"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateChunkDeterministic(t *testing.T) {
	a := NewWorldGenerator(12345).GenerateChunk(vec.Vec2{X: 2, Y: -3})
	b := NewWorldGenerator(12345).GenerateChunk(vec.Vec2{X: 2, Y: -3})

	require.NotEmpty(t, a.Cells)
	assert.Equal(t, a.Cells, b.Cells, "один сид даёт одну колонку")
	assert.Equal(t, a.Top, b.Top)
}

func TestGenerateChunkStaysInsideColumn(t *testing.T) {
	wg := NewWorldGenerator(99)
	wg.TreeChance = 1 // максимум деревьев, чтобы проверить края кроны

	coords := vec.Vec2{X: -1, Y: 1}
	chunk := wg.GenerateChunk(coords)
	for pos := range chunk.Cells {
		assert.Equal(t, coords, pos.ToChunkCoords(), "ячейка %v вне колонки", pos)
	}
}

func TestGenerateChunkProfile(t *testing.T) {
	wg := NewWorldGenerator(7)
	chunk := wg.GenerateChunk(vec.Vec2{X: 0, Y: 0})

	for lx := 0; lx < vec.ChunkSize; lx++ {
		for lz := 0; lz < vec.ChunkSize; lz++ {
			top := chunk.Top[lx][lz]
			assert.Equal(t, wg.HeightAt(lx, lz), top)

			bottom := vec.Vec3{X: lx, Y: wg.MinY, Z: lz}
			assert.Equal(t, block.Bedrock, chunk.Cells[bottom], "на дне должен быть bedrock")

			surface := chunk.Cells[vec.Vec3{X: lx, Y: top, Z: lz}]
			assert.Contains(t, []block.ID{block.Grass, block.Sand}, surface)

			// Колонка сплошная от дна до поверхности
			for y := wg.MinY; y <= top; y++ {
				_, ok := chunk.Cells[vec.Vec3{X: lx, Y: y, Z: lz}]
				assert.True(t, ok, "дыра в колонке (%d,%d,%d)", lx, y, lz)
			}
		}
	}
}

func TestChunkDataApplyDoesNotOverwrite(t *testing.T) {
	g := NewGrid()
	data := NewChunkData(vec.Vec2{})
	data.set(vec.Vec3{X: 1, Y: 0, Z: 1}, block.Grass)
	data.set(vec.Vec3{X: 2, Y: 0, Z: 1}, block.Grass)
	assert.False(t, data.set(vec.Vec3{X: 16, Y: 0, Z: 0}, block.Grass), "запись вне колонки отклоняется")

	// Игрок уже поставил блок в эту ячейку
	g.Set(vec.Vec3{X: 1, Y: 0, Z: 1}, block.Planks)

	written := data.ApplyTo(g)
	assert.Equal(t, 1, written)
	assert.Equal(t, block.Planks, g.Get(vec.Vec3{X: 1, Y: 0, Z: 1}))
	assert.Equal(t, block.Grass, g.Get(vec.Vec3{X: 2, Y: 0, Z: 1}))
}
