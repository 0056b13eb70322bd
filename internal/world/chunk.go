package world

import (
	"github.com/annel0/blockworld/internal/vec"
	"github.com/annel0/blockworld/internal/world/block"
)

// ChunkData хранит результат генерации одной колонки 16x16
type ChunkData struct {
	Coords vec.Vec2                          // Координаты колонки
	Cells  map[vec.Vec3]block.ID             // Сгенерированные непустые ячейки
	Top    [vec.ChunkSize][vec.ChunkSize]int // Высота поверхности по локальным (x,z)
}

// NewChunkData создаёт пустую колонку
func NewChunkData(coords vec.Vec2) *ChunkData {
	return &ChunkData{
		Coords: coords,
		Cells:  make(map[vec.Vec3]block.ID),
	}
}

// set записывает ячейку, не выходя за пределы колонки
func (c *ChunkData) set(pos vec.Vec3, id block.ID) bool {
	if pos.ToChunkCoords() != c.Coords {
		return false
	}
	if id == block.Air {
		delete(c.Cells, pos)
		return true
	}
	c.Cells[pos] = id
	return true
}

// setIfEmpty пишет только в свободную ячейку
func (c *ChunkData) setIfEmpty(pos vec.Vec3, id block.ID) {
	if _, taken := c.Cells[pos]; taken {
		return
	}
	c.set(pos, id)
}

// ApplyTo переносит колонку в сетку. Уже занятые ячейки не перезаписываются.
// Возвращает количество записанных ячеек.
func (c *ChunkData) ApplyTo(grid *Grid) int {
	written := 0
	for pos, id := range c.Cells {
		if grid.Get(pos) != block.Air {
			continue
		}
		grid.Set(pos, id)
		written++
	}
	return written
}
