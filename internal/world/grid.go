package world

import (
	"github.com/annel0/blockworld/internal/vec"
	"github.com/annel0/blockworld/internal/world/block"
	// Регистрация поведения блоков: без неё IsSolid не знает свойств типов
	_ "github.com/annel0/blockworld/internal/world/block/implementations"
)

// Grid представляет разреженную воксельную сетку, авторитетное состояние мира.
// Отсутствие ключа эквивалентно Air. Сетка не синхронизирована: все
// изменения выполняются в потоке симуляции.
type Grid struct {
	cells   map[vec.Vec3]block.ID
	columns map[vec.Vec2]map[vec.Vec3]struct{} // индекс занятых ячеек по колонкам чанков
}

// NewGrid создаёт пустую сетку
func NewGrid() *Grid {
	return &Grid{
		cells:   make(map[vec.Vec3]block.ID),
		columns: make(map[vec.Vec2]map[vec.Vec3]struct{}),
	}
}

// Get возвращает тип блока в ячейке (Air, если ячейка пуста)
func (g *Grid) Get(pos vec.Vec3) block.ID {
	return g.cells[pos]
}

// Set записывает блок; Air удаляет ключ. Возвращает предыдущее значение.
func (g *Grid) Set(pos vec.Vec3, id block.ID) block.ID {
	prev := g.cells[pos]
	if id == block.Air {
		if prev != block.Air {
			delete(g.cells, pos)
			g.unindex(pos)
		}
		return prev
	}

	g.cells[pos] = id
	if prev == block.Air {
		g.index(pos)
	}
	return prev
}

// IsSolid сообщает, занимает ли ячейка объём
func (g *Grid) IsSolid(pos vec.Vec3) bool {
	id, ok := g.cells[pos]
	return ok && block.IsSolid(id)
}

// Len возвращает количество занятых ячеек
func (g *Grid) Len() int {
	return len(g.cells)
}

// ColumnLen возвращает количество занятых ячеек в колонке чанка
func (g *Grid) ColumnLen(chunk vec.Vec2) int {
	return len(g.columns[chunk])
}

// ForEachInColumn обходит занятые ячейки колонки чанка
func (g *Grid) ForEachInColumn(chunk vec.Vec2, fn func(pos vec.Vec3, id block.ID)) {
	for pos := range g.columns[chunk] {
		fn(pos, g.cells[pos])
	}
}

// RemoveColumn удаляет все ячейки колонки чанка и только их.
// Возвращает количество удалённых ячеек.
func (g *Grid) RemoveColumn(chunk vec.Vec2) int {
	column, ok := g.columns[chunk]
	if !ok {
		return 0
	}
	for pos := range column {
		delete(g.cells, pos)
	}
	delete(g.columns, chunk)
	return len(column)
}

func (g *Grid) index(pos vec.Vec3) {
	chunk := pos.ToChunkCoords()
	column, ok := g.columns[chunk]
	if !ok {
		column = make(map[vec.Vec3]struct{})
		g.columns[chunk] = column
	}
	column[pos] = struct{}{}
}

func (g *Grid) unindex(pos vec.Vec3) {
	chunk := pos.ToChunkCoords()
	column, ok := g.columns[chunk]
	if !ok {
		return
	}
	delete(column, pos)
	if len(column) == 0 {
		delete(g.columns, chunk)
	}
}
