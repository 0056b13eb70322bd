package world

import (
	"testing"

	"github.com/annel0/blockworld/internal/vec"
	"github.com/annel0/blockworld/internal/world/block"
	"github.com/stretchr/testify/assert"
)

func TestGridGetSet(t *testing.T) {
	g := NewGrid()
	pos := vec.Vec3{X: 3, Y: -2, Z: 7}

	// Пустая ячейка читается как Air
	assert.Equal(t, block.Air, g.Get(pos))
	assert.False(t, g.IsSolid(pos))
	assert.Equal(t, 0, g.Len())

	prev := g.Set(pos, block.Stone)
	assert.Equal(t, block.Air, prev)
	assert.Equal(t, block.Stone, g.Get(pos))
	assert.True(t, g.IsSolid(pos))
	assert.Equal(t, 1, g.Len())

	// Перезапись не меняет количество
	prev = g.Set(pos, block.Dirt)
	assert.Equal(t, block.Stone, prev)
	assert.Equal(t, 1, g.Len())

	// Air удаляет ключ
	prev = g.Set(pos, block.Air)
	assert.Equal(t, block.Dirt, prev)
	assert.Equal(t, block.Air, g.Get(pos))
	assert.Equal(t, 0, g.Len())
	assert.Equal(t, 0, g.ColumnLen(pos.ToChunkCoords()))

	// Удаление пустой ячейки ничего не делает
	assert.Equal(t, block.Air, g.Set(pos, block.Air))
}

func TestGridRemoveColumnIsExact(t *testing.T) {
	g := NewGrid()

	inside := []vec.Vec3{{X: 0, Y: 0, Z: 0}, {X: 15, Y: 5, Z: 15}, {X: 7, Y: -3, Z: 0}}
	outside := []vec.Vec3{{X: 16, Y: 0, Z: 0}, {X: -1, Y: 0, Z: 0}, {X: 0, Y: 0, Z: 16}, {X: 0, Y: 0, Z: -1}}
	for _, p := range inside {
		g.Set(p, block.Grass)
	}
	for _, p := range outside {
		g.Set(p, block.Stone)
	}

	chunk := vec.Vec2{X: 0, Y: 0}
	assert.Equal(t, len(inside), g.ColumnLen(chunk))

	visited := 0
	g.ForEachInColumn(chunk, func(pos vec.Vec3, id block.ID) {
		visited++
		assert.Equal(t, block.Grass, id)
	})
	assert.Equal(t, len(inside), visited)

	removed := g.RemoveColumn(chunk)
	assert.Equal(t, len(inside), removed)
	for _, p := range inside {
		assert.Equal(t, block.Air, g.Get(p))
	}
	for _, p := range outside {
		assert.Equal(t, block.Stone, g.Get(p), "ячейка %v вне колонки не должна удаляться", p)
	}

	// Повторное удаление ничего не делает
	assert.Equal(t, 0, g.RemoveColumn(chunk))
}

func TestEvents(t *testing.T) {
	pos := vec.Vec3{X: -1, Y: 0, Z: 20}
	removed := BlockRemoved(pos, block.Grass)
	assert.Equal(t, EventTypeBlockRemoved, removed.Type)
	assert.Equal(t, block.Dirt, removed.Drop)
	assert.Equal(t, vec.Vec2{X: -1, Y: 1}, removed.Chunk)

	added := BlockAdded(pos, block.Planks)
	assert.Equal(t, EventTypeBlockAdded, added.Type)
	assert.Equal(t, block.Air, added.Drop)
	assert.Equal(t, "block_added", added.Type.String())

	var got []Event
	var sink EventSink = EventSinkFunc(func(e Event) { got = append(got, e) })
	sink.HandleWorldEvent(removed)
	assert.Len(t, got, 1)
}
