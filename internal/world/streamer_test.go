package world

import (
	"testing"
	"time"

	"github.com/annel0/blockworld/internal/vec"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func countEvents(events []Event, typ EventType) int {
	n := 0
	for _, e := range events {
		if e.Type == typ {
			n++
		}
	}
	return n
}

func TestStreamerLoadsRenderDistance(t *testing.T) {
	g := NewGrid()
	s := NewStreamer(NewWorldGenerator(1), StreamerConfig{RenderDistance: 1})
	defer s.Close()

	events := s.Update(g, 0, 0)
	assert.Equal(t, 9, countEvents(events, EventTypeChunkLoaded))
	assert.Len(t, s.Loaded(), 9)
	assert.True(t, s.IsLoaded(vec.Vec2{X: -1, Y: 1}))
	assert.Greater(t, g.Len(), 0)

	// Ближняя колонка генерируется первой
	assert.Equal(t, vec.Vec2{X: 0, Y: 0}, events[0].Chunk)
}

func TestStreamerIdempotent(t *testing.T) {
	g := NewGrid()
	s := NewStreamer(NewWorldGenerator(1), StreamerConfig{RenderDistance: 1})

	s.Update(g, 0, 0)
	cells := g.Len()

	// Повторный запрос той же зоны ничего не делает
	events := s.Update(g, 3.2, 4.9)
	assert.Empty(t, events)
	assert.Equal(t, cells, g.Len())

	_, generated := s.Ensure(g, vec.Vec2{X: 0, Y: 0})
	assert.False(t, generated)
	assert.Equal(t, cells, g.Len())
}

func TestStreamerUnloadIsExact(t *testing.T) {
	g := NewGrid()
	s := NewStreamer(NewWorldGenerator(3), StreamerConfig{RenderDistance: 1})

	s.Update(g, 0, 0)
	keep := vec.Vec2{X: 1, Y: 0}
	keepCells := g.ColumnLen(keep)
	require.Greater(t, keepCells, 0)

	// Переходим в колонку (1,0): колонки с X=-1 выходят из радиуса
	events := s.Update(g, 20, 0)
	assert.Equal(t, 3, countEvents(events, EventTypeChunkUnloaded))
	assert.Equal(t, 3, countEvents(events, EventTypeChunkLoaded))

	for _, e := range events {
		if e.Type != EventTypeChunkUnloaded {
			continue
		}
		assert.Equal(t, -1, e.Chunk.X)
		assert.Greater(t, e.Cells, 0)
		assert.Equal(t, 0, g.ColumnLen(e.Chunk))
		assert.False(t, s.IsLoaded(e.Chunk))
	}
	assert.Equal(t, keepCells, g.ColumnLen(keep), "соседние колонки не затрагиваются")
}

func TestStreamerAsyncMergesOnUpdate(t *testing.T) {
	g := NewGrid()
	s := NewStreamer(NewWorldGenerator(5), StreamerConfig{RenderDistance: 1, Async: true, QueueSize: 4})
	defer s.Close()

	// Первый Update только ставит задания: сетка не меняется вне Update
	events := s.Update(g, 0, 0)
	assert.Empty(t, events)
	assert.Equal(t, 0, g.Len())

	loaded := 0
	require.Eventually(t, func() bool {
		loaded += countEvents(s.Update(g, 0, 0), EventTypeChunkLoaded)
		return loaded == 9 && s.Pending() == 0
	}, 5*time.Second, 10*time.Millisecond)

	assert.Len(t, s.Loaded(), 9)
	assert.Greater(t, g.Len(), 0)
}

func TestStreamerCloseTwice(t *testing.T) {
	s := NewStreamer(NewWorldGenerator(5), StreamerConfig{RenderDistance: 0, Async: true})
	s.Close()
	s.Close()
}
