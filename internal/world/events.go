package world

import (
	"github.com/annel0/blockworld/internal/vec"
	"github.com/annel0/blockworld/internal/world/block"
)

// EventType определяет тип события изменения мира
type EventType uint8

const (
	EventTypeBlockRemoved  EventType = iota // Блок разрушен
	EventTypeBlockAdded                     // Блок установлен
	EventTypeChunkLoaded                    // Колонка чанка сгенерирована
	EventTypeChunkUnloaded                  // Колонка чанка выгружена
)

// String возвращает строковое представление типа события
func (t EventType) String() string {
	switch t {
	case EventTypeBlockRemoved:
		return "block_removed"
	case EventTypeBlockAdded:
		return "block_added"
	case EventTypeChunkLoaded:
		return "chunk_loaded"
	case EventTypeChunkUnloaded:
		return "chunk_unloaded"
	default:
		return "unknown"
	}
}

// Event: команда для рендера (добавить/убрать меш) и косметики (дроп, частицы)
type Event struct {
	Type  EventType
	Pos   vec.Vec3 // Ячейка блока (для блочных событий)
	Block block.ID // Тип блока
	Drop  block.ID // Что выпало при разрушении (Air: ничего)
	Chunk vec.Vec2 // Колонка чанка (для событий чанков)
	Cells int      // Сколько ячеек затронуто (для событий чанков)
}

// BlockRemoved создаёт событие разрушения блока
func BlockRemoved(pos vec.Vec3, id block.ID) Event {
	return Event{
		Type:  EventTypeBlockRemoved,
		Pos:   pos,
		Block: id,
		Drop:  block.DropOf(id),
		Chunk: pos.ToChunkCoords(),
	}
}

// BlockAdded создаёт событие установки блока
func BlockAdded(pos vec.Vec3, id block.ID) Event {
	return Event{
		Type:  EventTypeBlockAdded,
		Pos:   pos,
		Block: id,
		Chunk: pos.ToChunkCoords(),
	}
}

// EventSink получает события изменения мира (рендер, звук, частицы)
type EventSink interface {
	HandleWorldEvent(e Event)
}

// EventSinkFunc позволяет использовать функцию как EventSink
type EventSinkFunc func(e Event)

// HandleWorldEvent вызывает функцию
func (f EventSinkFunc) HandleWorldEvent(e Event) {
	f(e)
}
