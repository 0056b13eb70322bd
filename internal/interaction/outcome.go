package interaction

import "github.com/annel0/blockworld/internal/world"

// CancelReason: почему прервано разрушение
type CancelReason uint8

const (
	CancelReleased       CancelReason = iota + 1 // Отпустили до завершения
	CancelJitter                                 // Указатель ушёл дальше порога дрожания
	CancelTargetChanged                          // Прицел сместился на другую ячейку
	CancelTargetVanished                         // Цель исчезла из сетки
)

// String возвращает имя причины для логов и метрик
func (r CancelReason) String() string {
	switch r {
	case CancelReleased:
		return "released"
	case CancelJitter:
		return "jitter"
	case CancelTargetChanged:
		return "target_changed"
	case CancelTargetVanished:
		return "target_vanished"
	default:
		return "unknown"
	}
}

// RejectReason: почему установка блока не состоялась
type RejectReason uint8

const (
	RejectOccupied    RejectReason = iota + 1 // Ячейка уже занята
	RejectSelfOverlap                         // Блок пересёк бы игрока
	RejectNoSelection                         // Блок для установки не выбран
)

// String возвращает имя причины для логов и метрик
func (r RejectReason) String() string {
	switch r {
	case RejectOccupied:
		return "occupied"
	case RejectSelfOverlap:
		return "self_overlap"
	case RejectNoSelection:
		return "no_selection"
	default:
		return "unknown"
	}
}

// Outcome собирает всё, что произошло за вызов автомата
type Outcome struct {
	Events   []world.Event
	Cancels  []CancelReason
	Rejected []RejectReason
}

// Merge добавляет другой итог к текущему
func (o *Outcome) Merge(other Outcome) {
	o.Events = append(o.Events, other.Events...)
	o.Cancels = append(o.Cancels, other.Cancels...)
	o.Rejected = append(o.Rejected, other.Rejected...)
}

// Empty сообщает, что ничего не произошло
func (o Outcome) Empty() bool {
	return len(o.Events) == 0 && len(o.Cancels) == 0 && len(o.Rejected) == 0
}
