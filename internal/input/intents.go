package input

import (
	"time"

	"github.com/annel0/blockworld/internal/world/block"
)

// Phase: стадия жизненного цикла указателя
type Phase uint8

const (
	PhaseStart Phase = iota // Нажатие
	PhaseMove               // Перемещение с зажатым указателем
	PhaseEnd                // Отпускание
)

// String возвращает имя стадии
func (p Phase) String() string {
	switch p {
	case PhaseStart:
		return "start"
	case PhaseMove:
		return "move"
	case PhaseEnd:
		return "end"
	default:
		return "unknown"
	}
}

// PointerEvent: событие указателя действия. At: время события на часах
// симуляции; нулевое значение означает «текущий тик».
type PointerEvent struct {
	ID    int
	Phase Phase
	X, Y  float64
	At    time.Duration
}

// Intents содержит намерения игрока за один тик
type Intents struct {
	Forward bool
	Back    bool
	Left    bool
	Right   bool
	Jump    bool

	// CrouchToggle переключает присед (фронт нажатия, а не удержание)
	CrouchToggle bool

	// Смещение взгляда в пикселях
	LookDX float64
	LookDY float64

	// События указателя действия в порядке поступления
	Pointer []PointerEvent

	// Select меняет выбранный для установки блок; Air: без изменений
	Select block.ID
}

// MoveAxes возвращает оси движения: вперёд (+1/-1) и вбок (+1 вправо)
func (in Intents) MoveAxes() (forward, strafe float64) {
	if in.Forward {
		forward++
	}
	if in.Back {
		forward--
	}
	if in.Right {
		strafe++
	}
	if in.Left {
		strafe--
	}
	return forward, strafe
}

// IsIdle сообщает, что за тик не было ни одного намерения
func (in Intents) IsIdle() bool {
	f, s := in.MoveAxes()
	return f == 0 && s == 0 && !in.Jump && !in.CrouchToggle &&
		in.LookDX == 0 && in.LookDY == 0 && len(in.Pointer) == 0 && in.Select == block.Air
}
