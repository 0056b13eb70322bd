package input

import (
	"sync"
	"time"

	"github.com/annel0/blockworld/internal/world/block"
)

// Key: кнопка движения
type Key uint8

const (
	KeyForward Key = iota
	KeyBack
	KeyLeft
	KeyRight
	KeyJump
	KeyCrouch
	keyCount
)

// LookZoneStart: доля ширины экрана, с которой начинается зона взгляда и действия
const LookZoneStart = 0.5

// Mapper переводит сырые события кнопок и касаний в Intents.
// Отслеживается только первый указатель, нажатый в зоне взгляда;
// остальные касания игнорируются до его отпускания.
// События могут приходить из любой горутины, Flush вызывается из тика.
type Mapper struct {
	mu sync.Mutex

	width  float64
	height float64

	held         [keyCount]bool
	crouchToggle bool
	selected     block.ID

	tracking bool
	active   int
	lastX    float64
	lastY    float64

	lookDX  float64
	lookDY  float64
	pointer []PointerEvent
}

// NewMapper создаёт маппер для экрана заданного размера
func NewMapper(width, height float64) *Mapper {
	return &Mapper{width: width, height: height}
}

// KeyDown фиксирует нажатие кнопки
func (m *Mapper) KeyDown(k Key) {
	if k >= keyCount {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	if k == KeyCrouch && !m.held[k] {
		m.crouchToggle = true
	}
	m.held[k] = true
}

// KeyUp фиксирует отпускание кнопки
func (m *Mapper) KeyUp(k Key) {
	if k >= keyCount {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.held[k] = false
}

// Select выбирает блок для установки (хотбар)
func (m *Mapper) Select(id block.ID) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.selected = id
}

func (m *Mapper) inZone(x, y float64) bool {
	return x >= m.width*LookZoneStart && x <= m.width && y >= 0 && y <= m.height
}

// PointerDown начинает отслеживание указателя, если он первый в зоне взгляда
func (m *Mapper) PointerDown(id int, x, y float64, at time.Duration) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.tracking || !m.inZone(x, y) {
		return false
	}
	m.tracking = true
	m.active = id
	m.lastX, m.lastY = x, y
	m.pointer = append(m.pointer, PointerEvent{ID: id, Phase: PhaseStart, X: x, Y: y, At: at})
	return true
}

// PointerMove превращает перемещение отслеживаемого указателя во взгляд
func (m *Mapper) PointerMove(id int, x, y float64, at time.Duration) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.tracking || id != m.active {
		return false
	}
	m.lookDX += x - m.lastX
	m.lookDY += y - m.lastY
	m.lastX, m.lastY = x, y
	m.pointer = append(m.pointer, PointerEvent{ID: id, Phase: PhaseMove, X: x, Y: y, At: at})
	return true
}

// PointerUp завершает отслеживание указателя
func (m *Mapper) PointerUp(id int, x, y float64, at time.Duration) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.tracking || id != m.active {
		return false
	}
	m.tracking = false
	m.pointer = append(m.pointer, PointerEvent{ID: id, Phase: PhaseEnd, X: x, Y: y, At: at})
	return true
}

// Flush возвращает намерения за тик и сбрасывает накопленные дельты.
// Удерживаемые кнопки сохраняются до KeyUp.
func (m *Mapper) Flush() Intents {
	m.mu.Lock()
	defer m.mu.Unlock()

	in := Intents{
		Forward:      m.held[KeyForward],
		Back:         m.held[KeyBack],
		Left:         m.held[KeyLeft],
		Right:        m.held[KeyRight],
		Jump:         m.held[KeyJump],
		CrouchToggle: m.crouchToggle,
		LookDX:       m.lookDX,
		LookDY:       m.lookDY,
		Pointer:      m.pointer,
		Select:       m.selected,
	}

	m.crouchToggle = false
	m.selected = block.Air
	m.lookDX, m.lookDY = 0, 0
	m.pointer = nil
	return in
}
