package interaction

import (
	"math"
	"time"

	"github.com/annel0/blockworld/internal/logging"
	"github.com/annel0/blockworld/internal/physics"
	"github.com/annel0/blockworld/internal/vec"
	"github.com/annel0/blockworld/internal/world"
	"github.com/annel0/blockworld/internal/world/block"
)

// State описывает состояние автомата разрушения и установки
type State uint8

const (
	// StateIdle: указатель не зажат
	StateIdle State = iota
	// StateAiming: указатель зажат на блоке, идёт разрушение
	StateAiming
	// StateLooking: указатель зажат, но уже израсходован: жест взгляда,
	// отменённое или завершённое разрушение, нажатие мимо блоков
	StateLooking
)

// String возвращает имя состояния
func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateAiming:
		return "aiming"
	case StateLooking:
		return "looking"
	default:
		return "unknown"
	}
}

// Config содержит пороги распознавания жестов
type Config struct {
	HoldThreshold   time.Duration // Короче порога тап (установка), дольше удержание
	JitterThreshold float64       // Путь указателя в пикселях, после которого нажатие считается взглядом
	TickDelta       time.Duration // Прирост прогресса за тик
}

// DefaultConfig возвращает пороги по умолчанию
func DefaultConfig() Config {
	return Config{
		HoldThreshold:   250 * time.Millisecond,
		JitterThreshold: 8,
		TickDelta:       50 * time.Millisecond,
	}
}

// Editor даёт доступ к сетке на чтение и запись
type Editor interface {
	Get(pos vec.Vec3) block.ID
	Set(pos vec.Vec3, id block.ID) block.ID
}

// Env содержит то, что автомату нужно от мира в момент изменения сетки
type Env struct {
	Grid   Editor
	Player physics.AABB // Коробка игрока для запрета установки в себя
	Skin   float64      // Допуск пересечения коробок
}

// BreakSession описывает текущую попытку разрушения
type BreakSession struct {
	Target   vec.Vec3
	Normal   vec.Vec3
	Block    block.ID
	Progress time.Duration
	Started  time.Duration
}

// Machine различает тап (установка), удержание (разрушение) и перетаскивание
// (взгляд) по одному потоку событий указателя. Входы: только время и
// накопленный путь указателя с момента нажатия.
type Machine struct {
	cfg      Config
	state    State
	selected block.ID
	log      *logging.Logger

	pointer  int
	pressAt  time.Duration
	lastX    float64
	lastY    float64
	path     float64
	jittered bool

	session BreakSession
}

// NewMachine создаёт автомат в состоянии Idle
func NewMachine(cfg Config) *Machine {
	return &Machine{
		cfg:      cfg,
		state:    StateIdle,
		selected: block.Dirt,
		log:      logging.GetComponentLogger("interaction"),
	}
}

// State возвращает текущее состояние
func (m *Machine) State() State {
	return m.state
}

// Session возвращает текущую сессию разрушения, если она есть
func (m *Machine) Session() (BreakSession, bool) {
	if m.state != StateAiming {
		return BreakSession{}, false
	}
	return m.session, true
}

// Selected возвращает блок для установки
func (m *Machine) Selected() block.ID {
	return m.selected
}

// SetSelected меняет блок для установки. Air и незарегистрированные типы игнорируются.
func (m *Machine) SetSelected(id block.ID) bool {
	if id == block.Air || !block.IsValid(id) {
		return false
	}
	m.selected = id
	return true
}

// Press обрабатывает нажатие. aim: прицел на момент нажатия.
// Нажатие при уже зажатом указателе игнорируется.
func (m *Machine) Press(id int, x, y float64, at time.Duration, aim physics.AimHit) {
	if m.state != StateIdle {
		return
	}

	m.pointer = id
	m.pressAt = at
	m.lastX, m.lastY = x, y
	m.path = 0
	m.jittered = false

	if !aim.Hit {
		m.setState(StateLooking)
		return
	}

	m.session = BreakSession{
		Target:  aim.Cell,
		Normal:  aim.Normal,
		Block:   aim.Block,
		Started: at,
	}
	m.setState(StateAiming)
}

// Move учитывает перемещение указателя. Превышение порога дрожания
// превращает нажатие в жест взгляда и отменяет разрушение.
func (m *Machine) Move(id int, x, y float64) Outcome {
	var out Outcome
	if m.state == StateIdle || id != m.pointer {
		return out
	}

	m.path += math.Hypot(x-m.lastX, y-m.lastY)
	m.lastX, m.lastY = x, y

	if m.jittered || m.path <= m.cfg.JitterThreshold {
		return out
	}
	m.jittered = true

	if m.state == StateAiming {
		m.cancel(&out, CancelJitter)
	}
	return out
}

// Release обрабатывает отпускание. Короткое неподвижное нажатие ставит блок
// в соседнюю по нормали ячейку, иначе разрушение отменяется.
func (m *Machine) Release(id int, at time.Duration, env Env) Outcome {
	var out Outcome
	if m.state == StateIdle || id != m.pointer {
		return out
	}

	if m.state == StateAiming {
		if at-m.pressAt < m.cfg.HoldThreshold && !m.jittered {
			m.place(&out, env)
		} else {
			out.Cancels = append(out.Cancels, CancelReleased)
			m.log.Debug("Разрушение %v прервано: %s", m.session.Target, CancelReleased)
		}
	}

	m.setState(StateIdle)
	return out
}

// Tick продвигает разрушение. now: время тика, aim: прицел после физики.
func (m *Machine) Tick(now time.Duration, aim physics.AimHit, env Env) Outcome {
	var out Outcome
	if m.state != StateAiming {
		return out
	}

	s := &m.session
	if current := env.Grid.Get(s.Target); current != s.Block {
		m.cancel(&out, CancelTargetVanished)
		return out
	}
	if !aim.Targets(s.Target) {
		m.cancel(&out, CancelTargetChanged)
		return out
	}
	s.Normal = aim.Normal

	if !block.IsBreakable(s.Block) {
		return out // Неразрушимый блок: удержание ничего не даёт
	}
	hardness := block.HardnessOf(s.Block)

	s.Progress += m.cfg.TickDelta
	if s.Progress < hardness || now-m.pressAt < m.cfg.HoldThreshold {
		return out
	}

	prev := env.Grid.Set(s.Target, block.Air)
	ev := world.BlockRemoved(s.Target, prev)
	out.Events = append(out.Events, ev)
	m.log.Debug("Блок %s разрушен в %v за %v, выпало %s", prev, s.Target, s.Progress, ev.Drop)

	// Указатель ещё зажат, но больше ничего не делает до отпускания
	m.setState(StateLooking)
	return out
}

// Reset сбрасывает автомат без побочных эффектов
func (m *Machine) Reset() {
	m.setState(StateIdle)
}

// place ставит выбранный блок рядом с целью
func (m *Machine) place(out *Outcome, env Env) {
	cell := m.session.Target.Add(m.session.Normal)

	switch {
	case m.selected == block.Air:
		out.Rejected = append(out.Rejected, RejectNoSelection)
	case env.Grid.Get(cell) != block.Air:
		out.Rejected = append(out.Rejected, RejectOccupied)
	case env.Player.Intersects(physics.CellBox(cell), env.Skin):
		out.Rejected = append(out.Rejected, RejectSelfOverlap)
	default:
		env.Grid.Set(cell, m.selected)
		out.Events = append(out.Events, world.BlockAdded(cell, m.selected))
		m.log.Debug("Блок %s установлен в %v", m.selected, cell)
		return
	}
	m.log.Trace("Установка в %v отклонена: %s", cell, out.Rejected[len(out.Rejected)-1])
}

// cancel прерывает разрушение; указатель остаётся израсходованным
func (m *Machine) cancel(out *Outcome, reason CancelReason) {
	out.Cancels = append(out.Cancels, reason)
	m.log.Debug("Разрушение %v прервано: %s", m.session.Target, reason)
	m.setState(StateLooking)
}

// setState меняет состояние; выход из Aiming сбрасывает сессию
func (m *Machine) setState(next State) {
	if m.state == StateAiming && next != StateAiming {
		m.session = BreakSession{}
	}
	m.state = next
}
