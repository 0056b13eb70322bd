package sim

import (
	"context"

	"github.com/annel0/blockworld/internal/input"
	"github.com/annel0/blockworld/internal/world/block"
)

// Step: намерения, повторяемые Ticks тиков подряд. Удерживаемые кнопки
// действуют весь шаг; события указателя, взгляд, присед и выбор блока
// применяются только в первом тике шага.
type Step struct {
	Intents input.Intents
	Ticks   int
}

// Script проигрывает сценарий намерений для безголового прогона
type Script struct {
	steps []Step
	loop  bool
	idx   int
	done  int
}

// NewScript создаёт сценарий; loop повторяет его бесконечно
func NewScript(loop bool, steps ...Step) *Script {
	return &Script{steps: steps, loop: loop}
}

// Next возвращает намерения следующего тика; false: сценарий закончился.
// Шаги с Ticks <= 0 пропускаются; зацикленный сценарий без единого
// положительного шага сразу заканчивается.
func (sc *Script) Next() (input.Intents, bool) {
	for sc.idx < len(sc.steps) && sc.steps[sc.idx].Ticks <= 0 {
		sc.idx++
	}
	if sc.idx >= len(sc.steps) {
		if !sc.loop || !sc.hasTicks() {
			return input.Intents{}, false
		}
		sc.idx, sc.done = 0, 0
		for sc.steps[sc.idx].Ticks <= 0 {
			sc.idx++
		}
	}

	step := sc.steps[sc.idx]
	in := step.Intents
	if sc.done > 0 {
		in.Pointer = nil
		in.CrouchToggle = false
		in.LookDX, in.LookDY = 0, 0
		in.Select = block.Air
	}

	sc.done++
	if sc.done >= step.Ticks {
		sc.idx++
		sc.done = 0
	}
	return in, true
}

func (sc *Script) hasTicks() bool {
	for _, st := range sc.steps {
		if st.Ticks > 0 {
			return true
		}
	}
	return false
}

// Run прогоняет сценарий до конца, отмены ctx или maxTicks тиков
func (sc *Script) Run(ctx context.Context, s *Session, maxTicks int) []TickResult {
	var results []TickResult
	for i := 0; i < maxTicks; i++ {
		if ctx.Err() != nil {
			break
		}
		in, ok := sc.Next()
		if !ok {
			break
		}
		results = append(results, s.Tick(ctx, in))
	}
	return results
}

// pointer: событие указателя с идентификатором 1 в центре правой половины экрана
func pointer(phase input.Phase, x float64) input.PointerEvent {
	return input.PointerEvent{ID: 1, Phase: phase, X: x, Y: 300}
}

// Autopilot возвращает демонстрационный сценарий: ходьба, прыжок, взгляд под ноги,
// разрушение удержанием, установка тапом, присед, перетаскивание взгляда
func Autopilot() *Script {
	return NewScript(true,
		Step{Intents: input.Intents{Forward: true}, Ticks: 40},
		Step{Intents: input.Intents{Forward: true, Jump: true}, Ticks: 20},
		Step{Intents: input.Intents{LookDY: 150}, Ticks: 1},
		Step{Intents: input.Intents{Pointer: []input.PointerEvent{pointer(input.PhaseStart, 600)}}, Ticks: 40},
		Step{Intents: input.Intents{Pointer: []input.PointerEvent{pointer(input.PhaseEnd, 600)}}, Ticks: 1},
		Step{Intents: input.Intents{Select: block.Planks, Pointer: []input.PointerEvent{
			pointer(input.PhaseStart, 600),
			pointer(input.PhaseEnd, 600),
		}}, Ticks: 2},
		Step{Intents: input.Intents{CrouchToggle: true, Right: true}, Ticks: 30},
		Step{Intents: input.Intents{CrouchToggle: true}, Ticks: 1},
		Step{Intents: input.Intents{Pointer: []input.PointerEvent{pointer(input.PhaseStart, 600)}}, Ticks: 1},
		Step{Intents: input.Intents{LookDX: 60, Pointer: []input.PointerEvent{pointer(input.PhaseMove, 660)}}, Ticks: 1},
		Step{Intents: input.Intents{LookDY: -150, Pointer: []input.PointerEvent{pointer(input.PhaseEnd, 660)}}, Ticks: 1},
	)
}
