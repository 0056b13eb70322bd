package sim

import (
	"context"
	"sync"
	"time"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/annel0/blockworld/internal/config"
	"github.com/annel0/blockworld/internal/entity"
	"github.com/annel0/blockworld/internal/input"
	"github.com/annel0/blockworld/internal/interaction"
	"github.com/annel0/blockworld/internal/logging"
	"github.com/annel0/blockworld/internal/metrics"
	"github.com/annel0/blockworld/internal/observability"
	"github.com/annel0/blockworld/internal/physics"
	"github.com/annel0/blockworld/internal/vec"
	"github.com/annel0/blockworld/internal/world"
	"github.com/annel0/blockworld/internal/world/block"
)

// Options: зависимости сессии. Нулевые поля заменяются значениями по умолчанию.
type Options struct {
	Config  *config.Config
	Grid    *world.Grid         // Заранее построенный мир; nil: пустая сетка
	Spawn   *mgl64.Vec3         // Точка глаз при появлении; nil: над поверхностью в (0,0)
	Metrics *metrics.SimMetrics // nil: без метрик
	Tracer  trace.Tracer        // nil: глобальный провайдер OpenTelemetry
	Sink    world.EventSink     // Получатель событий мира, может быть nil
}

// TickResult: итог одного тика для рендера
type TickResult struct {
	Tick     uint64
	Time     time.Duration
	Events   []world.Event
	Pose     entity.Pose
	Aim      physics.AimHit
	State    interaction.State
	Cancels  []interaction.CancelReason
	Rejected []interaction.RejectReason
}

// Snapshot: согласованный срез состояния для чтения из других горутин
type Snapshot struct {
	SessionID    string        `json:"session_id"`
	Tick         uint64        `json:"tick"`
	Time         time.Duration `json:"time"`
	Pose         entity.Pose   `json:"pose"`
	Aim          AimView       `json:"aim"`
	State        string        `json:"state"`
	Selected     string        `json:"selected"`
	LoadedChunks int           `json:"loaded_chunks"`
	Cells        int           `json:"cells"`
}

// AimView: прицел в виде для JSON
type AimView struct {
	Hit      bool     `json:"hit"`
	Cell     vec.Vec3 `json:"cell"`
	Block    string   `json:"block,omitempty"`
	Normal   vec.Vec3 `json:"normal"`
	Distance float64  `json:"distance"`
}

// Session представляет драйвер симуляции. Владеет сеткой и передаёт её каждой стадии
// явно. Tick вызывается из одной горутины; Snapshot безопасен из любой.
type Session struct {
	id  uuid.UUID
	cfg *config.Config
	log *logging.Logger

	grid       *world.Grid
	streamer   *world.Streamer
	resolver   *physics.Resolver
	controller *entity.Controller
	raycaster  *physics.Raycaster
	machine    *interaction.Machine

	metrics *metrics.SimMetrics
	tracer  trace.Tracer
	sink    world.EventSink

	clock   time.Duration
	ticks   uint64
	aim     physics.AimHit
	pending []world.Event

	mu       sync.RWMutex
	snapshot Snapshot
}

// New создаёт сессию: мир, игрока и все стадии тика
func New(opts Options) (*Session, error) {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.Default()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	grid := opts.Grid
	if grid == nil {
		grid = world.NewGrid()
	}
	tracer := opts.Tracer
	if tracer == nil {
		tracer = observability.Tracer()
	}

	s := &Session{
		id:      uuid.New(),
		cfg:     cfg,
		log:     logging.GetSimLogger(),
		grid:    grid,
		metrics: opts.Metrics,
		tracer:  tracer,
		sink:    opts.Sink,
	}

	s.resolver = physics.NewResolver(grid, cfg.ResolverConfig())
	s.raycaster = physics.NewRaycaster(grid, cfg.Look.Reach)
	s.machine = interaction.NewMachine(cfg.MachineConfig())
	s.machine.SetSelected(cfg.SelectedBlock())

	var generator *world.WorldGenerator
	if cfg.Streaming.Enabled {
		generator = world.NewWorldGenerator(cfg.Streaming.Seed)
		s.streamer = world.NewStreamer(generator, cfg.StreamerConfig())
	}

	spawn := mgl64.Vec3{0, 0.5 + cfg.Physics.StandEyeHeight, 0}
	switch {
	case opts.Spawn != nil:
		spawn = *opts.Spawn
	case s.streamer != nil:
		// Колонка появления генерируется сразу, даже при фоновой прогрузке
		if ev, ok := s.streamer.Ensure(grid, vec.Vec2{}); ok {
			s.pending = append(s.pending, ev)
		}
		top := generator.HeightAt(0, 0)
		spawn = mgl64.Vec3{0, float64(top) + 0.5 + cfg.Physics.StandEyeHeight, 0}
	}
	s.controller = entity.NewController(s.resolver, cfg.PlayerConfig(), spawn)

	s.publish()
	s.log.Info("Сессия %s создана: появление в %v, прогрузка=%t", s.id, spawn, s.streamer != nil)
	return s, nil
}

// ID возвращает идентификатор сессии
func (s *Session) ID() uuid.UUID {
	return s.id
}

// Grid возвращает сетку мира. Менять её можно только из горутины тика.
func (s *Session) Grid() *world.Grid {
	return s.grid
}

// Controller возвращает контроллер игрока
func (s *Session) Controller() *entity.Controller {
	return s.controller
}

// Machine возвращает автомат разрушения и установки
func (s *Session) Machine() *interaction.Machine {
	return s.machine
}

// Streamer возвращает стример колонок или nil, если прогрузка выключена
func (s *Session) Streamer() *world.Streamer {
	return s.streamer
}

// Clock возвращает время симуляции
func (s *Session) Clock() time.Duration {
	return s.clock
}

// Tick выполняет один тик строго по стадиям:
// прогрузка → ввод → физика → луч → разрушение/установка.
func (s *Session) Tick(ctx context.Context, in input.Intents) TickResult {
	start := time.Now()
	_, span := s.tracer.Start(ctx, "sim.Tick")
	defer span.End()

	res := TickResult{Tick: s.ticks, Time: s.clock}
	res.Events = append(res.Events, s.pending...)
	s.pending = nil

	// 1. Прогрузка колонок вокруг игрока
	if s.streamer != nil {
		pos := s.controller.Body().Position
		res.Events = append(res.Events, s.streamer.Update(s.grid, pos.X(), pos.Z())...)
	}

	// 2. Ввод: выбор блока, взгляд, присед, указатель
	if in.Select != block.Air {
		s.machine.SetSelected(in.Select)
	}
	s.controller.ApplyInput(in)
	var out interaction.Outcome
	for _, ev := range in.Pointer {
		out.Merge(s.handlePointer(ev))
	}

	// 3. Физика
	s.controller.Step(in)

	// 4. Луч прицела из новой позы
	s.aim = s.castAim()

	// 5. Прогресс разрушения
	out.Merge(s.machine.Tick(s.clock, s.aim, s.env()))

	res.Events = append(res.Events, out.Events...)
	res.Cancels = out.Cancels
	res.Rejected = out.Rejected
	res.Pose = s.controller.Pose()
	res.Aim = s.aim
	res.State = s.machine.State()

	s.metrics.RecordEvents(res.Events)
	s.metrics.RecordOutcome(out)
	if s.sink != nil {
		for _, e := range res.Events {
			s.sink.HandleWorldEvent(e)
		}
	}

	s.ticks++
	s.clock += s.cfg.Sim.TickInterval
	s.publish()

	span.SetAttributes(
		attribute.Int64("sim.tick", int64(res.Tick)),
		attribute.Int("sim.events", len(res.Events)),
		attribute.String("sim.state", res.State.String()),
		attribute.Bool("sim.aim.hit", res.Aim.Hit),
	)
	s.metrics.ObserveTick(time.Since(start))
	return res
}

// SetSelectedBlock меняет блок для установки (хотбар)
func (s *Session) SetSelectedBlock(id block.ID) bool {
	return s.machine.SetSelected(id)
}

// Snapshot возвращает последний опубликованный срез состояния
func (s *Session) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshot
}

// Close останавливает фоновую прогрузку
func (s *Session) Close() {
	if s.streamer != nil {
		s.streamer.Close()
	}
	s.log.Info("Сессия %s завершена после %d тиков", s.id, s.ticks)
}

// handlePointer передаёт событие указателя автомату. Нажатие видит прицел
// из позы после применения взгляда этого тика.
func (s *Session) handlePointer(ev input.PointerEvent) interaction.Outcome {
	at := ev.At
	if at == 0 {
		at = s.clock
	}

	switch ev.Phase {
	case input.PhaseStart:
		s.machine.Press(ev.ID, ev.X, ev.Y, at, s.castAim())
	case input.PhaseMove:
		return s.machine.Move(ev.ID, ev.X, ev.Y)
	case input.PhaseEnd:
		return s.machine.Release(ev.ID, at, s.env())
	}
	return interaction.Outcome{}
}

func (s *Session) castAim() physics.AimHit {
	return s.raycaster.Cast(s.controller.Body().Position, s.controller.Forward())
}

func (s *Session) env() interaction.Env {
	return interaction.Env{
		Grid:   s.grid,
		Player: s.controller.Box(),
		Skin:   s.resolver.Config().Skin,
	}
}

// publish обновляет срез состояния для читателей из других горутин
func (s *Session) publish() {
	snap := Snapshot{
		SessionID: s.id.String(),
		Tick:      s.ticks,
		Time:      s.clock,
		Pose:      s.controller.Pose(),
		Aim: AimView{
			Hit:      s.aim.Hit,
			Cell:     s.aim.Cell,
			Normal:   s.aim.Normal,
			Distance: s.aim.Distance,
		},
		State:    s.machine.State().String(),
		Selected: s.machine.Selected().String(),
		Cells:    s.grid.Len(),
	}
	if s.aim.Hit {
		snap.Aim.Block = s.aim.Block.String()
	}
	if s.streamer != nil {
		snap.LoadedChunks = len(s.streamer.Loaded())
	}
	s.metrics.SetWorldSize(snap.LoadedChunks, snap.Cells)

	s.mu.Lock()
	s.snapshot = snap
	s.mu.Unlock()
}
