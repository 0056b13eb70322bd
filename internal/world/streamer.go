package world

import (
	"sort"

	"github.com/annel0/blockworld/internal/logging"
	"github.com/annel0/blockworld/internal/vec"
)

// StreamerConfig содержит параметры прогрузки колонок вокруг игрока
type StreamerConfig struct {
	RenderDistance int  // Радиус в колонках (квадрат Чебышёва)
	Async          bool // Генерировать в фоновой горутине
	QueueSize      int  // Ёмкость очереди заданий фонового генератора
}

// Streamer генерирует колонки в радиусе прогрузки и выгружает дальние.
// Сетку меняет только Update, то есть поток симуляции; фоновый генератор
// лишь готовит ChunkData, которые сливаются в сетку в начале тика.
type Streamer struct {
	generator *WorldGenerator
	cfg       StreamerConfig
	log       *logging.Logger

	loaded  map[vec.Vec2]struct{}
	pending map[vec.Vec2]struct{}

	jobs          chan vec.Vec2
	results       chan *ChunkData
	stopWorker    chan struct{}
	workerStopped chan struct{}
}

// NewStreamer создаёт стример; при cfg.Async запускает фоновый генератор
func NewStreamer(generator *WorldGenerator, cfg StreamerConfig) *Streamer {
	if cfg.RenderDistance < 0 {
		cfg.RenderDistance = 0
	}
	if cfg.QueueSize <= 0 {
		cfg.QueueSize = 64
	}

	s := &Streamer{
		generator: generator,
		cfg:       cfg,
		log:       logging.GetComponentLogger("streamer"),
		loaded:    make(map[vec.Vec2]struct{}),
		pending:   make(map[vec.Vec2]struct{}),
	}

	if cfg.Async {
		s.jobs = make(chan vec.Vec2, cfg.QueueSize)
		s.results = make(chan *ChunkData, cfg.QueueSize)
		s.stopWorker = make(chan struct{})
		s.workerStopped = make(chan struct{})
		go s.chunkWorker()
	}

	return s
}

// Update сливает готовые колонки, выгружает дальние и запрашивает недостающие.
// playerX/playerZ: непрерывная позиция игрока. Возвращает события чанков.
func (s *Streamer) Update(grid *Grid, playerX, playerZ float64) []Event {
	center := vec.Vec2{X: vec.CellIndex(playerX), Y: vec.CellIndex(playerZ)}.ToChunkCoords()
	var events []Event

	// 1. Слияние результатов фонового генератора
	if s.cfg.Async {
		events = append(events, s.mergeReady(grid, center)...)
	}

	// 2. Выгрузка колонок за пределами радиуса
	events = append(events, s.unloadFar(grid, center)...)

	// 3. Запрос недостающих колонок, ближние первыми
	for _, coords := range s.wanted(center) {
		if _, ok := s.loaded[coords]; ok {
			continue
		}
		if _, ok := s.pending[coords]; ok {
			continue
		}

		if !s.cfg.Async {
			events = append(events, s.apply(grid, s.generator.GenerateChunk(coords)))
			continue
		}

		select {
		case s.jobs <- coords:
			s.pending[coords] = struct{}{}
		default:
			// Очередь заполнена, остаток запросим в следующем тике
			return events
		}
	}

	return events
}

// Ensure синхронно генерирует колонку, если она ещё не загружена.
// Повторный вызов для загруженной колонки ничего не делает.
func (s *Streamer) Ensure(grid *Grid, coords vec.Vec2) (Event, bool) {
	if _, ok := s.loaded[coords]; ok {
		return Event{}, false
	}
	return s.apply(grid, s.generator.GenerateChunk(coords)), true
}

// IsLoaded сообщает, загружена ли колонка
func (s *Streamer) IsLoaded(coords vec.Vec2) bool {
	_, ok := s.loaded[coords]
	return ok
}

// Loaded возвращает загруженные колонки в детерминированном порядке
func (s *Streamer) Loaded() []vec.Vec2 {
	out := make([]vec.Vec2, 0, len(s.loaded))
	for c := range s.loaded {
		out = append(out, c)
	}
	sortCoords(out)
	return out
}

// Pending возвращает количество колонок в работе у фонового генератора
func (s *Streamer) Pending() int {
	return len(s.pending)
}

// Close останавливает фоновый генератор
func (s *Streamer) Close() {
	if !s.cfg.Async || s.stopWorker == nil {
		return
	}
	select {
	case <-s.stopWorker:
		return
	default:
	}
	close(s.stopWorker)
	<-s.workerStopped
}

// chunkWorker генерирует колонки в фоне
func (s *Streamer) chunkWorker() {
	defer close(s.workerStopped)

	for {
		select {
		case <-s.stopWorker:
			return
		case coords := <-s.jobs:
			data := s.generator.GenerateChunk(coords)
			select {
			case s.results <- data:
			case <-s.stopWorker:
				return
			}
		}
	}
}

// mergeReady забирает готовые колонки без блокировки
func (s *Streamer) mergeReady(grid *Grid, center vec.Vec2) []Event {
	var events []Event
	for {
		select {
		case data := <-s.results:
			delete(s.pending, data.Coords)
			if data.Coords.ChebyshevTo(center) > s.cfg.RenderDistance {
				continue // Игрок ушёл, пока колонка генерировалась
			}
			if _, ok := s.loaded[data.Coords]; ok {
				continue
			}
			events = append(events, s.apply(grid, data))
		default:
			return events
		}
	}
}

// unloadFar выгружает колонки дальше радиуса прогрузки
func (s *Streamer) unloadFar(grid *Grid, center vec.Vec2) []Event {
	var far []vec.Vec2
	for coords := range s.loaded {
		if coords.ChebyshevTo(center) > s.cfg.RenderDistance {
			far = append(far, coords)
		}
	}
	sortCoords(far)

	events := make([]Event, 0, len(far))
	for _, coords := range far {
		removed := grid.RemoveColumn(coords)
		delete(s.loaded, coords)
		s.log.Debug("Колонка %v выгружена: %d ячеек", coords, removed)
		events = append(events, Event{Type: EventTypeChunkUnloaded, Chunk: coords, Cells: removed})
	}
	return events
}

// apply записывает колонку в сетку и помечает её загруженной
func (s *Streamer) apply(grid *Grid, data *ChunkData) Event {
	written := data.ApplyTo(grid)
	s.loaded[data.Coords] = struct{}{}
	s.log.Debug("Колонка %v загружена: %d ячеек", data.Coords, written)
	return Event{Type: EventTypeChunkLoaded, Chunk: data.Coords, Cells: written}
}

// wanted возвращает колонки радиуса прогрузки, отсортированные по удалённости
func (s *Streamer) wanted(center vec.Vec2) []vec.Vec2 {
	r := s.cfg.RenderDistance
	out := make([]vec.Vec2, 0, (2*r+1)*(2*r+1))
	for dx := -r; dx <= r; dx++ {
		for dz := -r; dz <= r; dz++ {
			out = append(out, vec.Vec2{X: center.X + dx, Y: center.Y + dz})
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		di, dj := out[i].DistanceTo(center), out[j].DistanceTo(center)
		if di != dj {
			return di < dj
		}
		return lessCoords(out[i], out[j])
	})
	return out
}

func sortCoords(coords []vec.Vec2) {
	sort.Slice(coords, func(i, j int) bool { return lessCoords(coords[i], coords[j]) })
}

func lessCoords(a, b vec.Vec2) bool {
	if a.X != b.X {
		return a.X < b.X
	}
	return a.Y < b.Y
}
