package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/annel0/blockworld/internal/interaction"
	"github.com/annel0/blockworld/internal/world"
)

// Namespace: префикс всех метрик песочницы
const Namespace = "blockworld"

// SimMetrics инкапсулирует Prometheus-метрики симуляции.
// Методы безопасно вызывать на nil: симуляция работает и без метрик.
type SimMetrics struct {
	ticks        prometheus.Counter
	tickDuration prometheus.Histogram
	blocksBroken *prometheus.CounterVec
	blocksPlaced *prometheus.CounterVec
	breakCancels *prometheus.CounterVec
	placeRejects *prometheus.CounterVec
	chunkEvents  *prometheus.CounterVec
	loadedChunks prometheus.Gauge
	gridCells    prometheus.Gauge
}

// NewSimMetrics создаёт метрики и регистрирует их в reg.
// При reg == nil используется глобальный регистр Prometheus.
func NewSimMetrics(reg prometheus.Registerer) *SimMetrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}

	m := &SimMetrics{
		ticks: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "ticks_total",
			Help:      "Общее число выполненных тиков симуляции.",
		}),
		tickDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: Namespace,
			Name:      "tick_duration_seconds",
			Help:      "Длительность одного тика симуляции.",
			Buckets:   []float64{0.0001, 0.0005, 0.001, 0.0025, 0.005, 0.01, 0.025, 0.05, 0.1},
		}),
		blocksBroken: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "blocks_broken_total",
			Help:      "Разрушенные игроком блоки по типу.",
		}, []string{"block"}),
		blocksPlaced: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "blocks_placed_total",
			Help:      "Установленные игроком блоки по типу.",
		}, []string{"block"}),
		breakCancels: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "break_cancels_total",
			Help:      "Прерванные разрушения по причине.",
		}, []string{"reason"}),
		placeRejects: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "place_rejects_total",
			Help:      "Отклонённые установки по причине.",
		}, []string{"reason"}),
		chunkEvents: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "chunk_events_total",
			Help:      "Загрузки и выгрузки колонок.",
		}, []string{"type"}),
		loadedChunks: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: Namespace,
			Name:      "loaded_chunks",
			Help:      "Количество загруженных колонок.",
		}),
		gridCells: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: Namespace,
			Name:      "grid_cells",
			Help:      "Количество непустых ячеек сетки.",
		}),
	}

	reg.MustRegister(
		m.ticks, m.tickDuration,
		m.blocksBroken, m.blocksPlaced,
		m.breakCancels, m.placeRejects,
		m.chunkEvents, m.loadedChunks, m.gridCells,
	)
	return m
}

// ObserveTick учитывает выполненный тик
func (m *SimMetrics) ObserveTick(d time.Duration) {
	if m == nil {
		return
	}
	m.ticks.Inc()
	m.tickDuration.Observe(d.Seconds())
}

// RecordEvents учитывает события изменения мира
func (m *SimMetrics) RecordEvents(events []world.Event) {
	if m == nil {
		return
	}
	for _, e := range events {
		switch e.Type {
		case world.EventTypeBlockRemoved:
			m.blocksBroken.WithLabelValues(e.Block.String()).Inc()
		case world.EventTypeBlockAdded:
			m.blocksPlaced.WithLabelValues(e.Block.String()).Inc()
		case world.EventTypeChunkLoaded, world.EventTypeChunkUnloaded:
			m.chunkEvents.WithLabelValues(e.Type.String()).Inc()
		}
	}
}

// RecordOutcome учитывает отмены и отказы автомата разрушения
func (m *SimMetrics) RecordOutcome(out interaction.Outcome) {
	if m == nil {
		return
	}
	for _, r := range out.Cancels {
		m.breakCancels.WithLabelValues(r.String()).Inc()
	}
	for _, r := range out.Rejected {
		m.placeRejects.WithLabelValues(r.String()).Inc()
	}
}

// SetWorldSize обновляет размер мира
func (m *SimMetrics) SetWorldSize(chunks, cells int) {
	if m == nil {
		return
	}
	m.loadedChunks.Set(float64(chunks))
	m.gridCells.Set(float64(cells))
}
