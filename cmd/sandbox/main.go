package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/annel0/blockworld/internal/api"
	"github.com/annel0/blockworld/internal/config"
	"github.com/annel0/blockworld/internal/logging"
	"github.com/annel0/blockworld/internal/metrics"
	"github.com/annel0/blockworld/internal/observability"
	"github.com/annel0/blockworld/internal/sim"
	"github.com/annel0/blockworld/internal/world"
)

func main() {
	var (
		configPath = flag.String("config", "", "путь к YAML-конфигурации (по умолчанию $VOXEL_CONFIG)")
		maxTicks   = flag.Uint64("ticks", 0, "остановиться после N тиков (0: без ограничения)")
	)
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("❌ Ошибка загрузки конфигурации: %v", err)
	}

	if err := logging.InitDefaultLogger("sandbox", logging.Options{
		Level: logging.ParseLevel(cfg.Logging.Level),
		Dir:   cfg.Logging.Dir,
	}); err != nil {
		log.Fatalf("❌ Ошибка инициализации логирования: %v", err)
	}
	defer logging.CloseDefaultLogger()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, *maxTicks); err != nil {
		logging.Error("❌ %v", err)
		logging.CloseDefaultLogger()
		os.Exit(1)
	}
	logging.Info("👋 Песочница остановлена")
}

func run(ctx context.Context, cfg *config.Config, maxTicks uint64) error {
	shutdownTelemetry, err := observability.InitTelemetry(ctx, observability.Options{
		Enabled:     cfg.Telemetry.Enabled,
		Endpoint:    cfg.Telemetry.Endpoint,
		Insecure:    cfg.Telemetry.Insecure,
		ServiceName: cfg.Telemetry.ServiceName,
		SampleRatio: cfg.Telemetry.SampleRatio,
	})
	if err != nil {
		return fmt.Errorf("телеметрия: %w", err)
	}
	defer func() {
		sctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdownTelemetry(sctx); err != nil {
			logging.Warn("Ошибка остановки телеметрии: %v", err)
		}
	}()

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	eventLog := logging.GetWorldLogger()
	feed := api.NewEventFeed()
	session, err := sim.New(sim.Options{
		Config:  cfg,
		Metrics: metrics.NewSimMetrics(registry),
		Sink: world.EventSinkFunc(func(ev world.Event) {
			eventLog.Debug("%s: ячейка %v, блок %s, чанк %v", ev.Type, ev.Pos, ev.Block, ev.Chunk)
			feed.HandleWorldEvent(ev)
		}),
	})
	if err != nil {
		return fmt.Errorf("сессия: %w", err)
	}
	defer session.Close()

	if cfg.Debug.Enabled {
		server, err := api.NewDebugServer(api.Config{
			Addr:       fmt.Sprintf(":%d", cfg.Debug.GetDebugPort()),
			Source:     session,
			Registerer: registry,
			Gatherer:   registry,
			Feed:       feed,
		})
		if err != nil {
			return fmt.Errorf("отладочный API: %w", err)
		}
		go func() {
			if err := server.Start(); err != nil {
				logging.Error("❌ Отладочный API: %v", err)
			}
		}()
		defer func() {
			sctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = server.Shutdown(sctx)
		}()
	}

	logging.Info("🎮 Песочница запущена: сессия %s, тик %s", session.ID(), cfg.Sim.TickInterval)

	script := sim.Autopilot()
	ticker := time.NewTicker(cfg.Sim.TickInterval)
	defer ticker.Stop()

	var ticks uint64
	for {
		select {
		case <-ctx.Done():
			logging.Info("📡 Получен сигнал завершения после %d тиков", ticks)
			return nil
		case <-ticker.C:
			in, ok := script.Next()
			if !ok {
				return nil
			}
			res := session.Tick(ctx, in)
			ticks++
			if ticks%100 == 0 {
				logging.Info("Тик %d: глаза %v, состояние %s", res.Tick, res.Pose.Position, res.State)
			}
			if maxTicks > 0 && ticks >= maxTicks {
				return nil
			}
		}
	}
}
