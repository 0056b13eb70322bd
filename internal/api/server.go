package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"github.com/annel0/blockworld/internal/entity"
	"github.com/annel0/blockworld/internal/logging"
	"github.com/annel0/blockworld/internal/sim"
)

// SnapshotSource отдаёт последний опубликованный срез сессии.
// Вызывается из горутин HTTP-сервера.
type SnapshotSource interface {
	Snapshot() sim.Snapshot
}

// Config содержит конфигурацию отладочного сервера
type Config struct {
	Addr       string                // адрес, например ":8090"
	Source     SnapshotSource        // источник состояния симуляции
	Registerer prometheus.Registerer // nil: дефолтный регистр
	Gatherer   prometheus.Gatherer   // nil: дефолтный регистр
	Feed       *EventFeed            // nil: без /ws/events
}

// DebugServer представляет HTTP API только для чтения: поза игрока, состояние мира,
// метрики и лента событий мира
type DebugServer struct {
	router  *gin.Engine
	source  SnapshotSource
	feed    *EventFeed
	monitor *processMonitor
	log     *logging.Logger
	srv     *http.Server
}

// NewDebugServer создаёт сервер и настраивает маршруты
func NewDebugServer(config Config) (*DebugServer, error) {
	if config.Source == nil {
		return nil, errors.New("api: источник состояния не задан")
	}
	if config.Addr == "" {
		config.Addr = ":8090"
	}
	if config.Registerer == nil {
		config.Registerer = prometheus.DefaultRegisterer
	}
	if config.Gatherer == nil {
		config.Gatherer = prometheus.DefaultGatherer
	}

	gin.SetMode(gin.ReleaseMode)

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(otelgin.Middleware("debug_api"))

	ds := &DebugServer{
		router:  router,
		source:  config.Source,
		feed:    config.Feed,
		monitor: newProcessMonitor(),
		log:     logging.GetComponentLogger("api"),
	}
	router.Use(requestLogger(ds.log))
	router.Use(newHTTPMetrics("debug_api", config.Registerer).handler())

	ds.setupRoutes(config.Gatherer)
	ds.srv = &http.Server{
		Addr:              config.Addr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}
	return ds, nil
}

// setupRoutes настраивает маршруты
func (ds *DebugServer) setupRoutes(gatherer prometheus.Gatherer) {
	ds.router.Use(func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Origin, Content-Type, Accept")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	})

	api := ds.router.Group("/api")
	{
		api.GET("/pose", ds.handlePose)
		api.GET("/world", ds.handleWorld)
	}

	if ds.feed != nil {
		ds.router.GET("/ws/events", ds.feed.handleWS)
	}
	ds.router.GET("/health", ds.handleHealth)
	ds.router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})))
}

// PoseResponse: поза игрока, прицел и состояние автомата
type PoseResponse struct {
	Tick  uint64      `json:"tick"`
	Pose  entity.Pose `json:"pose"`
	Aim   sim.AimView `json:"aim"`
	State string      `json:"state"`
}

// handlePose возвращает позу и прицел
func (ds *DebugServer) handlePose(c *gin.Context) {
	snap := ds.source.Snapshot()
	c.JSON(http.StatusOK, PoseResponse{
		Tick:  snap.Tick,
		Pose:  snap.Pose,
		Aim:   snap.Aim,
		State: snap.State,
	})
}

// handleWorld возвращает полный срез сессии
func (ds *DebugServer) handleWorld(c *gin.Context) {
	c.JSON(http.StatusOK, ds.source.Snapshot())
}

// handleHealth проверка состояния сервера
func (ds *DebugServer) handleHealth(c *gin.Context) {
	snap := ds.source.Snapshot()
	body := gin.H{
		"status":  "ok",
		"session": snap.SessionID,
		"tick":    snap.Tick,
		"process": ds.monitor.stats(),
	}
	if ds.feed != nil {
		body["feed_subscribers"] = ds.feed.Subscribers()
		body["feed_dropped"] = ds.feed.Dropped()
	}
	c.JSON(http.StatusOK, body)
}

// Handler возвращает http.Handler сервера (для тестов и встраивания)
func (ds *DebugServer) Handler() http.Handler {
	return ds.router
}

// Start блокируется до остановки сервера. После Shutdown возвращает nil.
func (ds *DebugServer) Start() error {
	ds.log.Info("Отладочный API слушает %s", ds.srv.Addr)
	if err := ds.srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("api: %w", err)
	}
	return nil
}

// Shutdown отключает подписчиков ленты и останавливает сервер,
// дожидаясь активных запросов
func (ds *DebugServer) Shutdown(ctx context.Context) error {
	if ds.feed != nil {
		ds.feed.Close()
	}
	return ds.srv.Shutdown(ctx)
}
