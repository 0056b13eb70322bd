package config

import (
	"fmt"
	"math"
	"os"
	"strconv"
	"time"

	"github.com/go-gl/mathgl/mgl64"
	"go.uber.org/multierr"
	"gopkg.in/yaml.v3"

	"github.com/annel0/blockworld/internal/entity"
	"github.com/annel0/blockworld/internal/interaction"
	"github.com/annel0/blockworld/internal/physics"
	"github.com/annel0/blockworld/internal/world"
	"github.com/annel0/blockworld/internal/world/block"
)

// Config корневая структура конфигурации песочницы.
// Все настроечные константы физики и жестов живут здесь.
type Config struct {
	Physics     PhysicsConfig     `yaml:"physics"`
	Look        LookConfig        `yaml:"look"`
	Interaction InteractionConfig `yaml:"interaction"`
	Streaming   StreamingConfig   `yaml:"streaming"`
	Sim         SimConfig         `yaml:"sim"`
	Debug       DebugConfig       `yaml:"debug"`
	Telemetry   TelemetryConfig   `yaml:"telemetry"`
	Logging     LoggingConfig     `yaml:"logging"`
}

type PhysicsConfig struct {
	HalfWidth       float64 `yaml:"half_width"`
	StandEyeHeight  float64 `yaml:"stand_eye_height"`
	CrouchEyeHeight float64 `yaml:"crouch_eye_height"`
	WalkSpeed       float64 `yaml:"walk_speed"`
	CrouchSpeed     float64 `yaml:"crouch_speed"`
	Gravity         float64 `yaml:"gravity"`
	JumpImpulse     float64 `yaml:"jump_impulse"`
	MaxFallSpeed    float64 `yaml:"max_fall_speed"`
	MaxStep         float64 `yaml:"max_step"`
	Skin            float64 `yaml:"skin"`
	CeilingGap      float64 `yaml:"ceiling_gap"`
	LedgeInset      float64 `yaml:"ledge_inset"`
	LedgeProbe      float64 `yaml:"ledge_probe"`
}

type LookConfig struct {
	Sensitivity float64 `yaml:"sensitivity"`
	PitchLimit  float64 `yaml:"pitch_limit"`
	Reach       float64 `yaml:"reach"`
}

type InteractionConfig struct {
	HoldThreshold   time.Duration `yaml:"hold_threshold"`
	JitterThreshold float64       `yaml:"jitter_threshold"`
	SelectedBlock   string        `yaml:"selected_block"`
}

type StreamingConfig struct {
	Enabled        bool  `yaml:"enabled"`
	RenderDistance int   `yaml:"render_distance"`
	Async          bool  `yaml:"async"`
	QueueSize      int   `yaml:"queue_size"`
	Seed           int64 `yaml:"seed"`
}

type SimConfig struct {
	TickInterval time.Duration `yaml:"tick_interval"`
}

type DebugConfig struct {
	Enabled bool `yaml:"enabled"`
	Port    int  `yaml:"port"`
}

type TelemetryConfig struct {
	Enabled     bool    `yaml:"enabled"`
	Endpoint    string  `yaml:"endpoint"`
	Insecure    bool    `yaml:"insecure"`
	ServiceName string  `yaml:"service_name"`
	SampleRatio float64 `yaml:"sample_ratio"`
}

type LoggingConfig struct {
	Level string `yaml:"level"`
	Dir   string `yaml:"dir"`
}

// Default возвращает конфигурацию по умолчанию
func Default() *Config {
	player := entity.DefaultPlayerConfig()
	resolver := physics.DefaultConfig()
	machine := interaction.DefaultConfig()

	return &Config{
		Physics: PhysicsConfig{
			HalfWidth:       resolver.HalfWidth,
			StandEyeHeight:  player.StandEyeHeight,
			CrouchEyeHeight: player.CrouchEyeHeight,
			WalkSpeed:       player.WalkSpeed,
			CrouchSpeed:     player.CrouchSpeed,
			Gravity:         player.Gravity,
			JumpImpulse:     player.JumpImpulse,
			MaxFallSpeed:    resolver.MaxFallSpeed,
			MaxStep:         resolver.MaxStep,
			Skin:            resolver.Skin,
			CeilingGap:      resolver.CeilingGap,
			LedgeInset:      resolver.LedgeInset,
			LedgeProbe:      resolver.LedgeProbe,
		},
		Look: LookConfig{
			Sensitivity: player.Sensitivity,
			PitchLimit:  player.PitchLimit,
			Reach:       physics.DefaultReach,
		},
		Interaction: InteractionConfig{
			HoldThreshold:   machine.HoldThreshold,
			JitterThreshold: machine.JitterThreshold,
			SelectedBlock:   "dirt",
		},
		Streaming: StreamingConfig{
			Enabled:        true,
			RenderDistance: 2,
			QueueSize:      64,
			Seed:           1,
		},
		Sim: SimConfig{
			TickInterval: machine.TickDelta,
		},
		Debug: DebugConfig{
			Enabled: true,
		},
		Telemetry: TelemetryConfig{
			Endpoint:    "localhost:4318",
			Insecure:    true,
			ServiceName: "blockworld-sandbox",
			SampleRatio: 1,
		},
		Logging: LoggingConfig{
			Level: "INFO",
		},
	}
}

// Load читает YAML файл конфигурации поверх значений по умолчанию.
// Если path == "", пытается прочитать путь из ENV VOXEL_CONFIG; если и он
// пуст, возвращает Default(). Переменная VOXEL_SEED переопределяет сид мира.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path == "" {
		path = os.Getenv("VOXEL_CONFIG")
	}
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("чтение конфига %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("разбор конфига %s: %w", path, err)
		}
	}

	if envVal := os.Getenv("VOXEL_SEED"); envVal != "" {
		seed, err := strconv.ParseInt(envVal, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("VOXEL_SEED: %w", err)
		}
		cfg.Streaming.Seed = seed
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate приводит значения к допустимым диапазонам и сообщает о
// противоречиях, которые исправить нельзя
func (c *Config) Validate() error {
	var errs error

	p := &c.Physics
	if p.HalfWidth <= 0 || p.HalfWidth >= 0.5 {
		errs = multierr.Append(errs, fmt.Errorf("physics.half_width должен быть в (0, 0.5), получено %v", p.HalfWidth))
	}
	if p.CrouchEyeHeight <= 0 || p.CrouchEyeHeight > p.StandEyeHeight {
		errs = multierr.Append(errs, fmt.Errorf("physics.crouch_eye_height должен быть в (0, stand_eye_height], получено %v", p.CrouchEyeHeight))
	}
	if p.MaxFallSpeed <= 0 || p.MaxFallSpeed > 1 {
		p.MaxFallSpeed = 1
	}
	if p.MaxStep <= 0 || p.MaxStep > 1 {
		p.MaxStep = 1
	}
	if p.Skin < 0 {
		p.Skin = 0
	}
	p.CeilingGap = math.Max(p.CeilingGap, 0)
	if p.HalfWidth > 0 && (p.LedgeInset < 0 || p.LedgeInset >= p.HalfWidth) {
		p.LedgeInset = physics.DefaultConfig().LedgeInset
	}
	if p.LedgeProbe <= 0 {
		p.LedgeProbe = physics.DefaultConfig().LedgeProbe
	}
	// Скорости за тик не больше ячейки, иначе тело проходит сквозь стены
	p.WalkSpeed = mgl64.Clamp(p.WalkSpeed, 0, p.MaxStep)
	p.CrouchSpeed = mgl64.Clamp(p.CrouchSpeed, 0, p.MaxStep)
	p.Gravity = mgl64.Clamp(p.Gravity, 0, p.MaxFallSpeed)
	p.JumpImpulse = mgl64.Clamp(p.JumpImpulse, 0, p.MaxFallSpeed)

	l := &c.Look
	if l.PitchLimit <= 0 || l.PitchLimit >= math.Pi/2 {
		l.PitchLimit = math.Pi/2 - 0.01
	}
	if l.Reach <= 0 {
		l.Reach = physics.DefaultReach
	}

	i := &c.Interaction
	if i.HoldThreshold < 0 {
		i.HoldThreshold = 0
	}
	i.JitterThreshold = math.Max(i.JitterThreshold, 0)
	if id, ok := block.ByName(i.SelectedBlock); !ok || id == block.Air {
		errs = multierr.Append(errs, fmt.Errorf("interaction.selected_block: неизвестный блок %q", i.SelectedBlock))
	}

	s := &c.Streaming
	if s.RenderDistance < 0 {
		s.RenderDistance = 0
	}
	if s.QueueSize <= 0 {
		s.QueueSize = 64
	}

	if c.Sim.TickInterval <= 0 {
		c.Sim.TickInterval = interaction.DefaultConfig().TickDelta
	}

	if c.Telemetry.SampleRatio < 0 || c.Telemetry.SampleRatio > 1 {
		c.Telemetry.SampleRatio = 1
	}

	return errs
}

// GetDebugPort возвращает порт отладочного HTTP с приоритетом: config -> env -> default
func (d *DebugConfig) GetDebugPort() int {
	return getPortWithEnvFallback(d.Port, "VOXEL_DEBUG_PORT", 8090)
}

// getPortWithEnvFallback возвращает порт с приоритетом: config -> env -> default
func getPortWithEnvFallback(configPort int, envVar string, defaultPort int) int {
	// Если порт задан в конфиге и больше 0, используем его
	if configPort > 0 {
		return configPort
	}

	if envVal := os.Getenv(envVar); envVal != "" {
		if port, err := strconv.Atoi(envVal); err == nil && port > 0 {
			return port
		}
	}

	return defaultPort
}

// ResolverConfig возвращает допуски коллизий
func (c *Config) ResolverConfig() physics.Config {
	r := physics.DefaultConfig()
	r.HalfWidth = c.Physics.HalfWidth
	r.Skin = c.Physics.Skin
	r.MaxFallSpeed = c.Physics.MaxFallSpeed
	r.MaxStep = c.Physics.MaxStep
	r.CeilingGap = c.Physics.CeilingGap
	r.LedgeInset = c.Physics.LedgeInset
	r.LedgeProbe = c.Physics.LedgeProbe
	return r
}

// PlayerConfig возвращает параметры тела игрока
func (c *Config) PlayerConfig() entity.PlayerConfig {
	return entity.PlayerConfig{
		StandEyeHeight:  c.Physics.StandEyeHeight,
		CrouchEyeHeight: c.Physics.CrouchEyeHeight,
		WalkSpeed:       c.Physics.WalkSpeed,
		CrouchSpeed:     c.Physics.CrouchSpeed,
		Gravity:         c.Physics.Gravity,
		JumpImpulse:     c.Physics.JumpImpulse,
		Sensitivity:     c.Look.Sensitivity,
		PitchLimit:      c.Look.PitchLimit,
	}
}

// MachineConfig возвращает пороги автомата разрушения. Прирост прогресса
// за тик равен интервалу тика.
func (c *Config) MachineConfig() interaction.Config {
	return interaction.Config{
		HoldThreshold:   c.Interaction.HoldThreshold,
		JitterThreshold: c.Interaction.JitterThreshold,
		TickDelta:       c.Sim.TickInterval,
	}
}

// StreamerConfig возвращает параметры прогрузки колонок
func (c *Config) StreamerConfig() world.StreamerConfig {
	return world.StreamerConfig{
		RenderDistance: c.Streaming.RenderDistance,
		Async:          c.Streaming.Async,
		QueueSize:      c.Streaming.QueueSize,
	}
}

// SelectedBlock возвращает стартовый блок для установки
func (c *Config) SelectedBlock() block.ID {
	if id, ok := block.ByName(c.Interaction.SelectedBlock); ok && id != block.Air {
		return id
	}
	return block.Dirt
}
