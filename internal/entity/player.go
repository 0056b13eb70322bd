package entity

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// PlayerConfig содержит параметры тела и движения игрока
type PlayerConfig struct {
	StandEyeHeight  float64 // Высота глаз над ногами стоя
	CrouchEyeHeight float64 // Высота глаз над ногами в приседе
	WalkSpeed       float64 // Блоков за тик
	CrouchSpeed     float64 // Блоков за тик в приседе
	Gravity         float64 // Ускорение вниз, блоков за тик²
	JumpImpulse     float64 // Начальная вертикальная скорость прыжка
	Sensitivity     float64 // Радиан на пиксель смещения взгляда
	PitchLimit      float64 // Предел |pitch|, меньше π/2
}

// DefaultPlayerConfig возвращает параметры по умолчанию
func DefaultPlayerConfig() PlayerConfig {
	return PlayerConfig{
		StandEyeHeight:  1.3,
		CrouchEyeHeight: 1.0,
		WalkSpeed:       0.12,
		CrouchSpeed:     0.05,
		Gravity:         0.012,
		JumpImpulse:     0.21,
		Sensitivity:     0.005,
		PitchLimit:      math.Pi/2 - 0.01,
	}
}

// Body: состояние тела игрока. Position: точка глаз.
type Body struct {
	Position  mgl64.Vec3
	Yaw       float64 // 0 смотрит в -Z, рост поворачивает влево
	Pitch     float64 // Рост поднимает взгляд
	VelocityY float64
	Crouched  bool
	Grounded  bool
}

// Pose: поза камеры для рендера
type Pose struct {
	Position mgl64.Vec3 `json:"position"`
	Yaw      float64    `json:"yaw"`
	Pitch    float64    `json:"pitch"`
	Crouched bool       `json:"crouched"`
	Grounded bool       `json:"grounded"`
}

// Pose возвращает позу камеры
func (b Body) Pose() Pose {
	return Pose{
		Position: b.Position,
		Yaw:      b.Yaw,
		Pitch:    b.Pitch,
		Crouched: b.Crouched,
		Grounded: b.Grounded,
	}
}

// ForwardXZ возвращает горизонтальное направление «вперёд»
func ForwardXZ(yaw float64) mgl64.Vec3 {
	return mgl64.Vec3{-math.Sin(yaw), 0, -math.Cos(yaw)}
}

// RightXZ возвращает горизонтальное направление «вправо»
func RightXZ(yaw float64) mgl64.Vec3 {
	return mgl64.Vec3{math.Cos(yaw), 0, -math.Sin(yaw)}
}

// wrapAngle приводит угол к (-π, π]
func wrapAngle(a float64) float64 {
	a = math.Remainder(a, 2*math.Pi)
	if a <= -math.Pi {
		a += 2 * math.Pi
	}
	return a
}

// finite отбрасывает NaN и бесконечности
func finite(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}
