package entity

import (
	"github.com/annel0/blockworld/internal/input"
	"github.com/annel0/blockworld/internal/logging"
	"github.com/annel0/blockworld/internal/physics"
	"github.com/go-gl/mathgl/mgl64"
)

// Controller владеет телом игрока и интегрирует его физику по тикам
type Controller struct {
	cfg      PlayerConfig
	resolver *physics.Resolver
	body     Body
	log      *logging.Logger
}

// NewController создаёт контроллер с телом в точке spawn (глаза)
func NewController(resolver *physics.Resolver, cfg PlayerConfig, spawn mgl64.Vec3) *Controller {
	return &Controller{
		cfg:      cfg,
		resolver: resolver,
		body:     Body{Position: spawn},
		log:      logging.GetPhysicsLogger(),
	}
}

// Body возвращает копию состояния тела
func (c *Controller) Body() Body {
	return c.body
}

// Pose возвращает позу камеры
func (c *Controller) Pose() Pose {
	return c.body.Pose()
}

// EyeHeight возвращает текущую высоту глаз над ногами
func (c *Controller) EyeHeight() float64 {
	if c.body.Crouched {
		return c.cfg.CrouchEyeHeight
	}
	return c.cfg.StandEyeHeight
}

// Box возвращает текущую коробку тела
func (c *Controller) Box() physics.AABB {
	return physics.BodyBox(c.body.Position, c.resolver.Config().HalfWidth, c.EyeHeight())
}

// Forward возвращает направление взгляда камеры
func (c *Controller) Forward() mgl64.Vec3 {
	return physics.LookDirection(c.body.Yaw, c.body.Pitch)
}

// Look поворачивает камеру на смещение указателя в пикселях
func (c *Controller) Look(dx, dy float64) {
	dx, dy = finite(dx), finite(dy)
	if dx == 0 && dy == 0 {
		return
	}
	c.body.Yaw = wrapAngle(c.body.Yaw - dx*c.cfg.Sensitivity)
	c.body.Pitch = mgl64.Clamp(c.body.Pitch-dy*c.cfg.Sensitivity, -c.cfg.PitchLimit, c.cfg.PitchLimit)
}

// ToggleCrouch переключает присед. Ноги остаются на месте, глаза
// опускаются или поднимаются сразу. Встать без места над головой нельзя.
func (c *Controller) ToggleCrouch() bool {
	lift := c.cfg.StandEyeHeight - c.cfg.CrouchEyeHeight

	if !c.body.Crouched {
		c.body.Crouched = true
		c.body.Position[1] -= lift
		return true
	}

	if !c.resolver.CanStand(c.body.Position, c.cfg.CrouchEyeHeight, c.cfg.StandEyeHeight) {
		c.log.Debug("Нельзя встать: нет места над головой в %v", c.body.Position)
		return false
	}
	c.body.Crouched = false
	c.body.Position[1] += lift
	return true
}

// ApplyInput применяет взгляд и переключение приседа из намерений
func (c *Controller) ApplyInput(in input.Intents) {
	c.Look(in.LookDX, in.LookDY)
	if in.CrouchToggle {
		c.ToggleCrouch()
	}
}

// Step выполняет один тик физики: движение по осям, гравитация, контакты, прыжок
func (c *Controller) Step(in input.Intents) physics.Result {
	b := &c.body

	// 1. Горизонтальное направление, повёрнутое по yaw
	fwd, strafe := in.MoveAxes()
	move := ForwardXZ(b.Yaw).Mul(fwd).Add(RightXZ(b.Yaw).Mul(strafe))
	if move.Len() > 0 {
		speed := c.cfg.WalkSpeed
		if b.Crouched {
			speed = c.cfg.CrouchSpeed
		}
		move = move.Normalize().Mul(speed)
	}

	// 2. Гравитация
	b.VelocityY -= c.cfg.Gravity
	if limit := c.resolver.Config().MaxFallSpeed; limit > 0 && b.VelocityY < -limit {
		b.VelocityY = -limit
	}

	// 3. Раздельное разрешение X, Z, Y
	res := c.resolver.Move(b.Position, c.EyeHeight(), mgl64.Vec3{move.X(), b.VelocityY, move.Z()}, b.Crouched, b.Grounded)
	b.Position = res.Position
	b.Grounded = res.Grounded
	if res.Grounded || res.Ceiling {
		b.VelocityY = 0
	}

	// 4. Прыжок только с земли
	if in.Jump && b.Grounded {
		b.VelocityY = c.cfg.JumpImpulse
		b.Grounded = false
	}

	if res.LedgeX || res.LedgeZ {
		c.log.Trace("Край платформы: x=%t z=%t", res.LedgeX, res.LedgeZ)
	}

	return res
}

// Tick применяет намерения и делает шаг физики
func (c *Controller) Tick(in input.Intents) physics.Result {
	c.ApplyInput(in)
	return c.Step(in)
}
