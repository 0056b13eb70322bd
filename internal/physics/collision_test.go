package physics

import (
	"math/rand"
	"testing"

	"github.com/annel0/blockworld/internal/vec"
	"github.com/annel0/blockworld/internal/world"
	"github.com/annel0/blockworld/internal/world/block"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	standHeight  = 1.3
	crouchHeight = 1.0
)

// floorGrid строит плоский слой травы на y=0
func floorGrid(minX, maxX, minZ, maxZ int) *world.Grid {
	g := world.NewGrid()
	for x := minX; x <= maxX; x++ {
		for z := minZ; z <= maxZ; z++ {
			g.Set(vec.Vec3{X: x, Y: 0, Z: z}, block.Grass)
		}
	}
	return g
}

func TestAABBIntersects(t *testing.T) {
	cell := CellBox(vec.Vec3{})

	touching := BodyBox(mgl64.Vec3{0, 1.8, 0}, 0.3, 1.3)
	assert.False(t, touching.Intersects(cell, 1e-6), "касание сверху не пересечение")

	inside := BodyBox(mgl64.Vec3{0, 1.7, 0}, 0.3, 1.3)
	assert.True(t, inside.Intersects(cell, 1e-6))

	side := BodyBox(mgl64.Vec3{0.8, 1.0, 0}, 0.3, 1.3)
	assert.False(t, side.Intersects(cell, 1e-6), "касание сбоку не пересечение")
	assert.True(t, side.Offset(mgl64.Vec3{-0.01, 0, 0}).Intersects(cell, 1e-6))
}

func TestMoveGroundSnap(t *testing.T) {
	r := NewResolver(floorGrid(-2, 2, -2, 2), DefaultConfig())

	res := r.Move(mgl64.Vec3{0, 1.8, 0}, standHeight, mgl64.Vec3{0, -0.012, 0}, false, true)
	assert.True(t, res.Grounded)
	assert.False(t, res.Ceiling)
	assert.InDelta(t, 1.8, res.Position.Y(), 1e-9)
	assert.InDelta(t, 0, res.Permitted.Y(), 1e-9)

	// Повторный прижим ничего не меняет
	again := r.Move(res.Position, standHeight, mgl64.Vec3{0, -0.012, 0}, false, true)
	assert.True(t, again.Grounded)
	assert.Equal(t, res.Position, again.Position)
}

func TestMoveFallsAndLands(t *testing.T) {
	r := NewResolver(floorGrid(-2, 2, -2, 2), DefaultConfig())

	res := r.Move(mgl64.Vec3{0, 3.0, 0}, standHeight, mgl64.Vec3{0, -0.5, 0}, false, false)
	assert.False(t, res.Grounded)
	assert.InDelta(t, 2.5, res.Position.Y(), 1e-9)

	// Скорость падения ограничена, слой не пролетается насквозь
	res = r.Move(res.Position, standHeight, mgl64.Vec3{0, -50, 0}, false, false)
	assert.True(t, res.Grounded)
	assert.InDelta(t, 1.8, res.Position.Y(), 1e-9)
}

func TestMoveCeiling(t *testing.T) {
	g := floorGrid(-2, 2, -2, 2)
	g.Set(vec.Vec3{X: 0, Y: 3, Z: 0}, block.Stone)
	r := NewResolver(g, DefaultConfig())

	res := r.Move(mgl64.Vec3{0, 2.4, 0}, standHeight, mgl64.Vec3{0, 0.21, 0}, false, false)
	assert.True(t, res.Ceiling)
	assert.False(t, res.Grounded)
	assert.InDelta(t, 2.5-DefaultConfig().CeilingGap, res.Position.Y(), 1e-9)
	assert.False(t, r.Overlaps(res.Position, standHeight))
}

func TestMoveAxisSlide(t *testing.T) {
	g := floorGrid(-3, 3, -3, 3)
	// Стена поперёк X на x=1
	for z := -3; z <= 3; z++ {
		g.Set(vec.Vec3{X: 1, Y: 1, Z: z}, block.Stone)
		g.Set(vec.Vec3{X: 1, Y: 2, Z: z}, block.Stone)
	}
	r := NewResolver(g, DefaultConfig())

	res := r.Move(mgl64.Vec3{0.15, 1.8, 0}, standHeight, mgl64.Vec3{0.1, 0, -0.1}, false, true)
	assert.True(t, res.BlockedX)
	assert.False(t, res.BlockedZ)
	assert.InDelta(t, 0.15, res.Position.X(), 1e-9)
	assert.InDelta(t, -0.1, res.Position.Z(), 1e-9, "вдоль стены движение сохраняется")
	assert.Equal(t, 0.0, res.Permitted.X())
}

func TestMoveLedgeLock(t *testing.T) {
	// Платформа заканчивается на x=0 (край на x=0.5)
	r := NewResolver(floorGrid(-3, 0, -3, 3), DefaultConfig())
	eye := mgl64.Vec3{0.79, 0.5 + crouchHeight, 0}

	tests := []struct {
		name     string
		delta    mgl64.Vec3
		crouched bool
		wantX    float64
		wantZ    float64
		ledgeX   bool
	}{
		{"присед к краю", mgl64.Vec3{0.05, 0, 0}, true, 0, 0, true},
		{"присед от края", mgl64.Vec3{-0.05, 0, 0}, true, -0.05, 0, false},
		{"присед по диагонали", mgl64.Vec3{0.05, 0, 0.05}, true, 0, 0.05, true},
		{"без приседа сходит", mgl64.Vec3{0.05, 0, 0}, false, 0.05, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := r.Move(eye, crouchHeight, tt.delta, tt.crouched, true)
			assert.InDelta(t, tt.wantX, res.Permitted.X(), 1e-9)
			assert.InDelta(t, tt.wantZ, res.Permitted.Z(), 1e-9)
			assert.Equal(t, tt.ledgeX, res.LedgeX)
		})
	}
}

func TestMoveLedgeOnlyWhenGrounded(t *testing.T) {
	r := NewResolver(floorGrid(-3, 0, -3, 3), DefaultConfig())
	eye := mgl64.Vec3{0.79, 0.5 + crouchHeight, 0}

	// В прыжке правило края не действует
	res := r.Move(eye, crouchHeight, mgl64.Vec3{0.05, 0, 0}, true, false)
	assert.InDelta(t, 0.05, res.Permitted.X(), 1e-9)
	assert.False(t, res.LedgeX)
}

func TestCanStand(t *testing.T) {
	g := floorGrid(-2, 2, -2, 2)
	r := NewResolver(g, DefaultConfig())
	eye := mgl64.Vec3{0, 0.5 + crouchHeight, 0}

	assert.True(t, r.CanStand(eye, crouchHeight, standHeight))

	// Потолок на высоте 1.5 не даёт выпрямиться
	g.Set(vec.Vec3{X: 0, Y: 2, Z: 0}, block.Stone)
	assert.False(t, r.CanStand(eye, crouchHeight, standHeight))
}

func TestHasSupportCorners(t *testing.T) {
	g := world.NewGrid()
	g.Set(vec.Vec3{X: 0, Y: 0, Z: 0}, block.Stone)
	r := NewResolver(g, DefaultConfig())

	// Центр над пустотой, угол ещё над блоком
	assert.True(t, r.HasSupport(mgl64.Vec3{0.75, 1.8, 0.75}, standHeight))
	assert.False(t, r.HasSupport(mgl64.Vec3{0.85, 1.8, 0.85}, standHeight))
}

func TestNoInterpenetration(t *testing.T) {
	g := floorGrid(-6, 6, -6, 6)
	rng := rand.New(rand.NewSource(42))
	// Случайные столбы и потолки
	for i := 0; i < 30; i++ {
		x, z := rng.Intn(13)-6, rng.Intn(13)-6
		if x == 0 && z == 0 {
			continue
		}
		y := 1 + rng.Intn(3)
		g.Set(vec.Vec3{X: x, Y: y, Z: z}, block.Stone)
	}
	r := NewResolver(g, DefaultConfig())

	pos := mgl64.Vec3{0, 1.8, 0}
	require.False(t, r.Overlaps(pos, standHeight))

	grounded := true
	for i := 0; i < 2000; i++ {
		delta := mgl64.Vec3{
			(rng.Float64() - 0.5) * 0.6,
			(rng.Float64() - 0.6) * 0.8,
			(rng.Float64() - 0.5) * 0.6,
		}
		crouched := rng.Intn(4) == 0
		res := r.Move(pos, standHeight, delta, crouched, grounded)
		require.False(t, r.Overlaps(res.Position, standHeight), "шаг %d: тело в блоке на %v", i, res.Position)
		pos, grounded = res.Position, res.Grounded

		// Не уходим с карты
		if pos.X() < -5 || pos.X() > 5 || pos.Z() < -5 || pos.Z() > 5 || pos.Y() < 0 {
			pos, grounded = mgl64.Vec3{0, 1.8, 0}, true
		}
	}
}

func TestMoveClampsLongStepAtWall(t *testing.T) {
	g := floorGrid(-4, 4, -4, 4)
	g.Set(vec.Vec3{X: 0, Y: 1, Z: -1}, block.Stone)
	g.Set(vec.Vec3{X: 0, Y: 2, Z: -1}, block.Stone)
	r := NewResolver(g, DefaultConfig())

	res := r.Move(mgl64.Vec3{0, 1.8, 0}, standHeight, mgl64.Vec3{0, 0, -2}, false, true)
	assert.True(t, res.BlockedZ, "шаг длиннее ячейки не должен перепрыгнуть стену")
	assert.InDelta(t, 0, res.Position.Z(), 1e-9)
	assert.False(t, r.Overlaps(res.Position, standHeight))

	// Без стены шаг укорачивается до MaxStep
	res = r.Move(mgl64.Vec3{0, 1.8, 0}, standHeight, mgl64.Vec3{3, 0, 0}, false, true)
	assert.InDelta(t, 1, res.Permitted.X(), 1e-9)
}

func TestMoveClampsFastRiseAtCeiling(t *testing.T) {
	g := floorGrid(-2, 2, -2, 2)
	g.Set(vec.Vec3{X: 0, Y: 3, Z: 0}, block.Stone)
	r := NewResolver(g, DefaultConfig())

	res := r.Move(mgl64.Vec3{0, 1.8, 0}, standHeight, mgl64.Vec3{0, 3, 0}, false, true)
	assert.True(t, res.Ceiling, "подъём быстрее ячейки упирается в потолок")
	assert.InDelta(t, 2.5-DefaultConfig().CeilingGap, res.Position.Y(), 1e-9)
}

func TestConfigurableTolerances(t *testing.T) {
	g := floorGrid(0, 0, 0, 0)
	cfg := DefaultConfig()
	cfg.LedgeProbe = 0.5
	r := NewResolver(g, cfg)

	// Ноги на 0.3 выше пола: зонд 0.05 опоры не видит, зонд 0.5 видит
	eye := mgl64.Vec3{0, 0.8 + standHeight, 0}
	assert.True(t, r.HasSupport(eye, standHeight))
	assert.False(t, NewResolver(g, DefaultConfig()).HasSupport(eye, standHeight))
}

func TestIntersectsSkinBoundary(t *testing.T) {
	cell := CellBox(vec.Vec3{})
	const skin = 1e-6

	// Проникновение меньше допуска считается свободным местом
	shallow := BodyBox(mgl64.Vec3{0, 1.8 - skin/2, 0}, 0.3, 1.3)
	assert.False(t, shallow.Intersects(cell, skin))

	deep := BodyBox(mgl64.Vec3{0, 1.8 - 2*skin, 0}, 0.3, 1.3)
	assert.True(t, deep.Intersects(cell, skin))

	// Без допуска тот же сдвиг уже пересечение
	assert.True(t, shallow.Intersects(cell, 0))
}
