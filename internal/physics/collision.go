package physics

import (
	"math"

	"github.com/annel0/blockworld/internal/vec"
	"github.com/go-gl/mathgl/mgl64"
)

// SolidChecker: доступ к сетке, достаточный для коллизий
type SolidChecker interface {
	IsSolid(pos vec.Vec3) bool
}

// Config содержит допуски резолвера
type Config struct {
	HalfWidth    float64 // Полуширина коробки игрока по X и Z
	Skin         float64 // Допуск проникновения, меньше которого пересечения нет
	CeilingGap   float64 // Зазор под потолком после упора головой
	MaxFallSpeed float64 // Ограничение вертикального смещения за тик (вверх и вниз)
	MaxStep      float64 // Ограничение горизонтального смещения по оси за тик
	LedgeInset   float64 // Отступ точек опоры от краёв коробки
	LedgeProbe   float64 // Глубина зонда опоры под ногами
}

// DefaultConfig возвращает допуски по умолчанию
func DefaultConfig() Config {
	return Config{
		HalfWidth:    0.3,
		Skin:         1e-6,
		CeilingGap:   1e-3,
		MaxFallSpeed: 1.0,
		MaxStep:      1.0,
		LedgeInset:   1e-3,
		LedgeProbe:   0.05,
	}
}

// Result описывает итог перемещения (фактическое смещение и контакты)
type Result struct {
	Position  mgl64.Vec3 // Новая позиция глаз
	Permitted mgl64.Vec3 // Применённое смещение по осям
	Grounded  bool       // Стоит на блоке
	Ceiling   bool       // Упёрся головой
	BlockedX  bool       // Смещение по X обнулено коллизией или краем
	BlockedZ  bool       // Смещение по Z обнулено коллизией или краем
	LedgeX    bool       // X остановлен правилом края (присед)
	LedgeZ    bool       // Z остановлен правилом края (присед)
}

// Resolver разрешает движение коробки игрока относительно сетки.
// Оси проверяются раздельно: X, затем Z, затем Y.
type Resolver struct {
	cfg   Config
	world SolidChecker
}

// NewResolver создаёт резолвер поверх сетки
func NewResolver(world SolidChecker, cfg Config) *Resolver {
	return &Resolver{cfg: cfg, world: world}
}

// Config возвращает допуски резолвера
func (r *Resolver) Config() Config {
	return r.cfg
}

// Overlaps проверяет, пересекает ли коробка тела хоть одну твёрдую ячейку
func (r *Resolver) Overlaps(eye mgl64.Vec3, height float64) bool {
	hit := false
	r.forEachSolid(BodyBox(eye, r.cfg.HalfWidth, height), func(vec.Vec3) bool {
		hit = true
		return false
	})
	return hit
}

// CanStand проверяет, хватает ли места, чтобы выпрямиться до newHeight.
// Ноги остаются на месте, глаза поднимаются.
func (r *Resolver) CanStand(eye mgl64.Vec3, height, newHeight float64) bool {
	raised := eye.Add(mgl64.Vec3{0, newHeight - height, 0})
	return !r.Overlaps(raised, newHeight)
}

// HasSupport проверяет, есть ли твёрдая опора под ногами в одной из точек
// следа коробки (четыре угла и центр)
func (r *Resolver) HasSupport(eye mgl64.Vec3, height float64) bool {
	y := eye.Y() - height - r.cfg.LedgeProbe
	e := r.cfg.HalfWidth - r.cfg.LedgeInset
	corners := [5][2]float64{
		{0, 0},
		{-e, -e},
		{-e, e},
		{e, -e},
		{e, e},
	}
	for _, p := range corners {
		if r.world.IsSolid(vec.CellOf(eye.X()+p[0], y, eye.Z()+p[1])) {
			return true
		}
	}
	return false
}

// Move применяет смещение delta к коробке с глазами в eye.
// crouched и grounded описывают состояние тела до перемещения, от них зависит правило края.
func (r *Resolver) Move(eye mgl64.Vec3, height float64, delta mgl64.Vec3, crouched, grounded bool) Result {
	res := Result{Position: eye}
	ledge := crouched && grounded
	start := eye
	// Шаг не длиннее ячейки: иначе коробка перепрыгнет стену толщиной в блок
	delta[0] = clampAbs(delta.X(), r.cfg.MaxStep)
	delta[2] = clampAbs(delta.Z(), r.cfg.MaxStep)

	// X на текущем Z
	if dx := delta.X(); dx != 0 {
		dest := res.Position.Add(mgl64.Vec3{dx, 0, 0})
		switch {
		case r.Overlaps(dest, height):
			res.BlockedX = true
		case ledge && !r.HasSupport(mgl64.Vec3{start.X() + dx, start.Y(), start.Z()}, height):
			res.BlockedX = true
			res.LedgeX = true
		default:
			res.Position = dest
			res.Permitted[0] = dx
		}
	}

	// Z на текущем X
	if dz := delta.Z(); dz != 0 {
		dest := res.Position.Add(mgl64.Vec3{0, 0, dz})
		switch {
		case r.Overlaps(dest, height):
			res.BlockedZ = true
		case ledge && !r.HasSupport(mgl64.Vec3{start.X(), start.Y(), start.Z() + dz}, height):
			res.BlockedZ = true
			res.LedgeZ = true
		case ledge && !r.HasSupport(dest, height):
			// Оба шага по отдельности держатся на опоре, а диагональ нет
			res.BlockedZ = true
			res.LedgeZ = true
		default:
			res.Position = dest
			res.Permitted[2] = dz
		}
	}

	r.moveVertical(&res, height, delta.Y())
	return res
}

// moveVertical применяет вертикальное смещение и прижимает к полу или потолку
func (r *Resolver) moveVertical(res *Result, height, dy float64) {
	if dy == 0 {
		return
	}
	dy = clampAbs(dy, r.cfg.MaxFallSpeed)
	dest := res.Position.Add(mgl64.Vec3{0, dy, 0})
	box := BodyBox(dest, r.cfg.HalfWidth, height)

	if dy < 0 {
		// Встаём на самый высокий из пересечённых блоков
		top, hit := math.Inf(-1), false
		r.forEachSolid(box, func(c vec.Vec3) bool {
			top, hit = math.Max(top, float64(c.Y)+0.5), true
			return true
		})
		if hit {
			y := top + height
			res.Permitted[1] = y - res.Position.Y()
			res.Position[1] = y
			res.Grounded = true
			return
		}
	} else {
		// Упираемся в самый низкий из пересечённых блоков
		bottom, hit := math.Inf(1), false
		r.forEachSolid(box, func(c vec.Vec3) bool {
			bottom, hit = math.Min(bottom, float64(c.Y)-0.5), true
			return true
		})
		if hit {
			y := math.Max(bottom-r.cfg.CeilingGap, res.Position.Y())
			res.Permitted[1] = y - res.Position.Y()
			res.Position[1] = y
			res.Ceiling = true
			return
		}
	}

	res.Position = dest
	res.Permitted[1] = dy
}

// clampAbs ограничивает v отрезком [-limit, limit]; limit <= 0 отключает ограничение
func clampAbs(v, limit float64) float64 {
	if limit <= 0 {
		return v
	}
	return math.Max(-limit, math.Min(v, limit))
}

// forEachSolid вызывает fn для твёрдых ячеек, пересекающих коробку.
// fn возвращает false, чтобы остановить перебор.
func (r *Resolver) forEachSolid(box AABB, fn func(c vec.Vec3) bool) {
	lo, hi := box.CellRange()
	for x := lo.X; x <= hi.X; x++ {
		for y := lo.Y; y <= hi.Y; y++ {
			for z := lo.Z; z <= hi.Z; z++ {
				c := vec.Vec3{X: x, Y: y, Z: z}
				if !r.world.IsSolid(c) || !box.Intersects(CellBox(c), r.cfg.Skin) {
					continue
				}
				if !fn(c) {
					return
				}
			}
		}
	}
}
