package physics

import (
	"github.com/annel0/blockworld/internal/vec"
	"github.com/go-gl/mathgl/mgl64"
)

// AABB представляет выровненный по осям параллелепипед
type AABB struct {
	Min mgl64.Vec3
	Max mgl64.Vec3
}

// BodyBox возвращает коробку тела игрока. eye: точка глаз (верх коробки),
// коробка занимает [eye.y-height, eye.y] по вертикали.
func BodyBox(eye mgl64.Vec3, halfWidth, height float64) AABB {
	return AABB{
		Min: mgl64.Vec3{eye.X() - halfWidth, eye.Y() - height, eye.Z() - halfWidth},
		Max: mgl64.Vec3{eye.X() + halfWidth, eye.Y(), eye.Z() + halfWidth},
	}
}

// CellBox возвращает единичный куб ячейки
func CellBox(c vec.Vec3) AABB {
	center := mgl64.Vec3{float64(c.X), float64(c.Y), float64(c.Z)}
	half := mgl64.Vec3{0.5, 0.5, 0.5}
	return AABB{Min: center.Sub(half), Max: center.Add(half)}
}

// Intersects проверяет пересечение с допуском skin: касание и проникновение
// меньше skin пересечением не считаются
func (a AABB) Intersects(b AABB, skin float64) bool {
	for i := 0; i < 3; i++ {
		if a.Min[i] >= b.Max[i]-skin || a.Max[i] <= b.Min[i]+skin {
			return false
		}
	}
	return true
}

// Offset сдвигает коробку
func (a AABB) Offset(d mgl64.Vec3) AABB {
	return AABB{Min: a.Min.Add(d), Max: a.Max.Add(d)}
}

// CellRange возвращает диапазон ячеек, которых может касаться коробка
func (a AABB) CellRange() (lo, hi vec.Vec3) {
	lo = vec.CellOf(a.Min.X(), a.Min.Y(), a.Min.Z())
	hi = vec.CellOf(a.Max.X(), a.Max.Y(), a.Max.Z())
	return lo, hi
}
