package vec

import "math"

// Vec3: целочисленные координаты ячейки сетки (центр куба).
type Vec3 struct {
	X int
	Y int
	Z int
}

// Нормали граней куба
var (
	PosX = Vec3{X: 1}
	NegX = Vec3{X: -1}
	PosY = Vec3{Y: 1}
	NegY = Vec3{Y: -1}
	PosZ = Vec3{Z: 1}
	NegZ = Vec3{Z: -1}
)

// CellOf возвращает ячейку, которой принадлежит точка.
// Ячейка (x,y,z) занимает [x-0.5, x+0.5] по каждой оси.
func CellOf(x, y, z float64) Vec3 {
	return Vec3{X: CellIndex(x), Y: CellIndex(y), Z: CellIndex(z)}
}

// CellIndex переводит непрерывную координату в индекс ячейки
func CellIndex(v float64) int {
	return int(math.Floor(v + 0.5))
}

// ToChunkCoords возвращает координаты колонки чанка (X,Z -> Vec2)
func (v Vec3) ToChunkCoords() Vec2 {
	return Vec2{X: v.X, Y: v.Z}.ToChunkCoords()
}

// Add складывает два вектора
func (v Vec3) Add(other Vec3) Vec3 {
	return Vec3{
		X: v.X + other.X,
		Y: v.Y + other.Y,
		Z: v.Z + other.Z,
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
