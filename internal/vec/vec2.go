package vec

import "math"

// ChunkShift: log2 размера колонки чанка
const ChunkShift = 4

// ChunkSize: ширина колонки чанка в блоках (16)
const ChunkSize = 1 << ChunkShift

// Vec2 представляет 2D координаты. Для колонок чанков Y хранит мировую ось Z.
type Vec2 struct {
	X, Y int
}

// ToChunkCoords преобразует глобальные координаты в координаты чанка
func (v Vec2) ToChunkCoords() Vec2 {
	return Vec2{X: v.X >> ChunkShift, Y: v.Y >> ChunkShift} // Деление на 16 с округлением вниз
}

// Origin возвращает мировые координаты угла чанка
func (v Vec2) Origin() Vec2 {
	return Vec2{X: v.X << ChunkShift, Y: v.Y << ChunkShift}
}

// ChebyshevTo возвращает расстояние Чебышёва (квадратная зона прогрузки)
func (v Vec2) ChebyshevTo(other Vec2) int {
	dx := abs(v.X - other.X)
	dy := abs(v.Y - other.Y)
	if dx > dy {
		return dx
	}
	return dy
}

// DistanceTo вычисляет расстояние до другой точки
func (v Vec2) DistanceTo(other Vec2) float64 {
	dx := float64(v.X - other.X)
	dy := float64(v.Y - other.Y)
	return math.Sqrt(dx*dx + dy*dy)
}
