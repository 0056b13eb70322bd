package physics

import (
	"math"

	"github.com/annel0/blockworld/internal/vec"
	"github.com/annel0/blockworld/internal/world/block"
	"github.com/go-gl/mathgl/mgl64"
)

// DefaultReach: дальность прицела по умолчанию
const DefaultReach = 5.0

// BlockReader: доступ к сетке для луча
type BlockReader interface {
	Get(pos vec.Vec3) block.ID
}

// AimHit: результат луча. Hit == false означает «нет цели».
type AimHit struct {
	Hit      bool
	Cell     vec.Vec3 // Ячейка, в которую попал луч
	Block    block.ID // Блок в этой ячейке
	Normal   vec.Vec3 // Нормаль грани, через которую луч вошёл
	Distance float64  // Расстояние от начала луча до грани
}

// PlaceCell возвращает ячейку для установки блока: соседняя по нормали
func (h AimHit) PlaceCell() vec.Vec3 {
	return h.Cell.Add(h.Normal)
}

// Targets сообщает, смотрит ли прицел на ячейку cell. Грань не учитывается:
// другая грань той же ячейки остаётся той же целью.
func (h AimHit) Targets(cell vec.Vec3) bool {
	return h.Hit && h.Cell == cell
}

// Raycaster ищет ближайший непустой блок вдоль взгляда
type Raycaster struct {
	world BlockReader
	reach float64
}

// NewRaycaster создаёт луч с заданной дальностью
func NewRaycaster(world BlockReader, reach float64) *Raycaster {
	if reach <= 0 {
		reach = DefaultReach
	}
	return &Raycaster{world: world, reach: reach}
}

// Reach возвращает дальность луча
func (rc *Raycaster) Reach() float64 {
	return rc.reach
}

// LookDirection возвращает единичный вектор взгляда. yaw = 0 смотрит в -Z,
// положительный pitch поднимает взгляд.
func LookDirection(yaw, pitch float64) mgl64.Vec3 {
	cp := math.Cos(pitch)
	return mgl64.Vec3{-math.Sin(yaw) * cp, math.Sin(pitch), -math.Cos(yaw) * cp}
}

// Cast пускает луч из origin по direction. Ячейка, в которой находится
// origin, не проверяется.
func (rc *Raycaster) Cast(origin, direction mgl64.Vec3) AimHit {
	if direction.Len() == 0 {
		return AimHit{}
	}
	dir := direction.Normalize()

	// В сдвинутых координатах ячейка c занимает [c, c+1)
	start := origin.Add(mgl64.Vec3{0.5, 0.5, 0.5})

	var cell, step [3]int
	var tMax, tDelta [3]float64
	for i := 0; i < 3; i++ {
		cell[i] = int(math.Floor(start[i]))
		switch {
		case dir[i] > 0:
			step[i] = 1
			tDelta[i] = 1 / dir[i]
			tMax[i] = (float64(cell[i]+1) - start[i]) * tDelta[i]
		case dir[i] < 0:
			step[i] = -1
			tDelta[i] = -1 / dir[i]
			tMax[i] = (start[i] - float64(cell[i])) * tDelta[i]
		default:
			tDelta[i] = math.Inf(1)
			tMax[i] = math.Inf(1)
		}
	}

	for {
		// Ось ближайшей границы
		axis := 0
		if tMax[1] < tMax[axis] {
			axis = 1
		}
		if tMax[2] < tMax[axis] {
			axis = 2
		}

		dist := tMax[axis]
		if dist > rc.reach {
			return AimHit{}
		}
		tMax[axis] += tDelta[axis]
		cell[axis] += step[axis]

		pos := vec.Vec3{X: cell[0], Y: cell[1], Z: cell[2]}
		id := rc.world.Get(pos)
		if id == block.Air {
			continue
		}

		var normal [3]int
		normal[axis] = -step[axis]
		return AimHit{
			Hit:      true,
			Cell:     pos,
			Block:    id,
			Normal:   vec.Vec3{X: normal[0], Y: normal[1], Z: normal[2]},
			Distance: dist,
		}
	}
}
