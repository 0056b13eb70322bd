package block

import (
	"fmt"
	"time"
)

// DefaultHardness используется для незарегистрированных типов
const DefaultHardness = time.Second

// Behavior определяет свойства типа блока
type Behavior interface {
	ID() ID
	Name() string
	// Solid: занимает ли блок объём (коллизии, луч прицела)
	Solid() bool
	// Hardness: сколько удержания нужно для разрушения; < 0: неразрушаемый
	Hardness() time.Duration
	// Drop: что выпадает при разрушении (Air: ничего)
	Drop() ID
}

// IsSolid возвращает true, если блок данного типа твёрдый.
// Незарегистрированные непустые типы считаются твёрдыми.
func IsSolid(id ID) bool {
	if id == Air {
		return false
	}
	behavior, ok := Get(id)
	if !ok {
		return true
	}
	return behavior.Solid()
}

// HardnessOf возвращает прочность блока
func HardnessOf(id ID) time.Duration {
	behavior, ok := Get(id)
	if !ok {
		return DefaultHardness
	}
	return behavior.Hardness()
}

// IsBreakable сообщает, можно ли разрушить блок удержанием
func IsBreakable(id ID) bool {
	return id != Air && HardnessOf(id) >= 0
}

// DropOf возвращает тип выпадающего блока
func DropOf(id ID) ID {
	behavior, ok := Get(id)
	if !ok {
		return id
	}
	return behavior.Drop()
}

// String возвращает имя блока
func (id ID) String() string {
	if behavior, ok := Get(id); ok {
		return behavior.Name()
	}
	return fmt.Sprintf("Block(%d)", uint16(id))
}
