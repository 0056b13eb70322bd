package implementations

import (
	"time"

	"github.com/annel0/blockworld/internal/world/block"
)

// AirBehavior: пустота; в сетке не хранится, но нужна для имени и свойств
type AirBehavior struct{}

func (b *AirBehavior) ID() block.ID            { return block.Air }
func (b *AirBehavior) Name() string            { return "Air" }
func (b *AirBehavior) Solid() bool             { return false }
func (b *AirBehavior) Hardness() time.Duration { return 0 }
func (b *AirBehavior) Drop() block.ID          { return block.Air }
