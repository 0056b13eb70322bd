package implementations

import (
	"time"

	"github.com/annel0/blockworld/internal/world/block"
)

// WoodBehavior: ствол дерева
type WoodBehavior struct{}

func (b *WoodBehavior) ID() block.ID            { return block.Wood }
func (b *WoodBehavior) Name() string            { return "Wood" }
func (b *WoodBehavior) Solid() bool             { return true }
func (b *WoodBehavior) Hardness() time.Duration { return time.Second }
func (b *WoodBehavior) Drop() block.ID          { return block.Wood }

// LeafBehavior: листва. Ломается быстро и ничего не оставляет
type LeafBehavior struct{}

func (b *LeafBehavior) ID() block.ID            { return block.Leaf }
func (b *LeafBehavior) Name() string            { return "Leaf" }
func (b *LeafBehavior) Solid() bool             { return true }
func (b *LeafBehavior) Hardness() time.Duration { return 300 * time.Millisecond }
func (b *LeafBehavior) Drop() block.ID          { return block.Air }
