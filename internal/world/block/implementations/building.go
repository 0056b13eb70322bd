package implementations

import (
	"time"

	"github.com/annel0/blockworld/internal/world/block"
)

// PlanksBehavior: строительные доски из хотбара
type PlanksBehavior struct{}

func (b *PlanksBehavior) ID() block.ID            { return block.Planks }
func (b *PlanksBehavior) Name() string            { return "Planks" }
func (b *PlanksBehavior) Solid() bool             { return true }
func (b *PlanksBehavior) Hardness() time.Duration { return 800 * time.Millisecond }
func (b *PlanksBehavior) Drop() block.ID          { return block.Planks }

// GlassBehavior: стекло разбивается без дропа
type GlassBehavior struct{}

func (b *GlassBehavior) ID() block.ID            { return block.Glass }
func (b *GlassBehavior) Name() string            { return "Glass" }
func (b *GlassBehavior) Solid() bool             { return true }
func (b *GlassBehavior) Hardness() time.Duration { return 300 * time.Millisecond }
func (b *GlassBehavior) Drop() block.ID          { return block.Air }
