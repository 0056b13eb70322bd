package sim

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/annel0/blockworld/internal/input"
)

func TestScriptOneShotFields(t *testing.T) {
	sc := NewScript(false,
		Step{Intents: input.Intents{Forward: true, LookDX: 5}, Ticks: 2},
		Step{Intents: input.Intents{}, Ticks: 0},
		Step{Intents: input.Intents{CrouchToggle: true, Pointer: []input.PointerEvent{{ID: 1}}}, Ticks: 2},
	)

	in, ok := sc.Next()
	require.True(t, ok)
	assert.True(t, in.Forward)
	assert.Equal(t, 5.0, in.LookDX)

	in, ok = sc.Next()
	require.True(t, ok)
	assert.True(t, in.Forward)
	assert.Zero(t, in.LookDX, "взгляд только в первом тике шага")

	in, _ = sc.Next()
	assert.True(t, in.CrouchToggle)
	assert.Len(t, in.Pointer, 1)

	in, _ = sc.Next()
	assert.False(t, in.CrouchToggle)
	assert.Empty(t, in.Pointer)

	_, ok = sc.Next()
	assert.False(t, ok)
}

func TestScriptLoops(t *testing.T) {
	sc := NewScript(true, Step{Intents: input.Intents{Jump: true}, Ticks: 1})
	for i := 0; i < 5; i++ {
		in, ok := sc.Next()
		require.True(t, ok)
		assert.True(t, in.Jump)
	}

	_, ok := NewScript(true).Next()
	assert.False(t, ok, "пустой сценарий не зацикливается")
}

func TestScriptRun(t *testing.T) {
	s := flatSession(t, Options{})
	sc := NewScript(false, Step{Intents: input.Intents{Back: true}, Ticks: 5})

	results := sc.Run(context.Background(), s, 100)
	require.Len(t, results, 5)
	assert.InDelta(t, 0.6, results[4].Pose.Position.Z(), 1e-9)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.Empty(t, NewScript(true, Step{Ticks: 1}).Run(ctx, s, 10))
}

func TestScriptLoopWithoutPositiveSteps(t *testing.T) {
	sc := NewScript(true, Step{Ticks: 0}, Step{Intents: input.Intents{Jump: true}, Ticks: -3})
	_, ok := sc.Next()
	assert.False(t, ok, "зацикленный сценарий без тиков заканчивается сразу")

	_, ok = NewScript(true).Next()
	assert.False(t, ok)
}

func TestScriptLoopSkipsLeadingEmptySteps(t *testing.T) {
	sc := NewScript(true,
		Step{Ticks: 0},
		Step{Intents: input.Intents{Forward: true}, Ticks: 1},
	)
	for i := 0; i < 3; i++ {
		in, ok := sc.Next()
		require.True(t, ok)
		assert.True(t, in.Forward, "тик %d", i)
	}
}
