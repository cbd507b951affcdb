package variables_test

import (
	"bytes"
	"context"
	"errors"
	"os"
	"testing"

	"bennypowers.dev/vars2css/internal/log"
	"bennypowers.dev/vars2css/internal/variables"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStoreAddGet(t *testing.T) {
	ctx := context.Background()
	store := variables.NewMemoryStore()

	_, err := store.Variable(ctx, "VariableID:1:1")
	require.Error(t, err)
	assert.True(t, errors.Is(err, variables.ErrVariableNotFound))

	var notFound *variables.NotFoundError
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, "VariableID:1:1", notFound.ID)

	require.NoError(t, store.AddVariable(&variables.Variable{
		ID:           "VariableID:1:1",
		Name:         "Color/Red",
		ResolvedType: variables.TypeColor,
	}))

	v, err := store.Variable(ctx, "VariableID:1:1")
	require.NoError(t, err)
	assert.Equal(t, "Color/Red", v.Name)
	assert.Equal(t, 1, store.Count())
}

func TestMemoryStoreRejectsInvalid(t *testing.T) {
	store := variables.NewMemoryStore()

	assert.Error(t, store.AddVariable(nil))
	assert.Error(t, store.AddVariable(&variables.Variable{Name: "no id"}))
	assert.Error(t, store.AddCollection(variables.Collection{Name: "no id"}))
}

func TestMemoryStoreCollectionOrder(t *testing.T) {
	ctx := context.Background()
	store := variables.NewMemoryStore()

	require.NoError(t, store.AddCollection(variables.Collection{ID: "b", Name: "Second"}))
	require.NoError(t, store.AddCollection(variables.Collection{ID: "a", Name: "First"}))
	// Replacing keeps the original position
	require.NoError(t, store.AddCollection(variables.Collection{ID: "b", Name: "Second (renamed)"}))

	collections, err := store.Collections(ctx)
	require.NoError(t, err)
	require.Len(t, collections, 2)
	assert.Equal(t, "Second (renamed)", collections[0].Name)
	assert.Equal(t, "First", collections[1].Name)
}

func TestMemoryStoreMerge(t *testing.T) {
	ctx := context.Background()
	a := variables.NewMemoryStore()
	b := variables.NewMemoryStore()

	require.NoError(t, a.AddCollection(variables.Collection{ID: "c1"}))
	require.NoError(t, a.AddVariable(&variables.Variable{ID: "v1"}))
	require.NoError(t, b.AddCollection(variables.Collection{ID: "c2"}))
	require.NoError(t, b.AddVariable(&variables.Variable{ID: "v2"}))

	require.NoError(t, a.Merge(b))
	assert.Equal(t, 2, a.Count())

	collections, err := a.Collections(ctx)
	require.NoError(t, err)
	assert.Len(t, collections, 2)
}

func TestMemoryStoreMergeWarnsOnReplacedVariable(t *testing.T) {
	var buf bytes.Buffer
	log.SetOutput(&buf)
	t.Cleanup(func() { log.SetOutput(os.Stderr) })

	ctx := context.Background()
	light := variables.NewMemoryStore()
	dark := variables.NewMemoryStore()
	require.NoError(t, light.AddVariable(&variables.Variable{ID: "color.bg", Name: "color/bg",
		ValuesByMode: map[string]variables.Value{"value": variables.Color{R: 1, G: 1, B: 1, A: 1}}}))
	require.NoError(t, dark.AddVariable(&variables.Variable{ID: "color.bg", Name: "color/bg",
		ValuesByMode: map[string]variables.Value{"value": variables.Color{A: 1}}}))

	merged := variables.NewMemoryStore()
	require.NoError(t, merged.Merge(light))
	assert.Empty(t, buf.String())

	require.NoError(t, merged.Merge(dark))
	assert.Contains(t, buf.String(), "WARN")
	assert.Contains(t, buf.String(), "color.bg")

	v, err := merged.Variable(ctx, "color.bg")
	require.NoError(t, err)
	assert.Equal(t, variables.Color{A: 1}, v.ValuesByMode["value"], "the last definition wins")
	assert.Equal(t, 1, merged.Count())
}

func TestMemoryStoreHonoursCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	store := variables.NewMemoryStore()
	_, err := store.Collections(ctx)
	assert.ErrorIs(t, err, context.Canceled)
	_, err = store.Variable(ctx, "x")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestValueForMode(t *testing.T) {
	v := &variables.Variable{
		ValuesByMode: map[string]variables.Value{
			"1:0": variables.Number(8),
			"1:1": nil,
		},
	}

	val, ok := v.ValueForMode("1:0")
	assert.True(t, ok)
	assert.Equal(t, variables.Number(8), val)

	_, ok = v.ValueForMode("1:1")
	assert.False(t, ok, "nil values count as missing")

	_, ok = v.ValueForMode("2:0")
	assert.False(t, ok)

	var nilVar *variables.Variable
	_, ok = nilVar.ValueForMode("1:0")
	assert.False(t, ok)
}

func TestDefaultMode(t *testing.T) {
	c := variables.Collection{
		Modes: []variables.Mode{{ID: "1:0", Name: "Light"}, {ID: "1:1", Name: "Dark"}},
	}
	m, ok := c.DefaultMode()
	require.True(t, ok)
	assert.Equal(t, "Light", m.Name)

	c.DefaultModeID = "1:1"
	m, ok = c.DefaultMode()
	require.True(t, ok)
	assert.Equal(t, "Dark", m.Name)

	_, ok = (&variables.Collection{}).DefaultMode()
	assert.False(t, ok)
}

func TestErrorMessages(t *testing.T) {
	cause := variables.NewNotFoundError("VariableID:9:9")
	err := variables.NewUnresolvedReferenceError("VariableID:1:1", "1:0", "VariableID:9:9", cause)
	assert.ErrorIs(t, err, variables.ErrUnresolvedReference)
	assert.ErrorIs(t, err, variables.ErrVariableNotFound)
	assert.Contains(t, err.Error(), "VariableID:9:9")

	err = variables.NewCircularReferenceError([]string{"a", "b", "a"})
	assert.ErrorIs(t, err, variables.ErrCircularReference)
	assert.Equal(t, "circular alias reference: a -> b -> a", err.Error())
}

func TestResolvedTypeSupported(t *testing.T) {
	assert.True(t, variables.TypeColor.Supported())
	assert.True(t, variables.TypeFloat.Supported())
	assert.True(t, variables.TypeString.Supported())
	assert.False(t, variables.TypeBoolean.Supported())
	assert.False(t, variables.ResolvedType("").Supported())
}
