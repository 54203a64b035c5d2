/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package builtin_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/suparena/databag/errors"
	"github.com/suparena/databag/payload/builtin"
	"github.com/suparena/databag/registry"
)

func TestDefaultRegistry(t *testing.T) {
	types := registry.Default().ListTypes()

	var names []string
	for _, desc := range types {
		names = append(names, desc.DisplayName)
	}
	assert.Equal(t, []string{
		"Bool", "Color", "Curve", "Float", "Int",
		"Object References", "String", "Timestamp", "Vector3",
	}, names)

	_, ok := registry.Default().IndexOf(builtin.ScalarID)
	assert.False(t, ok, "abstract Scalar must not be listed")
}

func TestRegisterTwice(t *testing.T) {
	reg := registry.New()
	require.NoError(t, builtin.Register(reg))

	err := builtin.Register(reg)
	assert.True(t, errors.IsAlreadyExists(err), "got %v", err)
}

func TestColorDefault(t *testing.T) {
	p, err := registry.Default().Instantiate(builtin.ColorDataID)
	require.NoError(t, err)
	assert.Equal(t, &builtin.ColorData{R: 1, G: 1, B: 1, A: 1}, p)
}

func TestScalarCapability(t *testing.T) {
	scalars := []builtin.Scalar{
		&builtin.IntData{Value: 4},
		&builtin.FloatData{Value: 2.5},
		&builtin.BoolData{Value: true},
	}
	want := []float64{4, 2.5, 1}
	for i, s := range scalars {
		assert.Equal(t, want[i], s.Float64())
	}
}

func TestCurve(t *testing.T) {
	t.Run("Empty", func(t *testing.T) {
		var c builtin.CurveData
		assert.Equal(t, 0.0, c.Evaluate(3))
	})

	t.Run("AddKeyKeepsOrder", func(t *testing.T) {
		var c builtin.CurveData
		c.AddKey(builtin.Keyframe{Time: 2, Value: 20})
		c.AddKey(builtin.Keyframe{Time: 0, Value: 0})
		i := c.AddKey(builtin.Keyframe{Time: 1, Value: 10})
		assert.Equal(t, 1, i)

		i = c.AddKey(builtin.Keyframe{Time: 2, Value: 25})
		assert.Equal(t, 2, i)
		require.Len(t, c.Keys, 3)
		assert.Equal(t, []float64{0, 1, 2}, []float64{c.Keys[0].Time, c.Keys[1].Time, c.Keys[2].Time})
		assert.Equal(t, 25.0, c.Keys[2].Value)
	})

	t.Run("Evaluate", func(t *testing.T) {
		c := builtin.CurveData{Keys: []builtin.Keyframe{
			{Time: 0, Value: 0, OutTangent: 1},
			{Time: 2, Value: 2, InTangent: 1},
		}}
		// unit tangents on a unit slope reproduce the line
		assert.InDelta(t, 0.5, c.Evaluate(0.5), 1e-9)
		assert.InDelta(t, 1.0, c.Evaluate(1), 1e-9)
		assert.InDelta(t, 1.5, c.Evaluate(1.5), 1e-9)

		assert.Equal(t, 0.0, c.Evaluate(-1))
		assert.Equal(t, 2.0, c.Evaluate(5))
	})

	t.Run("FlatTangents", func(t *testing.T) {
		c := builtin.CurveData{Keys: []builtin.Keyframe{
			{Time: 0, Value: 0},
			{Time: 1, Value: 1},
		}}
		assert.InDelta(t, 0.5, c.Evaluate(0.5), 1e-9)
		assert.InDelta(t, 0.15625, c.Evaluate(0.25), 1e-9)
	})
}

func TestObjectRefs(t *testing.T) {
	id := uuid.New()
	var refs builtin.ObjectRefsData
	refs.Add(id)

	assert.True(t, refs.Contains(id))
	assert.False(t, refs.Contains(uuid.New()))
	assert.NoError(t, refs.Validate())

	refs.Refs = append(refs.Refs, "not-a-uuid")
	err := refs.Validate()
	assert.True(t, errors.IsValidationError(err), "got %v", err)
	assert.Contains(t, err.Error(), "refs[1]")
}
