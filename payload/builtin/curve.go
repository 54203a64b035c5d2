/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package builtin

import "sort"

// Keyframe is one control point of a CurveData.
type Keyframe struct {
	Time       float64 `json:"time" yaml:"time" dynamodbav:"time"`
	Value      float64 `json:"value" yaml:"value" dynamodbav:"value"`
	InTangent  float64 `json:"inTangent" yaml:"inTangent" dynamodbav:"inTangent"`
	OutTangent float64 `json:"outTangent" yaml:"outTangent" dynamodbav:"outTangent"`
}

// CurveData is a piecewise cubic Hermite curve. Keys are kept sorted by time.
type CurveData struct {
	Keys []Keyframe `json:"keys" yaml:"keys" dynamodbav:"keys"`
}

func (*CurveData) DomainData() {}

// AddKey inserts k keeping Keys ordered, replacing a key at the same time.
// It returns the index of the key.
func (c *CurveData) AddKey(k Keyframe) int {
	i := sort.Search(len(c.Keys), func(i int) bool { return c.Keys[i].Time >= k.Time })
	if i < len(c.Keys) && c.Keys[i].Time == k.Time {
		c.Keys[i] = k
		return i
	}
	c.Keys = append(c.Keys, Keyframe{})
	copy(c.Keys[i+1:], c.Keys[i:])
	c.Keys[i] = k
	return i
}

// Evaluate returns the curve value at t. Outside the key range the first or
// last value is held; an empty curve evaluates to 0.
func (c *CurveData) Evaluate(t float64) float64 {
	n := len(c.Keys)
	switch {
	case n == 0:
		return 0
	case t <= c.Keys[0].Time:
		return c.Keys[0].Value
	case t >= c.Keys[n-1].Time:
		return c.Keys[n-1].Value
	}

	// first key strictly after t; t is inside (Keys[0].Time, Keys[n-1].Time)
	i := sort.Search(n, func(i int) bool { return c.Keys[i].Time > t })
	k0, k1 := c.Keys[i-1], c.Keys[i]

	dt := k1.Time - k0.Time
	if dt == 0 {
		return k1.Value
	}
	s := (t - k0.Time) / dt
	s2 := s * s
	s3 := s2 * s

	h00 := 2*s3 - 3*s2 + 1
	h10 := s3 - 2*s2 + s
	h01 := -2*s3 + 3*s2
	h11 := s3 - s2

	return h00*k0.Value + h10*dt*k0.OutTangent + h01*k1.Value + h11*dt*k1.InTangent
}
