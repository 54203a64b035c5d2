/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

// Package builtin provides the payload variants shipped with databag and
// registers them with registry.Default on import.
package builtin

import (
	"github.com/suparena/databag/payload"
	"github.com/suparena/databag/registry"
)

// Scalar is the capability shared by the numeric-like variants.
type Scalar interface {
	payload.Payload
	Float64() float64
}

// IntData wraps an integer.
type IntData struct {
	Value int64 `json:"value" yaml:"value" dynamodbav:"value"`
}

func (*IntData) DomainData() {}

func (d *IntData) Float64() float64 { return float64(d.Value) }

// FloatData wraps a floating point number.
type FloatData struct {
	Value float64 `json:"value" yaml:"value" dynamodbav:"value"`
}

func (*FloatData) DomainData() {}

func (d *FloatData) Float64() float64 { return d.Value }

// BoolData wraps a flag.
type BoolData struct {
	Value bool `json:"value" yaml:"value" dynamodbav:"value"`
}

func (*BoolData) DomainData() {}

func (d *BoolData) Float64() float64 {
	if d.Value {
		return 1
	}
	return 0
}

// StringData wraps a string.
type StringData struct {
	Value string `json:"value" yaml:"value" dynamodbav:"value"`
}

func (*StringData) DomainData() {}

// Vector3Data wraps a 3-component vector.
type Vector3Data struct {
	X float64 `json:"x" yaml:"x" dynamodbav:"x"`
	Y float64 `json:"y" yaml:"y" dynamodbav:"y"`
	Z float64 `json:"z" yaml:"z" dynamodbav:"z"`
}

func (*Vector3Data) DomainData() {}

// ColorData is an RGBA color with components in [0, 1].
type ColorData struct {
	R float64 `json:"r" yaml:"r" dynamodbav:"r"`
	G float64 `json:"g" yaml:"g" dynamodbav:"g"`
	B float64 `json:"b" yaml:"b" dynamodbav:"b"`
	A float64 `json:"a" yaml:"a" dynamodbav:"a"`
}

func (*ColorData) DomainData() {}

// NewColorData returns opaque white, the registered default.
func NewColorData() *ColorData {
	return &ColorData{R: 1, G: 1, B: 1, A: 1}
}

// IDs under which the built-in variants are registered.
const (
	IntDataID        = "IntData"
	FloatDataID      = "FloatData"
	BoolDataID       = "BoolData"
	StringDataID     = "StringData"
	Vector3DataID    = "Vector3Data"
	ColorDataID      = "ColorData"
	CurveDataID      = "CurveData"
	ObjectRefsDataID = "ObjectRefsData"
	TimestampDataID  = "TimestampData"
	ScalarID         = "ScalarData"
)

func init() {
	if err := Register(registry.Default()); err != nil {
		panic(err)
	}
}

// Register adds the built-in variants to reg.
func Register(reg *registry.Registry) error {
	if err := registry.Register[*IntData](reg, IntDataID, registry.WithDisplayName("Int")); err != nil {
		return err
	}
	if err := registry.Register[*FloatData](reg, FloatDataID, registry.WithDisplayName("Float")); err != nil {
		return err
	}
	if err := registry.Register[*BoolData](reg, BoolDataID, registry.WithDisplayName("Bool")); err != nil {
		return err
	}
	if err := registry.Register[*StringData](reg, StringDataID, registry.WithDisplayName("String")); err != nil {
		return err
	}
	if err := registry.Register[*Vector3Data](reg, Vector3DataID, registry.WithDisplayName("Vector3")); err != nil {
		return err
	}
	if err := reg.RegisterType(ColorDataID, func() payload.Payload {
		return NewColorData()
	}, registry.WithDisplayName("Color")); err != nil {
		return err
	}
	if err := registry.Register[*CurveData](reg, CurveDataID, registry.WithDisplayName("Curve")); err != nil {
		return err
	}
	if err := registry.Register[*ObjectRefsData](reg, ObjectRefsDataID, registry.WithDisplayName("Object References")); err != nil {
		return err
	}
	if err := registry.Register[*TimestampData](reg, TimestampDataID, registry.WithDisplayName("Timestamp")); err != nil {
		return err
	}
	return reg.RegisterAbstract(ScalarID, registry.WithDisplayName("Scalar"))
}
