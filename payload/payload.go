/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

// Package payload defines the capability every value stored in a databag
// must implement.
package payload

import "reflect"

// Payload marks a type as domain data that can live in a bag entry.
//
// Variants are concrete pointer types with a no-op DomainData method:
//
//	type HealthData struct {
//	    Value int `json:"value" yaml:"value" dynamodbav:"value"`
//	}
//
//	func (*HealthData) DomainData() {}
//
// Fields should carry json, yaml and dynamodbav tags so the codec can
// persist them.
type Payload interface {
	DomainData()
}

// IsAbsent reports whether p holds no value. Both a nil interface and a
// typed nil pointer such as (*HealthData)(nil) are absent.
func IsAbsent(p Payload) bool {
	if p == nil {
		return true
	}
	v := reflect.ValueOf(p)
	switch v.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Interface, reflect.Func, reflect.Chan:
		return v.IsNil()
	}
	return false
}

// Normalize returns nil for an absent payload and p otherwise.
func Normalize(p Payload) Payload {
	if IsAbsent(p) {
		return nil
	}
	return p
}
