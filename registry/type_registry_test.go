/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package registry_test

import (
	"sync"
	"testing"

	"github.com/suparena/databag/errors"
	"github.com/suparena/databag/payload"
	"github.com/suparena/databag/registry"
)

type speedData struct {
	Value float64
}

func (*speedData) DomainData() {}

type labelData struct {
	Text string
}

func (*labelData) DomainData() {}

type armorData struct {
	Rating int
	Tags   []string
}

func (*armorData) DomainData() {}

type valueData struct{}

func (valueData) DomainData() {}

func newTestRegistry(t *testing.T) *registry.Registry {
	t.Helper()
	reg := registry.New()
	if err := registry.Register[*speedData](reg, "SpeedData", registry.WithDisplayName("Speed")); err != nil {
		t.Fatalf("Register speed: %v", err)
	}
	if err := registry.Register[*labelData](reg, "LabelData", registry.WithDisplayName("Label")); err != nil {
		t.Fatalf("Register label: %v", err)
	}
	if err := reg.RegisterType("ArmorData", func() payload.Payload {
		return &armorData{Rating: 10}
	}, registry.WithDisplayName("Armor")); err != nil {
		t.Fatalf("Register armor: %v", err)
	}
	if err := reg.RegisterAbstract("Stat", registry.WithDisplayName("Abstract Stat")); err != nil {
		t.Fatalf("Register abstract: %v", err)
	}
	return reg
}

func TestListTypes(t *testing.T) {
	reg := newTestRegistry(t)

	types := reg.ListTypes()
	want := []string{"ArmorData", "LabelData", "SpeedData"}
	if len(types) != len(want) {
		t.Fatalf("Expected %d types, got %d: %+v", len(want), len(types), types)
	}
	seen := make(map[string]bool)
	for i, desc := range types {
		if desc.ID != want[i] {
			t.Errorf("Position %d: expected %s, got %s", i, want[i], desc.ID)
		}
		if desc.Abstract {
			t.Errorf("Abstract type %s must not be listed", desc.ID)
		}
		if seen[desc.ID] {
			t.Errorf("Type %s listed twice", desc.ID)
		}
		seen[desc.ID] = true
	}

	t.Run("CacheRebuiltAfterRegistration", func(t *testing.T) {
		if err := reg.RegisterType("ZoneData", func() payload.Payload { return &speedData{} }); err == nil {
			t.Fatal("Expected duplicate Go type to be rejected")
		}
		if err := registry.Register[*valueData](reg, "ValueData"); err != nil {
			t.Fatalf("Register value: %v", err)
		}
		types := reg.ListTypes()
		if len(types) != 4 || types[3].ID != "ValueData" {
			t.Fatalf("Expected ValueData appended to listing, got %+v", types)
		}
	})
}

func TestInstantiate(t *testing.T) {
	reg := newTestRegistry(t)

	t.Run("Defaults", func(t *testing.T) {
		p, err := reg.Instantiate("ArmorData")
		if err != nil {
			t.Fatalf("Instantiate failed: %v", err)
		}
		armor, ok := p.(*armorData)
		if !ok {
			t.Fatalf("Expected *armorData, got %T", p)
		}
		if armor.Rating != 10 {
			t.Errorf("Expected factory default 10, got %d", armor.Rating)
		}

		s, err := reg.Instantiate("SpeedData")
		if err != nil {
			t.Fatalf("Instantiate failed: %v", err)
		}
		if speed := s.(*speedData); speed.Value != 0 {
			t.Errorf("Expected zero value, got %v", speed.Value)
		}
	})

	t.Run("FreshInstances", func(t *testing.T) {
		a, _ := reg.Instantiate("LabelData")
		b, _ := reg.Instantiate("LabelData")
		if a == b {
			t.Fatal("Instantiate must return a new instance on every call")
		}
	})

	t.Run("UnknownType", func(t *testing.T) {
		p, err := reg.Instantiate("MissingData")
		if !errors.IsUnknownType(err) {
			t.Fatalf("Expected unknown type error, got %v", err)
		}
		if p != nil {
			t.Fatalf("Expected nil payload, got %T", p)
		}
	})

	t.Run("AbstractType", func(t *testing.T) {
		if _, err := reg.Instantiate("Stat"); !errors.IsUnknownType(err) {
			t.Fatalf("Expected abstract type to be rejected, got %v", err)
		}
		if desc, ok := reg.Lookup("Stat"); !ok || !desc.Abstract {
			t.Fatalf("Expected abstract descriptor from Lookup, got %+v", desc)
		}
	})
}

func TestIndexOf(t *testing.T) {
	reg := newTestRegistry(t)

	if i, ok := reg.IndexOf("LabelData"); !ok || i != 1 {
		t.Errorf("Expected LabelData at 1, got %d (%v)", i, ok)
	}
	if _, ok := reg.IndexOf("Stat"); ok {
		t.Error("Abstract types have no index")
	}
	if _, ok := reg.IndexOf("MissingData"); ok {
		t.Error("Unknown types have no index")
	}

	if i, ok := reg.IndexOfPayload(&speedData{Value: 3}); !ok || i != 2 {
		t.Errorf("Expected SpeedData payload at 2, got %d (%v)", i, ok)
	}
	if _, ok := reg.IndexOfPayload(nil); ok {
		t.Error("Nil payload has no index")
	}
	if _, ok := reg.IndexOfPayload(valueData{}); ok {
		t.Error("Unregistered payload has no index")
	}

	if id, ok := reg.TypeIDOf(&armorData{}); !ok || id != "ArmorData" {
		t.Errorf("Expected ArmorData, got %q (%v)", id, ok)
	}
}

func TestRegistrationErrors(t *testing.T) {
	reg := newTestRegistry(t)

	tests := []struct {
		name  string
		run   func() error
		check func(error) bool
	}{
		{
			name:  "DuplicateID",
			run:   func() error { return registry.Register[*valueData](reg, "SpeedData") },
			check: errors.IsAlreadyExists,
		},
		{
			name:  "DuplicateAbstractID",
			run:   func() error { return reg.RegisterAbstract("LabelData") },
			check: errors.IsAlreadyExists,
		},
		{
			name:  "EmptyID",
			run:   func() error { return registry.Register[*valueData](reg, "") },
			check: errors.IsValidationError,
		},
		{
			name:  "NilFactory",
			run:   func() error { return reg.RegisterType("NilData", nil) },
			check: errors.IsValidationError,
		},
		{
			name: "FactoryReturnsNil",
			run: func() error {
				return reg.RegisterType("NilData", func() payload.Payload { return nil })
			},
			check: errors.IsValidationError,
		},
		{
			name:  "NonPointerVariant",
			run:   func() error { return registry.Register[valueData](reg, "PlainValue") },
			check: errors.IsValidationError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.run()
			if !tt.check(err) {
				t.Fatalf("Unexpected error: %v", err)
			}
		})
	}

	t.Run("MustRegisterPanics", func(t *testing.T) {
		defer func() {
			if recover() == nil {
				t.Fatal("Expected panic on duplicate registration")
			}
		}()
		registry.MustRegister[*speedData](reg, "SpeedData")
	})
}

func TestConcurrentReads(t *testing.T) {
	reg := newTestRegistry(t)
	reg.ListTypes()

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if len(reg.ListTypes()) != 3 {
				t.Error("Unexpected listing size")
			}
			if _, err := reg.Instantiate("SpeedData"); err != nil {
				t.Errorf("Instantiate failed: %v", err)
			}
		}()
	}
	wg.Wait()
}
