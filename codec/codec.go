/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package codec

import (
	stderrors "errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/suparena/databag"
	"github.com/suparena/databag/errors"
	"github.com/suparena/databag/payload"
	"github.com/suparena/databag/registry"
)

// Attribute names of a persisted record, shared by every encoding.
const (
	FieldKey    = "key"
	FieldTypeID = "payloadTypeId"
	FieldFields = "payloadFields"
)

// header holds the parts of a record every encoding decodes the same way.
// Pointers distinguish a missing attribute from an empty one: an empty key
// is legal and an empty type id is the absent payload.
type header struct {
	Key    *string `json:"key" validate:"required"`
	TypeID *string `json:"payloadTypeId" validate:"required"`
}

// Codec converts containers to and from their persisted forms. Payload
// types are resolved through its registry.
type Codec struct {
	reg      *registry.Registry
	validate *validator.Validate
}

// New returns a Codec using reg, or registry.Default when reg is nil.
func New(reg *registry.Registry) *Codec {
	if reg == nil {
		reg = registry.Default()
	}
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "" || name == "-" {
			return f.Name
		}
		return name
	})
	return &Codec{reg: reg, validate: v}
}

// Registry returns the registry the codec resolves types with.
func (c *Codec) Registry() *registry.Registry {
	return c.reg
}

// typeIDOf returns the persisted id for p; "" for an absent payload.
func (c *Codec) typeIDOf(p payload.Payload) (string, error) {
	if payload.IsAbsent(p) {
		return "", nil
	}
	id, ok := c.reg.TypeIDOf(p)
	if !ok {
		return "", errors.NewUnknownTypeError(fmt.Sprintf("%T", p))
	}
	return id, nil
}

// decodeRecord validates h, instantiates the payload and lets fill populate
// it. fill is not called for absent payloads.
func (c *Codec) decodeRecord(h header, fill func(p payload.Payload) error) (*databag.Entry, error) {
	if err := c.validate.Struct(h); err != nil {
		var verrs validator.ValidationErrors
		if stderrors.As(err, &verrs) && len(verrs) > 0 {
			return nil, errors.NewValidationError(verrs[0].Field(), describe(verrs[0]))
		}
		return nil, errors.NewValidationError("", err.Error())
	}

	if *h.TypeID == "" {
		return &databag.Entry{Key: *h.Key}, nil
	}
	p, err := c.reg.Instantiate(*h.TypeID)
	if err != nil {
		return nil, err
	}
	if err := fill(p); err != nil {
		return nil, errors.NewValidationError(FieldFields, fmt.Sprintf("decode %s: %v", *h.TypeID, err))
	}
	return &databag.Entry{Key: *h.Key, Payload: p}, nil
}

func describe(fe validator.FieldError) string {
	if fe.Tag() == "required" {
		return "is required"
	}
	return fmt.Sprintf("failed on %q", fe.Tag())
}

// build assembles a container from decoded entries. Nothing is built when
// any record failed, so callers never see a partially decoded bag.
func build(entries []*databag.Entry) *databag.Container {
	bag := databag.New()
	for _, e := range entries {
		bag.Append(e.Key, e.Payload)
	}
	return bag
}

func entryError(i int, err error) error {
	return fmt.Errorf("entry %d: %w", i, err)
}
