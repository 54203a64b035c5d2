/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package builtin

import (
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/go-openapi/strfmt"
	"github.com/google/uuid"

	"github.com/suparena/databag/errors"
)

// ObjectRefsData holds references to other objects by id.
type ObjectRefsData struct {
	Refs []strfmt.UUID `json:"refs" yaml:"refs" dynamodbav:"refs"`
}

func (*ObjectRefsData) DomainData() {}

// Add appends a reference.
func (d *ObjectRefsData) Add(id uuid.UUID) {
	d.Refs = append(d.Refs, strfmt.UUID(id.String()))
}

// Contains reports whether id is referenced.
func (d *ObjectRefsData) Contains(id uuid.UUID) bool {
	want := id.String()
	for _, ref := range d.Refs {
		if string(ref) == want {
			return true
		}
	}
	return false
}

// Validate checks that every reference parses as a UUID.
func (d *ObjectRefsData) Validate() error {
	for i, ref := range d.Refs {
		if _, err := uuid.Parse(string(ref)); err != nil {
			return errors.NewValidationError(fmt.Sprintf("refs[%d]", i), err.Error())
		}
	}
	return nil
}

// TimestampData wraps a point in time.
type TimestampData struct {
	At strfmt.DateTime `json:"at" yaml:"at"`
}

func (*TimestampData) DomainData() {}

// Time returns the wrapped value as a time.Time.
func (d *TimestampData) Time() time.Time {
	return time.Time(d.At)
}

// MarshalDynamoDBAttributeValue stores the timestamp as its string form;
// strfmt.DateTime has no attribute value encoding of its own.
func (d *TimestampData) MarshalDynamoDBAttributeValue() (types.AttributeValue, error) {
	return &types.AttributeValueMemberM{Value: map[string]types.AttributeValue{
		"at": &types.AttributeValueMemberS{Value: d.At.String()},
	}}, nil
}

// UnmarshalDynamoDBAttributeValue is the inverse of MarshalDynamoDBAttributeValue.
func (d *TimestampData) UnmarshalDynamoDBAttributeValue(av types.AttributeValue) error {
	m, ok := av.(*types.AttributeValueMemberM)
	if !ok {
		return errors.NewValidationError("at", fmt.Sprintf("expected map attribute, got %T", av))
	}
	at, ok := m.Value["at"]
	if !ok {
		*d = TimestampData{}
		return nil
	}
	s, ok := at.(*types.AttributeValueMemberS)
	if !ok {
		return errors.NewValidationError("at", fmt.Sprintf("expected string attribute, got %T", at))
	}
	parsed, err := strfmt.ParseDateTime(s.Value)
	if err != nil {
		return errors.NewValidationError("at", err.Error())
	}
	d.At = parsed
	return nil
}
