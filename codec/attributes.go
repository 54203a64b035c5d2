/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package codec

import (
	"fmt"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/suparena/databag"
	"github.com/suparena/databag/errors"
	"github.com/suparena/databag/payload"
)

// MarshalAttributes encodes bag as a DynamoDB list of record maps.
// Payload fields are encoded with attributevalue and honour dynamodbav tags.
func (c *Codec) MarshalAttributes(bag *databag.Container) (*types.AttributeValueMemberL, error) {
	list := make([]types.AttributeValue, 0, bag.Len())
	for i, e := range bag.Entries() {
		p := payload.Normalize(e.Payload)
		id, err := c.typeIDOf(p)
		if err != nil {
			return nil, entryError(i, err)
		}
		rec := map[string]types.AttributeValue{
			FieldKey:    &types.AttributeValueMemberS{Value: e.Key},
			FieldTypeID: &types.AttributeValueMemberS{Value: id},
		}
		if p != nil {
			fields, err := attributevalue.Marshal(p)
			if err != nil {
				return nil, entryError(i, fmt.Errorf("marshal payload fields: %w", err))
			}
			rec[FieldFields] = fields
		}
		list = append(list, &types.AttributeValueMemberM{Value: rec})
	}
	return &types.AttributeValueMemberL{Value: list}, nil
}

// UnmarshalAttributes decodes the list produced by MarshalAttributes.
func (c *Codec) UnmarshalAttributes(av types.AttributeValue) (*databag.Container, error) {
	var list []types.AttributeValue
	switch v := av.(type) {
	case *types.AttributeValueMemberL:
		list = v.Value
	case *types.AttributeValueMemberNULL, nil:
	default:
		return nil, errors.NewValidationError("", fmt.Sprintf("malformed bag attribute: expected list, got %T", av))
	}

	entries := make([]*databag.Entry, 0, len(list))
	for i, item := range list {
		rec, ok := item.(*types.AttributeValueMemberM)
		if !ok {
			return nil, entryError(i, errors.NewValidationError("", fmt.Sprintf("expected map, got %T", item)))
		}
		h, err := attributeHeader(rec.Value)
		if err != nil {
			return nil, entryError(i, err)
		}
		e, err := c.decodeRecord(h, func(p payload.Payload) error {
			fields, ok := rec.Value[FieldFields]
			if !ok {
				return nil
			}
			return attributevalue.Unmarshal(fields, p)
		})
		if err != nil {
			return nil, entryError(i, err)
		}
		entries = append(entries, e)
	}
	return build(entries), nil
}

func attributeHeader(rec map[string]types.AttributeValue) (header, error) {
	var h header
	for name, dst := range map[string]**string{FieldKey: &h.Key, FieldTypeID: &h.TypeID} {
		av, ok := rec[name]
		if !ok {
			continue
		}
		if err := attributevalue.Unmarshal(av, dst); err != nil {
			return header{}, errors.NewValidationError(name, err.Error())
		}
	}
	return h, nil
}
