/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package codec

import (
	"encoding/json"
	"fmt"

	"github.com/suparena/databag"
	"github.com/suparena/databag/errors"
	"github.com/suparena/databag/payload"
)

type jsonRecord struct {
	Key    *string         `json:"key"`
	TypeID *string         `json:"payloadTypeId"`
	Fields json.RawMessage `json:"payloadFields,omitempty"`
}

// MarshalJSON encodes bag as a JSON array of records.
func (c *Codec) MarshalJSON(bag *databag.Container) ([]byte, error) {
	records := make([]jsonRecord, 0, bag.Len())
	for i, e := range bag.Entries() {
		p := payload.Normalize(e.Payload)
		id, err := c.typeIDOf(p)
		if err != nil {
			return nil, entryError(i, err)
		}
		key := e.Key
		rec := jsonRecord{Key: &key, TypeID: &id}
		if p != nil {
			fields, err := json.Marshal(p)
			if err != nil {
				return nil, entryError(i, fmt.Errorf("marshal payload fields: %w", err))
			}
			rec.Fields = fields
		}
		records = append(records, rec)
	}
	return json.Marshal(records)
}

// UnmarshalJSON decodes a JSON array of records.
func (c *Codec) UnmarshalJSON(data []byte) (*databag.Container, error) {
	var records []jsonRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, errors.NewValidationError("", fmt.Sprintf("malformed bag document: %v", err))
	}

	entries := make([]*databag.Entry, 0, len(records))
	for i, rec := range records {
		e, err := c.decodeRecord(header{Key: rec.Key, TypeID: rec.TypeID}, func(p payload.Payload) error {
			if len(rec.Fields) == 0 {
				return nil
			}
			return json.Unmarshal(rec.Fields, p)
		})
		if err != nil {
			return nil, entryError(i, err)
		}
		entries = append(entries, e)
	}
	return build(entries), nil
}
