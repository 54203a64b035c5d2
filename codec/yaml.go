/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package codec

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/suparena/databag"
	"github.com/suparena/databag/errors"
	"github.com/suparena/databag/payload"
)

type yamlRecord struct {
	Key    *string    `yaml:"key"`
	TypeID *string    `yaml:"payloadTypeId"`
	Fields *yaml.Node `yaml:"payloadFields,omitempty"`
}

// MarshalYAML encodes bag as a YAML sequence of records.
func (c *Codec) MarshalYAML(bag *databag.Container) ([]byte, error) {
	records := make([]yamlRecord, 0, bag.Len())
	for i, e := range bag.Entries() {
		p := payload.Normalize(e.Payload)
		id, err := c.typeIDOf(p)
		if err != nil {
			return nil, entryError(i, err)
		}
		key := e.Key
		rec := yamlRecord{Key: &key, TypeID: &id}
		if p != nil {
			var node yaml.Node
			if err := node.Encode(p); err != nil {
				return nil, entryError(i, fmt.Errorf("marshal payload fields: %w", err))
			}
			rec.Fields = &node
		}
		records = append(records, rec)
	}
	return yaml.Marshal(records)
}

// UnmarshalYAML decodes a YAML sequence of records.
func (c *Codec) UnmarshalYAML(data []byte) (*databag.Container, error) {
	var records []yamlRecord
	if err := yaml.Unmarshal(data, &records); err != nil {
		return nil, errors.NewValidationError("", fmt.Sprintf("malformed bag document: %v", err))
	}

	entries := make([]*databag.Entry, 0, len(records))
	for i, rec := range records {
		e, err := c.decodeRecord(header{Key: rec.Key, TypeID: rec.TypeID}, func(p payload.Payload) error {
			if rec.Fields == nil {
				return nil
			}
			return rec.Fields.Decode(p)
		})
		if err != nil {
			return nil, entryError(i, err)
		}
		entries = append(entries, e)
	}
	return build(entries), nil
}
