/*
Package codec converts bags to and from their persisted forms.

A bag persists as an ordered list of records:

	[
	  {"key": "health", "payloadTypeId": "IntData", "payloadFields": {"value": 90}},
	  {"key": "spawn",  "payloadTypeId": "Vector3Data", "payloadFields": {"x": 1, "y": 0, "z": 4}},
	  {"key": "unset",  "payloadTypeId": ""}
	]

The same shape is used for YAML and for DynamoDB (a list of M attribute
values). An empty payloadTypeId is an entry whose payload is absent.

Decoding validates each record, instantiates the payload through the
registry and then fills in its fields. A missing key or payloadTypeId is an
errors.ErrInvalidInput, an unregistered type id is errors.ErrUnknownType.
Either aborts the whole decode: no partially built bag is returned.
*/
package codec
