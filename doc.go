/*
Package databag provides a keyed container of heterogeneous, independently
typed payloads.

Each entry pairs a string key with a payload whose concrete type is chosen
at authoring time from a registry of known types. Values are read back with
a statically typed accessor that filters on both the key and the variant:

	bag := databag.New()

	hp := databag.GetOrCreate(bag, "health", func() *builtin.IntData {
	    return &builtin.IntData{Value: 100}
	})
	hp.Value -= 10

	if v, ok := databag.TryGet[*builtin.IntData](bag, "health"); ok {
	    fmt.Println(v.Value) // 90
	}

	// A capability interface works as well as a concrete variant.
	s, _ := databag.TryGet[builtin.Scalar](bag, "health")

Set matches on the key alone and replaces the payload in place, so it can
change the variant stored under a key:

	databag.Set(bag, "health", &builtin.FloatData{Value: 0.9})
	_, ok := databag.TryGet[*builtin.IntData](bag, "health") // ok == false

Editors work on the container positionally through Len, At, Append,
RemoveAt, ReplacePayloadAt and SetKeyAt; see package editor. Persisted forms
live in package codec, per-owner storage in packages datastore and library.

Related packages:
  - registry: payload type ids, factories and listings
  - payload/builtin: the shipped variants (int, float, vector, curve, ...)
  - codec: JSON, YAML and DynamoDB encodings
*/
package databag
