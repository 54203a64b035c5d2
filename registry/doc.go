/*
Package registry manages the catalog of payload types a databag can hold.

Each concrete payload type is registered once, under a stable id that is
persisted next to its fields:

	registry.MustRegister[*HealthData](registry.Default(), "HealthData",
	    registry.WithDisplayName("Health"))

or with an explicit factory:

	reg.MustRegisterType("HealthData", func() payload.Payload {
	    return &HealthData{Value: 100}
	})

Capability interfaces can be declared with RegisterAbstract. They are kept
for documentation and lookups but never appear in ListTypes and cannot be
instantiated.

ListTypes is sorted by display name and cached; the cache is rebuilt on the
next call after a registration. Registration is expected to happen during
init, after which the registry is safe for concurrent readers.
*/
package registry
