// Package library keeps open bags per owner in memory over a
// datastore.DataStore, loading them on first use and writing them back on
// Save.
package library
