// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package store is the in-memory DataStore for constituency datasets.

Every dataset named in the catalog is read once at startup, from a JSON
file (the embedded data set or -data-dir) or from the dataset_record SQL
table, and kept unchanged for the life of the process.

	st := store.New(cat, data.FS, nil)
	st.Load(ctx)
	spec, ds, err := st.Get("bihar")

A dataset whose source is absent, unreadable or empty does not stop the
server. Get reports it with ErrDataSourceMissing and the viewer shows an
error row in its place.
*/
package store
