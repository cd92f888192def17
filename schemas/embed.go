// Package schemas holds the JSON Schema files of the persisted data formats.
package schemas

import "embed"

// SnapshotSchema is the file name of the persisted snapshot schema.
const SnapshotSchema = "snapshot.schema.json"

// Files contains every *.schema.json file of this directory.
//
//go:embed *.schema.json
var Files embed.FS
