package cmd

import (
	"github.com/stepflowhq/stepflow/pkg/persistence"
	"github.com/stepflowhq/stepflow/pkg/persistence/file"
)

// NewPersistence creates draft storage from a storage URL. Only the
// file provider exists today; the URL form keeps room for others.
func NewPersistence(storageURL string) persistence.Persistence {
	return file.NewPersistence(storageURL)
}
