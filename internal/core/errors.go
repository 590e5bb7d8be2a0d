package core

import (
	"errors"
	"fmt"
)

// EntityType names the kind of record a lookup refers to.
type EntityType string

const (
	EntityLocation EntityType = "location"
	EntityReport   EntityType = "report"
)

// ErrNotFound is returned when a referenced record does not exist.
type ErrNotFound struct {
	Entity EntityType
	ID     string
}

func (e ErrNotFound) Error() string {
	return fmt.Sprintf("%s %s not found", e.Entity, e.ID)
}

// ErrReportsDisabled is returned by ExportReport when no blob store is configured.
var ErrReportsDisabled = errors.New("report export is not configured")

// IsNotFound reports whether err wraps an ErrNotFound.
func IsNotFound(err error) bool {
	var nf ErrNotFound
	return errors.As(err, &nf)
}
