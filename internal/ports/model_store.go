package ports

import (
	"io"

	"github.com/mikey/sms-spam-filter/internal/core"
)

// ModelStore is a model repository backed by a resource that must be closed
type ModelStore interface {
	core.ModelRepository
	io.Closer
}
