package port

import (
	"io"

	"github.com/phreebee/dockyard/internal/domain/entity"
)

// LayoutCodec reads and writes the docking sub-tree of a session file.
type LayoutCodec interface {
	Encode(w io.Writer, layout *entity.DockLayout) error
	// Decode tolerates malformed records: they are skipped and reported
	// through the returned warnings rather than failing the whole read.
	Decode(r io.Reader) (layout *entity.DockLayout, warnings []error, err error)
}
