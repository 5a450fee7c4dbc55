package persist

import (
	"fmt"
	"io"

	"github.com/vmihailenco/msgpack/v5"

	"github.com/passbi/transitcat/internal/catalogue"
	"github.com/passbi/transitcat/internal/render"
	"github.com/passbi/transitcat/internal/transit"
)

// Save assembles and encodes a Blob for the given catalogue/settings/router
// to w.
func Save(w io.Writer, cat *catalogue.Catalogue, renderSettings render.Settings, tr *transit.Router) error {
	blob := Build(cat, renderSettings, tr)
	if err := msgpack.NewEncoder(w).Encode(&blob); err != nil {
		return fmt.Errorf("%w: %v", ErrIO, err)
	}
	return nil
}

// Load decodes a blob from r and restores the catalogue, render settings,
// and ready-to-query router it describes.
func Load(r io.Reader) (*catalogue.Catalogue, render.Settings, *transit.Router, error) {
	var blob Blob
	if err := msgpack.NewDecoder(r).Decode(&blob); err != nil {
		return nil, render.Settings{}, nil, fmt.Errorf("%w: %v", ErrIO, err)
	}
	return Restore(blob)
}
