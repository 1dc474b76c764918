package dmi

import (
	"log"

	"github.com/rm-hull/dmi-tools/internal/png/stage"
)

// Host adapts the operations to the string-in / string-out convention of the
// calling game runtime. Mutating calls return "" on success and the error text
// on failure.
type Host struct {
	ResizeBackend stage.Backend
}

func NewHost(backend stage.Backend) *Host {
	return &Host{ResizeBackend: backend}
}

func errString(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}

func (h *Host) StripMetadata(path string) string {
	return errString(Strip(path))
}

func (h *Host) CreatePNG(path, width, height, data string) string {
	return errString(CreatePNG(path, width, height, data))
}

// ResizePNG resolves filterName with stage.ParseFilter, so unknown names
// resize with nearest-neighbour.
func (h *Host) ResizePNG(path, width, height, filterName string) string {
	return errString(Resize(path, width, height, stage.ParseFilter(filterName), h.ResizeBackend))
}

// IconStates returns the JSON array of state names, or "" if anything went
// wrong. The error itself is only logged; the caller treats "" as "no states
// known".
func (h *Host) IconStates(path string) string {
	states, err := StatesJSON(path)
	if err != nil {
		log.Printf("Failed to read icon states: %v", err)
		return ""
	}
	return states
}
