package testutils

import (
	"github.com/cellbridge/bridged/domain/bridge/model/externalapi"
)

// CountingHost counts the cell data reads made through a Host.
type CountingHost struct {
	externalapi.Host
	CellDataReads map[externalapi.Source]int
}

// NewCountingHost wraps host.
func NewCountingHost(host externalapi.Host) *CountingHost {
	return &CountingHost{Host: host, CellDataReads: make(map[externalapi.Source]int)}
}

// LoadCellData implements externalapi.Host.
func (h *CountingHost) LoadCellData(index int, source externalapi.Source) ([]byte, error) {
	h.CellDataReads[source]++
	return h.Host.LoadCellData(index, source)
}
