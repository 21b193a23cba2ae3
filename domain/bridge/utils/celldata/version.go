// Package celldata parses and builds the data and type args of the cells
// the bridge validators govern.
package celldata

import (
	"github.com/cellbridge/bridged/domain/bridge/ruleerrors"
	"github.com/pkg/errors"
)

// DataVersion is the only defined cell data version.
const DataVersion = 0

// minDataSize is the smallest data a versioned cell may carry.
const minDataSize = 3

// splitVersion returns the body of versioned cell data.
func splitVersion(cellName string, data []byte) ([]byte, error) {
	if len(data) < minDataSize {
		return nil, errors.Wrapf(ruleerrors.ErrParseCellDataFailed,
			"%s: the data is too short (%d bytes)", cellName, len(data))
	}
	if data[0] != DataVersion {
		return nil, errors.Wrapf(ruleerrors.ErrParseCellDataVersionFailed,
			"%s: unknown data version %d", cellName, data[0])
	}
	return data[1:], nil
}

func withVersion(body []byte) []byte {
	return append([]byte{DataVersion}, body...)
}
