package cellindexer

import (
	"github.com/cellbridge/bridged/domain/bridge/model"
	"github.com/cellbridge/bridged/domain/bridge/model/externalapi"
	"github.com/cellbridge/bridged/domain/bridge/ruleerrors"
	"github.com/pkg/errors"
)

type cellIterator struct {
	host   externalapi.Host
	source externalapi.Source
	index  int
	cell   *externalapi.CellOutput
	err    error
}

func newCellIterator(host externalapi.Host, source externalapi.Source) model.CellIterator {
	return &cellIterator{host: host, source: source, index: -1}
}

// First moves to the first cell of the partition, forgetting any error
// met on the way. It returns false if the partition is empty.
func (it *cellIterator) First() bool {
	it.index = -1
	it.err = nil
	return it.Next()
}

// Next asks the host for the following cell. Only an explicit
// ErrIndexOutOfBound ends the iteration; any other host error is kept for
// Get to report.
func (it *cellIterator) Next() bool {
	if it.err != nil {
		return false
	}
	it.index++
	it.cell, it.err = it.host.LoadCell(it.index, it.source)
	if errors.Is(it.err, externalapi.ErrIndexOutOfBound) {
		it.err = nil
		it.cell = nil
		return false
	}
	return true
}

func (it *cellIterator) Get() (int, *externalapi.CellOutput, error) {
	if it.err != nil {
		return it.index, nil, ruleerrors.FromHostError(it.err)
	}
	if it.cell == nil {
		return it.index, nil, errors.New("Get called on an exhausted cell iterator")
	}
	return it.index, it.cell, nil
}
