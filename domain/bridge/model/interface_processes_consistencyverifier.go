package model

import "github.com/cellbridge/bridged/domain/bridge/model/externalapi"

// CellCountRange bounds the number of cells of a kind in one partition.
type CellCountRange struct {
	Ordering Ordering
	Bound    int
}

// Ordering is the relation a cell count must have with its bound.
type Ordering int8

// Ordering values
const (
	Less    Ordering = -1
	Equal   Ordering = 0
	Greater Ordering = 1
)

func (o Ordering) String() string {
	switch o {
	case Less:
		return "less than"
	case Greater:
		return "more than"
	}
	return "exactly"
}

// ConsistencyVerifier checks where cells of a kind appear and what may
// change between a cell and its successor.
type ConsistencyVerifier interface {
	VerifyCellNumberAndPosition(cellName string, inputs []int, expectedInputs []int,
		outputs []int, expectedOutputs []int) error
	VerifyCellNumberRange(cellName string, inputs []int, inputsRange CellCountRange,
		outputs []int, outputsRange CellCountRange) error
	VerifyCellDepNumber(cellName string, cellDeps []int, expected int) error
	VerifyCellConsistentWithException(cellName string, inputIndex int, outputIndex int,
		exceptions externalapi.CellFieldSet) error
}
