package externalapi

import "fmt"

// Source is one of the partitions a cell can live in within a transaction.
type Source uint8

// Source values
const (
	SourceInput Source = iota
	SourceOutput
	SourceCellDep
)

func (s Source) String() string {
	switch s {
	case SourceInput:
		return "inputs"
	case SourceOutput:
		return "outputs"
	case SourceCellDep:
		return "cell_deps"
	}
	return fmt.Sprintf("unknown source(%d)", uint8(s))
}

// ScriptType selects either the lock or the type script of a cell.
type ScriptType uint8

// ScriptType values
const (
	ScriptTypeLock ScriptType = iota
	ScriptTypeType
)

func (t ScriptType) String() string {
	if t == ScriptTypeLock {
		return "lock"
	}
	return "type"
}

// CellOutput is the header of a cell: everything but its data.
type CellOutput struct {
	Capacity uint64
	Lock     *Script
	Type     *Script
}

// Script returns the lock or the type script of the cell. The type
// script may be nil.
func (cell *CellOutput) Script(scriptType ScriptType) *Script {
	if scriptType == ScriptTypeLock {
		return cell.Lock
	}
	return cell.Type
}

// Clone returns a clone of CellOutput
func (cell *CellOutput) Clone() *CellOutput {
	return &CellOutput{
		Capacity: cell.Capacity,
		Lock:     cell.Lock.Clone(),
		Type:     cell.Type.Clone(),
	}
}

// OutPoint points to a cell created by a previous transaction.
type OutPoint struct {
	TxHash DomainHash
	Index  uint32
}

func (op OutPoint) String() string {
	return fmt.Sprintf("(%s: %d)", op.TxHash, op.Index)
}

// CellInput is a transaction input: the out point it consumes and its
// since constraint.
type CellInput struct {
	Since          uint64
	PreviousOutput OutPoint
}

// CellField names one field of a cell.
type CellField uint8

// CellField values
const (
	CellFieldCapacity CellField = iota
	CellFieldLock
	CellFieldType
	CellFieldData
)

func (f CellField) String() string {
	switch f {
	case CellFieldCapacity:
		return "capacity"
	case CellFieldLock:
		return "lock"
	case CellFieldType:
		return "type"
	case CellFieldData:
		return "data"
	}
	return fmt.Sprintf("unknown field(%d)", uint8(f))
}

// CellFieldSet is a set of cell fields.
type CellFieldSet uint8

// NewCellFieldSet returns a set containing the given fields.
func NewCellFieldSet(fields ...CellField) CellFieldSet {
	var set CellFieldSet
	for _, field := range fields {
		set |= 1 << field
	}
	return set
}

// Contains returns whether field is in the set.
func (set CellFieldSet) Contains(field CellField) bool {
	return set&(1<<field) != 0
}
