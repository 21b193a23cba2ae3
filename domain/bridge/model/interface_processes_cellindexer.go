package model

import "github.com/cellbridge/bridged/domain/bridge/model/externalapi"

// CellFilter decides whether a matched cell is kept.
type CellFilter func(index int, source externalapi.Source) (bool, error)

// CellIndexer enumerates the positions of the cells of a transaction that
// match a script or a type id. Positions are always returned ascending.
type CellIndexer interface {
	Cells(source externalapi.Source) CellIterator

	FindCellsByTypeID(scriptType externalapi.ScriptType, typeID *externalapi.DomainHash,
		source externalapi.Source) ([]int, error)
	FindCellsByTypeIDAndFilter(scriptType externalapi.ScriptType, typeID *externalapi.DomainHash,
		source externalapi.Source, filter CellFilter) ([]int, error)
	FindCellsByTypeIDInInputsAndOutputs(scriptType externalapi.ScriptType,
		typeID *externalapi.DomainHash) (inputs []int, outputs []int, err error)
	FindOnlyCellByTypeID(cellName string, scriptType externalapi.ScriptType, typeID *externalapi.DomainHash,
		source externalapi.Source) (int, error)

	FindCellsByScript(scriptType externalapi.ScriptType, script *externalapi.Script,
		source externalapi.Source) ([]int, error)
	FindCellsByScriptAndFilter(scriptType externalapi.ScriptType, script *externalapi.Script,
		source externalapi.Source, filter CellFilter) ([]int, error)
	FindCellsByScriptInInputsAndOutputs(scriptType externalapi.ScriptType,
		script *externalapi.Script) (inputs []int, outputs []int, err error)

	InputCount() (int, error)
}

// CellIterator walks the cells of one partition until the host reports
// there are no more. It can be restarted with First.
type CellIterator interface {
	First() bool
	Next() bool
	Get() (index int, cell *externalapi.CellOutput, err error)
}
