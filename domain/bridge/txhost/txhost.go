// Package txhost implements externalapi.Host over a fully resolved
// transaction held in memory.
package txhost

import (
	"github.com/cellbridge/bridged/domain/bridge/model/externalapi"
	"github.com/cellbridge/bridged/domain/bridge/utils/hashes"
	"github.com/pkg/errors"
)

// Cell is a cell together with its data.
type Cell struct {
	Output *externalapi.CellOutput
	Data   []byte
}

// Input is a transaction input together with the cell it consumes.
type Input struct {
	Input *externalapi.CellInput
	Cell  *Cell
}

// Transaction is a transaction whose inputs and cell deps are resolved
// to cells.
type Transaction struct {
	Inputs    []*Input
	Outputs   []*Cell
	CellDeps  []*Cell
	Witnesses [][]byte
}

// Host serves one script run over a Transaction.
type Host struct {
	transaction *Transaction
	script      *externalapi.Script
}

// New returns a Host running script over transaction.
func New(transaction *Transaction, script *externalapi.Script) *Host {
	return &Host{transaction: transaction, script: script}
}

// LoadScript implements externalapi.Host.
func (h *Host) LoadScript() (*externalapi.Script, error) {
	if h.script == nil {
		return nil, errors.Wrap(externalapi.ErrItemMissing, "no running script")
	}
	return h.script.Clone(), nil
}

func (h *Host) cell(index int, source externalapi.Source) (*Cell, error) {
	var length int
	switch source {
	case externalapi.SourceInput:
		length = len(h.transaction.Inputs)
	case externalapi.SourceOutput:
		length = len(h.transaction.Outputs)
	case externalapi.SourceCellDep:
		length = len(h.transaction.CellDeps)
	default:
		return nil, errors.Wrapf(externalapi.ErrIndexOutOfBound, "unknown source %s", source)
	}
	if index < 0 || index >= length {
		return nil, errors.Wrapf(externalapi.ErrIndexOutOfBound, "%s[%d] of %d", source, index, length)
	}
	switch source {
	case externalapi.SourceInput:
		return h.transaction.Inputs[index].Cell, nil
	case externalapi.SourceOutput:
		return h.transaction.Outputs[index], nil
	}
	return h.transaction.CellDeps[index], nil
}

// LoadCell implements externalapi.Host.
func (h *Host) LoadCell(index int, source externalapi.Source) (*externalapi.CellOutput, error) {
	cell, err := h.cell(index, source)
	if err != nil {
		return nil, err
	}
	return cell.Output.Clone(), nil
}

// LoadCellData implements externalapi.Host.
func (h *Host) LoadCellData(index int, source externalapi.Source) ([]byte, error) {
	cell, err := h.cell(index, source)
	if err != nil {
		return nil, err
	}
	return append([]byte{}, cell.Data...), nil
}

// LoadCellScript implements externalapi.Host.
func (h *Host) LoadCellScript(index int, source externalapi.Source,
	scriptType externalapi.ScriptType) (*externalapi.Script, error) {

	cell, err := h.cell(index, source)
	if err != nil {
		return nil, err
	}
	script := cell.Output.Script(scriptType)
	if script == nil {
		return nil, errors.Wrapf(externalapi.ErrItemMissing, "%s[%d] has no %s script", source, index, scriptType)
	}
	return script.Clone(), nil
}

// LoadCellScriptHash implements externalapi.Host.
func (h *Host) LoadCellScriptHash(index int, source externalapi.Source,
	scriptType externalapi.ScriptType) (*externalapi.DomainHash, error) {

	script, err := h.LoadCellScript(index, source, scriptType)
	if err != nil {
		return nil, err
	}
	return hashes.ScriptHash(script), nil
}

// LoadInput implements externalapi.Host.
func (h *Host) LoadInput(index int) (*externalapi.CellInput, error) {
	if index < 0 || index >= len(h.transaction.Inputs) {
		return nil, errors.Wrapf(externalapi.ErrIndexOutOfBound, "input %d of %d", index, len(h.transaction.Inputs))
	}
	input := *h.transaction.Inputs[index].Input
	return &input, nil
}

// LoadWitness implements externalapi.Host.
func (h *Host) LoadWitness(index int) ([]byte, error) {
	if index < 0 || index >= len(h.transaction.Witnesses) {
		return nil, errors.Wrapf(externalapi.ErrIndexOutOfBound, "witness %d of %d", index, len(h.transaction.Witnesses))
	}
	return append([]byte{}, h.transaction.Witnesses[index]...), nil
}
