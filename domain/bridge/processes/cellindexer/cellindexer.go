package cellindexer

import (
	"github.com/cellbridge/bridged/domain/bridge/model"
	"github.com/cellbridge/bridged/domain/bridge/model/externalapi"
	"github.com/cellbridge/bridged/domain/bridge/ruleerrors"
	"github.com/cellbridge/bridged/domain/bridge/utils/hashes"
	"github.com/pkg/errors"
)

type cellIndexer struct {
	host externalapi.Host
}

// New instantiates a new CellIndexer
func New(host externalapi.Host) model.CellIndexer {
	return &cellIndexer{host: host}
}

func (ci *cellIndexer) Cells(source externalapi.Source) model.CellIterator {
	return newCellIterator(ci.host, source)
}

// FindCellsByTypeID matches cells whose script has typeID as its code hash
// and the type hash type. Cells without a type script never match.
func (ci *cellIndexer) FindCellsByTypeID(scriptType externalapi.ScriptType, typeID *externalapi.DomainHash,
	source externalapi.Source) ([]int, error) {

	var indexes []int
	iterator := ci.Cells(source)
	for ok := iterator.First(); ok; ok = iterator.Next() {
		index, cell, err := iterator.Get()
		if err != nil {
			return nil, err
		}
		script := cell.Script(scriptType)
		if script == nil {
			continue
		}
		if script.CodeHash.Equal(typeID) && script.HashType == externalapi.HashTypeType {
			indexes = append(indexes, index)
		}
	}
	log.Tracef("Found %s cells of type id %s in %s at %v", scriptType, typeID, source, indexes)
	return indexes, nil
}

func (ci *cellIndexer) FindCellsByTypeIDAndFilter(scriptType externalapi.ScriptType, typeID *externalapi.DomainHash,
	source externalapi.Source, filter model.CellFilter) ([]int, error) {

	indexes, err := ci.FindCellsByTypeID(scriptType, typeID, source)
	if err != nil {
		return nil, err
	}
	return applyFilter(indexes, source, filter)
}

func (ci *cellIndexer) FindCellsByTypeIDInInputsAndOutputs(scriptType externalapi.ScriptType,
	typeID *externalapi.DomainHash) (inputs []int, outputs []int, err error) {

	inputs, err = ci.FindCellsByTypeID(scriptType, typeID, externalapi.SourceInput)
	if err != nil {
		return nil, nil, err
	}
	outputs, err = ci.FindCellsByTypeID(scriptType, typeID, externalapi.SourceOutput)
	if err != nil {
		return nil, nil, err
	}
	return inputs, outputs, nil
}

func (ci *cellIndexer) FindOnlyCellByTypeID(cellName string, scriptType externalapi.ScriptType,
	typeID *externalapi.DomainHash, source externalapi.Source) (int, error) {

	indexes, err := ci.FindCellsByTypeID(scriptType, typeID, source)
	if err != nil {
		return 0, err
	}
	if len(indexes) != 1 {
		return 0, ruleerrors.NewErrCellCountOutOfRange(cellName, source, model.Equal, 1, len(indexes))
	}
	return indexes[0], nil
}

// FindCellsByScript matches cells whose script hashes to the hash of script.
func (ci *cellIndexer) FindCellsByScript(scriptType externalapi.ScriptType, script *externalapi.Script,
	source externalapi.Source) ([]int, error) {

	expectedHash := hashes.ScriptHash(script)
	var indexes []int
	for index := 0; ; index++ {
		hash, err := ci.host.LoadCellScriptHash(index, source, scriptType)
		if errors.Is(err, externalapi.ErrIndexOutOfBound) {
			break
		}
		if errors.Is(err, externalapi.ErrItemMissing) && scriptType == externalapi.ScriptTypeType {
			continue
		}
		if err != nil {
			return nil, ruleerrors.FromHostError(err)
		}
		if hash.Equal(expectedHash) {
			indexes = append(indexes, index)
		}
	}
	log.Tracef("Found %s cells of script %s in %s at %v", scriptType, script, source, indexes)
	return indexes, nil
}

func (ci *cellIndexer) FindCellsByScriptAndFilter(scriptType externalapi.ScriptType, script *externalapi.Script,
	source externalapi.Source, filter model.CellFilter) ([]int, error) {

	indexes, err := ci.FindCellsByScript(scriptType, script, source)
	if err != nil {
		return nil, err
	}
	return applyFilter(indexes, source, filter)
}

func (ci *cellIndexer) FindCellsByScriptInInputsAndOutputs(scriptType externalapi.ScriptType,
	script *externalapi.Script) (inputs []int, outputs []int, err error) {

	inputs, err = ci.FindCellsByScript(scriptType, script, externalapi.SourceInput)
	if err != nil {
		return nil, nil, err
	}
	outputs, err = ci.FindCellsByScript(scriptType, script, externalapi.SourceOutput)
	if err != nil {
		return nil, nil, err
	}
	return inputs, outputs, nil
}

// InputCount returns the number of inputs of the transaction.
func (ci *cellIndexer) InputCount() (int, error) {
	count := 0
	for ; ; count++ {
		_, err := ci.host.LoadInput(count)
		if errors.Is(err, externalapi.ErrIndexOutOfBound) {
			return count, nil
		}
		if err != nil && !errors.Is(err, externalapi.ErrLengthNotEnough) {
			return 0, ruleerrors.FromHostError(err)
		}
	}
}

func applyFilter(indexes []int, source externalapi.Source, filter model.CellFilter) ([]int, error) {
	var filtered []int
	for _, index := range indexes {
		keep, err := filter(index, source)
		if err != nil {
			return nil, err
		}
		if keep {
			filtered = append(filtered, index)
		}
	}
	return filtered, nil
}
