package consistencyverifier

import (
	"bytes"

	"github.com/cellbridge/bridged/domain/bridge/model"
	"github.com/cellbridge/bridged/domain/bridge/model/externalapi"
	"github.com/cellbridge/bridged/domain/bridge/ruleerrors"
	"github.com/pkg/errors"
)

type consistencyVerifier struct {
	host externalapi.Host
}

// New instantiates a new ConsistencyVerifier
func New(host externalapi.Host) model.ConsistencyVerifier {
	return &consistencyVerifier{host: host}
}

// VerifyCellNumberAndPosition checks that the cells of a kind sit exactly
// at the expected positions.
func (cv *consistencyVerifier) VerifyCellNumberAndPosition(cellName string, inputs []int, expectedInputs []int,
	outputs []int, expectedOutputs []int) error {

	log.Debugf("Verify if the number and position of %ss is correct", cellName)

	if !equalPositions(inputs, expectedInputs) {
		return ruleerrors.NewErrUnexpectedCells(cellName, externalapi.SourceInput, expectedInputs, inputs)
	}
	if !equalPositions(outputs, expectedOutputs) {
		return ruleerrors.NewErrUnexpectedCells(cellName, externalapi.SourceOutput, expectedOutputs, outputs)
	}
	return nil
}

func equalPositions(positions, expected []int) bool {
	if len(positions) != len(expected) {
		return false
	}
	for i := range positions {
		if positions[i] != expected[i] {
			return false
		}
	}
	return true
}

func (cv *consistencyVerifier) VerifyCellNumberRange(cellName string, inputs []int, inputsRange model.CellCountRange,
	outputs []int, outputsRange model.CellCountRange) error {

	log.Debugf("Verify if the number of %ss is correct", cellName)

	if !inRange(len(inputs), inputsRange) {
		return ruleerrors.NewErrCellCountOutOfRange(cellName, externalapi.SourceInput,
			inputsRange.Ordering, inputsRange.Bound, len(inputs))
	}
	if !inRange(len(outputs), outputsRange) {
		return ruleerrors.NewErrCellCountOutOfRange(cellName, externalapi.SourceOutput,
			outputsRange.Ordering, outputsRange.Bound, len(outputs))
	}
	return nil
}

func inRange(count int, countRange model.CellCountRange) bool {
	switch countRange.Ordering {
	case model.Less:
		return count < countRange.Bound
	case model.Greater:
		return count > countRange.Bound
	}
	return count == countRange.Bound
}

func (cv *consistencyVerifier) VerifyCellDepNumber(cellName string, cellDeps []int, expected int) error {
	log.Debugf("Verify if the number of %ss in cell deps is correct", cellName)

	if len(cellDeps) != expected {
		return ruleerrors.NewErrCellCountOutOfRange(cellName, externalapi.SourceCellDep,
			model.Equal, expected, len(cellDeps))
	}
	return nil
}

// VerifyCellConsistentWithException checks that inputs[inputIndex] and its
// successor outputs[outputIndex] only differ in the excepted fields.
// Capacity may always grow. Witnesses are never compared.
func (cv *consistencyVerifier) VerifyCellConsistentWithException(cellName string, inputIndex int, outputIndex int,
	exceptions externalapi.CellFieldSet) error {

	inputCell, err := cv.host.LoadCell(inputIndex, externalapi.SourceInput)
	if err != nil {
		return ruleerrors.FromHostError(err)
	}
	outputCell, err := cv.host.LoadCell(outputIndex, externalapi.SourceOutput)
	if err != nil {
		return ruleerrors.FromHostError(err)
	}

	if !exceptions.Contains(externalapi.CellFieldCapacity) {
		log.Debugf("Verify if the capacity of the %s is consistent: %d -> %d",
			cellName, inputCell.Capacity, outputCell.Capacity)
		if inputCell.Capacity > outputCell.Capacity {
			return errors.Wrapf(ruleerrors.ErrCellCapacityMustBeConsistent,
				"%s capacity decreased from %d to %d", cellName, inputCell.Capacity, outputCell.Capacity)
		}
	}

	if !exceptions.Contains(externalapi.CellFieldLock) && !inputCell.Lock.Equal(outputCell.Lock) {
		return errors.Wrapf(ruleerrors.ErrCellLockMustBeConsistent,
			"%s lock changed from %s to %s", cellName, inputCell.Lock, outputCell.Lock)
	}

	if !exceptions.Contains(externalapi.CellFieldType) && !inputCell.Type.Equal(outputCell.Type) {
		return errors.Wrapf(ruleerrors.ErrCellTypeMustBeConsistent,
			"%s type changed from %s to %s", cellName, inputCell.Type, outputCell.Type)
	}

	if !exceptions.Contains(externalapi.CellFieldData) {
		inputData, err := cv.host.LoadCellData(inputIndex, externalapi.SourceInput)
		if err != nil {
			return ruleerrors.FromHostError(err)
		}
		outputData, err := cv.host.LoadCellData(outputIndex, externalapi.SourceOutput)
		if err != nil {
			return ruleerrors.FromHostError(err)
		}
		if !bytes.Equal(inputData, outputData) {
			return errors.Wrapf(ruleerrors.ErrCellDataMustBeConsistent, "%s data changed", cellName)
		}
	}

	return nil
}
