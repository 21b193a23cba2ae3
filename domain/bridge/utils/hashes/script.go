package hashes

import (
	"github.com/cellbridge/bridged/domain/bridge/model/externalapi"
	"github.com/cellbridge/bridged/domain/bridge/utils/molecule"
)

// ScriptHash returns the hash of the serialized script. Cells are matched
// against full scripts by this hash.
func ScriptHash(script *externalapi.Script) *externalapi.DomainHash {
	return Hash(molecule.SerializeScript(script))
}

// BuildTypeID returns the id of the cell created at outputIndex by a
// transaction whose first input is firstInput.
func BuildTypeID(firstInput *externalapi.CellInput, outputIndex uint64) *externalapi.DomainHash {
	writer := NewCellHashWriter()
	writer.InfallibleWrite(molecule.SerializeCellInput(firstInput))
	index := [8]byte{}
	for i := range index {
		index[i] = byte(outputIndex >> (8 * i))
	}
	writer.InfallibleWrite(index[:])
	return writer.Finalize()
}
