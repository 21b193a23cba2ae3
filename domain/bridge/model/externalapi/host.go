package externalapi

import "github.com/pkg/errors"

// Errors a Host may report. Any other error returned by a Host is a
// violation of the host contract.
var (
	ErrIndexOutOfBound = errors.New("index out of bound")
	ErrItemMissing     = errors.New("item missing")
	ErrLengthNotEnough = errors.New("length not enough")
	ErrEncoding        = errors.New("encoding error")
)

// Host is the execution environment of a validator: a read-only view of the
// transaction being validated and of the script that is running.
type Host interface {
	// LoadScript returns the script currently being executed.
	LoadScript() (*Script, error)

	// LoadCell returns ErrIndexOutOfBound once index passes the last cell
	// of source.
	LoadCell(index int, source Source) (*CellOutput, error)
	LoadCellData(index int, source Source) ([]byte, error)

	// LoadCellScript returns ErrItemMissing when the cell has no type script.
	LoadCellScript(index int, source Source, scriptType ScriptType) (*Script, error)
	LoadCellScriptHash(index int, source Source, scriptType ScriptType) (*DomainHash, error)

	LoadInput(index int) (*CellInput, error)
	LoadWitness(index int) ([]byte, error)
}
