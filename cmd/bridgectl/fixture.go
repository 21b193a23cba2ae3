package main

import (
	"encoding/hex"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/cellbridge/bridged/domain/bridge/model/externalapi"
	"github.com/cellbridge/bridged/domain/bridge/txhost"
	"github.com/pkg/errors"
)

// fixtureFile is the TOML layout of a resolved transaction. Byte strings are
// hex encoded, with or without a 0x prefix.
type fixtureFile struct {
	Inputs    []fixtureInput `toml:"inputs"`
	Outputs   []fixtureCell  `toml:"outputs"`
	CellDeps  []fixtureCell  `toml:"cell_deps"`
	Witnesses []string       `toml:"witnesses,omitempty"`
	Action    string         `toml:"action,omitempty"`
}

type fixtureInput struct {
	Since  uint64 `toml:"since"`
	TxHash string `toml:"tx_hash"`
	Index  uint32 `toml:"index"`
	fixtureCell
}

type fixtureCell struct {
	Capacity uint64         `toml:"capacity"`
	Lock     *fixtureScript `toml:"lock"`
	Type     *fixtureScript `toml:"type"`
	Data     string         `toml:"data"`
}

type fixtureScript struct {
	CodeHash string `toml:"code_hash"`
	HashType string `toml:"hash_type"`
	Args     string `toml:"args"`
}

// loadFixture reads the transaction fixture at path. When the fixture
// declares an action instead of witnesses, the action witness is placed
// right after one empty witness per input.
func loadFixture(path string) (*txhost.Transaction, error) {
	var raw fixtureFile
	meta, err := toml.DecodeFile(path, &raw)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to load fixture %s", path)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return nil, errors.Errorf("fixture %s has unknown keys %v", path, undecoded)
	}
	if meta.IsDefined("witnesses") && meta.IsDefined("action") {
		return nil, errors.Errorf("fixture %s may define either witnesses or an action, not both", path)
	}

	transaction := &txhost.Transaction{}
	for i, rawInput := range raw.Inputs {
		input, err := rawInput.toInput()
		if err != nil {
			return nil, errors.Wrapf(err, "inputs[%d]", i)
		}
		transaction.Inputs = append(transaction.Inputs, input)
	}
	for i, rawOutput := range raw.Outputs {
		output, err := rawOutput.toCell()
		if err != nil {
			return nil, errors.Wrapf(err, "outputs[%d]", i)
		}
		transaction.Outputs = append(transaction.Outputs, output)
	}
	for i, rawCellDep := range raw.CellDeps {
		cellDep, err := rawCellDep.toCell()
		if err != nil {
			return nil, errors.Wrapf(err, "cell_deps[%d]", i)
		}
		transaction.CellDeps = append(transaction.CellDeps, cellDep)
	}

	if meta.IsDefined("action") {
		action, ok := externalapi.ActionFromName(raw.Action)
		if !ok {
			return nil, errors.Errorf("unknown action %q", raw.Action)
		}
		transaction.Witnesses = make([][]byte, len(transaction.Inputs), len(transaction.Inputs)+1)
		for i := range transaction.Inputs {
			transaction.Witnesses[i] = []byte{}
		}
		transaction.Witnesses = append(transaction.Witnesses, append([]byte{0}, action.String()...))
		return transaction, nil
	}
	for i, rawWitness := range raw.Witnesses {
		witness, err := decodeHex(rawWitness)
		if err != nil {
			return nil, errors.Wrapf(err, "witnesses[%d]", i)
		}
		transaction.Witnesses = append(transaction.Witnesses, witness)
	}
	return transaction, nil
}

func (input *fixtureInput) toInput() (*txhost.Input, error) {
	cell, err := input.toCell()
	if err != nil {
		return nil, err
	}
	txHash := &externalapi.DomainHash{}
	if input.TxHash != "" {
		txHash, err = decodeHash(input.TxHash)
		if err != nil {
			return nil, errors.Wrap(err, "tx_hash")
		}
	}
	return &txhost.Input{
		Input: &externalapi.CellInput{
			Since:          input.Since,
			PreviousOutput: externalapi.OutPoint{TxHash: *txHash, Index: input.Index},
		},
		Cell: cell,
	}, nil
}

func (cell *fixtureCell) toCell() (*txhost.Cell, error) {
	if cell.Lock == nil {
		return nil, errors.New("a cell must have a lock")
	}
	lock, err := cell.Lock.toScript()
	if err != nil {
		return nil, errors.Wrap(err, "lock")
	}
	var typeScript *externalapi.Script
	if cell.Type != nil {
		typeScript, err = cell.Type.toScript()
		if err != nil {
			return nil, errors.Wrap(err, "type")
		}
	}
	data, err := decodeHex(cell.Data)
	if err != nil {
		return nil, errors.Wrap(err, "data")
	}
	return &txhost.Cell{
		Output: &externalapi.CellOutput{Capacity: cell.Capacity, Lock: lock, Type: typeScript},
		Data:   data,
	}, nil
}

func (script *fixtureScript) toScript() (*externalapi.Script, error) {
	codeHash, err := decodeHash(script.CodeHash)
	if err != nil {
		return nil, errors.Wrap(err, "code_hash")
	}
	hashType, err := parseHashType(script.HashType)
	if err != nil {
		return nil, err
	}
	args, err := decodeHex(script.Args)
	if err != nil {
		return nil, errors.Wrap(err, "args")
	}
	return externalapi.NewScript(codeHash, hashType, args), nil
}

func parseHashType(hashType string) (externalapi.ScriptHashType, error) {
	switch hashType {
	case "data":
		return externalapi.HashTypeData, nil
	case "", "type":
		return externalapi.HashTypeType, nil
	case "data1":
		return externalapi.HashTypeData1, nil
	}
	return 0, errors.Errorf("unknown hash_type %q", hashType)
}

func decodeHex(hexString string) ([]byte, error) {
	decoded, err := hex.DecodeString(strings.TrimPrefix(hexString, "0x"))
	if err != nil {
		return nil, errors.WithStack(err)
	}
	return decoded, nil
}

func decodeHash(hashString string) (*externalapi.DomainHash, error) {
	return externalapi.NewDomainHashFromString(strings.TrimPrefix(hashString, "0x"))
}

// runningScript returns the script of the given field of the cell at
// index in source.
func runningScript(transaction *txhost.Transaction, sourceName string, index int,
	fieldName string) (*externalapi.Script, error) {

	var cell *txhost.Cell
	switch sourceName {
	case "input":
		if index < len(transaction.Inputs) {
			cell = transaction.Inputs[index].Cell
		}
	case "output":
		if index < len(transaction.Outputs) {
			cell = transaction.Outputs[index]
		}
	case "cell_dep":
		if index < len(transaction.CellDeps) {
			cell = transaction.CellDeps[index]
		}
	default:
		return nil, errors.Errorf("unknown script source %q", sourceName)
	}
	if cell == nil {
		return nil, errors.Errorf("the fixture has no %s at index %d", sourceName, index)
	}

	if fieldName == "lock" {
		return cell.Output.Lock.Clone(), nil
	}
	if cell.Output.Type == nil {
		return nil, errors.Errorf("%s[%d] has no type script", sourceName, index)
	}
	return cell.Output.Type.Clone(), nil
}
