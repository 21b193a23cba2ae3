package molecule

import (
	"bytes"

	"github.com/cellbridge/bridged/domain/bridge/model/externalapi"
	"github.com/cellbridge/bridged/util/binaryserializer"
	"github.com/pkg/errors"
)

const (
	scriptFieldCount = 3
	cellInputSize    = 8 + externalapi.DomainHashSize + 4
)

// SerializeScript encodes script as table(code_hash, hash_type, args).
func SerializeScript(script *externalapi.Script) []byte {
	return SerializeTable(
		script.CodeHash.ByteSlice(),
		[]byte{byte(script.HashType)},
		SerializeBytes(script.Args),
	)
}

// DeserializeScript decodes a script encoded by SerializeScript.
func DeserializeScript(data []byte) (*externalapi.Script, error) {
	fields, err := DeserializeTable(data, scriptFieldCount, false)
	if err != nil {
		return nil, errors.Wrap(err, "script")
	}
	codeHash, err := externalapi.NewDomainHashFromByteSlice(fields[0])
	if err != nil {
		return nil, errors.Wrapf(ErrMalformed, "script code hash: %s", err)
	}
	if len(fields[1]) != 1 {
		return nil, errors.Wrapf(ErrMalformed, "script hash type of %d bytes", len(fields[1]))
	}
	args, err := DeserializeBytes(fields[2])
	if err != nil {
		return nil, errors.Wrap(err, "script args")
	}
	return &externalapi.Script{
		CodeHash: *codeHash,
		HashType: externalapi.ScriptHashType(fields[1][0]),
		Args:     args,
	}, nil
}

// SerializeCellInput encodes input as the struct (since, tx_hash, index).
func SerializeCellInput(input *externalapi.CellInput) []byte {
	buf := bytes.NewBuffer(make([]byte, 0, cellInputSize))
	err := binaryserializer.PutUint64(buf, input.Since)
	if err != nil {
		panic(errors.Wrap(err, "writing into a bytes.Buffer never fails"))
	}
	buf.Write(input.PreviousOutput.TxHash.ByteSlice())
	writeNumber(buf, int(input.PreviousOutput.Index))
	return buf.Bytes()
}
