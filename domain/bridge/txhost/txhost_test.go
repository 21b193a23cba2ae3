package txhost

import (
	"bytes"
	"testing"

	"github.com/cellbridge/bridged/domain/bridge/model/externalapi"
	"github.com/cellbridge/bridged/domain/bridge/utils/hashes"
	"github.com/pkg/errors"
)

func lock(seed byte) *externalapi.Script {
	codeHash := externalapi.NewDomainHashFromByteArray(&[externalapi.DomainHashSize]byte{seed})
	return externalapi.NewScript(codeHash, externalapi.HashTypeType, []byte{seed})
}

func TestHost(t *testing.T) {
	transaction := &Transaction{
		Inputs: []*Input{{
			Input: &externalapi.CellInput{Since: 3},
			Cell:  &Cell{Output: &externalapi.CellOutput{Capacity: 10, Lock: lock(1)}, Data: []byte{1}},
		}},
		Outputs: []*Cell{
			{Output: &externalapi.CellOutput{Capacity: 20, Lock: lock(2), Type: lock(3)}, Data: []byte{2}},
		},
		Witnesses: [][]byte{{}, {0, 'x'}},
	}
	host := New(transaction, lock(3))

	script, err := host.LoadScript()
	if err != nil || !script.Equal(lock(3)) {
		t.Fatalf("LoadScript: got (%s, %v)", script, err)
	}

	cell, err := host.LoadCell(0, externalapi.SourceOutput)
	if err != nil || cell.Capacity != 20 {
		t.Fatalf("LoadCell: got (%+v, %v)", cell, err)
	}
	cell.Lock.Args[0] = 0xff
	if transaction.Outputs[0].Output.Lock.Args[0] != 2 {
		t.Fatal("LoadCell should return a copy")
	}

	_, err = host.LoadCell(1, externalapi.SourceOutput)
	if !errors.Is(err, externalapi.ErrIndexOutOfBound) {
		t.Fatalf("LoadCell past the end: expected ErrIndexOutOfBound, got %v", err)
	}
	_, err = host.LoadCell(0, externalapi.SourceCellDep)
	if !errors.Is(err, externalapi.ErrIndexOutOfBound) {
		t.Fatalf("LoadCell of empty cell deps: expected ErrIndexOutOfBound, got %v", err)
	}

	_, err = host.LoadCellScript(0, externalapi.SourceInput, externalapi.ScriptTypeType)
	if !errors.Is(err, externalapi.ErrItemMissing) {
		t.Fatalf("LoadCellScript of absent type: expected ErrItemMissing, got %v", err)
	}
	hash, err := host.LoadCellScriptHash(0, externalapi.SourceOutput, externalapi.ScriptTypeType)
	if err != nil || !hash.Equal(hashes.ScriptHash(lock(3))) {
		t.Fatalf("LoadCellScriptHash: got (%s, %v)", hash, err)
	}

	data, err := host.LoadCellData(0, externalapi.SourceInput)
	if err != nil || !bytes.Equal(data, []byte{1}) {
		t.Fatalf("LoadCellData: got (%x, %v)", data, err)
	}

	input, err := host.LoadInput(0)
	if err != nil || input.Since != 3 {
		t.Fatalf("LoadInput: got (%+v, %v)", input, err)
	}
	_, err = host.LoadInput(1)
	if !errors.Is(err, externalapi.ErrIndexOutOfBound) {
		t.Fatalf("LoadInput past the end: expected ErrIndexOutOfBound, got %v", err)
	}

	witness, err := host.LoadWitness(1)
	if err != nil || !bytes.Equal(witness, []byte{0, 'x'}) {
		t.Fatalf("LoadWitness: got (%x, %v)", witness, err)
	}
	_, err = host.LoadWitness(2)
	if !errors.Is(err, externalapi.ErrIndexOutOfBound) {
		t.Fatalf("LoadWitness past the end: expected ErrIndexOutOfBound, got %v", err)
	}
}
