package hashes

import (
	"bytes"
	"testing"

	"github.com/cellbridge/bridged/domain/bridge/model/externalapi"
	"github.com/pkg/errors"
	"pgregory.net/rapid"
)

func cellInput(txHashSeed byte, index uint32) *externalapi.CellInput {
	txHash := externalapi.NewDomainHashFromByteArray(&[externalapi.DomainHashSize]byte{txHashSeed})
	return &externalapi.CellInput{PreviousOutput: externalapi.OutPoint{TxHash: *txHash, Index: index}}
}

func TestBuildTypeIDIsPure(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		seed := rapid.Byte().Draw(t, "seed").(byte)
		index := rapid.Uint32().Draw(t, "index").(uint32)
		outputIndex := rapid.Uint64().Draw(t, "outputIndex").(uint64)

		first := BuildTypeID(cellInput(seed, index), outputIndex)
		second := BuildTypeID(cellInput(seed, index), outputIndex)
		if !first.Equal(second) {
			t.Fatalf("BuildTypeID is not deterministic: %s != %s", first, second)
		}
		if BuildTypeID(cellInput(seed, index), outputIndex+1).Equal(first) {
			t.Fatalf("different output indexes produced the same id %s", first)
		}
		if BuildTypeID(cellInput(seed, index+1), outputIndex).Equal(first) {
			t.Fatalf("different inputs produced the same id %s", first)
		}
	})
}

func TestBuildTypeIDDependsOnSince(t *testing.T) {
	input := cellInput(1, 0)
	withSince := cellInput(1, 0)
	withSince.Since = 42
	if BuildTypeID(input, 0).Equal(BuildTypeID(withSince, 0)) {
		t.Fatal("inputs differing in since produced the same id")
	}
}

func TestMultisigIsOrderSensitive(t *testing.T) {
	members := make([][]byte, 5)
	for i := range members {
		members[i] = bytes.Repeat([]byte{byte(i + 1)}, MultisigFingerprintSize)
	}
	reordered := [][]byte{members[4], members[3], members[2], members[1], members[0]}

	args, err := BuildOmniLockMultisigArgs(0, 3, members)
	if err != nil {
		t.Fatalf("BuildOmniLockMultisigArgs: %s", err)
	}
	again, err := BuildOmniLockMultisigArgs(0, 3, members)
	if err != nil {
		t.Fatalf("BuildOmniLockMultisigArgs: %s", err)
	}
	if !bytes.Equal(args, again) {
		t.Fatalf("same members produced %x and %x", args, again)
	}
	reorderedArgs, err := BuildOmniLockMultisigArgs(0, 3, reordered)
	if err != nil {
		t.Fatalf("BuildOmniLockMultisigArgs: %s", err)
	}
	if bytes.Equal(args, reorderedArgs) {
		t.Fatalf("reordered members produced the same args %x", args)
	}

	if len(args) != 22 || args[0] != OmniLockFlagMultisig || args[21] != OmniLockFlagNoMode {
		t.Fatalf("unexpected omni lock args layout %x", args)
	}
}

func TestMultisigPolicyChangesFingerprint(t *testing.T) {
	members := [][]byte{{1}, {2}, {3}}
	base, err := BuildMultisigArgs(0, 2, members)
	if err != nil {
		t.Fatalf("BuildMultisigArgs: %s", err)
	}
	higherThreshold, err := BuildMultisigArgs(0, 3, members)
	if err != nil {
		t.Fatalf("BuildMultisigArgs: %s", err)
	}
	requireFirst, err := BuildMultisigArgs(1, 2, members)
	if err != nil {
		t.Fatalf("BuildMultisigArgs: %s", err)
	}
	if bytes.Equal(base, higherThreshold) || bytes.Equal(base, requireFirst) {
		t.Fatal("the policy did not change the fingerprint")
	}
}

func TestBuildMultisigArgsTooManyMembers(t *testing.T) {
	members := make([][]byte, 256)
	_, err := BuildMultisigArgs(0, 1, members)
	if !errors.Is(err, ErrTooManyMembers) {
		t.Fatalf("expected ErrTooManyMembers, got %v", err)
	}
}

func TestScriptHashCoversEveryField(t *testing.T) {
	codeHash := externalapi.NewDomainHashFromByteArray(&[externalapi.DomainHashSize]byte{7})
	script := externalapi.NewScript(codeHash, externalapi.HashTypeType, []byte{1})
	hash := ScriptHash(script)

	otherHashType := externalapi.NewScript(codeHash, externalapi.HashTypeData, []byte{1})
	otherArgs := externalapi.NewScript(codeHash, externalapi.HashTypeType, []byte{2})
	otherCodeHash := externalapi.NewScript(externalapi.NewZeroHash(), externalapi.HashTypeType, []byte{1})
	for _, other := range []*externalapi.Script{otherHashType, otherArgs, otherCodeHash} {
		if ScriptHash(other).Equal(hash) {
			t.Fatalf("%s and %s share a script hash", script, other)
		}
	}
	if !ScriptHash(script.Clone()).Equal(hash) {
		t.Fatal("a cloned script has a different hash")
	}
}
