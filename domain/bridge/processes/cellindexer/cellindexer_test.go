package cellindexer

import (
	"testing"

	"github.com/cellbridge/bridged/domain/bridge/model/externalapi"
	"github.com/cellbridge/bridged/domain/bridge/ruleerrors"
	"github.com/cellbridge/bridged/domain/bridge/txhost"
	"github.com/cellbridge/bridged/domain/bridge/utils/testutils"
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/pkg/errors"
	"pgregory.net/rapid"
)

func script(seed byte, args ...byte) *externalapi.Script {
	return externalapi.NewScript(testutils.HashFromSeed(seed), externalapi.HashTypeType, args)
}

func cell(lock, typeScript *externalapi.Script) *txhost.Cell {
	return &txhost.Cell{Output: &externalapi.CellOutput{Capacity: 1, Lock: lock, Type: typeScript}}
}

func TestFindCellsByScriptMatchesExactly(t *testing.T) {
	scripts := []*externalapi.Script{script(1), script(1, 0xaa), script(2), nil}

	rapid.Check(t, func(t *rapid.T) {
		builder := testutils.NewTransactionBuilder()
		inputCount := rapid.IntRange(0, 8).Draw(t, "inputCount").(int)
		outputCount := rapid.IntRange(0, 8).Draw(t, "outputCount").(int)
		var inputTypes, outputTypes []*externalapi.Script
		for i := 0; i < inputCount; i++ {
			typeScript := scripts[rapid.IntRange(0, len(scripts)-1).Draw(t, "inputType").(int)]
			inputTypes = append(inputTypes, typeScript)
			builder.AddInput(cell(script(9), typeScript))
		}
		for i := 0; i < outputCount; i++ {
			typeScript := scripts[rapid.IntRange(0, len(scripts)-1).Draw(t, "outputType").(int)]
			outputTypes = append(outputTypes, typeScript)
			builder.AddOutput(cell(script(9), typeScript))
		}
		target := scripts[rapid.IntRange(0, len(scripts)-2).Draw(t, "target").(int)]
		indexer := New(txhost.New(builder.Build(), nil))

		inputs, outputs, err := indexer.FindCellsByScriptInInputsAndOutputs(externalapi.ScriptTypeType, target)
		if err != nil {
			t.Fatalf("FindCellsByScriptInInputsAndOutputs: %s", err)
		}
		if diff := cmp.Diff(expectedPositions(inputTypes, target), inputs, cmpopts.EquateEmpty()); diff != "" {
			t.Fatalf("inputs mismatch (-want +got):\n%s", diff)
		}
		if diff := cmp.Diff(expectedPositions(outputTypes, target), outputs, cmpopts.EquateEmpty()); diff != "" {
			t.Fatalf("outputs mismatch (-want +got):\n%s", diff)
		}
	})
}

func expectedPositions(types []*externalapi.Script, target *externalapi.Script) []int {
	var positions []int
	for i, typeScript := range types {
		if typeScript != nil && typeScript.Equal(target) {
			positions = append(positions, i)
		}
	}
	return positions
}

func TestFindCellsByTypeIDIgnoresArgs(t *testing.T) {
	transaction := testutils.NewTransactionBuilder().
		AddCellDep(cell(script(9), script(1, 0x01))).
		AddCellDep(cell(script(9), nil)).
		AddCellDep(cell(script(9), script(1, 0x02))).
		AddCellDep(cell(script(9), externalapi.NewScript(testutils.HashFromSeed(1), externalapi.HashTypeData, nil))).
		AddCellDep(cell(script(1), script(2))).
		Build()
	indexer := New(txhost.New(transaction, nil))

	indexes, err := indexer.FindCellsByTypeID(externalapi.ScriptTypeType, testutils.HashFromSeed(1), externalapi.SourceCellDep)
	if err != nil {
		t.Fatalf("FindCellsByTypeID: %s", err)
	}
	if diff := cmp.Diff([]int{0, 2}, indexes); diff != "" {
		t.Fatalf("type id positions mismatch (-want +got):\n%s", diff)
	}

	indexes, err = indexer.FindCellsByTypeID(externalapi.ScriptTypeLock, testutils.HashFromSeed(1), externalapi.SourceCellDep)
	if err != nil {
		t.Fatalf("FindCellsByTypeID: %s", err)
	}
	if diff := cmp.Diff([]int{4}, indexes); diff != "" {
		t.Fatalf("lock type id positions mismatch (-want +got):\n%s", diff)
	}

	filtered, err := indexer.FindCellsByTypeIDAndFilter(externalapi.ScriptTypeType, testutils.HashFromSeed(1),
		externalapi.SourceCellDep, func(index int, source externalapi.Source) (bool, error) {
			return index > 0, nil
		})
	if err != nil {
		t.Fatalf("FindCellsByTypeIDAndFilter: %s", err)
	}
	if diff := cmp.Diff([]int{2}, filtered); diff != "" {
		t.Fatalf("filtered positions mismatch (-want +got):\n%s", diff)
	}
}

func TestFindOnlyCellByTypeID(t *testing.T) {
	transaction := testutils.NewTransactionBuilder().
		AddCellDep(cell(script(9), script(1))).
		AddCellDep(cell(script(9), script(2))).
		AddCellDep(cell(script(9), script(2, 0x01))).
		Build()
	indexer := New(txhost.New(transaction, nil))

	index, err := indexer.FindOnlyCellByTypeID("Cell", externalapi.ScriptTypeType, testutils.HashFromSeed(1), externalapi.SourceCellDep)
	if err != nil || index != 0 {
		t.Fatalf("FindOnlyCellByTypeID: got (%d, %v)", index, err)
	}

	for _, seed := range []byte{2, 3} {
		_, err = indexer.FindOnlyCellByTypeID("Cell", externalapi.ScriptTypeType, testutils.HashFromSeed(seed), externalapi.SourceCellDep)
		if !errors.Is(err, ruleerrors.ErrInvalidTransactionStructure) {
			t.Fatalf("seed %d: expected ErrInvalidTransactionStructure, got %v", seed, err)
		}
		var countErr *ruleerrors.ErrCellCountOutOfRange
		if !errors.As(err, &countErr) {
			t.Fatalf("seed %d: expected an ErrCellCountOutOfRange payload, got %v", seed, err)
		}
	}
}

// brokenHost reports an error outside the host contract after the first cell.
type brokenHost struct {
	externalapi.Host
	err error
}

func (h *brokenHost) LoadCell(index int, source externalapi.Source) (*externalapi.CellOutput, error) {
	if index > 0 {
		return nil, h.err
	}
	return h.Host.LoadCell(index, source)
}

func (h *brokenHost) LoadCellScriptHash(index int, source externalapi.Source,
	scriptType externalapi.ScriptType) (*externalapi.DomainHash, error) {

	if index > 0 {
		return nil, h.err
	}
	return h.Host.LoadCellScriptHash(index, source, scriptType)
}

func TestScanStopsOnlyOnIndexOutOfBound(t *testing.T) {
	transaction := testutils.NewTransactionBuilder().
		AddInput(cell(script(9), script(1))).
		AddInput(cell(script(9), script(1))).
		Build()
	host := &brokenHost{Host: txhost.New(transaction, nil), err: externalapi.ErrEncoding}
	indexer := New(host)

	_, err := indexer.FindCellsByTypeID(externalapi.ScriptTypeType, testutils.HashFromSeed(1), externalapi.SourceInput)
	if !errors.Is(err, ruleerrors.ErrEncoding) {
		t.Fatalf("FindCellsByTypeID: expected ErrEncoding, got %v", err)
	}
	_, err = indexer.FindCellsByScript(externalapi.ScriptTypeType, script(1), externalapi.SourceInput)
	if !errors.Is(err, ruleerrors.ErrEncoding) {
		t.Fatalf("FindCellsByScript: expected ErrEncoding, got %v", err)
	}
}

func TestIteratorIsRestartable(t *testing.T) {
	transaction := testutils.NewTransactionBuilder().
		AddOutput(cell(script(1), nil)).
		AddOutput(cell(script(2), nil)).
		AddOutput(cell(script(3), nil)).
		Build()
	iterator := New(txhost.New(transaction, nil)).Cells(externalapi.SourceOutput)

	for round := 0; round < 2; round++ {
		var seen []int
		for ok := iterator.First(); ok; ok = iterator.Next() {
			index, cell, err := iterator.Get()
			if err != nil {
				t.Fatalf("Get: %s", err)
			}
			if !cell.Lock.Equal(script(byte(index + 1))) {
				t.Fatalf("cell %d has lock %s", index, cell.Lock)
			}
			seen = append(seen, index)
		}
		if diff := cmp.Diff([]int{0, 1, 2}, seen); diff != "" {
			t.Fatalf("round %d mismatch (-want +got):\n%s", round, diff)
		}
	}

	emptyIterator := New(txhost.New(transaction, nil)).Cells(externalapi.SourceCellDep)
	if emptyIterator.First() {
		t.Fatal("an empty partition should have no first cell")
	}
}

func TestInputCount(t *testing.T) {
	for count := 0; count < 4; count++ {
		builder := testutils.NewTransactionBuilder()
		for i := 0; i < count; i++ {
			builder.AddInput(cell(script(1), nil))
		}
		got, err := New(txhost.New(builder.Build(), nil)).InputCount()
		if err != nil || got != count {
			t.Fatalf("InputCount: expected %d, got (%d, %v)", count, got, err)
		}
	}
}

// flakyHost fails the first read of the second cell and serves every
// later read.
type flakyHost struct {
	externalapi.Host
	failed bool
}

func (h *flakyHost) LoadCell(index int, source externalapi.Source) (*externalapi.CellOutput, error) {
	if index == 1 && !h.failed {
		h.failed = true
		return nil, externalapi.ErrEncoding
	}
	return h.Host.LoadCell(index, source)
}

func TestIteratorRestartsAfterError(t *testing.T) {
	transaction := testutils.NewTransactionBuilder().
		AddInput(cell(script(1), nil)).
		AddInput(cell(script(2), nil)).
		Build()
	iterator := New(&flakyHost{Host: txhost.New(transaction, nil)}).Cells(externalapi.SourceInput)

	var err error
	for ok := iterator.First(); ok; ok = iterator.Next() {
		_, _, err = iterator.Get()
		if err != nil {
			break
		}
	}
	if !errors.Is(err, ruleerrors.ErrEncoding) {
		t.Fatalf("expected ErrEncoding on the first pass, got %v", err)
	}
	if iterator.Next() {
		t.Fatalf("Next should not move past an error")
	}

	var seen []int
	for ok := iterator.First(); ok; ok = iterator.Next() {
		index, _, err := iterator.Get()
		if err != nil {
			t.Fatalf("Get after First: %s", err)
		}
		seen = append(seen, index)
	}
	if diff := cmp.Diff([]int{0, 1}, seen); diff != "" {
		t.Fatalf("restarted iteration mismatch (-want +got):\n%s", diff)
	}
}

func TestFindCellsByScriptAndFilter(t *testing.T) {
	transaction := testutils.NewTransactionBuilder().
		AddOutput(cell(script(9), script(1))).
		AddOutput(cell(script(9), nil)).
		AddOutput(cell(script(8), script(1))).
		AddOutput(cell(script(9), script(1, 0x01))).
		AddOutput(cell(script(9), script(1))).
		AddOutput(cell(script(9), nil)).
		Build()
	host := txhost.New(transaction, nil)
	indexer := New(host)

	lockedBy := func(lock *externalapi.Script) func(int, externalapi.Source) (bool, error) {
		return func(index int, source externalapi.Source) (bool, error) {
			cellLock, err := host.LoadCellScript(index, source, externalapi.ScriptTypeLock)
			if err != nil {
				return false, err
			}
			return cellLock.Equal(lock), nil
		}
	}
	failing := func(int, externalapi.Source) (bool, error) {
		return false, ruleerrors.ErrEncoding
	}

	tests := []struct {
		name        string
		scriptType  externalapi.ScriptType
		target      *externalapi.Script
		filter      func(int, externalapi.Source) (bool, error)
		expected    []int
		expectedErr error
	}{
		{"type scripts kept by lock", externalapi.ScriptTypeType, script(1), lockedBy(script(9)), []int{0, 4}, nil},
		{"type scripts, filter keeps all", externalapi.ScriptTypeType, script(1),
			func(int, externalapi.Source) (bool, error) { return true, nil }, []int{0, 2, 4}, nil},
		{"type scripts, filter drops all", externalapi.ScriptTypeType, script(1),
			func(int, externalapi.Source) (bool, error) { return false, nil }, nil, nil},
		{"lock scripts kept by index", externalapi.ScriptTypeLock, script(9),
			func(index int, _ externalapi.Source) (bool, error) { return index%2 == 1, nil }, []int{1, 3, 5}, nil},
		{"filter error", externalapi.ScriptTypeType, script(1), failing, nil, ruleerrors.ErrEncoding},
	}
	for _, test := range tests {
		indexes, err := indexer.FindCellsByScriptAndFilter(test.scriptType, test.target,
			externalapi.SourceOutput, test.filter)
		if test.expectedErr != nil {
			if !errors.Is(err, test.expectedErr) {
				t.Fatalf("%s: expected %s, got %v", test.name, test.expectedErr, err)
			}
			continue
		}
		if err != nil {
			t.Fatalf("%s: unexpected error %s", test.name, err)
		}
		if diff := cmp.Diff(test.expected, indexes, cmpopts.EquateEmpty()); diff != "" {
			t.Fatalf("%s: positions mismatch (-want +got):\n%s", test.name, diff)
		}
	}
}
