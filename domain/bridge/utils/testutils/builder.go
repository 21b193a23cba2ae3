// Package testutils builds transactions and deployments for tests of the
// bridge validators.
package testutils

import (
	"github.com/cellbridge/bridged/domain/bridge/model/externalapi"
	"github.com/cellbridge/bridged/domain/bridge/txhost"
)

// TransactionBuilder assembles a txhost.Transaction.
type TransactionBuilder struct {
	transaction *txhost.Transaction
	action      []byte
	nextTxHash  byte
}

// NewTransactionBuilder returns an empty TransactionBuilder.
func NewTransactionBuilder() *TransactionBuilder {
	return &TransactionBuilder{transaction: &txhost.Transaction{}, nextTxHash: 0x80}
}

// AddInput consumes cell through a fresh out point.
func (b *TransactionBuilder) AddInput(cell *txhost.Cell) *TransactionBuilder {
	b.nextTxHash++
	input := &externalapi.CellInput{
		PreviousOutput: externalapi.OutPoint{TxHash: *HashFromSeed(b.nextTxHash), Index: 0},
	}
	b.transaction.Inputs = append(b.transaction.Inputs, &txhost.Input{Input: input, Cell: cell})
	return b
}

// AddOutput appends cell to the outputs.
func (b *TransactionBuilder) AddOutput(cell *txhost.Cell) *TransactionBuilder {
	b.transaction.Outputs = append(b.transaction.Outputs, cell)
	return b
}

// AddCellDep appends cell to the cell deps.
func (b *TransactionBuilder) AddCellDep(cell *txhost.Cell) *TransactionBuilder {
	b.transaction.CellDeps = append(b.transaction.CellDeps, cell)
	return b
}

// SetAction declares action in the action witness.
func (b *TransactionBuilder) SetAction(action externalapi.Action) *TransactionBuilder {
	return b.SetRawAction(ActionWitness(action.String()))
}

// SetRawAction places witness in the action witness slot as is.
func (b *TransactionBuilder) SetRawAction(witness []byte) *TransactionBuilder {
	b.action = witness
	return b
}

// Build returns the transaction. The action witness is placed right after
// one empty witness per input.
func (b *TransactionBuilder) Build() *txhost.Transaction {
	witnesses := make([][]byte, len(b.transaction.Inputs))
	for i := range witnesses {
		witnesses[i] = []byte{}
	}
	if b.action != nil {
		witnesses = append(witnesses, b.action)
	}
	b.transaction.Witnesses = witnesses
	return b.transaction
}

// ActionWitness returns a version 0 action witness naming name.
func ActionWitness(name string) []byte {
	return append([]byte{0}, name...)
}

// HashFromSeed returns a hash whose first byte is seed.
func HashFromSeed(seed byte) *externalapi.DomainHash {
	return externalapi.NewDomainHashFromByteArray(&[externalapi.DomainHashSize]byte{seed})
}

// CapacityCell returns a data-less cell locked by lock.
func CapacityCell(lock *externalapi.Script) *txhost.Cell {
	return &txhost.Cell{Output: &externalapi.CellOutput{Capacity: 1000, Lock: lock.Clone()}, Data: []byte{}}
}
