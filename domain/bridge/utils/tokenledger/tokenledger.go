// Package tokenledger sums the amounts held by the token cells of one side
// of a transaction.
package tokenledger

import (
	"bytes"

	"github.com/cellbridge/bridged/domain/bridge/model/externalapi"
	"github.com/cellbridge/bridged/domain/bridge/ruleerrors"
	"github.com/cellbridge/bridged/domain/bridge/utils/celldata"
	"github.com/cellbridge/bridged/domain/bridge/utils/molecule"
	"github.com/pkg/errors"
	"lukechampine.com/uint128"
)

// Ledger holds the amounts of a single token, keyed by the serialized lock
// of the holder.
type Ledger struct {
	TokenID []byte
	amounts map[string]uint128.Uint128
}

// Collect sums the token cells at cells in source. All cells must carry
// the same token type args.
func Collect(host externalapi.Host, cells []int, source externalapi.Source) (*Ledger, error) {
	ledger := &Ledger{amounts: make(map[string]uint128.Uint128, len(cells))}

	var typeArgs []byte
	for _, index := range cells {
		cell, err := host.LoadCell(index, source)
		if err != nil {
			return nil, ruleerrors.FromHostError(err)
		}
		if cell.Type == nil {
			return nil, errors.Wrapf(ruleerrors.ErrUnsupportedTokenTypeArgs, "%s[%d] has no type", source, index)
		}

		if typeArgs == nil {
			typeArgs = cell.Type.Args
			ledger.TokenID, err = celldata.TokenIDFromTypeArgs(typeArgs)
			if err != nil {
				return nil, err
			}
		} else if !bytes.Equal(typeArgs, cell.Type.Args) {
			return nil, errors.Wrapf(ruleerrors.ErrMultipleKindOfTokenFound,
				"%s[%d] holds token %x, expected %x", source, index, cell.Type.Args, typeArgs)
		}

		data, err := host.LoadCellData(index, source)
		if err != nil {
			return nil, ruleerrors.FromHostError(err)
		}
		amount, err := celldata.ParseTokenAmount(data)
		if err != nil {
			return nil, errors.Wrapf(err, "%s[%d]", source, index)
		}

		key := string(molecule.SerializeScript(cell.Lock))
		total, err := Add(ledger.amounts[key], amount)
		if err != nil {
			return nil, errors.Wrapf(err, "summing %s[%d]", source, index)
		}
		ledger.amounts[key] = total
		log.Debugf("Found a token cell at %s[%d] locked by %s holding %s", source, index, cell.Lock, amount)
	}
	return ledger, nil
}

// AmountOf returns the amount held by lock.
func (l *Ledger) AmountOf(lock *externalapi.Script) (uint128.Uint128, bool) {
	amount, ok := l.amounts[string(molecule.SerializeScript(lock))]
	return amount, ok
}

// Total returns the amount held by all holders.
func (l *Ledger) Total() (uint128.Uint128, error) {
	total := uint128.Zero
	for _, amount := range l.amounts {
		var err error
		total, err = Add(total, amount)
		if err != nil {
			return uint128.Zero, err
		}
	}
	return total, nil
}

// Add returns a+b, or ErrAmountOverflow.
func Add(a, b uint128.Uint128) (uint128.Uint128, error) {
	sum := a.AddWrap(b)
	if sum.Cmp(a) < 0 {
		return uint128.Zero, errors.Wrapf(ruleerrors.ErrAmountOverflow, "%s + %s", a, b)
	}
	return sum, nil
}
