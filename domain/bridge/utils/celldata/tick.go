package celldata

import (
	"github.com/cellbridge/bridged/domain/bridge/model/externalapi"
	"github.com/cellbridge/bridged/domain/bridge/ruleerrors"
	"github.com/cellbridge/bridged/domain/bridge/utils/molecule"
	"github.com/pkg/errors"
	"lukechampine.com/uint128"
)

const (
	tickCellName     = "TickCell"
	tickFieldNum     = 7
	uint128Size      = 16
	tickTypeFieldLen = 1
)

// ParseTick parses the data of a TickCell.
func ParseTick(data []byte) (*externalapi.TickCell, error) {
	body, err := splitVersion(tickCellName, data)
	if err != nil {
		return nil, err
	}
	fields, err := molecule.DeserializeTable(body, tickFieldNum, true)
	if err != nil {
		return nil, errors.Wrapf(ruleerrors.ErrParseCellDataFailed, "%s: %s", tickCellName, err)
	}
	if len(fields[0]) != tickTypeFieldLen {
		return nil, errors.Wrapf(ruleerrors.ErrParseCellDataFailed,
			"%s: tick_type of %d bytes", tickCellName, len(fields[0]))
	}
	tickType := externalapi.TickType(fields[0][0])
	if tickType != externalapi.TickTypeMint && tickType != externalapi.TickTypeBurn {
		return nil, errors.Wrapf(ruleerrors.ErrUnsupportedTickType, "%s: tick type %d", tickCellName, fields[0][0])
	}
	if len(fields[2]) != uint128Size {
		return nil, errors.Wrapf(ruleerrors.ErrParseCellDataFailed,
			"%s: value of %d bytes", tickCellName, len(fields[2]))
	}

	tick := &externalapi.TickCell{
		TickType: tickType,
		Value:    uint128.FromBytes(fields[2]),
	}
	bytesFields := []struct {
		name   string
		data   []byte
		target *[]byte
	}{
		{"token_id", fields[1], &tick.TokenID},
		{"coin_type", fields[4], &tick.CoinType},
		{"tx_hash", fields[5], &tick.TxHash},
		{"receipt_addr", fields[6], &tick.ReceiptAddr},
	}
	for _, field := range bytesFields {
		*field.target, err = molecule.DeserializeBytes(field.data)
		if err != nil {
			return nil, errors.Wrapf(ruleerrors.ErrParseCellDataFailed, "%s %s: %s", tickCellName, field.name, err)
		}
	}
	tick.Merchant, err = molecule.DeserializeScript(fields[3])
	if err != nil {
		return nil, errors.Wrapf(ruleerrors.ErrParseCellDataFailed, "%s merchant: %s", tickCellName, err)
	}
	return tick, nil
}

// SerializeTick builds the data of a TickCell.
func SerializeTick(tick *externalapi.TickCell) []byte {
	value := make([]byte, uint128Size)
	tick.Value.PutBytes(value)
	return withVersion(molecule.SerializeTable(
		[]byte{byte(tick.TickType)},
		molecule.SerializeBytes(tick.TokenID),
		value,
		molecule.SerializeScript(tick.Merchant),
		molecule.SerializeBytes(tick.CoinType),
		molecule.SerializeBytes(tick.TxHash),
		molecule.SerializeBytes(tick.ReceiptAddr),
	))
}
