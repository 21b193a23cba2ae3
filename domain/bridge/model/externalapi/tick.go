package externalapi

import (
	"fmt"

	"lukechampine.com/uint128"
)

// TickType tells whether a TickCell requests a mint or a burn.
type TickType uint8

// TickType values
const (
	TickTypeMint TickType = 0
	TickTypeBurn TickType = 1
)

func (t TickType) String() string {
	switch t {
	case TickTypeMint:
		return "Mint"
	case TickTypeBurn:
		return "Burn"
	}
	return fmt.Sprintf("TickType(%d)", uint8(t))
}

// TickCell is the data of a mint or burn request ticket.
type TickCell struct {
	TickType    TickType
	TokenID     []byte
	Value       uint128.Uint128
	Merchant    *Script
	CoinType    []byte
	TxHash      []byte
	ReceiptAddr []byte
}
