package celldata

import (
	"github.com/cellbridge/bridged/domain/bridge/ruleerrors"
	"github.com/pkg/errors"
	"lukechampine.com/uint128"
)

// TokenIDSize is the size of a token id.
const TokenIDSize = 32

// TokenIDFromTypeArgs returns the token id a token cell's type args start
// with.
func TokenIDFromTypeArgs(args []byte) ([]byte, error) {
	if len(args) < TokenIDSize {
		return nil, errors.Wrapf(ruleerrors.ErrUnsupportedTokenTypeArgs,
			"token type args of %d bytes carry no token id", len(args))
	}
	return args[:TokenIDSize], nil
}

// ParseTokenAmount returns the amount a token cell's data starts with.
func ParseTokenAmount(data []byte) (uint128.Uint128, error) {
	if len(data) < uint128Size {
		return uint128.Zero, errors.Wrapf(ruleerrors.ErrUnsupportedTokenData,
			"token data of %d bytes carries no amount", len(data))
	}
	return uint128.FromBytes(data[:uint128Size]), nil
}

// SerializeTokenAmount builds token cell data holding amount.
func SerializeTokenAmount(amount uint128.Uint128) []byte {
	data := make([]byte, uint128Size)
	amount.PutBytes(data)
	return data
}
