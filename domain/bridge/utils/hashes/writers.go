package hashes

import (
	"hash"

	"github.com/cellbridge/bridged/domain/bridge/model/externalapi"
	"github.com/pkg/errors"
	"golang.org/x/crypto/blake2b"
)

// cellHashPersonalization is the blake2b personalization of every hash the
// ledger computes over cells and scripts. x/crypto exposes no
// personalization parameter, so it is applied as the MAC key.
var cellHashPersonalization = []byte("ckb-default-hash")

// HashWriter accumulates the preimage of a cell hash piece by piece.
type HashWriter struct {
	hash.Hash
}

// NewCellHashWriter returns an empty HashWriter for script hashes, cell ids
// and multisig fingerprints.
func NewCellHashWriter() HashWriter {
	blake, err := blake2b.New256(cellHashPersonalization)
	if err != nil {
		panic(errors.Wrapf(err, "a %d byte blake2b key is always valid", len(cellHashPersonalization)))
	}
	return HashWriter{blake}
}

// InfallibleWrite appends p to the preimage. hash.Hash never fails a write.
func (h HashWriter) InfallibleWrite(p []byte) {
	_, err := h.Write(p)
	if err != nil {
		panic(errors.Wrap(err, "hash.Hash returned a write error"))
	}
}

// Finalize returns the hash of everything written so far.
func (h HashWriter) Finalize() *externalapi.DomainHash {
	hashBytes, err := externalapi.NewDomainHashFromByteSlice(h.Sum(nil))
	if err != nil {
		panic(err)
	}
	return hashBytes
}

// Hash returns the cell hash of data.
func Hash(data []byte) *externalapi.DomainHash {
	writer := NewCellHashWriter()
	writer.InfallibleWrite(data)
	return writer.Finalize()
}
