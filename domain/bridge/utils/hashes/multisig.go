package hashes

import (
	"github.com/pkg/errors"
)

const (
	// MultisigFingerprintSize is the size of a multisig fingerprint.
	MultisigFingerprintSize = 20

	// MultisigPolicySize is the size of the [reserved, require_first_n,
	// threshold] policy record.
	MultisigPolicySize = 3

	// OmniLockFlagMultisig marks omni lock args authenticated by a multisig.
	OmniLockFlagMultisig = 6

	// OmniLockFlagNoMode marks omni lock args with no extra mode.
	OmniLockFlagNoMode = 0

	maxMultisigMembers = 255
)

// ErrTooManyMembers is returned when a member list does not fit the one
// byte member count of a multisig policy.
var ErrTooManyMembers = errors.New("too many multisig members")

// BuildMultisigArgs returns the fingerprint of the multisig policy over the
// ordered members.
func BuildMultisigArgs(requireFirstN, threshold uint8, members [][]byte) ([]byte, error) {
	if len(members) > maxMultisigMembers {
		return nil, errors.Wrapf(ErrTooManyMembers, "%d members", len(members))
	}
	writer := NewCellHashWriter()
	writer.InfallibleWrite([]byte{0, requireFirstN, threshold, uint8(len(members))})
	for _, member := range members {
		writer.InfallibleWrite(member)
	}
	return writer.Finalize().ByteSlice()[:MultisigFingerprintSize], nil
}

// BuildOmniLockMultisigArgs returns the omni lock args authorizing the
// given multisig policy: flag, fingerprint, mode.
func BuildOmniLockMultisigArgs(requireFirstN, threshold uint8, members [][]byte) ([]byte, error) {
	fingerprint, err := BuildMultisigArgs(requireFirstN, threshold, members)
	if err != nil {
		return nil, err
	}
	args := make([]byte, 0, 2+MultisigFingerprintSize)
	args = append(args, OmniLockFlagMultisig)
	args = append(args, fingerprint...)
	args = append(args, OmniLockFlagNoMode)
	return args, nil
}
