package ruleerrors

import (
	"fmt"

	"github.com/cellbridge/bridged/domain/bridge/model"
	"github.com/cellbridge/bridged/domain/bridge/model/externalapi"
	"github.com/pkg/errors"
	"lukechampine.com/uint128"
)

// Host faults. These share the code space of the rule errors below.
var (
	ErrIndexOutOfBound = newRuleError(1, "ErrIndexOutOfBound")
	ErrItemMissing     = newRuleError(2, "ErrItemMissing")
	ErrLengthNotEnough = newRuleError(3, "ErrLengthNotEnough")
	ErrEncoding        = newRuleError(4, "ErrEncoding")
)

// Errors shared by every validator.
var (
	// ErrDeploymentParams indicates the deployment constants are unusable,
	// e.g. a type id that is not 32 bytes long.
	ErrDeploymentParams = newRuleError(5, "ErrDeploymentParams")

	// ErrInvalidTransactionStructure indicates the cells of a kind are not
	// found where, or as many times as, the action requires.
	ErrInvalidTransactionStructure = newRuleError(6, "ErrInvalidTransactionStructure")

	ErrActionNotFound       = newRuleError(7, "ErrActionNotFound")
	ErrActionVersionUnknown = newRuleError(8, "ErrActionVersionUnknown")
	ErrActionUndefined      = newRuleError(9, "ErrActionUndefined")

	// ErrActionNotSupported indicates a known action that the running
	// validator has no handler for.
	ErrActionNotSupported = newRuleError(10, "ErrActionNotSupported")

	ErrParseCellDataVersionFailed = newRuleError(11, "ErrParseCellDataVersionFailed")
	ErrParseCellDataFailed        = newRuleError(12, "ErrParseCellDataFailed")
	ErrParseCellTypeArgsFailed    = newRuleError(13, "ErrParseCellTypeArgsFailed")

	ErrDeployLockIsRequired        = newRuleError(14, "ErrDeployLockIsRequired")
	ErrOwnerLockIsRequired         = newRuleError(15, "ErrOwnerLockIsRequired")
	ErrAlwaysSuccessLockIsRequired = newRuleError(16, "ErrAlwaysSuccessLockIsRequired")
	ErrCustodianLockIsRequired     = newRuleError(17, "ErrCustodianLockIsRequired")
	ErrCellLockMustBeOwnerLock     = newRuleError(18, "ErrCellLockMustBeOwnerLock")

	// ErrCellCapacityMustBeConsistent indicates a cell lost capacity while
	// capacity was not allowed to change.
	ErrCellCapacityMustBeConsistent = newRuleError(19, "ErrCellCapacityMustBeConsistent")
	ErrCellLockMustBeConsistent     = newRuleError(20, "ErrCellLockMustBeConsistent")
	ErrCellTypeMustBeConsistent     = newRuleError(21, "ErrCellTypeMustBeConsistent")
	ErrCellDataMustBeConsistent     = newRuleError(22, "ErrCellDataMustBeConsistent")

	// ErrGovernanceCellLockMismatch indicates a governance cell is not
	// locked by the lock its role requires.
	ErrGovernanceCellLockMismatch = newRuleError(23, "ErrGovernanceCellLockMismatch")
	ErrGovernanceCellIsCorrupted  = newRuleError(24, "ErrGovernanceCellIsCorrupted")
	ErrGovernanceCellRoleError    = newRuleError(25, "ErrGovernanceCellRoleError")

	ErrMerchantLockIsRequired = newRuleError(26, "ErrMerchantLockIsRequired")

	// ErrSystemStatusOff indicates the halt switch of the config cell is set.
	ErrSystemStatusOff = newRuleError(27, "ErrSystemStatusOff")

	ErrAmountOverflow = newRuleError(28, "ErrAmountOverflow")
)

// Config validator errors.
var (
	ErrArgsMustBeEmpty = newRuleError(40, "ErrArgsMustBeEmpty")
)

// Governance validator errors.
var (
	ErrCellIDIsInvalid                  = newRuleError(50, "ErrCellIDIsInvalid")
	ErrNewCellLockError                 = newRuleError(51, "ErrNewCellLockError")
	ErrCustodianParentIDMustBeEmpty     = newRuleError(52, "ErrCustodianParentIDMustBeEmpty")
	ErrMerchantParentIDMustNotBeEmpty   = newRuleError(53, "ErrMerchantParentIDMustNotBeEmpty")
	ErrMerchantLockArgsMustBeEmpty      = newRuleError(54, "ErrMerchantLockArgsMustBeEmpty")
	ErrMerchantMultisigArgsMustBeEmpty  = newRuleError(55, "ErrMerchantMultisigArgsMustBeEmpty")
	ErrMerchantParentIDMismatch         = newRuleError(56, "ErrMerchantParentIDMismatch")
	ErrCustodianMultisigArgsIsInvalid   = newRuleError(57, "ErrCustodianMultisigArgsIsInvalid")
	ErrCustodianLockArgsInDataIsInvalid = newRuleError(58, "ErrCustodianLockArgsInDataIsInvalid")
	ErrPermissionDenied                 = newRuleError(59, "ErrPermissionDenied")
	ErrCustodianLockMustNotInMerchants  = newRuleError(60, "ErrCustodianLockMustNotInMerchants")
)

// Tick validator errors.
var (
	ErrUnsupportedTickType      = newRuleError(70, "ErrUnsupportedTickType")
	ErrTickValueCanNotBeZero    = newRuleError(71, "ErrTickValueCanNotBeZero")
	ErrInvalidTickType          = newRuleError(72, "ErrInvalidTickType")
	ErrInvalidTickTokenIDSize   = newRuleError(73, "ErrInvalidTickTokenIDSize")
	ErrInvalidTickMerchantLock  = newRuleError(74, "ErrInvalidTickMerchantLock")
	ErrTokenCellTokenIDMismatch = newRuleError(75, "ErrTokenCellTokenIDMismatch")
	ErrUnsupportedTokenTypeArgs = newRuleError(76, "ErrUnsupportedTokenTypeArgs")
	ErrUnsupportedTokenData     = newRuleError(77, "ErrUnsupportedTokenData")

	// ErrMultipleKindOfTokenFound indicates cells of more than one token id
	// where a single token is expected.
	ErrMultipleKindOfTokenFound = newRuleError(78, "ErrMultipleKindOfTokenFound")

	ErrBurnedTokenAmountNotMatch = newRuleError(79, "ErrBurnedTokenAmountNotMatch")
	ErrTokenTransferError        = newRuleError(80, "ErrTokenTransferError")
)

// Token validator errors.
var (
	ErrGovernanceCellNumber         = newRuleError(90, "ErrGovernanceCellNumber")
	ErrOmniLockCellNumber           = newRuleError(91, "ErrOmniLockCellNumber")
	ErrUnauthorizedGovernanceMember = newRuleError(92, "ErrUnauthorizedGovernanceMember")
	ErrOwnerModeRequired            = newRuleError(93, "ErrOwnerModeRequired")
	ErrTokenIDSize                  = newRuleError(94, "ErrTokenIDSize")
)

// RuleError identifies a rule violation. It is used to indicate that
// validation of a transaction failed due to one of the many validation
// rules. Every RuleError carries the exit code the validator reports to
// the host.
type RuleError struct {
	code    int8
	message string
	inner   error
}

// Error satisfies the error interface and prints human-readable errors.
func (e RuleError) Error() string {
	if e.inner != nil {
		return e.message + ": " + e.inner.Error()
	}
	return e.message
}

// Unwrap satisfies the errors.Unwrap interface
func (e RuleError) Unwrap() error {
	return e.inner
}

// Cause satisfies the github.com/pkg/errors.Cause interface
func (e RuleError) Cause() error {
	return e.inner
}

// Is reports whether target is a RuleError with the same code, so that
// errors carrying a payload still match their catalog entry.
func (e RuleError) Is(target error) bool {
	var other RuleError
	switch t := target.(type) {
	case RuleError:
		other = t
	case *RuleError:
		other = *t
	default:
		return false
	}
	return e.code == other.code
}

// Code returns the exit code of the error.
func (e RuleError) Code() int8 {
	return e.code
}

func newRuleError(code int8, message string) RuleError {
	return RuleError{code: code, message: message, inner: nil}
}

// ExitCode maps err to the code a validator exits with: 0 on success,
// the catalog code for rule errors, and -1 for anything else.
func ExitCode(err error) int8 {
	if err == nil {
		return 0
	}
	var ruleErr RuleError
	if errors.As(err, &ruleErr) {
		return ruleErr.code
	}
	return -1
}

// FromHostError folds an error reported by the host into the catalog.
// Errors outside the host contract are not validation outcomes, so they
// panic.
func FromHostError(err error) error {
	if err == nil {
		return nil
	}
	var ruleErr RuleError
	switch {
	case errors.Is(err, externalapi.ErrIndexOutOfBound):
		ruleErr = ErrIndexOutOfBound
	case errors.Is(err, externalapi.ErrItemMissing):
		ruleErr = ErrItemMissing
	case errors.Is(err, externalapi.ErrLengthNotEnough):
		ruleErr = ErrLengthNotEnough
	case errors.Is(err, externalapi.ErrEncoding):
		ruleErr = ErrEncoding
	default:
		panic(errors.Wrap(err, "unexpected host error"))
	}
	ruleErr.inner = err
	return errors.WithStack(ruleErr)
}

// ErrUnexpectedCells indicates cells of a kind found at positions other than
// the expected ones.
type ErrUnexpectedCells struct {
	CellName string
	Source   externalapi.Source
	Expected []int
	Found    []int
}

func (e *ErrUnexpectedCells) Error() string {
	switch len(e.Expected) {
	case 0:
		return fmt.Sprintf("there should be no %s in %s, found at %v", e.CellName, e.Source, e.Found)
	case 1:
		return fmt.Sprintf("there should be only one %s in %s[%d], found at %v",
			e.CellName, e.Source, e.Expected[0], e.Found)
	}
	return fmt.Sprintf("there should be %d %ss in %s%v, found at %v",
		len(e.Expected), e.CellName, e.Source, e.Expected, e.Found)
}

// NewErrUnexpectedCells creates a new ErrUnexpectedCells error wrapped in a RuleError
func NewErrUnexpectedCells(cellName string, source externalapi.Source, expected, found []int) error {
	return errors.WithStack(RuleError{
		code:    ErrInvalidTransactionStructure.code,
		message: ErrInvalidTransactionStructure.message,
		inner:   &ErrUnexpectedCells{CellName: cellName, Source: source, Expected: expected, Found: found},
	})
}

// ErrCellCountOutOfRange indicates the number of cells of a kind breaks the
// bound the action requires.
type ErrCellCountOutOfRange struct {
	CellName string
	Source   externalapi.Source
	Ordering model.Ordering
	Bound    int
	Found    int
}

func (e *ErrCellCountOutOfRange) Error() string {
	return fmt.Sprintf("there should be %s %d %ss in %s, found %d",
		e.Ordering, e.Bound, e.CellName, e.Source, e.Found)
}

// NewErrCellCountOutOfRange creates a new ErrCellCountOutOfRange error wrapped in a RuleError
func NewErrCellCountOutOfRange(cellName string, source externalapi.Source, ordering model.Ordering, bound, found int) error {
	return errors.WithStack(RuleError{
		code:    ErrInvalidTransactionStructure.code,
		message: ErrInvalidTransactionStructure.message,
		inner: &ErrCellCountOutOfRange{
			CellName: cellName, Source: source, Ordering: ordering, Bound: bound, Found: found,
		},
	})
}

// ErrTokenAmountMismatch carries the amounts of a failed token balance check.
type ErrTokenAmountMismatch struct {
	Expected uint128.Uint128
	Actual   uint128.Uint128
}

func (e *ErrTokenAmountMismatch) Error() string {
	return fmt.Sprintf("expected amount %s, got %s", e.Expected, e.Actual)
}

// NewErrTokenAmountMismatch wraps an ErrTokenAmountMismatch in the given
// catalog entry.
func NewErrTokenAmountMismatch(ruleError RuleError, expected, actual uint128.Uint128) error {
	return errors.WithStack(RuleError{
		code:    ruleError.code,
		message: ruleError.message,
		inner:   &ErrTokenAmountMismatch{Expected: expected, Actual: actual},
	})
}

// WithCause returns ruleError caused by cause. The exit code is the one of
// ruleError while errors.Is still matches the cause.
func WithCause(ruleError RuleError, cause error) error {
	return errors.WithStack(RuleError{
		code:    ruleError.code,
		message: ruleError.message,
		inner:   cause,
	})
}
