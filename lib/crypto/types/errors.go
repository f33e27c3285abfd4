package types

import (
	"errors"
	"fmt"

	"github.com/samber/oops"
)

var (
	// ErrValue marks out-of-range or otherwise malformed argument values.
	ErrValue = oops.Errorf("invalid value")
	// ErrType marks arguments of the wrong kind, such as a padding or hash
	// object that does not conform to the expected capability.
	ErrType = oops.Errorf("invalid type")
	// ErrInvalidSignature is the single error every verification failure
	// surfaces as, regardless of cause.
	ErrInvalidSignature = oops.Errorf("invalid signature")
	// ErrAlreadyFinalized is returned when a single-use context is updated
	// or finalized a second time.
	ErrAlreadyFinalized = oops.Errorf("context was already finalized")
)

// ValueErrorf builds an error classified under ErrValue.
func ValueErrorf(format string, args ...interface{}) error {
	return oops.Wrapf(ErrValue, format, args...)
}

// TypeErrorf builds an error classified under ErrType.
func TypeErrorf(format string, args ...interface{}) error {
	return oops.Wrapf(ErrType, format, args...)
}

// UnsupportedReason states which capability family a missing algorithm
// belongs to.
type UnsupportedReason int

const (
	UnsupportedCipher UnsupportedReason = iota
	UnsupportedHash
	UnsupportedPadding
	UnsupportedMGF
	UnsupportedPublicKeyAlgorithm
	UnsupportedEllipticCurve
	UnsupportedSerialization
	BackendMissingInterface
)

func (r UnsupportedReason) String() string {
	switch r {
	case UnsupportedCipher:
		return "UNSUPPORTED_CIPHER"
	case UnsupportedHash:
		return "UNSUPPORTED_HASH"
	case UnsupportedPadding:
		return "UNSUPPORTED_PADDING"
	case UnsupportedMGF:
		return "UNSUPPORTED_MGF"
	case UnsupportedPublicKeyAlgorithm:
		return "UNSUPPORTED_PUBLIC_KEY_ALGORITHM"
	case UnsupportedEllipticCurve:
		return "UNSUPPORTED_ELLIPTIC_CURVE"
	case UnsupportedSerialization:
		return "UNSUPPORTED_SERIALIZATION"
	case BackendMissingInterface:
		return "BACKEND_MISSING_INTERFACE"
	default:
		return fmt.Sprintf("UNSUPPORTED(%d)", int(r))
	}
}

// UnsupportedAlgorithmError reports that no registered backend can serve a
// requested algorithm or operation.
type UnsupportedAlgorithmError struct {
	Message string
	Reason  UnsupportedReason
}

func (e *UnsupportedAlgorithmError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("unsupported algorithm (%s)", e.Reason)
	}
	return fmt.Sprintf("%s (%s)", e.Message, e.Reason)
}

// Unsupportedf builds an UnsupportedAlgorithmError with a formatted message.
func Unsupportedf(reason UnsupportedReason, format string, args ...interface{}) error {
	return &UnsupportedAlgorithmError{
		Message: fmt.Sprintf(format, args...),
		Reason:  reason,
	}
}

// UnsupportedReasonOf extracts the reason from err if it is an
// UnsupportedAlgorithmError. The second return is false otherwise.
func UnsupportedReasonOf(err error) (UnsupportedReason, bool) {
	var ua *UnsupportedAlgorithmError
	if errors.As(err, &ua) {
		return ua.Reason, true
	}
	return 0, false
}
