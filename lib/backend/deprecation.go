package backend

import (
	"github.com/go-i2p/cryptkit/lib/crypto/ec"
)

// DeprecationHandler receives notices emitted when a deprecated synonym is
// invoked. Swappable so callers can collect notices instead of logging
// them.
var DeprecationHandler = func(notice string) {
	log.Warn(notice)
}

func deprecated(notice string) {
	if DeprecationHandler != nil {
		DeprecationHandler(notice)
	}
}

// EllipticCurvePrivateKeyFromNumbers is a deprecated synonym for
// LoadEllipticCurvePrivateNumbers.
func (m *MultiBackend) EllipticCurvePrivateKeyFromNumbers(numbers *ec.PrivateNumbers) (interface{}, error) {
	deprecated("elliptic_curve_private_key_from_numbers is deprecated, use load_elliptic_curve_private_numbers")
	return m.LoadEllipticCurvePrivateNumbers(numbers)
}

// EllipticCurvePublicKeyFromNumbers is a deprecated synonym for
// LoadEllipticCurvePublicNumbers.
func (m *MultiBackend) EllipticCurvePublicKeyFromNumbers(numbers *ec.PublicNumbers) (interface{}, error) {
	deprecated("elliptic_curve_public_key_from_numbers is deprecated, use load_elliptic_curve_public_numbers")
	return m.LoadEllipticCurvePublicNumbers(numbers)
}
