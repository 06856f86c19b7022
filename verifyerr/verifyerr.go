// Package verifyerr defines the single error taxonomy shared by the groth16
// and plonk verifiers. Both public packages alias this type (groth16.Error,
// plonk.Error) so callers see a name specific to the verifier they called,
// while the verifiers themselves share one set of Kind values and one
// Error implementation.
package verifyerr

import "fmt"

// Kind classifies the failure. Values are grouped by origin, matching the
// taxonomy of the verifier this code was ported from: serialization,
// structural, transcript, arithmetic, and underlying-library errors.
type Kind int

const (
	// Serialization errors: malformed wire-format bytes.
	KindInvalidXLength Kind = iota
	KindUnexpectedFlag
	KindInvalidData
	KindBeyondTheModulus
	KindInvalidPoint

	// Structural errors: proof/vk shapes do not match.
	KindBsb22CommitmentMismatch
	KindInvalidWitness
	KindInvalidNumberOfDigests

	// Transcript errors: Fiat-Shamir protocol misuse.
	KindChallengeNotFound
	KindChallengeAlreadyComputed
	KindPreviousChallengeNotComputed
	KindDSTTooLarge
	KindEllTooLarge

	// Arithmetic errors: the algorithm ran but the proof does not check out,
	// or hit a zero denominator that honest provers never produce.
	KindInverseNotFound
	KindOpeningPolyMismatch
	KindPairingCheckFailed

	// Errors surfaced as-is from the underlying curve library.
	KindFieldError
	KindGroupError
	KindCurveError
)

var kindNames = map[Kind]string{
	KindInvalidXLength:               "invalid x length",
	KindUnexpectedFlag:               "unexpected flag",
	KindInvalidData:                  "invalid data",
	KindBeyondTheModulus:             "beyond the modulus",
	KindInvalidPoint:                 "invalid point",
	KindBsb22CommitmentMismatch:      "bsb22 commitment mismatch",
	KindInvalidWitness:               "invalid witness",
	KindInvalidNumberOfDigests:       "invalid number of digests",
	KindChallengeNotFound:            "challenge not found",
	KindChallengeAlreadyComputed:     "challenge already computed",
	KindPreviousChallengeNotComputed: "previous challenge not computed",
	KindDSTTooLarge:                  "DST too large",
	KindEllTooLarge:                  "ell too large",
	KindInverseNotFound:              "inverse not found",
	KindOpeningPolyMismatch:          "opening linear polynomial mismatch",
	KindPairingCheckFailed:           "pairing check failed",
	KindFieldError:                   "field error",
	KindGroupError:                   "group error",
	KindCurveError:                   "curve error",
}

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return "unknown error"
}

// Error is the single concrete error type returned by the verifiers. Cause
// is optional context wrapped from the underlying curve library or a
// lower-level package; it may be nil.
type Error struct {
	Kind  Kind
	Cause error
}

func New(kind Kind) *Error {
	return &Error{Kind: kind}
}

func Wrap(kind Kind, cause error) *Error {
	return &Error{Kind: kind, Cause: cause}
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Kind, e.Cause)
	}
	return e.Kind.String()
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target is an *Error with the same Kind, so callers can
// write errors.Is(err, verifyerr.New(verifyerr.KindPairingCheckFailed)).
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind
}
