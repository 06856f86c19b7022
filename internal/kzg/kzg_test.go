package kzg

import (
	"math/big"
	"testing"

	"github.com/consensys/gnark-crypto/ecc/bn254"
	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
	qt "github.com/frankban/quicktest"

	"github.com/vocdoni/snark-bn254-verifier/verifyerr"
)

func TestFoldProofRejectsDigestCountMismatch(t *testing.T) {
	c := qt.New(t)

	_, gen, _, _ := bn254.Generators()
	digests := []bn254.G1Affine{gen, gen}
	proof := &BatchOpeningProof{H: gen, ClaimedValues: []fr.Element{{}}}
	var point fr.Element
	point.SetOne()

	_, _, err := FoldProof(digests, proof, &point, nil)
	c.Assert(err, qt.ErrorIs, verifyerr.New(verifyerr.KindInvalidNumberOfDigests))
}

func TestBatchVerifyMultiPointsRejectsCountMismatch(t *testing.T) {
	c := qt.New(t)

	_, gen, _, _ := bn254.Generators()
	digests := []bn254.G1Affine{gen, gen}
	proofs := []OpeningProof{{H: gen}}
	points := []fr.Element{{}, {}}

	err := BatchVerifyMultiPoints(digests, proofs, points, &VerifyingKey{})
	c.Assert(err, qt.ErrorIs, verifyerr.New(verifyerr.KindInvalidNumberOfDigests))
}

// buildHonestOpening constructs a single-point opening proof for the
// constant polynomial f(X) = value, whose quotient is always the identity:
// f(X) - f(z) = 0, so H = 0 and the pairing check degenerates correctly.
func buildHonestOpening(t *testing.T, alpha *big.Int) (VerifyingKey, bn254.G1Affine, OpeningProof, fr.Element) {
	t.Helper()
	_, g1gen, _, g2gen := bn254.Generators()

	var g2Alpha bn254.G2Affine
	g2Alpha.ScalarMultiplication(&g2gen, alpha)

	vk := VerifyingKey{G2: [2]bn254.G2Affine{g2gen, g2Alpha}, G1: g1gen}

	var value fr.Element
	value.SetUint64(42)
	var valueBig big.Int
	value.BigInt(&valueBig)

	var commitment bn254.G1Affine
	commitment.ScalarMultiplication(&g1gen, &valueBig)

	var point fr.Element
	point.SetUint64(7)

	var zero bn254.G1Affine
	return vk, commitment, OpeningProof{H: zero, ClaimedValue: value}, point
}

func TestBatchVerifySinglePointAcceptsHonestConstantOpening(t *testing.T) {
	c := qt.New(t)

	alpha := big.NewInt(1234567)
	vk, commitment, proof, point := buildHonestOpening(t, alpha)

	err := BatchVerifyMultiPoints([]bn254.G1Affine{commitment}, []OpeningProof{proof}, []fr.Element{point}, &vk)
	c.Assert(err, qt.IsNil)
}

func TestBatchVerifySinglePointRejectsTamperedValue(t *testing.T) {
	c := qt.New(t)

	alpha := big.NewInt(1234567)
	vk, commitment, proof, point := buildHonestOpening(t, alpha)
	proof.ClaimedValue.SetUint64(43)

	err := BatchVerifyMultiPoints([]bn254.G1Affine{commitment}, []OpeningProof{proof}, []fr.Element{point}, &vk)
	c.Assert(err, qt.ErrorIs, verifyerr.New(verifyerr.KindPairingCheckFailed))
}
