package groth16

import (
	"math/big"
	"testing"

	"github.com/consensys/gnark-crypto/ecc/bn254"
	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
	qt "github.com/frankban/quicktest"

	"github.com/vocdoni/snark-bn254-verifier/verifyerr"
)

// buildTrivialInstance builds a verifying key and proof for the degenerate
// zero-public-input, zero-witness circuit: vk_x is the identity and C is
// the identity, so the pairing equation collapses to e(alpha, beta) on
// both sides. It exercises the wiring of the verification equation without
// needing a real constraint system and QAP-derived SRS.
func buildTrivialInstance() (*VerifyingKey, *Proof) {
	_, g1gen, _, g2gen := bn254.Generators()

	var alpha bn254.G1Affine
	alpha.ScalarMultiplication(&g1gen, big.NewInt(5))
	var beta bn254.G2Affine
	beta.ScalarMultiplication(&g2gen, big.NewInt(7))
	var gamma bn254.G2Affine
	gamma.ScalarMultiplication(&g2gen, big.NewInt(11))
	var delta bn254.G2Affine
	delta.ScalarMultiplication(&g2gen, big.NewInt(13))

	vk := &VerifyingKey{
		G1Alpha: alpha,
		G2Beta:  beta,
		G2Gamma: gamma,
		G2Delta: delta,
		K:       []bn254.G1Affine{{}},
	}
	proof := &Proof{
		Ar:  alpha,
		Bs:  beta,
		Krs: bn254.G1Affine{},
	}
	return vk, proof
}

func TestVerifyAcceptsTrivialInstance(t *testing.T) {
	c := qt.New(t)
	vk, proof := buildTrivialInstance()

	ok, err := Verify(vk, proof, nil)
	c.Assert(err, qt.IsNil)
	c.Assert(ok, qt.IsTrue)
}

func TestVerifyRejectsTamperedC(t *testing.T) {
	c := qt.New(t)
	vk, proof := buildTrivialInstance()

	_, g1gen, _, _ := bn254.Generators()
	proof.Krs = g1gen

	ok, err := Verify(vk, proof, nil)
	c.Assert(err, qt.IsNil)
	c.Assert(ok, qt.IsFalse)
}

func TestVerifyRejectsWitnessLengthMismatch(t *testing.T) {
	c := qt.New(t)
	vk, proof := buildTrivialInstance()

	_, err := Verify(vk, proof, []fr.Element{{}})
	c.Assert(err, qt.ErrorIs, verifyerr.New(verifyerr.KindInvalidWitness))
}

func TestVerifyIsIdempotent(t *testing.T) {
	c := qt.New(t)
	vk, proof := buildTrivialInstance()

	first, err := Verify(vk, proof, nil)
	c.Assert(err, qt.IsNil)
	second, err := Verify(vk, proof, nil)
	c.Assert(err, qt.IsNil)
	c.Assert(first, qt.Equals, second)
}

// buildPedersenInstance builds a verifying key and proof carrying one
// BSB22/Pedersen commitment with a genuine proof of knowledge: the PoK is
// sigma*C for the committed point C and a secret scalar sigma, checked
// against G=[1]_2 and GRootSigmaNeg=[-sigma]_2, so e(PoK,G)*e(C,GRootSigmaNeg)
// telescopes to e(C,[1]_2)^sigma * e(C,[1]_2)^-sigma = 1 for any C. The
// outer pairing equation is kept trivial the same way buildTrivialInstance
// is: Ar=alpha and Bs=beta cancel e(-Ar,Bs) against e(alpha,beta), and
// gamma=delta lets Krs=-C cancel vk_x=C against e(C,gamma).
func buildPedersenInstance() (*VerifyingKey, *Proof) {
	_, g1gen, _, g2gen := bn254.Generators()

	var alpha bn254.G1Affine
	alpha.ScalarMultiplication(&g1gen, big.NewInt(5))
	var beta bn254.G2Affine
	beta.ScalarMultiplication(&g2gen, big.NewInt(7))
	var gammaDelta bn254.G2Affine
	gammaDelta.ScalarMultiplication(&g2gen, big.NewInt(11))

	var commitment bn254.G1Affine
	commitment.ScalarMultiplication(&g1gen, big.NewInt(3))
	var krs bn254.G1Affine
	krs.Neg(&commitment)

	sigma := big.NewInt(17)
	var pok bn254.G1Affine
	pok.ScalarMultiplication(&commitment, sigma)
	var gRootSigmaNeg bn254.G2Affine
	gRootSigmaNeg.ScalarMultiplication(&g2gen, sigma)
	gRootSigmaNeg.Neg(&gRootSigmaNeg)

	vk := &VerifyingKey{
		G1Alpha: alpha,
		G2Beta:  beta,
		G2Gamma: gammaDelta,
		G2Delta: gammaDelta,
		K:       []bn254.G1Affine{{}},
		CommitmentKey: PedersenVerifyingKey{
			G:             g2gen,
			GRootSigmaNeg: gRootSigmaNeg,
		},
	}
	proof := &Proof{
		Ar:            alpha,
		Bs:            beta,
		Krs:           krs,
		Commitments:   []bn254.G1Affine{commitment},
		CommitmentPok: pok,
	}
	return vk, proof
}

func TestVerifyAcceptsHonestPedersenCommitment(t *testing.T) {
	c := qt.New(t)
	vk, proof := buildPedersenInstance()

	ok, err := Verify(vk, proof, nil)
	c.Assert(err, qt.IsNil)
	c.Assert(ok, qt.IsTrue)
}

func TestVerifyRejectsTamperedCommitmentPok(t *testing.T) {
	c := qt.New(t)
	vk, proof := buildPedersenInstance()

	_, g1gen, _, _ := bn254.Generators()
	proof.CommitmentPok = g1gen

	ok, err := Verify(vk, proof, nil)
	c.Assert(err, qt.IsNil)
	c.Assert(ok, qt.IsFalse)
}

func TestProofFromBytesRejectsTruncatedBuffer(t *testing.T) {
	c := qt.New(t)

	_, g1gen, _, g2gen := bn254.Generators()
	var ar, krs [32]byte
	arBytes := g1gen.Bytes()
	copy(ar[:], arBytes[:])
	krsBytes := g1gen.Bytes()
	copy(krs[:], krsBytes[:])
	bsBytes := g2gen.Bytes()

	full := append(append(append([]byte{}, ar[:]...), bsBytes[:]...), krs[:]...)
	truncated := full[:len(full)-1]

	_, err := ProofFromBytes(truncated)
	c.Assert(err, qt.Not(qt.IsNil))
}

func TestVerifyingKeyFromBytesRejectsEmptyK(t *testing.T) {
	c := qt.New(t)

	_, g1gen, _, g2gen := bn254.Generators()
	alphaG1 := g1gen.Bytes()
	betaG1 := g1gen.Bytes()
	betaG2 := g2gen.Bytes()
	gammaG2 := g2gen.Bytes()
	deltaG1 := g1gen.Bytes()
	deltaG2 := g2gen.Bytes()

	buf := append([]byte{}, alphaG1[:]...)
	buf = append(buf, betaG1[:]...)
	buf = append(buf, betaG2[:]...)
	buf = append(buf, gammaG2[:]...)
	buf = append(buf, deltaG1[:]...)
	buf = append(buf, deltaG2[:]...)
	buf = append(buf, 0, 0, 0, 0) // num_k = 0
	buf = append(buf, 0, 0, 0, 0) // num groups = 0
	buf = append(buf, gammaG2[:]...)
	buf = append(buf, deltaG2[:]...)

	_, err := VerifyingKeyFromBytes(buf)
	c.Assert(err, qt.ErrorIs, verifyerr.New(verifyerr.KindInvalidData))
}
