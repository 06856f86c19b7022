// Package groth16 implements Groth16 proof verification over BN254: the
// three-pairing check with public-input aggregation and an optional
// Pedersen/BSB22 commitment extension.
package groth16

import (
	"github.com/consensys/gnark-crypto/ecc/bn254"
)

// VerifyingKey is the Groth16 verifying key in its decoded, in-memory form.
// K has length equal to the number of public inputs plus one.
type VerifyingKey struct {
	G1Alpha bn254.G1Affine
	G1Beta  bn254.G1Affine
	G2Beta  bn254.G2Affine
	G2Gamma bn254.G2Affine
	G1Delta bn254.G1Affine
	G2Delta bn254.G2Affine
	K       []bn254.G1Affine

	// PublicAndCommitmentCommitted lists, per Pedersen/BSB22 commitment,
	// the (1-indexed) public input positions it commits to.
	PublicAndCommitmentCommitted [][]uint32

	CommitmentKey PedersenVerifyingKey
}

// PedersenVerifyingKey carries the two G2 points used to check that a
// Pedersen commitment opens correctly.
type PedersenVerifyingKey struct {
	G             bn254.G2Affine
	GRootSigmaNeg bn254.G2Affine
}

// Proof is a decoded Groth16 proof. Commitments and CommitmentPok are only
// populated when the circuit uses BSB22 commitments; otherwise Commitments
// is empty and CommitmentPok is the identity.
type Proof struct {
	Ar  bn254.G1Affine
	Bs  bn254.G2Affine
	Krs bn254.G1Affine

	Commitments   []bn254.G1Affine
	CommitmentPok bn254.G1Affine
}
