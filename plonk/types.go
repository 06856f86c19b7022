// Package plonk implements PlonK proof verification over BN254 with KZG
// polynomial commitments: Fiat-Shamir challenge derivation, the public
// input/BSB22 Lagrange evaluation, the linearized-polynomial digest, and
// the final batched KZG opening check.
package plonk

import (
	"github.com/consensys/gnark-crypto/ecc/bn254"
	"github.com/consensys/gnark-crypto/ecc/bn254/fr"

	"github.com/vocdoni/snark-bn254-verifier/internal/kzg"
)

// VerifyingKey is the decoded PlonK verifying key.
type VerifyingKey struct {
	Size              uint64
	SizeInv           fr.Element
	Generator         fr.Element
	NbPublicVariables uint64
	CosetShift        fr.Element

	S  [3]bn254.G1Affine
	Ql bn254.G1Affine
	Qr bn254.G1Affine
	Qm bn254.G1Affine
	Qo bn254.G1Affine
	Qk bn254.G1Affine

	Qcp []bn254.G1Affine

	KZG kzg.VerifyingKey

	CommitmentConstraintIndexes []uint64
}

// Proof is a decoded PlonK proof.
type Proof struct {
	LRO [3]bn254.G1Affine
	Z   bn254.G1Affine
	H   [3]bn254.G1Affine

	BSB22Commitments []bn254.G1Affine

	BatchedProof    kzg.BatchOpeningProof
	ZShiftedOpening kzg.OpeningProof
}
