package plonk

import (
	"github.com/consensys/gnark-crypto/ecc/bn254"
	"github.com/consensys/gnark-crypto/ecc/bn254/fr"

	"github.com/vocdoni/snark-bn254-verifier/internal/gnarkio"
	"github.com/vocdoni/snark-bn254-verifier/internal/kzg"
)

// precomputedPairingLinesBytes is the size of the opaque precomputed
// pairing-line region of the verifying key; this implementation lets the
// pairing primitive recompute lines internally and only needs to skip it.
const precomputedPairingLinesBytes = 33788

// VerifyingKeyFromBytes decodes a PlonK verifying key per the gnark wire
// layout: size, size_inv, generator, nb_public_variables and coset_shift,
// the compressed s, ql, qr, qm, qo, qk and qcp commitments, the KZG key,
// the skipped precomputed pairing lines, and the commitment constraint
// indexes.
func VerifyingKeyFromBytes(buf []byte) (*VerifyingKey, error) {
	b := gnarkio.NewBuffer(buf)

	size, err := b.ReadU64()
	if err != nil {
		return nil, err
	}
	sizeInv, err := b.ReadFr()
	if err != nil {
		return nil, err
	}
	generator, err := b.ReadFr()
	if err != nil {
		return nil, err
	}
	nbPublicVariables, err := b.ReadU64()
	if err != nil {
		return nil, err
	}
	cosetShift, err := b.ReadFr()
	if err != nil {
		return nil, err
	}

	var s [3]bn254.G1Affine
	for i := range s {
		p, err := b.ReadG1Compressed()
		if err != nil {
			return nil, err
		}
		s[i] = p
	}

	ql, err := b.ReadG1Compressed()
	if err != nil {
		return nil, err
	}
	qr, err := b.ReadG1Compressed()
	if err != nil {
		return nil, err
	}
	qm, err := b.ReadG1Compressed()
	if err != nil {
		return nil, err
	}
	qo, err := b.ReadG1Compressed()
	if err != nil {
		return nil, err
	}
	qk, err := b.ReadG1Compressed()
	if err != nil {
		return nil, err
	}

	numQcp, err := b.ReadU32()
	if err != nil {
		return nil, err
	}
	qcp := make([]bn254.G1Affine, numQcp)
	for i := range qcp {
		p, err := b.ReadG1Compressed()
		if err != nil {
			return nil, err
		}
		qcp[i] = p
	}

	kzgG1, err := b.ReadG1Compressed()
	if err != nil {
		return nil, err
	}
	kzgG2_0, err := b.ReadG2Compressed()
	if err != nil {
		return nil, err
	}
	kzgG2_1, err := b.ReadG2Compressed()
	if err != nil {
		return nil, err
	}

	if err := b.Skip(precomputedPairingLinesBytes); err != nil {
		return nil, err
	}

	numIndexes, err := b.ReadU64()
	if err != nil {
		return nil, err
	}
	indexes := make([]uint64, numIndexes)
	for i := range indexes {
		v, err := b.ReadU64()
		if err != nil {
			return nil, err
		}
		indexes[i] = v
	}

	return &VerifyingKey{
		Size:              size,
		SizeInv:           sizeInv,
		Generator:         generator,
		NbPublicVariables: nbPublicVariables,
		CosetShift:        cosetShift,
		S:                 s,
		Ql:                ql,
		Qr:                qr,
		Qm:                qm,
		Qo:                qo,
		Qk:                qk,
		Qcp:               qcp,
		KZG: kzg.VerifyingKey{
			G2: [2]bn254.G2Affine{kzgG2_0, kzgG2_1},
			G1: kzgG1,
		},
		CommitmentConstraintIndexes: indexes,
	}, nil
}

// ProofFromBytes decodes a PlonK proof: eight uncompressed G1 values, a
// variable-length claimed-values list, the shifted-opening proof, and a
// variable-length BSB22 commitment list.
func ProofFromBytes(buf []byte) (*Proof, error) {
	b := gnarkio.NewBuffer(buf)

	var lro [3]bn254.G1Affine
	for i := range lro {
		p, err := b.ReadG1Uncompressed()
		if err != nil {
			return nil, err
		}
		lro[i] = p
	}

	z, err := b.ReadG1Uncompressed()
	if err != nil {
		return nil, err
	}

	var h [3]bn254.G1Affine
	for i := range h {
		p, err := b.ReadG1Uncompressed()
		if err != nil {
			return nil, err
		}
		h[i] = p
	}

	batchedProofH, err := b.ReadG1Uncompressed()
	if err != nil {
		return nil, err
	}

	numClaimedValues, err := b.ReadU32()
	if err != nil {
		return nil, err
	}
	claimedValues := make([]fr.Element, numClaimedValues)
	for i := range claimedValues {
		v, err := b.ReadFr()
		if err != nil {
			return nil, err
		}
		claimedValues[i] = v
	}

	zShiftedOpeningH, err := b.ReadG1Uncompressed()
	if err != nil {
		return nil, err
	}
	zShiftedOpeningValue, err := b.ReadFr()
	if err != nil {
		return nil, err
	}

	numBSB22, err := b.ReadU32()
	if err != nil {
		return nil, err
	}
	bsb22 := make([]bn254.G1Affine, numBSB22)
	for i := range bsb22 {
		p, err := b.ReadG1Uncompressed()
		if err != nil {
			return nil, err
		}
		bsb22[i] = p
	}

	return &Proof{
		LRO:              lro,
		Z:                z,
		H:                h,
		BSB22Commitments: bsb22,
		BatchedProof: kzg.BatchOpeningProof{
			H:             batchedProofH,
			ClaimedValues: claimedValues,
		},
		ZShiftedOpening: kzg.OpeningProof{
			H:            zShiftedOpeningH,
			ClaimedValue: zShiftedOpeningValue,
		},
	}, nil
}
