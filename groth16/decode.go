package groth16

import (
	"github.com/consensys/gnark-crypto/ecc/bn254"

	"github.com/vocdoni/snark-bn254-verifier/internal/gnarkio"
	"github.com/vocdoni/snark-bn254-verifier/verifyerr"
)

// ProofFromBytes decodes a Groth16 proof: ar (compressed G1), bs (compressed
// G2), krs (compressed G1) — 128 bytes total. Any trailing bytes are a BSB22
// commitment extension: a u32 count, that many compressed G1 commitments,
// then one compressed G1 commitment_pok.
func ProofFromBytes(buf []byte) (*Proof, error) {
	b := gnarkio.NewBuffer(buf)

	ar, err := b.ReadG1Compressed()
	if err != nil {
		return nil, err
	}
	bs, err := b.ReadG2Compressed()
	if err != nil {
		return nil, err
	}
	krs, err := b.ReadG1Compressed()
	if err != nil {
		return nil, err
	}

	proof := &Proof{
		Ar:            ar,
		Bs:            bs,
		Krs:           krs,
		CommitmentPok: bn254.G1Affine{},
	}

	if b.Remaining() == 0 {
		return proof, nil
	}

	nbCommitments, err := b.ReadU32()
	if err != nil {
		return nil, err
	}
	proof.Commitments = make([]bn254.G1Affine, nbCommitments)
	for i := range proof.Commitments {
		p, err := b.ReadG1Compressed()
		if err != nil {
			return nil, err
		}
		proof.Commitments[i] = p
	}

	pok, err := b.ReadG1Compressed()
	if err != nil {
		return nil, err
	}
	proof.CommitmentPok = pok

	return proof, nil
}

// VerifyingKeyFromBytes decodes a Groth16 verifying key per the gnark wire
// layout: alpha_g1, beta_g1, beta_g2, gamma_g2, delta_g1, delta_g2, the k
// array, a nested public-and-commitment-committed index table, and the
// Pedersen commitment key's two G2 points.
func VerifyingKeyFromBytes(buf []byte) (*VerifyingKey, error) {
	b := gnarkio.NewBuffer(buf)

	alphaG1, err := b.ReadG1Compressed()
	if err != nil {
		return nil, err
	}
	betaG1, err := b.ReadG1Compressed()
	if err != nil {
		return nil, err
	}
	betaG2, err := b.ReadG2Compressed()
	if err != nil {
		return nil, err
	}
	gammaG2, err := b.ReadG2Compressed()
	if err != nil {
		return nil, err
	}
	deltaG1, err := b.ReadG1Compressed()
	if err != nil {
		return nil, err
	}
	deltaG2, err := b.ReadG2Compressed()
	if err != nil {
		return nil, err
	}

	numK, err := b.ReadU32()
	if err != nil {
		return nil, err
	}
	k := make([]bn254.G1Affine, numK)
	for i := range k {
		p, err := b.ReadG1Compressed()
		if err != nil {
			return nil, err
		}
		k[i] = p
	}

	numGroups, err := b.ReadU32()
	if err != nil {
		return nil, err
	}
	committed := make([][]uint32, numGroups)
	for i := range committed {
		count, err := b.ReadU32()
		if err != nil {
			return nil, err
		}
		indexes := make([]uint32, count)
		for j := range indexes {
			v, err := b.ReadU32()
			if err != nil {
				return nil, err
			}
			indexes[j] = v
		}
		committed[i] = indexes
	}

	commitmentKeyG, err := b.ReadG2Compressed()
	if err != nil {
		return nil, err
	}
	commitmentKeyGRootSigmaNeg, err := b.ReadG2Compressed()
	if err != nil {
		return nil, err
	}

	if len(k) == 0 {
		return nil, verifyerr.New(verifyerr.KindInvalidData)
	}

	return &VerifyingKey{
		G1Alpha:                      alphaG1,
		G1Beta:                       betaG1,
		G2Beta:                       betaG2,
		G2Gamma:                      gammaG2,
		G1Delta:                      deltaG1,
		G2Delta:                      deltaG2,
		K:                            k,
		PublicAndCommitmentCommitted: committed,
		CommitmentKey: PedersenVerifyingKey{
			G:             commitmentKeyG,
			GRootSigmaNeg: commitmentKeyGRootSigmaNeg,
		},
	}, nil
}
