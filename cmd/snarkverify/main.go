// Command snarkverify verifies a Groth16 or PlonK SNARK proof produced by
// gnark against a verifying key and a list of public inputs, all supplied
// as files on disk.
package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
	flag "github.com/spf13/pflag"

	verifier "github.com/vocdoni/snark-bn254-verifier"
	"github.com/vocdoni/snark-bn254-verifier/log"
)

func main() {
	var (
		system       string
		proofPath    string
		vkPath       string
		publicInputs string
		logLevel     string
	)

	flag.StringVar(&system, "system", "groth16", "proving system: groth16 or plonk")
	flag.StringVar(&proofPath, "proof", "", "path to the binary-encoded proof file")
	flag.StringVar(&vkPath, "vk", "", "path to the binary-encoded verifying key file")
	flag.StringVar(&publicInputs, "public-inputs", "", "path to a JSON array of decimal public input strings")
	flag.StringVar(&logLevel, "log-level", "info", "log level: debug, info, warn, error")
	flag.Parse()

	log.Init(logLevel, "stderr")

	if proofPath == "" || vkPath == "" {
		log.Fatalf("both --proof and --vk are required")
	}

	var sys verifier.ProvingSystem
	switch system {
	case "groth16":
		sys = verifier.Groth16
	case "plonk":
		sys = verifier.PlonK
	default:
		log.Fatalf("unknown proving system %q", system)
	}

	proofBytes, err := os.ReadFile(proofPath)
	if err != nil {
		log.Fatalf("reading proof file: %v", err)
	}
	vkBytes, err := os.ReadFile(vkPath)
	if err != nil {
		log.Fatalf("reading verifying key file: %v", err)
	}

	witness, err := readPublicInputs(publicInputs)
	if err != nil {
		log.Fatalf("reading public inputs: %v", err)
	}

	ok, err := verifier.Verify(sys, proofBytes, vkBytes, witness)
	if err != nil {
		log.Fatalf("verification error: %v", err)
	}

	log.Infow("verification finished", "system", system, "valid", ok)
	if !ok {
		fmt.Println("INVALID")
		os.Exit(1)
	}
	fmt.Println("VALID")
}

// readPublicInputs loads a JSON array of decimal-string field elements from
// path. An empty path yields no public inputs.
func readPublicInputs(path string) ([]fr.Element, error) {
	if path == "" {
		return nil, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var decimals []string
	if err := json.Unmarshal(data, &decimals); err != nil {
		return nil, fmt.Errorf("parsing public inputs json: %w", err)
	}
	inputs := make([]fr.Element, len(decimals))
	for i, d := range decimals {
		if _, err := inputs[i].SetString(d); err != nil {
			return nil, fmt.Errorf("parsing public input %d (%q): %w", i, d, err)
		}
	}
	return inputs, nil
}
