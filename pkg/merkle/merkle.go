// Package merkle builds the sorted-pair keccak256 merkle trees used by MerkleRedeem reports.
//
// Leaves are sorted and deduplicated before the tree is built, pairs are sorted before
// hashing and an unpaired node is promoted to the next layer unchanged, so a tree built
// here is byte-identical to the one whose root was published on chain.
package merkle

import (
	"bytes"
	"errors"
	"fmt"
	"math/big"
	"slices"

	"github.com/Layr-Labs/rewards-claimer/internal/types/numbers"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/math"
	"github.com/ethereum/go-ethereum/crypto"
)

var ErrElementNotInTree = errors.New("element does not exist in merkle tree")

type MerkleTree struct {
	elements [][]byte
	layers   [][][]byte
}

func NewMerkleTree(elements [][]byte) *MerkleTree {
	sorted := make([][]byte, 0, len(elements))
	for _, el := range elements {
		if len(el) == 0 {
			continue
		}
		sorted = append(sorted, el)
	}
	slices.SortFunc(sorted, bytes.Compare)
	sorted = slices.CompactFunc(sorted, bytes.Equal)

	return &MerkleTree{
		elements: sorted,
		layers:   buildLayers(sorted),
	}
}

func buildLayers(elements [][]byte) [][][]byte {
	layers := [][][]byte{elements}
	for len(layers[len(layers)-1]) > 1 {
		layers = append(layers, nextLayer(layers[len(layers)-1]))
	}
	return layers
}

func nextLayer(layer [][]byte) [][]byte {
	next := make([][]byte, 0, (len(layer)+1)/2)
	for i := 0; i < len(layer); i += 2 {
		if i+1 == len(layer) {
			next = append(next, layer[i])
			continue
		}
		next = append(next, combinedHash(layer[i], layer[i+1]))
	}
	return next
}

func combinedHash(a, b []byte) []byte {
	if bytes.Compare(a, b) > 0 {
		a, b = b, a
	}
	return crypto.Keccak256(a, b)
}

// Root returns nil for an empty tree.
func (t *MerkleTree) Root() []byte {
	top := t.layers[len(t.layers)-1]
	if len(top) == 0 {
		return nil
	}
	return top[0]
}

func (t *MerkleTree) RootHash() common.Hash {
	return common.BytesToHash(t.Root())
}

func (t *MerkleTree) Len() int {
	return len(t.elements)
}

// Proof returns the sibling hashes from the leaf layer up to the root.
func (t *MerkleTree) Proof(element []byte) ([][]byte, error) {
	idx, found := slices.BinarySearchFunc(t.elements, element, bytes.Compare)
	if !found {
		return nil, ErrElementNotInTree
	}

	proof := make([][]byte, 0, len(t.layers))
	for _, layer := range t.layers {
		if pair := idx ^ 1; pair < len(layer) {
			proof = append(proof, layer[pair])
		}
		idx /= 2
	}
	return proof, nil
}

// Proof32 is Proof in the bytes32[] form expected by the contract.
func (t *MerkleTree) Proof32(element []byte) ([][32]byte, error) {
	proof, err := t.Proof(element)
	if err != nil {
		return nil, err
	}
	out := make([][32]byte, len(proof))
	for i, p := range proof {
		out[i] = common.BytesToHash(p)
	}
	return out, nil
}

func VerifyProof(proof [][]byte, root []byte, leaf []byte) bool {
	computed := leaf
	for _, p := range proof {
		computed = combinedHash(computed, p)
	}
	return bytes.Equal(computed, root)
}

// LeafHash is keccak256(abi.encodePacked(account, weiAmount)).
func LeafHash(account string, weiAmount *big.Int) ([]byte, error) {
	if !common.IsHexAddress(account) {
		return nil, fmt.Errorf("invalid account address '%s'", account)
	}
	if weiAmount == nil || weiAmount.Sign() < 0 || weiAmount.BitLen() > 256 {
		return nil, fmt.Errorf("invalid uint256 amount for '%s'", account)
	}
	return crypto.Keccak256(
		common.HexToAddress(account).Bytes(),
		math.U256Bytes(new(big.Int).Set(weiAmount)),
	), nil
}

// NewReportTree builds the tree for a weekly report of account to decimal token amount.
// Every entry becomes a leaf, including zero balances.
func NewReportTree(report map[string]string) (*MerkleTree, error) {
	leaves := make([][]byte, 0, len(report))
	for account, amount := range report {
		wei, err := numbers.ToWei(amount)
		if err != nil {
			return nil, fmt.Errorf("invalid amount for '%s': %w", account, err)
		}
		leaf, err := LeafHash(account, wei)
		if err != nil {
			return nil, err
		}
		leaves = append(leaves, leaf)
	}
	return NewMerkleTree(leaves), nil
}
