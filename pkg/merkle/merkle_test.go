package merkle

import (
	"fmt"
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/stretchr/testify/assert"
)

var testReport = map[string]string{
	"0x0000000000000000000000000000000000000001": "1",
	"0x0000000000000000000000000000000000000002": "2.5",
	"0x0000000000000000000000000000000000000003": "0",
}

func mustLeaf(t *testing.T, account string, amount string) []byte {
	wei, ok := new(big.Int).SetString(amount, 10)
	assert.True(t, ok)
	leaf, err := LeafHash(account, wei)
	assert.Nil(t, err)
	return leaf
}

func Test_LeafHash(t *testing.T) {
	t.Run("Should hash the packed address and uint256", func(t *testing.T) {
		leaf := mustLeaf(t, "0x0000000000000000000000000000000000000001", "1000000000000000000")
		assert.Equal(t, "0xe292aea4d359cc1769232f543ec72a01af30d6febc09444ee235930d4927e3cf", common.BytesToHash(leaf).Hex())
	})
	t.Run("Should not depend on address casing", func(t *testing.T) {
		a := mustLeaf(t, "0x5a98fcbea516cf06857215779fd812ca3bef1b32", "1")
		b := mustLeaf(t, "0x5A98FcBEA516Cf06857215779Fd812CA3beF1B32", "1")
		assert.Equal(t, a, b)
	})
	t.Run("Should reject invalid input", func(t *testing.T) {
		_, err := LeafHash("0xAbc", big.NewInt(1))
		assert.NotNil(t, err)

		_, err = LeafHash("0x0000000000000000000000000000000000000001", big.NewInt(-1))
		assert.NotNil(t, err)
	})
}

func Test_ReportTree(t *testing.T) {
	tree, err := NewReportTree(testReport)
	assert.Nil(t, err)

	t.Run("Should build the published root", func(t *testing.T) {
		assert.Equal(t, 3, tree.Len())
		assert.Equal(t, "0xf71303d3a117b33f97362469a6c3e43c84a1f8396cc5119d6652d21792618c79", tree.RootHash().Hex())
	})
	t.Run("Should build the published proof", func(t *testing.T) {
		proof, err := tree.Proof32(mustLeaf(t, "0x0000000000000000000000000000000000000002", "2500000000000000000"))
		assert.Nil(t, err)
		assert.Equal(t, [][32]byte{
			common.HexToHash("0xc0bef31cacd8e9c3a5d6ef9ff7e9ddd46e656b0e7d3c63a703f2db94c0ca2911"),
			common.HexToHash("0xe292aea4d359cc1769232f543ec72a01af30d6febc09444ee235930d4927e3cf"),
		}, proof)
	})
	t.Run("Should verify a proof for every leaf", func(t *testing.T) {
		for _, el := range tree.elements {
			proof, err := tree.Proof(el)
			assert.Nil(t, err)
			assert.True(t, VerifyProof(proof, tree.Root(), el))
		}
	})
	t.Run("Should not verify against a different leaf", func(t *testing.T) {
		proof, err := tree.Proof(tree.elements[0])
		assert.Nil(t, err)
		assert.False(t, VerifyProof(proof, tree.Root(), mustLeaf(t, "0x0000000000000000000000000000000000000002", "1")))
	})
	t.Run("Should return an error for a missing element", func(t *testing.T) {
		_, err := tree.Proof(mustLeaf(t, "0x0000000000000000000000000000000000000009", "1"))
		assert.ErrorIs(t, err, ErrElementNotInTree)
	})
	t.Run("Should reject a report with an invalid amount", func(t *testing.T) {
		_, err := NewReportTree(map[string]string{"0x0000000000000000000000000000000000000001": "0.0000000000000000001"})
		assert.NotNil(t, err)
	})
}

func Test_MerkleTree(t *testing.T) {
	leaves := make([][]byte, 0)
	for i := 0; i < 7; i++ {
		leaves = append(leaves, crypto.Keccak256([]byte(fmt.Sprintf("leaf-%d", i))))
	}

	t.Run("Root is independent of element order and duplicates", func(t *testing.T) {
		reversed := make([][]byte, 0, len(leaves)+1)
		for i := len(leaves) - 1; i >= 0; i-- {
			reversed = append(reversed, leaves[i])
		}
		reversed = append(reversed, leaves[3])

		a := NewMerkleTree(leaves)
		b := NewMerkleTree(reversed)
		assert.Equal(t, a.Root(), b.Root())
		assert.Equal(t, 7, b.Len())
	})
	t.Run("Should promote the odd node", func(t *testing.T) {
		tree := NewMerkleTree(leaves[:3])
		sorted := tree.elements
		expected := combinedHash(combinedHash(sorted[0], sorted[1]), sorted[2])
		assert.Equal(t, expected, tree.Root())

		proof, err := tree.Proof(sorted[2])
		assert.Nil(t, err)
		assert.Len(t, proof, 1)
	})
	t.Run("Single leaf tree has the leaf as root and an empty proof", func(t *testing.T) {
		tree := NewMerkleTree(leaves[:1])
		assert.Equal(t, leaves[0], tree.Root())
		proof, err := tree.Proof(leaves[0])
		assert.Nil(t, err)
		assert.Empty(t, proof)
		assert.True(t, VerifyProof(proof, tree.Root(), leaves[0]))
	})
	t.Run("Empty tree has no root", func(t *testing.T) {
		tree := NewMerkleTree(nil)
		assert.Nil(t, tree.Root())
		_, err := tree.Proof(leaves[0])
		assert.ErrorIs(t, err, ErrElementNotInTree)
	})
}
