package contractAbi

const (
	MerkleRedeemMethod_ClaimStatus     = "claimStatus"
	MerkleRedeemMethod_ClaimWeeks      = "claimWeeks"
	MerkleRedeemMethod_WeekMerkleRoots = "weekMerkleRoots"
	MerkleRedeemMethod_VerifyClaim     = "verifyClaim"
)

// MerkleRedeemAbi is the subset of the MerkleRedeem contract used for claiming.
const MerkleRedeemAbi = `[
	{
		"inputs": [
			{"internalType": "address", "name": "_liquidityProvider", "type": "address"},
			{"internalType": "uint256", "name": "_begin", "type": "uint256"},
			{"internalType": "uint256", "name": "_end", "type": "uint256"}
		],
		"name": "claimStatus",
		"outputs": [{"internalType": "bool[]", "name": "", "type": "bool[]"}],
		"stateMutability": "view",
		"type": "function"
	},
	{
		"inputs": [
			{"internalType": "address", "name": "_liquidityProvider", "type": "address"},
			{
				"components": [
					{"internalType": "uint256", "name": "week", "type": "uint256"},
					{"internalType": "uint256", "name": "balance", "type": "uint256"},
					{"internalType": "bytes32[]", "name": "merkleProof", "type": "bytes32[]"}
				],
				"internalType": "struct MerkleRedeem.Claim[]",
				"name": "claims",
				"type": "tuple[]"
			}
		],
		"name": "claimWeeks",
		"outputs": [],
		"stateMutability": "nonpayable",
		"type": "function"
	},
	{
		"inputs": [{"internalType": "uint256", "name": "", "type": "uint256"}],
		"name": "weekMerkleRoots",
		"outputs": [{"internalType": "bytes32", "name": "", "type": "bytes32"}],
		"stateMutability": "view",
		"type": "function"
	},
	{
		"inputs": [
			{"internalType": "address", "name": "_liquidityProvider", "type": "address"},
			{"internalType": "uint256", "name": "_week", "type": "uint256"},
			{"internalType": "uint256", "name": "_claimedBalance", "type": "uint256"},
			{"internalType": "bytes32[]", "name": "_merkleProof", "type": "bytes32[]"}
		],
		"name": "verifyClaim",
		"outputs": [{"internalType": "bool", "name": "valid", "type": "bool"}],
		"stateMutability": "view",
		"type": "function"
	},
	{
		"anonymous": false,
		"inputs": [
			{"indexed": false, "internalType": "address", "name": "_claimant", "type": "address"},
			{"indexed": false, "internalType": "uint256", "name": "_balance", "type": "uint256"}
		],
		"name": "Claimed",
		"type": "event"
	}
]`
