package merkleRedeemCaller

import (
	"context"
	"encoding/json"
	"io"
	"math/big"
	"net/http"
	"strings"
	"testing"

	"github.com/Layr-Labs/rewards-claimer/pkg/clients/ethereum"
	"github.com/Layr-Labs/rewards-claimer/pkg/contractAbi"
	"github.com/Layr-Labs/rewards-claimer/pkg/logger"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/jarcoal/httpmock"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

const (
	rpcUrl   = "http://localhost:8545"
	rewarder = "0x6d19b2bF3A36A61530909Ae65445a906D98A2Fa8"
	account  = "0x00000000000000000000000000000000000abc01"
)

type rpcRequest struct {
	Id     json.RawMessage   `json:"id"`
	Method string            `json:"method"`
	Params []json.RawMessage `json:"params"`
}

type callArgs struct {
	To    string        `json:"to"`
	Input hexutil.Bytes `json:"input"`
	Data  hexutil.Bytes `json:"data"`
}

type recordedCall struct {
	to     string
	method string
	args   []interface{}
}

// registerContract answers eth_call requests by packing the output returned by outputs for the called method.
func registerContract(t *testing.T, parsed *abi.ABI, outputs func(method string, args []interface{}) []interface{}) *[]recordedCall {
	calls := &[]recordedCall{}
	httpmock.RegisterResponder("POST", rpcUrl, func(req *http.Request) (*http.Response, error) {
		body, err := io.ReadAll(req.Body)
		assert.Nil(t, err)

		var r rpcRequest
		assert.Nil(t, json.Unmarshal(body, &r))
		assert.Equal(t, "eth_call", r.Method)

		var args callArgs
		assert.Nil(t, json.Unmarshal(r.Params[0], &args))
		input := args.Input
		if len(input) == 0 {
			input = args.Data
		}

		method, err := parsed.MethodById(input[:4])
		assert.Nil(t, err)
		decoded, err := method.Inputs.Unpack(input[4:])
		assert.Nil(t, err)
		*calls = append(*calls, recordedCall{to: strings.ToLower(args.To), method: method.Name, args: decoded})

		packed, err := method.Outputs.Pack(outputs(method.Name, decoded)...)
		assert.Nil(t, err)

		return httpmock.NewJsonResponse(200, map[string]interface{}{
			"jsonrpc": "2.0",
			"id":      r.Id,
			"result":  hexutil.Encode(packed),
		})
	})
	return calls
}

func setup(t *testing.T) (*zap.Logger, *MerkleRedeemCaller, *abi.ABI) {
	l, err := logger.NewLogger(&logger.LoggerConfig{Debug: false})
	assert.Nil(t, err)

	httpmock.Activate()
	t.Cleanup(httpmock.DeactivateAndReset)

	client := ethereum.NewClient(&ethereum.EthereumClientConfig{BaseUrl: rpcUrl}, l)
	client.SetHttpClient(&http.Client{
		Transport: httpmock.DefaultTransport,
	})

	parsed, err := contractAbi.GetMerkleRedeemAbi(l)
	assert.Nil(t, err)

	return l, NewMerkleRedeemCaller(client, l), parsed
}

func Test_MerkleRedeemCaller(t *testing.T) {
	t.Run("Should read claim status for a week range", func(t *testing.T) {
		_, mrc, parsed := setup(t)
		calls := registerContract(t, parsed, func(method string, args []interface{}) []interface{} {
			return []interface{}{[]bool{false, true, false}}
		})

		status, err := mrc.ClaimStatus(context.Background(), rewarder, account, 1, 3)
		assert.Nil(t, err)
		assert.Equal(t, []bool{false, true, false}, status)

		assert.Len(t, *calls, 1)
		call := (*calls)[0]
		assert.Equal(t, strings.ToLower(rewarder), call.to)
		assert.Equal(t, contractAbi.MerkleRedeemMethod_ClaimStatus, call.method)
		assert.Equal(t, common.HexToAddress(account), call.args[0])
		assert.Equal(t, big.NewInt(1), call.args[1])
		assert.Equal(t, big.NewInt(3), call.args[2])
	})
	t.Run("Should read a week merkle root", func(t *testing.T) {
		_, mrc, parsed := setup(t)
		expected := common.HexToHash("0x1111111111111111111111111111111111111111111111111111111111111111")
		registerContract(t, parsed, func(method string, args []interface{}) []interface{} {
			return []interface{}{[32]byte(expected)}
		})

		root, err := mrc.WeekMerkleRoot(context.Background(), rewarder, 7)
		assert.Nil(t, err)
		assert.Equal(t, [32]byte(expected), root)
	})
	t.Run("Should verify a claim", func(t *testing.T) {
		_, mrc, parsed := setup(t)
		calls := registerContract(t, parsed, func(method string, args []interface{}) []interface{} {
			return []interface{}{true}
		})

		proof := [][32]byte{common.HexToHash("0x01"), common.HexToHash("0x02")}
		valid, err := mrc.VerifyClaim(context.Background(), rewarder, account, 2, big.NewInt(1000), proof)
		assert.Nil(t, err)
		assert.True(t, valid)
		assert.Equal(t, proof, (*calls)[0].args[3])
	})
	t.Run("Should return an error for an rpc error", func(t *testing.T) {
		_, mrc, _ := setup(t)
		httpmock.RegisterResponder("POST", rpcUrl,
			httpmock.NewStringResponder(200, `{"jsonrpc":"2.0","id":1,"error":{"code":-32000,"message":"execution reverted"}}`))

		status, err := mrc.ClaimStatus(context.Background(), rewarder, account, 1, 2)
		assert.NotNil(t, err)
		assert.Nil(t, status)
	})
	t.Run("Should reject an invalid contract address", func(t *testing.T) {
		_, mrc, _ := setup(t)
		_, err := mrc.ClaimStatus(context.Background(), "not-an-address", account, 1, 2)
		assert.NotNil(t, err)
	})
	t.Run("Should error without a backend", func(t *testing.T) {
		l, _, _ := setup(t)
		mrc := NewMerkleRedeemCallerWithBackend(nil, l)
		_, err := mrc.WeekMerkleRoot(context.Background(), rewarder, 1)
		assert.NotNil(t, err)
	})
}
