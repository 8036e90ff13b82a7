package claims

import (
	"context"
	"fmt"
	"math/big"
	"net/http"
	"sync"
	"testing"

	"github.com/Layr-Labs/rewards-claimer/internal/config"
	"github.com/Layr-Labs/rewards-claimer/pkg/clients/ipfs"
	"github.com/Layr-Labs/rewards-claimer/pkg/clients/liquidityMining"
	"github.com/Layr-Labs/rewards-claimer/pkg/contractCaller"
	"github.com/Layr-Labs/rewards-claimer/pkg/eventBus"
	"github.com/Layr-Labs/rewards-claimer/pkg/eventBus/eventBusTypes"
	"github.com/Layr-Labs/rewards-claimer/pkg/logger"
	"github.com/Layr-Labs/rewards-claimer/pkg/metrics"
	"github.com/Layr-Labs/rewards-claimer/pkg/proofs"
	"github.com/Layr-Labs/rewards-claimer/pkg/reportCache"
	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/jarcoal/httpmock"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

const (
	balRewarder  = "0x6d19b2bF3A36A61530909Ae65445a906D98A2Fa8"
	balToken     = "0xba100000625a3754423978a60c9317c58a424e3d"
	balTokenKey  = "0xba100000625a3754423978a60c9317c58a424e3D"
	ldoRewarder  = "0x884226c9f7b7205f607922E0431419276a64CF8f"
	ldoToken     = "0x5A98FcBEA516Cf06857215779Fd812CA3beF1B32"
	merkleRedeem = "0x6d19b2bF3A36A61530909Ae65445a906D98A2Fa8"

	balManifest = "https://manifest.test/_current.json"
	ldoManifest = "https://manifest.test/_current-lido.json"
	reportsUrl  = "https://reports.test"
	estimateUrl = "https://api.test"
)

type fakeStatusCaller struct {
	contractCaller.IMerkleRedeemCaller

	mu       sync.Mutex
	status   map[string][]bool
	roots    map[string][32]byte
	accepted bool
	err      error
	calls    []string
}

func (f *fakeStatusCaller) WeekMerkleRoot(ctx context.Context, rewarder string, week uint64) ([32]byte, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.roots[fmt.Sprintf("%s:%d", rewarder, week)], nil
}

func (f *fakeStatusCaller) VerifyClaim(ctx context.Context, rewarder string, account string, week uint64, balance *big.Int, proof [][32]byte) (bool, error) {
	return f.accepted, nil
}

func (f *fakeStatusCaller) ClaimStatus(ctx context.Context, rewarder string, account string, begin uint64, end uint64) ([]bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, fmt.Sprintf("%s:%d-%d", rewarder, begin, end))
	if f.err != nil {
		return nil, f.err
	}
	return f.status[rewarder], nil
}

type testHarness struct {
	service  *ClaimsService
	caller   *fakeStatusCaller
	consumer *eventBusTypes.Consumer
	logger   *zap.Logger
	config   *config.Config
}

func testNetworkTable() config.NetworkTable {
	return config.NetworkTable{
		config.Network_Mainnet: {
			Contracts:   config.ContractAddresses{MerkleRedeem: merkleRedeem},
			RewardToken: balToken,
			TokenClaims: []config.TokenClaimInfo{
				{Label: "BAL", Rewarder: balRewarder, Token: balToken, Manifest: balManifest},
			},
		},
		config.Network_Polygon: {
			Contracts:   config.ContractAddresses{MerkleRedeem: merkleRedeem},
			RewardToken: balToken,
			TokenClaims: []config.TokenClaimInfo{
				{Label: "BAL", Rewarder: balRewarder, Token: balToken, Manifest: balManifest},
				{Label: "LDO", Rewarder: ldoRewarder, Token: ldoToken, Manifest: ldoManifest},
			},
		},
		config.Network_Kovan: {
			Contracts: config.ContractAddresses{MerkleRedeem: merkleRedeem},
		},
	}
}

func setup(t *testing.T) *testHarness {
	l, err := logger.NewLogger(&logger.LoggerConfig{Debug: false})
	assert.Nil(t, err)

	httpmock.Activate()
	t.Cleanup(httpmock.DeactivateAndReset)

	cfg := &config.Config{
		Network:  config.Network_Mainnet,
		Networks: testNetworkTable(),
	}

	httpClient := &http.Client{Transport: httpmock.DefaultTransport}
	ms := metrics.NewNoopMetricsSink()
	cache, err := reportCache.NewMemoryReportCache(16, ms, l)
	assert.Nil(t, err)

	caller := &fakeStatusCaller{status: map[string][]bool{}, roots: map[string][32]byte{}}
	eb := eventBus.NewEventBus(l)
	consumer := eventBusTypes.NewConsumer(context.Background(), 10)
	eb.Subscribe(consumer)

	service := NewClaimsService(
		cfg,
		ipfs.NewIpfs(httpClient, "https://ipfs.test", cache, ms, l),
		caller,
		proofs.NewClaimProofsStore(caller, l),
		liquidityMining.NewClient(httpClient, estimateUrl, l),
		eb,
		ms,
		l,
	)

	return &testHarness{
		service:  service,
		caller:   caller,
		consumer: consumer,
		logger:   l,
		config:   cfg,
	}
}

func nextEvent(t *testing.T, c *eventBusTypes.Consumer) *eventBusTypes.Event {
	select {
	case e := <-c.Channel:
		return e
	default:
		t.Fatal("expected an event")
		return nil
	}
}

// fakeBackend accepts every transaction and records it.
type fakeBackend struct {
	bind.ContractBackend

	sent    []*types.Transaction
	sendErr error
}

func (f *fakeBackend) PendingCodeAt(ctx context.Context, account common.Address) ([]byte, error) {
	return []byte{0x60, 0x80}, nil
}

func (f *fakeBackend) PendingNonceAt(ctx context.Context, account common.Address) (uint64, error) {
	return 3, nil
}

func (f *fakeBackend) SuggestGasPrice(ctx context.Context) (*big.Int, error) {
	return big.NewInt(1_000_000_000), nil
}

func (f *fakeBackend) HeaderByNumber(ctx context.Context, number *big.Int) (*types.Header, error) {
	return &types.Header{Number: big.NewInt(1)}, nil
}

func (f *fakeBackend) EstimateGas(ctx context.Context, call ethereum.CallMsg) (uint64, error) {
	return 250_000, nil
}

func (f *fakeBackend) SendTransaction(ctx context.Context, tx *types.Transaction) error {
	if f.sendErr != nil {
		return f.sendErr
	}
	f.sent = append(f.sent, tx)
	return nil
}
