package orchestrator

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/gagliardetto/solana-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/AlexZinkM/testnet-activity/internal/model"
)

type fakeBalances struct {
	byIndex map[string]uint64
	err     error
}

func (f *fakeBalances) GetBalance(_ context.Context, owner solana.PublicKey) (uint64, error) {
	if f.err != nil {
		return 0, f.err
	}
	return f.byIndex[owner.String()], nil
}

type fakeDeployer struct {
	failFor map[int]bool
	tokens  int
	nfts    int
}

func (f *fakeDeployer) DeployToken(_ context.Context, w *model.Wallet) (*model.TokenAsset, error) {
	if f.failFor[w.Index] {
		return nil, &model.DeployError{Kind: model.KindToken, Err: errors.New("boom")}
	}
	f.tokens++
	asset := &model.TokenAsset{
		Mint:           solana.NewWallet().PublicKey(),
		HoldingAccount: solana.NewWallet().PublicKey(),
	}
	w.AddToken(asset)
	return asset, nil
}

func (f *fakeDeployer) DeployNFT(_ context.Context, w *model.Wallet) (*model.NFTAsset, error) {
	if f.failFor[w.Index] {
		return nil, &model.DeployError{Kind: model.KindNFT, Err: errors.New("boom")}
	}
	f.nfts++
	asset := &model.NFTAsset{
		Mint:     solana.NewWallet().PublicKey(),
		Metadata: solana.NewWallet().PublicKey(),
		Name:     "nft",
	}
	w.AddNFT(asset)
	return asset, nil
}

type fakeExecutor struct {
	attempts []string
	failOn   map[int]bool // attempt ordinal (1-based) -> fail
}

func (f *fakeExecutor) TokenInteraction(_ context.Context, _ *model.Wallet, _ *model.TokenAsset, action string) (string, error) {
	f.attempts = append(f.attempts, action)
	if f.failOn[len(f.attempts)] {
		return "", errors.New("interaction blew up")
	}
	return "ok " + action, nil
}

func (f *fakeExecutor) NFTInteraction(_ context.Context, _ *model.Wallet, _ *model.NFTAsset, action string) (string, error) {
	return f.TokenInteraction(nil, nil, nil, action)
}

type fakeReporter struct {
	calls        int
	deployments  []model.DeploymentRecord
	interactions []model.InteractionRecord
}

func (f *fakeReporter) WriteReport(d []model.DeploymentRecord, i []model.InteractionRecord) (string, error) {
	f.calls++
	f.deployments = d
	f.interactions = i
	return "report.txt", nil
}

type zeroRand struct{}

func (zeroRand) Intn(int) int { return 0 }

func newOrch(t *testing.T, wallets []*model.Wallet, balances *fakeBalances, dep *fakeDeployer, exec *fakeExecutor, rep *fakeReporter, settings *model.Settings) (*Orchestrator, *[]time.Duration) {
	t.Helper()
	o := New(Params{
		Chain:    balances,
		Deployer: dep,
		Executor: exec,
		Reporter: rep,
		Wallets:  wallets,
		Settings: settings,
		Rand:     zeroRand{},
		Log:      zap.NewNop(),
	})

	var slept []time.Duration
	o.sleep = func(d time.Duration) { slept = append(slept, d) }
	return o, &slept
}

func makeWallets(n int) []*model.Wallet {
	out := make([]*model.Wallet, 0, n)
	for i := 1; i <= n; i++ {
		out = append(out, model.NewWallet(i, solana.NewWallet().PrivateKey))
	}
	return out
}

func funded(wallets []*model.Wallet, lamports uint64) *fakeBalances {
	byIndex := make(map[string]uint64, len(wallets))
	for _, w := range wallets {
		byIndex[w.PublicKey.String()] = lamports
	}
	return &fakeBalances{byIndex: byIndex}
}

func TestRunHappyPath(t *testing.T) {
	wallets := makeWallets(2)
	dep := &fakeDeployer{}
	exec := &fakeExecutor{}
	rep := &fakeReporter{}
	settings := &model.Settings{InteractionCount: 2, IntervalMinutes: 0}

	o, slept := newOrch(t, wallets, funded(wallets, 200_000_000), dep, exec, rep, settings)
	require.NoError(t, o.Run(context.Background(), model.KindToken))

	deployments, interactions := o.Records()
	assert.Len(t, deployments, 2)
	assert.Len(t, interactions, 4)
	assert.Equal(t, 2, dep.tokens)
	assert.Len(t, exec.attempts, 4)

	// interval 0: interactions run back-to-back with no delay
	assert.Empty(t, *slept)

	// report generated once, with the accumulated records
	assert.Equal(t, 1, rep.calls)
	assert.Len(t, rep.deployments, 2)
	assert.Len(t, rep.interactions, 4)
}

func TestRunSkipsLowBalanceWallet(t *testing.T) {
	wallets := makeWallets(2)
	balances := funded(wallets, 200_000_000)
	balances.byIndex[wallets[0].PublicKey.String()] = 99_999_999 // just under 0.1 SOL

	dep := &fakeDeployer{}
	exec := &fakeExecutor{}
	settings := &model.Settings{InteractionCount: 3, IntervalMinutes: 0}

	o, _ := newOrch(t, wallets, balances, dep, exec, &fakeReporter{}, settings)
	require.NoError(t, o.Run(context.Background(), model.KindToken))

	deployments, interactions := o.Records()
	require.Len(t, deployments, 1)
	assert.Equal(t, 2, deployments[0].WalletIndex)
	for _, rec := range interactions {
		assert.Equal(t, 2, rec.WalletIndex)
	}
}

func TestRunDeployFailureIsolatesWallet(t *testing.T) {
	wallets := makeWallets(3)
	dep := &fakeDeployer{failFor: map[int]bool{2: true}}
	exec := &fakeExecutor{}
	settings := &model.Settings{InteractionCount: 1, IntervalMinutes: 0}

	o, _ := newOrch(t, wallets, funded(wallets, 200_000_000), dep, exec, &fakeReporter{}, settings)
	require.NoError(t, o.Run(context.Background(), model.KindToken))

	deployments, interactions := o.Records()
	require.Len(t, deployments, 2)
	assert.Equal(t, 1, deployments[0].WalletIndex)
	assert.Equal(t, 3, deployments[1].WalletIndex)

	// wallet #2 has no interaction records, #1 and #3 do
	indexes := make([]int, 0, len(interactions))
	for _, rec := range interactions {
		indexes = append(indexes, rec.WalletIndex)
	}
	assert.Equal(t, []int{1, 3}, indexes)
}

func TestRunFailedInteractionsStillCount(t *testing.T) {
	wallets := makeWallets(1)
	dep := &fakeDeployer{}
	exec := &fakeExecutor{failOn: map[int]bool{2: true}}
	settings := &model.Settings{InteractionCount: 3, IntervalMinutes: 0}

	o, _ := newOrch(t, wallets, funded(wallets, 200_000_000), dep, exec, &fakeReporter{}, settings)
	require.NoError(t, o.Run(context.Background(), model.KindToken))

	// exactly 3 attempts, the failed one logged but not recorded
	assert.Len(t, exec.attempts, 3)
	_, interactions := o.Records()
	assert.Len(t, interactions, 2)
}

func TestRunSleepsBetweenInteractionsExceptLast(t *testing.T) {
	wallets := makeWallets(1)
	settings := &model.Settings{InteractionCount: 3, IntervalMinutes: 1}

	o, slept := newOrch(t, wallets, funded(wallets, 200_000_000), &fakeDeployer{}, &fakeExecutor{}, &fakeReporter{}, settings)
	require.NoError(t, o.Run(context.Background(), model.KindToken))

	require.Len(t, *slept, 2)
	assert.Equal(t, time.Minute, (*slept)[0])
}

func TestRunBalanceErrorSkipsWallet(t *testing.T) {
	wallets := makeWallets(1)
	balances := &fakeBalances{err: errors.New("rpc unreachable")}

	o, _ := newOrch(t, wallets, balances, &fakeDeployer{}, &fakeExecutor{}, &fakeReporter{}, model.DefaultSettings())
	require.NoError(t, o.Run(context.Background(), model.KindToken))

	deployments, interactions := o.Records()
	assert.Empty(t, deployments)
	assert.Empty(t, interactions)
}

func TestRunNFTKind(t *testing.T) {
	wallets := makeWallets(1)
	dep := &fakeDeployer{}
	exec := &fakeExecutor{}
	settings := &model.Settings{InteractionCount: 1, IntervalMinutes: 0}

	o, _ := newOrch(t, wallets, funded(wallets, 200_000_000), dep, exec, &fakeReporter{}, settings)
	require.NoError(t, o.Run(context.Background(), model.KindNFT))

	deployments, _ := o.Records()
	require.Len(t, deployments, 1)
	assert.Equal(t, model.KindNFT, deployments[0].Kind)
	assert.Equal(t, 1, dep.nfts)
	assert.Equal(t, 0, dep.tokens)
}

func TestRecordsAccumulateAcrossRuns(t *testing.T) {
	wallets := makeWallets(1)
	settings := &model.Settings{InteractionCount: 1, IntervalMinutes: 0}

	o, _ := newOrch(t, wallets, funded(wallets, 200_000_000), &fakeDeployer{}, &fakeExecutor{}, &fakeReporter{}, settings)
	require.NoError(t, o.Run(context.Background(), model.KindToken))
	require.NoError(t, o.Run(context.Background(), model.KindToken))

	deployments, interactions := o.Records()
	assert.Len(t, deployments, 2)
	assert.Len(t, interactions, 2)
}
