package ledger

import (
	"context"
	"fmt"
	"math/big"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/rs/zerolog"

	config "github.com/openballot/VotingServer/internal/config"
)

// EthereumClient talks to the voting contract over an EVM JSON-RPC
// endpoint. It signs transactions with a single backend key; voters and
// candidates are identified by address arguments, not by transaction
// sender.
type EthereumClient struct {
	ethClient   *ethclient.Client
	contract    *bind.BoundContract
	transactOps *bind.TransactOpts
	callTimeout time.Duration
	logger      zerolog.Logger
}

func NewEthereumClient(cfg *config.LedgerConfig, privateKeyHex string, logger zerolog.Logger) (*EthereumClient, error) {
	ethClient, err := ethclient.Dial(cfg.RpcUrl)
	if err != nil {
		return nil, fmt.Errorf("failed to dial ledger rpc: %w", err)
	}

	parsedABI, err := abi.JSON(strings.NewReader(votingABI))
	if err != nil {
		return nil, fmt.Errorf("failed to parse voting abi: %w", err)
	}

	privateKey, err := crypto.HexToECDSA(strings.TrimPrefix(privateKeyHex, "0x"))
	if err != nil {
		return nil, fmt.Errorf("invalid ledger private key: %w", err)
	}

	transactOps, err := bind.NewKeyedTransactorWithChainID(privateKey, big.NewInt(cfg.ChainId))
	if err != nil {
		return nil, fmt.Errorf("failed to create transactor: %w", err)
	}

	contractAddress := common.HexToAddress(cfg.ContractAddress)
	contract := bind.NewBoundContract(contractAddress, parsedABI, ethClient, ethClient, ethClient)

	callTimeout := time.Duration(cfg.CallTimeout) * time.Second
	if callTimeout <= 0 {
		callTimeout = 60 * time.Second
	}

	return &EthereumClient{
		ethClient:   ethClient,
		contract:    contract,
		transactOps: transactOps,
		callTimeout: callTimeout,
		logger:      logger.With().Str("component", "ledger_client").Logger(),
	}, nil
}

func (client *EthereumClient) Close() {
	client.ethClient.Close()
}

// transact submits a state-changing call and waits for it to be mined.
// A revert surfaces as a Receipt with failed status, not as an error.
func (client *EthereumClient) transact(ctx context.Context, method string, params ...any) (*Receipt, error) {
	ctx, cancel := context.WithTimeout(ctx, client.callTimeout)
	defer cancel()

	transactOps := *client.transactOps
	transactOps.Context = ctx

	tx, err := client.contract.Transact(&transactOps, method, params...)
	if err != nil {
		return nil, fmt.Errorf("ledger %s transaction failed: %w", method, err)
	}

	ethReceipt, err := bind.WaitMined(ctx, client.ethClient, tx)
	if err != nil {
		return nil, fmt.Errorf("ledger %s transaction not mined: %w", method, err)
	}

	receipt := &Receipt{
		TxHash: ethReceipt.TxHash.Hex(),
		Status: ReceiptFailed,
	}

	if ethReceipt.Status == types.ReceiptStatusSuccessful {
		receipt.Status = ReceiptSuccess
	}

	client.logger.Debug().
		Str("method", method).
		Str("tx_hash", receipt.TxHash).
		Str("status", string(receipt.Status)).
		Msg("ledger transaction mined")

	return receipt, nil
}

func (client *EthereumClient) call(ctx context.Context, out *[]any, method string, params ...any) error {
	ctx, cancel := context.WithTimeout(ctx, client.callTimeout)
	defer cancel()

	callOps := &bind.CallOpts{Context: ctx}
	if err := client.contract.Call(callOps, out, method, params...); err != nil {
		return fmt.Errorf("ledger %s call failed: %w", method, err)
	}

	return nil
}

func (client *EthereumClient) CreateElection(ctx context.Context) (int64, *Receipt, error) {
	receipt, err := client.transact(ctx, "createElection")
	if err != nil {
		return 0, nil, err
	}

	if !receipt.Succeeded() {
		return 0, receipt, nil
	}

	electionId, err := client.CurrentElectionId(ctx)
	if err != nil {
		return 0, receipt, err
	}

	return electionId, receipt, nil
}

func (client *EthereumClient) StartVoting(ctx context.Context) (*Receipt, error) {
	return client.transact(ctx, "startVoting")
}

func (client *EthereumClient) EndVoting(ctx context.Context) (*Receipt, error) {
	return client.transact(ctx, "endVoting")
}

func (client *EthereumClient) EndElection(ctx context.Context) (*Receipt, error) {
	return client.transact(ctx, "endElection")
}

func (client *EthereumClient) RegisterCandidate(ctx context.Context, walletAddress string) (*Receipt, error) {
	if !common.IsHexAddress(walletAddress) {
		return nil, fmt.Errorf("invalid candidate address %q", walletAddress)
	}

	return client.transact(ctx, "registerCandidate", common.HexToAddress(walletAddress))
}

func (client *EthereumClient) Vote(ctx context.Context, candidateAddress string) (*Receipt, error) {
	if !common.IsHexAddress(candidateAddress) {
		return nil, fmt.Errorf("invalid candidate address %q", candidateAddress)
	}

	return client.transact(ctx, "vote", common.HexToAddress(candidateAddress))
}

func (client *EthereumClient) IsCandidate(ctx context.Context, electionId int64, walletAddress string) (bool, error) {
	if !common.IsHexAddress(walletAddress) {
		return false, fmt.Errorf("invalid candidate address %q", walletAddress)
	}

	var out []any
	err := client.call(ctx, &out, "isCandidate", big.NewInt(electionId), common.HexToAddress(walletAddress))
	if err != nil {
		return false, err
	}

	registered, ok := out[0].(bool)
	if !ok {
		return false, fmt.Errorf("unexpected isCandidate result type %T", out[0])
	}

	return registered, nil
}

func (client *EthereumClient) CandidatesWithVotes(ctx context.Context, electionId int64) ([]CandidateVotes, error) {
	var out []any
	err := client.call(ctx, &out, "getAllCandidatesWithVotes", big.NewInt(electionId))
	if err != nil {
		return nil, err
	}

	addresses, ok := out[0].([]common.Address)
	if !ok {
		return nil, fmt.Errorf("unexpected candidates result type %T", out[0])
	}

	counts, ok := out[1].([]*big.Int)
	if !ok {
		return nil, fmt.Errorf("unexpected vote counts result type %T", out[1])
	}

	if len(addresses) != len(counts) {
		return nil, fmt.Errorf("ledger returned %d candidates but %d counts", len(addresses), len(counts))
	}

	tallies := make([]CandidateVotes, len(addresses))
	for idx, address := range addresses {
		tallies[idx] = CandidateVotes{
			CandidateAddress: strings.ToLower(address.Hex()),
			VoteCount:        counts[idx].Uint64(),
		}
	}

	return tallies, nil
}

func (client *EthereumClient) CurrentElectionId(ctx context.Context) (int64, error) {
	var out []any
	err := client.call(ctx, &out, "getCurrentElectionId")
	if err != nil {
		return 0, err
	}

	electionId, ok := out[0].(*big.Int)
	if !ok {
		return 0, fmt.Errorf("unexpected election id result type %T", out[0])
	}

	return electionId.Int64(), nil
}
