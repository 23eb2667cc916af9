// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package ethcontract

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/rpc"

	"github.com/danielhkuo/chain-vote/ledger"
	"github.com/danielhkuo/chain-vote/models"
)

const (
	DefaultRPCURL       = "http://127.0.0.1:7545"
	defaultPollInterval = 500 * time.Millisecond
	receiptStatusOK     = 1
)

var ErrNoAccounts = errors.New("node has no accounts")

// Client talks to a deployed Voting contract over JSON-RPC. Votes are sent
// with eth_sendTransaction, so the voter address must be an account the node
// can sign for.
type Client struct {
	rpc          *rpc.Client
	abi          abi.ABI
	address      common.Address
	pollInterval time.Duration
}

var _ ledger.Contract = (*Client)(nil)

// Dial connects to rawURL and binds the contract at contractAddress.
func Dial(ctx context.Context, rawURL, contractAddress string) (*Client, error) {
	if !common.IsHexAddress(contractAddress) {
		return nil, fmt.Errorf("invalid contract address %q", contractAddress)
	}
	c, err := rpc.DialContext(ctx, rawURL)
	if err != nil {
		return nil, fmt.Errorf("failed to dial %s: %w", rawURL, err)
	}
	return New(c, common.HexToAddress(contractAddress)), nil
}

func New(c *rpc.Client, address common.Address) *Client {
	return &Client{
		rpc:          c,
		abi:          votingABI,
		address:      address,
		pollInterval: defaultPollInterval,
	}
}

func (c *Client) Close() {
	c.rpc.Close()
}

// DefaultAccount returns the node's first account (eth_accounts[0]).
func (c *Client) DefaultAccount(ctx context.Context) (string, error) {
	var accounts []common.Address
	if err := c.rpc.CallContext(ctx, &accounts, "eth_accounts"); err != nil {
		return "", fmt.Errorf("eth_accounts: %w", err)
	}
	if len(accounts) == 0 {
		return "", ErrNoAccounts
	}
	return accounts[0].Hex(), nil
}

func (c *Client) CandidateAt(ctx context.Context, index uint64) (string, error) {
	out, err := c.call(ctx, methodCandidateList, new(big.Int).SetUint64(index))
	if err != nil {
		return "", fmt.Errorf("%w: %d: %w", ledger.ErrNoCandidate, index, err)
	}
	name, ok := out[0].(string)
	if !ok {
		return "", fmt.Errorf("%s: unexpected output %T", methodCandidateList, out[0])
	}
	return name, nil
}

func (c *Client) IsValidCandidate(ctx context.Context, name string) (bool, error) {
	out, err := c.call(ctx, methodIsValidCandidate, name)
	if err != nil {
		return false, err
	}
	valid, ok := out[0].(bool)
	if !ok {
		return false, fmt.Errorf("%s: unexpected output %T", methodIsValidCandidate, out[0])
	}
	return valid, nil
}

func (c *Client) TotalVotesFor(ctx context.Context, name string) (uint64, error) {
	out, err := c.call(ctx, methodTotalVotesFor, name)
	if err != nil {
		return 0, err
	}
	votes, ok := out[0].(*big.Int)
	if !ok {
		return 0, fmt.Errorf("%s: unexpected output %T", methodTotalVotesFor, out[0])
	}
	if !votes.IsUint64() {
		return 0, fmt.Errorf("%s: tally %s out of range", methodTotalVotesFor, votes)
	}
	return votes.Uint64(), nil
}

func (c *Client) HasVoted(ctx context.Context, voter string) (bool, error) {
	if !common.IsHexAddress(voter) {
		return false, fmt.Errorf("%w: %q is not an address", models.ErrInvalidInput, voter)
	}
	out, err := c.call(ctx, methodVoters, common.HexToAddress(voter))
	if err != nil {
		return false, err
	}
	voted, ok := out[0].(bool)
	if !ok {
		return false, fmt.Errorf("%s: unexpected output %T", methodVoters, out[0])
	}
	return voted, nil
}

// VoteFor sends voteForCandidate from voter and waits for the receipt. A
// revert, either on submission or in the mined receipt, is ledger.ErrRejected.
func (c *Client) VoteFor(ctx context.Context, candidate, voter string) (ledger.Receipt, error) {
	if !common.IsHexAddress(voter) {
		return ledger.Receipt{}, fmt.Errorf("%w: %q is not an address", models.ErrInvalidInput, voter)
	}
	from := common.HexToAddress(voter)

	input, err := c.abi.Pack(methodVoteForCandidate, candidate)
	if err != nil {
		return ledger.Receipt{}, fmt.Errorf("failed to pack %s: %w", methodVoteForCandidate, err)
	}

	var hash common.Hash
	err = c.rpc.CallContext(ctx, &hash, "eth_sendTransaction", transactionArgs{
		From: &from,
		To:   c.address,
		Data: input,
	})
	if err != nil {
		if isRevert(err) {
			return ledger.Receipt{}, fmt.Errorf("%w: %v", ledger.ErrRejected, err)
		}
		return ledger.Receipt{}, fmt.Errorf("eth_sendTransaction: %w", err)
	}

	receipt, err := c.waitMined(ctx, hash)
	if err != nil {
		return ledger.Receipt{}, fmt.Errorf("waiting for %s: %w", hash.Hex(), err)
	}
	// Receipts from pre-Byzantium chains carry no status; a mined
	// transaction there is accepted.
	if receipt.Status != nil && uint64(*receipt.Status) != receiptStatusOK {
		return ledger.Receipt{}, fmt.Errorf("%w: transaction %s failed", ledger.ErrRejected, hash.Hex())
	}
	return ledger.Receipt{TxHash: hash.Hex()}, nil
}

type transactionArgs struct {
	From *common.Address `json:"from,omitempty"`
	To   common.Address  `json:"to"`
	Data hexutil.Bytes   `json:"data"`
}

type txReceipt struct {
	Status      *hexutil.Uint64 `json:"status"`
	BlockNumber *hexutil.Big    `json:"blockNumber"`
}

func (c *Client) call(ctx context.Context, method string, args ...any) ([]any, error) {
	input, err := c.abi.Pack(method, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to pack %s: %w", method, err)
	}
	var output hexutil.Bytes
	err = c.rpc.CallContext(ctx, &output, "eth_call", transactionArgs{To: c.address, Data: input}, "latest")
	if err != nil {
		return nil, fmt.Errorf("%s: %w", method, err)
	}
	values, err := c.abi.Unpack(method, output)
	if err != nil {
		return nil, fmt.Errorf("failed to unpack %s: %w", method, err)
	}
	if len(values) == 0 {
		return nil, fmt.Errorf("%s: empty output", method)
	}
	return values, nil
}

func (c *Client) waitMined(ctx context.Context, hash common.Hash) (*txReceipt, error) {
	ticker := time.NewTicker(c.pollInterval)
	defer ticker.Stop()
	for {
		var receipt *txReceipt
		if err := c.rpc.CallContext(ctx, &receipt, "eth_getTransactionReceipt", hash); err != nil {
			return nil, err
		}
		if receipt != nil {
			return receipt, nil
		}
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-ticker.C:
		}
	}
}

// isRevert recognises contract reverts from geth ("execution reverted", with
// revert data) and Ganache ("VM Exception ... revert").
func isRevert(err error) bool {
	var dataErr rpc.DataError
	if errors.As(err, &dataErr) && dataErr.ErrorData() != nil {
		return true
	}
	return strings.Contains(strings.ToLower(err.Error()), "revert")
}
