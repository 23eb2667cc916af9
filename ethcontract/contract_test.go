package ethcontract

import (
	"context"
	"encoding/json"
	"errors"
	"math/big"
	"net/http"
	"net/http/httptest"
	"reflect"
	"sync"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"

	"github.com/danielhkuo/chain-vote/ledger"
	"github.com/danielhkuo/chain-vote/models"
)

const (
	contractAddr = "0xcA1ceC7441A61C0b5fB78424a12A118b5DFB91BA"
	voterA       = "0x1111111111111111111111111111111111111111"
	voterB       = "0x2222222222222222222222222222222222222222"
)

type rpcError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

var errReverted = &rpcError{Code: -32000, Message: "VM Exception while processing transaction: revert"}

// fakeNode answers the JSON-RPC calls the client makes, executing the Voting
// contract logic against in-memory state.
type fakeNode struct {
	mu             sync.Mutex
	candidates     []string
	tallies        map[string]uint64
	voters         map[common.Address]bool
	accounts       []common.Address
	failInReceipt  bool
	failedTxs      map[common.Hash]bool
	txCount        int
	pendingPolls   int
	receiptQueries int
	// omitStatus answers receipts without a status field, as pre-Byzantium
	// chains do.
	omitStatus bool
}

func newFakeNode(candidates ...string) *fakeNode {
	n := &fakeNode{
		candidates: candidates,
		tallies:    make(map[string]uint64),
		voters:     make(map[common.Address]bool),
		failedTxs:  make(map[common.Hash]bool),
		accounts:   []common.Address{common.HexToAddress(voterA), common.HexToAddress(voterB)},
	}
	for _, c := range candidates {
		n.tallies[c] = 0
	}
	return n
}

func (n *fakeNode) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ID     json.RawMessage   `json:"id"`
		Method string            `json:"method"`
		Params []json.RawMessage `json:"params"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	n.mu.Lock()
	result, rpcErr := n.handle(req.Method, req.Params)
	n.mu.Unlock()

	resp := map[string]any{"jsonrpc": "2.0", "id": req.ID}
	if rpcErr != nil {
		resp["error"] = rpcErr
	} else {
		resp["result"] = result
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}

func (n *fakeNode) handle(method string, params []json.RawMessage) (any, *rpcError) {
	switch method {
	case "eth_accounts":
		return n.accounts, nil
	case "eth_call":
		var args transactionArgs
		if err := json.Unmarshal(params[0], &args); err != nil {
			return nil, &rpcError{Code: -32602, Message: err.Error()}
		}
		return n.execCall(args.Data)
	case "eth_sendTransaction":
		var args transactionArgs
		if err := json.Unmarshal(params[0], &args); err != nil {
			return nil, &rpcError{Code: -32602, Message: err.Error()}
		}
		return n.execVote(*args.From, args.Data)
	case "eth_getTransactionReceipt":
		n.receiptQueries++
		if n.pendingPolls > 0 {
			n.pendingPolls--
			return nil, nil
		}
		var hash common.Hash
		json.Unmarshal(params[0], &hash)
		status := "0x1"
		if n.failedTxs[hash] {
			status = "0x0"
		}
		if n.omitStatus {
			return map[string]string{"blockNumber": "0x1"}, nil
		}
		return map[string]string{"status": status, "blockNumber": "0x1"}, nil
	}
	return nil, &rpcError{Code: -32601, Message: "method not found: " + method}
}

func (n *fakeNode) execCall(data []byte) (any, *rpcError) {
	method, err := votingABI.MethodById(data[:4])
	if err != nil {
		return nil, errReverted
	}
	args, err := method.Inputs.Unpack(data[4:])
	if err != nil {
		return nil, errReverted
	}

	var out []byte
	switch method.Name {
	case methodCandidateList:
		idx := args[0].(*big.Int)
		if !idx.IsUint64() || idx.Uint64() >= uint64(len(n.candidates)) {
			return nil, errReverted
		}
		out, err = method.Outputs.Pack(n.candidates[idx.Uint64()])
	case methodIsValidCandidate:
		_, ok := n.tallies[args[0].(string)]
		out, err = method.Outputs.Pack(ok)
	case methodTotalVotesFor:
		votes, ok := n.tallies[args[0].(string)]
		if !ok {
			return nil, errReverted
		}
		out, err = method.Outputs.Pack(new(big.Int).SetUint64(votes))
	case methodVoters:
		out, err = method.Outputs.Pack(n.voters[args[0].(common.Address)])
	default:
		return nil, errReverted
	}
	if err != nil {
		return nil, &rpcError{Code: -32603, Message: err.Error()}
	}
	return hexutil.Bytes(out), nil
}

func (n *fakeNode) execVote(from common.Address, data []byte) (any, *rpcError) {
	method, err := votingABI.MethodById(data[:4])
	if err != nil || method.Name != methodVoteForCandidate {
		return nil, errReverted
	}
	args, err := method.Inputs.Unpack(data[4:])
	if err != nil {
		return nil, errReverted
	}
	candidate := args[0].(string)

	n.txCount++
	hash := common.BigToHash(big.NewInt(int64(n.txCount)))

	_, valid := n.tallies[candidate]
	if !valid || n.voters[from] {
		if n.failInReceipt {
			n.failedTxs[hash] = true
			return hash, nil
		}
		return nil, errReverted
	}
	n.voters[from] = true
	n.tallies[candidate]++
	return hash, nil
}

func newTestClient(t *testing.T, node *fakeNode) *Client {
	t.Helper()
	srv := httptest.NewServer(node)
	t.Cleanup(srv.Close)

	c, err := Dial(context.Background(), srv.URL, contractAddr)
	if err != nil {
		t.Fatalf("Dial() error = %v", err)
	}
	c.pollInterval = time.Millisecond
	t.Cleanup(c.Close)
	return c
}

func TestDialRejectsBadContractAddress(t *testing.T) {
	if _, err := Dial(context.Background(), "http://127.0.0.1:1", "not-an-address"); err == nil {
		t.Fatal("Dial() with bad contract address should fail")
	}
}

func TestListCandidatesThroughGateway(t *testing.T) {
	c := newTestClient(t, newFakeNode("Alice", "Bob", "Charlie"))
	g := ledger.NewGateway(c, ledger.Options{})

	got, err := g.ListCandidates(context.Background())
	if err != nil {
		t.Fatalf("ListCandidates() error = %v", err)
	}
	want := []string{"Alice", "Bob", "Charlie"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("ListCandidates() = %v, want %v", got, want)
	}
}

func TestCandidateAtPastEnd(t *testing.T) {
	c := newTestClient(t, newFakeNode("Alice"))

	if _, err := c.CandidateAt(context.Background(), 1); !errors.Is(err, ledger.ErrNoCandidate) {
		t.Errorf("CandidateAt(1) error = %v, want ErrNoCandidate", err)
	}
}

func TestVoteAndTally(t *testing.T) {
	node := newFakeNode("Alice", "Bob")
	c := newTestClient(t, node)
	ctx := context.Background()

	receipt, err := c.VoteFor(ctx, "Alice", voterA)
	if err != nil {
		t.Fatalf("VoteFor() error = %v", err)
	}
	if receipt.TxHash == "" {
		t.Error("expected a transaction hash")
	}

	votes, err := c.TotalVotesFor(ctx, "Alice")
	if err != nil {
		t.Fatalf("TotalVotesFor() error = %v", err)
	}
	if votes != 1 {
		t.Errorf("TotalVotesFor(Alice) = %d, want 1", votes)
	}

	voted, err := c.HasVoted(ctx, voterA)
	if err != nil {
		t.Fatalf("HasVoted() error = %v", err)
	}
	if !voted {
		t.Error("HasVoted(voterA) = false after vote")
	}

	valid, err := c.IsValidCandidate(ctx, "Zed")
	if err != nil {
		t.Fatalf("IsValidCandidate() error = %v", err)
	}
	if valid {
		t.Error("IsValidCandidate(Zed) = true")
	}
}

func TestVoteRevertIsRejection(t *testing.T) {
	tests := []struct {
		name          string
		failInReceipt bool
	}{
		{"revert on submission", false},
		{"failed receipt", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			node := newFakeNode("Alice")
			node.failInReceipt = tt.failInReceipt
			c := newTestClient(t, node)
			ctx := context.Background()

			if _, err := c.VoteFor(ctx, "Alice", voterB); err != nil {
				t.Fatalf("first VoteFor() error = %v", err)
			}
			_, err := c.VoteFor(ctx, "Alice", voterB)
			if !errors.Is(err, ledger.ErrRejected) {
				t.Fatalf("second VoteFor() error = %v, want ErrRejected", err)
			}

			votes, _ := c.TotalVotesFor(ctx, "Alice")
			if votes != 1 {
				t.Errorf("TotalVotesFor(Alice) = %d, want 1", votes)
			}
		})
	}
}

func TestVoteWaitsForReceipt(t *testing.T) {
	node := newFakeNode("Alice")
	node.pendingPolls = 3
	c := newTestClient(t, node)

	if _, err := c.VoteFor(context.Background(), "Alice", voterA); err != nil {
		t.Fatalf("VoteFor() error = %v", err)
	}
	if node.receiptQueries != 4 {
		t.Errorf("receipt queries = %d, want 4", node.receiptQueries)
	}
}

func TestVoteWithoutReceiptStatus(t *testing.T) {
	node := newFakeNode("Alice")
	node.omitStatus = true
	c := newTestClient(t, node)

	receipt, err := c.VoteFor(context.Background(), "Alice", voterA)
	if err != nil {
		t.Fatalf("VoteFor() error = %v", err)
	}
	if receipt.TxHash == "" {
		t.Error("VoteFor() returned an empty transaction hash")
	}
}

func TestStalledNodeFailsCandidateList(t *testing.T) {
	node := newFakeNode("Alice", "Bob")
	var calls int
	var mu sync.Mutex
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		calls++
		stall := calls > 1
		mu.Unlock()
		if stall {
			select {
			case <-r.Context().Done():
			case <-time.After(2 * time.Second):
			}
			return
		}
		node.ServeHTTP(w, r)
	}))
	t.Cleanup(srv.Close)

	c, err := Dial(context.Background(), srv.URL, contractAddr)
	if err != nil {
		t.Fatalf("Dial() error = %v", err)
	}
	t.Cleanup(c.Close)

	g := ledger.NewGateway(c, ledger.Options{Timeout: 50 * time.Millisecond})
	got, err := g.ListCandidates(context.Background())
	if !errors.Is(err, models.ErrLedgerUnavailable) {
		t.Fatalf("ListCandidates() = %v, %v, want ErrLedgerUnavailable", got, err)
	}
}

func TestVoterMustBeAddress(t *testing.T) {
	c := newTestClient(t, newFakeNode("Alice"))

	if _, err := c.VoteFor(context.Background(), "Alice", "0xA"); !errors.Is(err, models.ErrInvalidInput) {
		t.Errorf("VoteFor() error = %v, want ErrInvalidInput", err)
	}
	if _, err := c.HasVoted(context.Background(), "bob"); !errors.Is(err, models.ErrInvalidInput) {
		t.Errorf("HasVoted() error = %v, want ErrInvalidInput", err)
	}
}

func TestDefaultAccount(t *testing.T) {
	c := newTestClient(t, newFakeNode())

	account, err := c.DefaultAccount(context.Background())
	if err != nil {
		t.Fatalf("DefaultAccount() error = %v", err)
	}
	if account != common.HexToAddress(voterA).Hex() {
		t.Errorf("DefaultAccount() = %s, want %s", account, voterA)
	}
}

func TestUnreachableNodeIsUnavailable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	c, err := Dial(context.Background(), srv.URL, contractAddr)
	if err != nil {
		t.Fatalf("Dial() error = %v", err)
	}
	defer c.Close()
	srv.Close()

	g := ledger.NewGateway(c, ledger.Options{Timeout: time.Second})
	_, err = g.SubmitVote(context.Background(), "Alice", voterA)
	if !errors.Is(err, models.ErrLedgerUnavailable) {
		t.Errorf("SubmitVote() error = %v, want ErrLedgerUnavailable", err)
	}
	if errors.Is(err, ledger.ErrRejected) {
		t.Errorf("SubmitVote() error = %v, should not be a rejection", err)
	}
}
