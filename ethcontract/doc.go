// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package ethcontract binds the Voting smart contract over Ethereum JSON-RPC.

# Connecting

	client, err := ethcontract.Dial(ctx, "http://127.0.0.1:7545", contractAddress)
	if err != nil {
		return err
	}
	defer client.Close()

Client implements ledger.Contract. View functions go through eth_call;
votes are sent with eth_sendTransaction from the voter address, which must be
an account unlocked on the node (as with Ganache). The client then polls
eth_getTransactionReceipt until the transaction is mined.

# Contract Interface

	candidateList(uint256) string   - reverts past the last index
	isValidCandidate(string) bool
	totalVotesFor(string) uint256
	voters(address) bool
	voteForCandidate(string)        - reverts for repeat voters

A revert during submission or a receipt with status 0 is reported as
ledger.ErrRejected. Receipts without a status field (pre-Byzantium chains)
count as accepted once mined.

CandidateAt wraps both ledger.ErrNoCandidate and the underlying transport
error, so a timed-out lookup can be told apart from the end of the list.
*/
package ethcontract
