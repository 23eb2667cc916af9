// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package ethcontract

import (
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
)

// VotingABI is the interface of the deployed Voting contract.
const VotingABI = `[
	{"inputs":[{"internalType":"string[]","name":"candidateNames","type":"string[]"}],"stateMutability":"nonpayable","type":"constructor"},
	{"inputs":[{"internalType":"uint256","name":"","type":"uint256"}],"name":"candidateList","outputs":[{"internalType":"string","name":"","type":"string"}],"stateMutability":"view","type":"function"},
	{"inputs":[{"internalType":"address","name":"","type":"address"}],"name":"voters","outputs":[{"internalType":"bool","name":"","type":"bool"}],"stateMutability":"view","type":"function"},
	{"inputs":[{"internalType":"string","name":"","type":"string"}],"name":"votesReceived","outputs":[{"internalType":"uint256","name":"","type":"uint256"}],"stateMutability":"view","type":"function"},
	{"inputs":[{"internalType":"string","name":"candidate","type":"string"}],"name":"voteForCandidate","outputs":[],"stateMutability":"nonpayable","type":"function"},
	{"inputs":[{"internalType":"string","name":"candidate","type":"string"}],"name":"totalVotesFor","outputs":[{"internalType":"uint256","name":"","type":"uint256"}],"stateMutability":"view","type":"function"},
	{"inputs":[{"internalType":"string","name":"candidate","type":"string"}],"name":"isValidCandidate","outputs":[{"internalType":"bool","name":"","type":"bool"}],"stateMutability":"view","type":"function"}
]`

const (
	methodCandidateList    = "candidateList"
	methodVoters           = "voters"
	methodVoteForCandidate = "voteForCandidate"
	methodTotalVotesFor    = "totalVotesFor"
	methodIsValidCandidate = "isValidCandidate"
)

var votingABI = mustParseABI(VotingABI)

func mustParseABI(def string) abi.ABI {
	parsed, err := abi.JSON(strings.NewReader(def))
	if err != nil {
		panic("ethcontract: invalid ABI: " + err.Error())
	}
	return parsed
}
