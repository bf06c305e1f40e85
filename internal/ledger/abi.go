package ledger

// votingABI is the subset of the deployed voting contract's interface that
// the backend consumes.
const votingABI = `[
	{"type":"function","name":"createElection","inputs":[],"outputs":[],"stateMutability":"nonpayable"},
	{"type":"function","name":"startVoting","inputs":[],"outputs":[],"stateMutability":"nonpayable"},
	{"type":"function","name":"endVoting","inputs":[],"outputs":[],"stateMutability":"nonpayable"},
	{"type":"function","name":"endElection","inputs":[],"outputs":[],"stateMutability":"nonpayable"},
	{"type":"function","name":"registerCandidate","inputs":[{"name":"candidate","type":"address"}],"outputs":[],"stateMutability":"nonpayable"},
	{"type":"function","name":"vote","inputs":[{"name":"candidate","type":"address"}],"outputs":[],"stateMutability":"nonpayable"},
	{"type":"function","name":"isCandidate","inputs":[{"name":"electionId","type":"uint256"},{"name":"candidate","type":"address"}],"outputs":[{"name":"","type":"bool"}],"stateMutability":"view"},
	{"type":"function","name":"getAllCandidatesWithVotes","inputs":[{"name":"electionId","type":"uint256"}],"outputs":[{"name":"","type":"address[]"},{"name":"","type":"uint256[]"}],"stateMutability":"view"},
	{"type":"function","name":"getCurrentElectionId","inputs":[],"outputs":[{"name":"","type":"uint256"}],"stateMutability":"view"}
]`
