package models

type CandidateResult struct {
	Candidate *Candidate
	Votes     uint64
}
