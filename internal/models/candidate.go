package models

import "strings"

type CandidateStatus string

const (
	CandidatePending   CandidateStatus = "pending"
	CandidateConfirmed CandidateStatus = "confirmed"
	CandidateRejected  CandidateStatus = "rejected"
)

type Candidate struct {
	Id            uint
	Name          string
	Party         string
	Slogan        string
	LogoUrl       string
	LogoAssetId   string
	WalletAddress string //normalized to lower case
	ElectionId    uint
	Status        CandidateStatus
}

// NormalizeWalletAddress lower-cases a ledger address so store lookups and
// ledger tallies compare equal regardless of checksum casing.
func NormalizeWalletAddress(walletAddress string) string {
	return strings.ToLower(strings.TrimSpace(walletAddress))
}
