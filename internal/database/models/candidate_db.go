package db_models

import "time"

type CandidateDB struct {
	Id            uint      `gorm:"primaryKey;column:id"`
	Name          string    `gorm:"column:name;not null"`
	Party         string    `gorm:"column:party;not null"`
	Slogan        string    `gorm:"column:slogan"`
	LogoUrl       string    `gorm:"column:logo_url"`
	LogoAssetId   string    `gorm:"column:logo_asset_id"`
	WalletAddress string    `gorm:"column:wallet_address;not null;uniqueIndex:idx_candidates_wallet_election"`
	ElectionId    uint      `gorm:"column:election_id;not null;uniqueIndex:idx_candidates_wallet_election"`
	Status        string    `gorm:"column:status;not null"`
	CreatedAt     time.Time `gorm:"column:created_at"`
	UpdatedAt     time.Time `gorm:"column:updated_at"`
}

func (CandidateDB) TableName() string {
	return "candidates"
}
