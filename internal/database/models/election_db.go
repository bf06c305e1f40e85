package db_models

import "time"

type ElectionDB struct {
	Id               uint      `gorm:"primaryKey;column:id"`
	Title            string    `gorm:"column:title;not null"`
	Description      string    `gorm:"column:description"`
	StartTimestamp   int64     `gorm:"column:start_timestamp;not null"`
	EndTimestamp     *int64    `gorm:"column:end_timestamp"`
	Phase            string    `gorm:"column:phase;not null;index"`
	LedgerElectionId *int64    `gorm:"column:ledger_election_id"`
	CreatedAt        time.Time `gorm:"column:created_at"`
	UpdatedAt        time.Time `gorm:"column:updated_at"`

	Candidates []CandidateDB `gorm:"foreignKey:ElectionId;references:Id;constraint:OnDelete:CASCADE,OnUpdate:RESTRICT"`
}

func (ElectionDB) TableName() string {
	return "elections"
}
