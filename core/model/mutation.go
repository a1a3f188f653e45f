package model

import "time"

// MutationRecord is one transfer or assignment-change event in a crew
// member's history. The history is append-only and immutable once ingested.
type MutationRecord struct {
	SeamanCode      int       `json:"seamancode"` // foreign key to CrewRecord.SeamanCode
	TransactionDate time.Time `json:"transaction_date"`
	FromVessel      string    `json:"from_vessel"` // origin vessel or shore status
	ToVessel        string    `json:"to_vessel"`   // destination vessel or shore status
	FromRank        string    `json:"from_rank"`
	ToRank          string    `json:"to_rank"`
}
