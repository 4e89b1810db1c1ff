package labeling

import (
	"time"

	"gorm.io/datatypes"
)

// Record statuses. This is the authoritative enumeration: the update path
// rejects anything outside it, so stats buckets always sum to total.
const (
	StatusPending  = "pending"
	StatusApproved = "approved"
	StatusEdited   = "edited"
)

func ValidStatus(s string) bool {
	switch s {
	case StatusPending, StatusApproved, StatusEdited:
		return true
	}
	return false
}

// Record is one labeled text item.
type Record struct {
	ID        string    `json:"id" gorm:"primaryKey;column:id"`
	Text      string    `json:"text" gorm:"column:text"`
	Label     string    `json:"label" gorm:"column:label"`
	Status    string    `json:"status" gorm:"column:status"`
	CreatedAt time.Time `json:"created_at" gorm:"column:created_at"`
	UpdatedAt time.Time `json:"updated_at" gorm:"column:updated_at"`
}

func (Record) TableName() string {
	return "label_records"
}

// Upload is the persisted manifest of one CSV batch: how many rows came in,
// how many made it, and why the rest did not.
type Upload struct {
	ID        string            `json:"id" gorm:"primaryKey;column:id"`
	Filename  string            `json:"filename" gorm:"column:filename"`
	Rows      int               `json:"rows" gorm:"column:rows"`
	Succeeded int               `json:"succeeded" gorm:"column:succeeded"`
	Failed    int               `json:"failed" gorm:"column:failed"`
	Summary   datatypes.JSONMap `json:"summary,omitempty" gorm:"column:summary"`
	CreatedAt time.Time         `json:"created_at" gorm:"column:created_at"`
}

func (Upload) TableName() string {
	return "label_uploads"
}

type Stats struct {
	Total    int64 `json:"total"`
	Pending  int64 `json:"pending"`
	Approved int64 `json:"approved"`
	Edited   int64 `json:"edited"`
}

// UpdateRequest is the partial-update payload for a record. Nil fields are
// left untouched.
type UpdateRequest struct {
	Label  *string `json:"label,omitempty"`
	Status *string `json:"status,omitempty"`
}

type RowFailure struct {
	Row    int    `json:"row"`
	Reason string `json:"reason"`
}

// BatchResult reports a best-effort CSV ingestion: created records in file
// order plus a manifest of the rows that did not make it.
type BatchResult struct {
	Records  []Record     `json:"items"`
	Failures []RowFailure `json:"failures"`
	Upload   *Upload      `json:"upload,omitempty"`
}
