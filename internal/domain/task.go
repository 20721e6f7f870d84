package domain

import (
	"math/rand"
	"strconv"
	"time"
)

// Task is the single domain entity: one to-do item.
//
// Timestamps are managed by the service layer rather than by gorm so that
// imported tasks keep the timestamps they were exported with.
type Task struct {
	ID          string     `gorm:"primaryKey;size:64" json:"id"`
	Text        string     `gorm:"type:text;not null" json:"text"`
	Completed   bool       `gorm:"not null;default:false" json:"completed"`
	CreatedAt   time.Time  `gorm:"column:created_at;autoCreateTime:false" json:"createdAt"`
	CompletedAt *time.Time `gorm:"column:completed_at" json:"completedAt"`
	UpdatedAt   time.Time  `gorm:"column:updated_at;autoUpdateTime:false" json:"updatedAt"`
}

const idAlphabet = "0123456789abcdefghijklmnopqrstuvwxyz"

// NewTaskID returns an opaque unique id: the creation instant in base36
// followed by a random base36 suffix.
func NewTaskID() string {
	buf := make([]byte, 0, 24)
	buf = strconv.AppendInt(buf, time.Now().UnixMilli(), 36)
	for i := 0; i < 11; i++ {
		buf = append(buf, idAlphabet[rand.Intn(len(idAlphabet))])
	}
	return string(buf)
}

// Stats are the aggregate counters shown next to the list.
type Stats struct {
	Total     int64 `json:"total"`
	Completed int64 `json:"completed"`
	Pending   int64 `json:"pending"`
}
