package models

import (
	"time"

	"github.com/google/uuid"
)

// KnowledgeSource is an archived upload of a knowledge sheet.
type KnowledgeSource struct {
	ID         uuid.UUID `db:"id"`
	FileName   string    `db:"file_name"`
	Checksum   string    `db:"checksum"`
	Content    []byte    `db:"content"`
	IssueCount int       `db:"issue_count"`
	CreatedAt  time.Time `db:"created_at"`
}
