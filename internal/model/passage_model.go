package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/pgvector/pgvector-go"
)

type Passage struct {
	Id         uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ExternalId string          `gorm:"type:text;not null;uniqueIndex"`
	Text       string          `gorm:"type:text;not null"`
	Embedding  pgvector.Vector `gorm:"type:vector(1536)"` // text-embedding-3-small uses 1536 dimensions
	Chapter    *string         `gorm:"type:text"`
	Article    *string         `gorm:"type:text"`
	Section    *string         `gorm:"type:text"`
	Subsection *string         `gorm:"type:text"`
	Paragraph  *string         `gorm:"type:text"`
	Item       *string         `gorm:"type:text"`
	Position   *string         `gorm:"type:text"`
	Title      *string         `gorm:"type:text"`
	CreatedAt  time.Time       `gorm:"autoCreateTime"`
	UpdatedAt  time.Time       `gorm:"autoUpdateTime"`
}

func (Passage) TableName() string {
	return "legislation_passages"
}
