package entity

import (
	"time"

	"github.com/google/uuid"
)

// Passage is a stored unit of legislative text with its embedding and
// structural metadata. Passages are created by the ingestion job and are
// read-only for the answering pipeline.
type Passage struct {
	Id         uuid.UUID
	ExternalId string
	Text       string
	Embedding  []float32

	// Structural position within the legislation, all optional.
	Chapter    string
	Article    string
	Section    string
	Subsection string
	Paragraph  string
	Item       string
	Position   string
	Title      string

	CreatedAt time.Time
	UpdatedAt time.Time
}
