package mapper

import (
	"legislation-qa-be/internal/entity"
	"legislation-qa-be/internal/model"

	"github.com/pgvector/pgvector-go"
)

type PassageMapper struct{}

func NewPassageMapper() *PassageMapper {
	return &PassageMapper{}
}

func (m *PassageMapper) ToModel(e *entity.Passage) *model.Passage {
	return &model.Passage{
		Id:         e.Id,
		ExternalId: e.ExternalId,
		Text:       e.Text,
		Embedding:  pgvector.NewVector(e.Embedding),
		Chapter:    optional(e.Chapter),
		Article:    optional(e.Article),
		Section:    optional(e.Section),
		Subsection: optional(e.Subsection),
		Paragraph:  optional(e.Paragraph),
		Item:       optional(e.Item),
		Position:   optional(e.Position),
		Title:      optional(e.Title),
		CreatedAt:  e.CreatedAt,
		UpdatedAt:  e.UpdatedAt,
	}
}

func (m *PassageMapper) ToEntity(mo *model.Passage) *entity.Passage {
	return &entity.Passage{
		Id:         mo.Id,
		ExternalId: mo.ExternalId,
		Text:       mo.Text,
		Embedding:  mo.Embedding.Slice(),
		Chapter:    value(mo.Chapter),
		Article:    value(mo.Article),
		Section:    value(mo.Section),
		Subsection: value(mo.Subsection),
		Paragraph:  value(mo.Paragraph),
		Item:       value(mo.Item),
		Position:   value(mo.Position),
		Title:      value(mo.Title),
		CreatedAt:  mo.CreatedAt,
		UpdatedAt:  mo.UpdatedAt,
	}
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func value(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
