package mapper

import (
	"finance-insights-be/internal/entity"
	"finance-insights-be/internal/model"
)

type DocumentMapper struct{}

func NewDocumentMapper() *DocumentMapper {
	return &DocumentMapper{}
}

func (m *DocumentMapper) ToEntity(d *model.Document) *entity.Document {
	if d == nil {
		return nil
	}
	return &entity.Document{
		Id:         d.Id,
		Filename:   d.Filename,
		StoredPath: d.StoredPath,
		Text:       d.Text,
		TextLength: d.TextLength,
		UserId:     d.UserId,
		UploadDate: d.UploadDate,
	}
}

func (m *DocumentMapper) ToModel(d *entity.Document) *model.Document {
	if d == nil {
		return nil
	}
	return &model.Document{
		Id:         d.Id,
		Filename:   d.Filename,
		StoredPath: d.StoredPath,
		Text:       d.Text,
		TextLength: d.TextLength,
		UserId:     d.UserId,
		UploadDate: d.UploadDate,
	}
}
