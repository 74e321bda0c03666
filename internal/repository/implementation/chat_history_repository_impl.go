package implementation

import (
	"context"
	"errors"

	"finance-insights-be/internal/entity"
	"finance-insights-be/internal/mapper"
	"finance-insights-be/internal/model"
	"finance-insights-be/internal/repository/contract"
	"finance-insights-be/internal/repository/specification"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ChatHistoryRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.ChatHistoryMapper
}

func NewChatHistoryRepository(db *gorm.DB) contract.ChatHistoryRepository {
	return &ChatHistoryRepositoryImpl{
		db:     db,
		mapper: mapper.NewChatHistoryMapper(),
	}
}

func (r *ChatHistoryRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *ChatHistoryRepositoryImpl) Create(ctx context.Context, history *entity.ChatHistory) error {
	m, err := r.mapper.ToModel(history)
	if err != nil {
		return err
	}
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*history = *r.mapper.ToEntity(m)
	return nil
}

func (r *ChatHistoryRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.ChatHistory, error) {
	var models []*model.ChatHistory
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	entities := make([]*entity.ChatHistory, len(models))
	for i, m := range models {
		entities[i] = r.mapper.ToEntity(m)
	}
	return entities, nil
}

func (r *ChatHistoryRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.ChatHistory, error) {
	var m model.ChatHistory
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *ChatHistoryRepositoryImpl) Delete(ctx context.Context, id uuid.UUID, userId string) (int64, error) {
	res := r.db.WithContext(ctx).
		Where("id = ?", id).
		Where("user_id = ?", userId).
		Delete(&model.ChatHistory{})
	return res.RowsAffected, res.Error
}
