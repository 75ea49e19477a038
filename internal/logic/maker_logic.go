package logic

import (
	"context"
	"errors"
	"fmt"

	"github.com/modan/fas/internal/model"
	"gorm.io/gorm"
)

// MakerLogic 메이커 조회 로직
type MakerLogic struct {
	db *gorm.DB
}

func NewMakerLogic(db *gorm.DB) *MakerLogic {
	return &MakerLogic{db: db}
}

func (l *MakerLogic) GetMaker(ctx context.Context, id int64) (*model.Maker, error) {
	var maker model.Maker
	if err := l.db.WithContext(ctx).First(&maker, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: maker %d", ErrNotFound, id)
		}
		return nil, fmt.Errorf("failed to load maker %d: %w", id, err)
	}
	return &maker, nil
}
