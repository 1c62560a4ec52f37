package booking

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
)

type sessionRepository struct {
	db *gorm.DB
}

func NewSessionRepository(db *gorm.DB) SessionRepository {
	return &sessionRepository{db: db}
}

// AutoMigrate creates the session table.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(&Session{})
}

func (r *sessionRepository) Create(ctx context.Context, s *Session) error {
	return r.db.WithContext(ctx).Create(s).Error
}

func (r *sessionRepository) GetByID(ctx context.Context, id string) (*Session, error) {
	var s Session
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&s).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSessionNotFound
		}
		return nil, err
	}
	return &s, nil
}

func (r *sessionRepository) Save(ctx context.Context, s *Session) error {
	res := r.db.WithContext(ctx).Model(&Session{}).
		Where("id = ?", s.ID).
		Updates(map[string]interface{}{
			"step":         s.Step,
			"status":       s.Status,
			"draft":        s.Draft,
			"location_seq": s.LocationSeq,
			"expires_at":   s.ExpiresAt,
			"updated_at":   time.Now(),
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrSessionNotFound
	}
	return nil
}

func (r *sessionRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&Session{}).Error
}

func (r *sessionRepository) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	res := r.db.WithContext(ctx).Where("expires_at <= ?", now).Delete(&Session{})
	return res.RowsAffected, res.Error
}

func (r *sessionRepository) ExistingIDs(ctx context.Context, ids []string) ([]string, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var out []string
	err := r.db.WithContext(ctx).Model(&Session{}).Where("id IN ?", ids).Pluck("id", &out).Error
	return out, err
}
