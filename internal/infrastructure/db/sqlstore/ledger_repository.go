package sqlstore

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/synchub/attendance/internal/core/domain"
	"github.com/synchub/attendance/internal/core/ports"
)

// LedgerRepository implements ports.LedgerRepository over the time_logs table.
type LedgerRepository struct {
	db *gorm.DB
}

func NewLedgerRepository(db *gorm.DB) *LedgerRepository {
	return &LedgerRepository{db: db}
}

var _ ports.LedgerRepository = (*LedgerRepository)(nil)

func (r *LedgerRepository) FindOpen(ctx context.Context, identityID uint, date string) (*domain.AttendanceEvent, error) {
	var m timeLogModel
	err := r.db.WithContext(ctx).
		Where("officer_id = ? AND date = ? AND time_out IS NULL", identityID, date).
		Order("time_in desc, id desc").
		First(&m).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrNoOpenEvent
	}
	if err != nil {
		return nil, err
	}
	event := m.toDomain()
	return &event, nil
}

// Open relies on idx_time_logs_open: a concurrent second time-in for the same
// officer and day fails with a duplicate key.
func (r *LedgerRepository) Open(ctx context.Context, event *domain.AttendanceEvent) error {
	m := timeLogModel{
		OfficerID: event.IdentityID,
		Date:      event.Date,
		TimeIn:    event.TimeIn,
		TimeOut:   event.TimeOut,
	}
	err := r.db.WithContext(ctx).Omit(clause.Associations).Create(&m).Error
	switch {
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return domain.ErrScanConflict
	case errors.Is(err, gorm.ErrForeignKeyViolated):
		return domain.ErrIdentityNotFound
	case err != nil:
		return err
	}
	event.ID = m.ID
	return nil
}

// Close only touches a row that is still open; zero affected rows means a
// concurrent scan closed it first.
func (r *LedgerRepository) Close(ctx context.Context, id uint, at time.Time) error {
	res := r.db.WithContext(ctx).
		Model(&timeLogModel{}).
		Where("id = ? AND time_out IS NULL", id).
		Update("time_out", at)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected > 0 {
		return nil
	}
	var count int64
	if err := r.db.WithContext(ctx).Model(&timeLogModel{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return domain.ErrEventNotFound
	}
	return domain.ErrScanConflict
}

func (r *LedgerRepository) Latest(ctx context.Context, identityID uint) (*domain.AttendanceEvent, error) {
	var m timeLogModel
	err := r.db.WithContext(ctx).
		Preload("Officer").
		Where("officer_id = ?", identityID).
		Order("date desc, time_in desc, id desc").
		First(&m).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrEventNotFound
	}
	if err != nil {
		return nil, err
	}
	event := m.toDomain()
	return &event, nil
}

func (r *LedgerRepository) List(ctx context.Context, filter ports.LedgerFilter) ([]domain.AttendanceEvent, error) {
	q := r.db.WithContext(ctx).Preload("Officer")
	if filter.StartDate != "" {
		q = q.Where("date >= ?", filter.StartDate)
	}
	if filter.EndDate != "" {
		q = q.Where("date <= ?", filter.EndDate)
	}
	if filter.Identifier != "" {
		q = q.Where("officer_id IN (?)",
			r.db.Model(&officerModel{}).Select("id").Where("identifier = ?", filter.Identifier))
	}

	var rows []timeLogModel
	if err := q.Order("date asc, time_in asc, id asc").Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]domain.AttendanceEvent, 0, len(rows))
	for _, m := range rows {
		out = append(out, m.toDomain())
	}
	return out, nil
}

func (r *LedgerRepository) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&timeLogModel{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrEventNotFound
	}
	return nil
}
