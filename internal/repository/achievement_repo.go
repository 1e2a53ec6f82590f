package repository

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Vikrantbadade/spit-achievements-hub-backend-sub000/internal/models"
)

// AchievementFilter narrows achievement queries. The scope fields
// (DepartmentID, FacultyID) come from the authorization policy and are
// applied server-side on every read.
type AchievementFilter struct {
	DepartmentID *uint
	FacultyID    *uint
	Category     string
	Status       string
	From         *time.Time
	To           *time.Time
	Page         int
	PageSize     int
	Preload      bool
}

// AchievementRepository defines persistence operations for achievements.
type AchievementRepository interface {
	Create(ctx context.Context, achievement *models.Achievement) error
	GetByID(ctx context.Context, id uint) (models.Achievement, error)
	GetByIDAndOwner(ctx context.Context, id, facultyID uint) (models.Achievement, error)
	Update(ctx context.Context, achievement *models.Achievement) error
	DeleteByIDAndOwner(ctx context.Context, id, facultyID uint) error
	Delete(ctx context.Context, id uint) error
	List(ctx context.Context, filter AchievementFilter) ([]models.Achievement, int64, error)
	CountByStatus(ctx context.Context) (map[string]int64, error)
}

type achievementRepository struct {
	db *gorm.DB
}

// NewAchievementRepository instantiates a GORM-backed achievement repository.
func NewAchievementRepository(db *gorm.DB) AchievementRepository {
	return &achievementRepository{db: db}
}

func (r *achievementRepository) Create(ctx context.Context, achievement *models.Achievement) error {
	return r.db.WithContext(ctx).Create(achievement).Error
}

func (r *achievementRepository) GetByID(ctx context.Context, id uint) (models.Achievement, error) {
	var achievement models.Achievement
	err := r.db.WithContext(ctx).
		Preload("Faculty").
		Preload("Department").
		First(&achievement, id).Error
	if err != nil {
		return models.Achievement{}, err
	}
	return achievement, nil
}

// GetByIDAndOwner matches on both id and owner so a miss never reveals
// whether the record exists or merely belongs to someone else.
func (r *achievementRepository) GetByIDAndOwner(ctx context.Context, id, facultyID uint) (models.Achievement, error) {
	var achievement models.Achievement
	err := r.db.WithContext(ctx).
		Preload("Faculty").
		Preload("Department").
		Where("id = ? AND faculty_id = ?", id, facultyID).
		First(&achievement).Error
	if err != nil {
		return models.Achievement{}, err
	}
	return achievement, nil
}

func (r *achievementRepository) Update(ctx context.Context, achievement *models.Achievement) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Save(achievement).Error
}

func (r *achievementRepository) DeleteByIDAndOwner(ctx context.Context, id, facultyID uint) error {
	result := r.db.WithContext(ctx).
		Where("id = ? AND faculty_id = ?", id, facultyID).
		Delete(&models.Achievement{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *achievementRepository) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&models.Achievement{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *achievementRepository) List(ctx context.Context, filter AchievementFilter) ([]models.Achievement, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.Achievement{})

	if filter.DepartmentID != nil {
		query = query.Where("department_id = ?", *filter.DepartmentID)
	}
	if filter.FacultyID != nil {
		query = query.Where("faculty_id = ?", *filter.FacultyID)
	}
	if filter.Category != "" {
		query = query.Where("category = ?", filter.Category)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.From != nil {
		query = query.Where("achievement_date >= ?", *filter.From)
	}
	if filter.To != nil {
		query = query.Where("achievement_date <= ?", *filter.To)
	}

	countQuery := query.Session(&gorm.Session{})
	var total int64
	if err := countQuery.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if filter.PageSize > 0 {
		page := filter.Page
		if page <= 0 {
			page = 1
		}
		query = query.Offset((page - 1) * filter.PageSize).Limit(filter.PageSize)
	}

	if filter.Preload {
		query = query.Preload("Faculty").Preload("Department")
	}

	var achievements []models.Achievement
	if err := query.Order("achievement_date DESC").Find(&achievements).Error; err != nil {
		return nil, 0, err
	}

	return achievements, total, nil
}

func (r *achievementRepository) CountByStatus(ctx context.Context) (map[string]int64, error) {
	type statusCount struct {
		Status string
		Count  int64
	}
	var rows []statusCount
	err := r.db.WithContext(ctx).
		Model(&models.Achievement{}).
		Select("status, COUNT(*) as count").
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := make(map[string]int64, len(rows))
	for _, row := range rows {
		counts[row.Status] = row.Count
	}
	return counts, nil
}
