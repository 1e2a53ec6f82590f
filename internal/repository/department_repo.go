package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/Vikrantbadade/spit-achievements-hub-backend-sub000/internal/models"
)

// DepartmentRepository defines persistence operations for departments.
type DepartmentRepository interface {
	Create(ctx context.Context, department *models.Department) error
	GetByID(ctx context.Context, id uint) (models.Department, error)
	List(ctx context.Context) ([]models.Department, error)
	Count(ctx context.Context) (int64, error)
	UpsertBatch(ctx context.Context, departments []models.Department) (int64, error)
}

type departmentRepository struct {
	db *gorm.DB
}

// NewDepartmentRepository instantiates a GORM-backed department repository.
func NewDepartmentRepository(db *gorm.DB) DepartmentRepository {
	return &departmentRepository{db: db}
}

func (r *departmentRepository) Create(ctx context.Context, department *models.Department) error {
	return r.db.WithContext(ctx).Create(department).Error
}

func (r *departmentRepository) GetByID(ctx context.Context, id uint) (models.Department, error) {
	var department models.Department
	if err := r.db.WithContext(ctx).First(&department, id).Error; err != nil {
		return models.Department{}, err
	}
	return department, nil
}

func (r *departmentRepository) List(ctx context.Context) ([]models.Department, error) {
	var departments []models.Department
	if err := r.db.WithContext(ctx).Order("name ASC").Find(&departments).Error; err != nil {
		return nil, err
	}
	return departments, nil
}

func (r *departmentRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Department{}).Count(&count).Error
	return count, err
}

func (r *departmentRepository) UpsertBatch(ctx context.Context, departments []models.Department) (int64, error) {
	var affected int64
	for i := range departments {
		result := r.db.WithContext(ctx).
			Where(models.Department{Code: departments[i].Code}).
			FirstOrCreate(&departments[i])
		if result.Error != nil {
			return affected, result.Error
		}
		affected += result.RowsAffected
	}
	return affected, nil
}
