package db

import (
	"github.com/google/uuid"
	"github.com/pkg/errors"
	errs "github.com/techagentng/civiceye/errors"
	"github.com/techagentng/civiceye/models"
	"gorm.io/gorm"
)

type ViolationTypeRepository interface {
	GetAllViolationTypes() ([]models.ViolationType, error)
	CreateViolationType(vt *models.ViolationType) (*models.ViolationType, error)
}

type violationTypeRepo struct {
	DB *gorm.DB
}

func NewViolationTypeRepo(db *GormDB) ViolationTypeRepository {
	return &violationTypeRepo{db.DB}
}

func (v *violationTypeRepo) GetAllViolationTypes() ([]models.ViolationType, error) {
	types := []models.ViolationType{}
	if err := v.DB.Order("label").Find(&types).Error; err != nil {
		return nil, errors.Wrap(err, "error listing violation types")
	}
	return types, nil
}

func (v *violationTypeRepo) CreateViolationType(vt *models.ViolationType) (*models.ViolationType, error) {
	var count int64
	if err := v.DB.Model(&models.ViolationType{}).Where("LOWER(label) = LOWER(?)", vt.Label).Count(&count).Error; err != nil {
		return nil, errors.Wrap(err, "gorm count error")
	}
	if count > 0 {
		return nil, errs.ErrDuplicateLabel
	}
	if vt.ID == "" {
		vt.ID = uuid.NewString()
	}
	if err := v.DB.Create(vt).Error; err != nil {
		if e := errs.GetUniqueContraintError(err); e != nil && e.Status == errs.ErrDuplicateLabel.Status {
			return nil, errs.ErrDuplicateLabel
		}
		return nil, errors.Wrap(err, "error creating violation type")
	}
	return vt, nil
}
