package db

import (
	"github.com/pkg/errors"
	errs "github.com/techagentng/civiceye/errors"
	"github.com/techagentng/civiceye/models"
	"gorm.io/gorm"
)

type AuthRepository interface {
	CreateUser(user *models.User) (*models.User, error)
	IsEmailExist(email string) error
	FindUserByEmail(email string) (*models.User, error)
	FindUserByID(id uint) (*models.User, error)
	UpdateDeviceToken(userID uint, token string) error
	GetAllUsers() ([]models.User, error)
	GetAdmins() ([]models.User, error)
}

type authRepo struct {
	DB *gorm.DB
}

func NewAuthRepo(db *GormDB) AuthRepository {
	return &authRepo{db.DB}
}

func (a *authRepo) CreateUser(user *models.User) (*models.User, error) {
	if user == nil {
		return nil, errors.New("user is nil")
	}
	if user.Role == "" {
		user.Role = models.RoleCitizen
	}
	if err := a.DB.Create(user).Error; err != nil {
		if e := errs.GetUniqueContraintError(err); e != nil && e.Status != errs.ErrInternalServerError.Status {
			return nil, errs.ErrDuplicateEmail
		}
		return nil, errors.Wrap(err, "error creating user")
	}
	return user, nil
}

// IsEmailExist returns ErrDuplicateEmail when a user already holds the address. The match ignores case.
func (a *authRepo) IsEmailExist(email string) error {
	var count int64
	err := a.DB.Model(&models.User{}).Where("LOWER(email) = LOWER(?)", email).Count(&count).Error
	if err != nil {
		return errors.Wrap(err, "gorm count error")
	}
	if count > 0 {
		return errs.ErrDuplicateEmail
	}
	return nil
}

func (a *authRepo) FindUserByEmail(email string) (*models.User, error) {
	var user models.User
	err := a.DB.Where("LOWER(email) = LOWER(?)", email).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.ErrNotFound
		}
		return nil, errors.Wrap(err, "error finding user by email")
	}
	return &user, nil
}

func (a *authRepo) FindUserByID(id uint) (*models.User, error) {
	var user models.User
	err := a.DB.First(&user, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.ErrNotFound
		}
		return nil, errors.Wrap(err, "error finding user by id")
	}
	return &user, nil
}

func (a *authRepo) UpdateDeviceToken(userID uint, token string) error {
	res := a.DB.Model(&models.User{}).Where("id = ?", userID).Update("device_token", token)
	if res.Error != nil {
		return errors.Wrap(res.Error, "error updating device token")
	}
	if res.RowsAffected == 0 {
		return errs.ErrNotFound
	}
	return nil
}

func (a *authRepo) GetAllUsers() ([]models.User, error) {
	var users []models.User
	if err := a.DB.Order("id").Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

func (a *authRepo) GetAdmins() ([]models.User, error) {
	var users []models.User
	if err := a.DB.Where("role = ?", models.RoleAdmin).Order("id").Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}
