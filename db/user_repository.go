package db

import (
	"log"

	errs "github.com/ecosnap/ecosnap/errors"
	"github.com/ecosnap/ecosnap/models"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

type UserRepository interface {
	CreateUser(user *models.User) (*models.User, error)
	FindUserByEmail(email string) (*models.User, error)
	FindUserByID(id uint) (*models.User, error)
	IsEmailExist(email string) error
	AdjustUserPoints(userID uint, delta int) error
	AddToBlacklist(blacklist *models.Blacklist) error
	IsTokenInBlacklist(token string) bool
	CreateGovernmentBody(gov *models.GovernmentBody) (*models.GovernmentBody, error)
	FindGovernmentBodyByGovID(govID string) (*models.GovernmentBody, error)
	ListGovernmentBodies() ([]models.GovernmentBody, error)
	DeleteGovernmentBody(id uint) error
}

type userRepo struct {
	DB *gorm.DB
}

func NewUserRepo(db *GormDB) UserRepository {
	return &userRepo{db.DB}
}

func (a *userRepo) CreateUser(user *models.User) (*models.User, error) {
	if user == nil {
		return nil, errors.New("user is nil")
	}
	if err := a.DB.Create(user).Error; err != nil {
		log.Printf("CreateUser error: %v", err)
		return nil, err
	}
	return user, nil
}

func (a *userRepo) FindUserByEmail(email string) (*models.User, error) {
	user := &models.User{}
	err := a.DB.Where("email = ?", email).First(user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.ErrNotFound
		}
		return nil, errors.Wrap(err, "could not find user")
	}
	return user, nil
}

func (a *userRepo) FindUserByID(id uint) (*models.User, error) {
	user := &models.User{}
	err := a.DB.First(user, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.ErrNotFound
		}
		return nil, errors.Wrap(err, "could not find user")
	}
	return user, nil
}

func (a *userRepo) IsEmailExist(email string) error {
	var count int64
	err := a.DB.Model(&models.User{}).Where("email = ?", email).Count(&count).Error
	if err != nil {
		return errors.Wrap(err, "gorm count error")
	}
	if count > 0 {
		return errors.New("email already in use")
	}
	return nil
}

// AdjustUserPoints applies delta to the user's balance. The balance check
// and the mutation are a single guarded UPDATE so a concurrent spender
// cannot slip between them; the balance can never go negative.
func (a *userRepo) AdjustUserPoints(userID uint, delta int) error {
	res := a.DB.Model(&models.User{}).
		Where("id = ? AND reward_points + ? >= 0", userID, delta).
		Update("reward_points", gorm.Expr("reward_points + ?", delta))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		var count int64
		if err := a.DB.Model(&models.User{}).Where("id = ?", userID).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return errs.ErrNotFound
		}
		return errs.ErrInsufficientBalance
	}
	return nil
}

func (a *userRepo) AddToBlacklist(blacklist *models.Blacklist) error {
	return a.DB.Create(blacklist).Error
}

func (a *userRepo) IsTokenInBlacklist(token string) bool {
	var count int64
	a.DB.Model(&models.Blacklist{}).Where("token = ?", token).Count(&count)
	return count > 0
}

func (a *userRepo) CreateGovernmentBody(gov *models.GovernmentBody) (*models.GovernmentBody, error) {
	var existing models.GovernmentBody
	err := a.DB.Where("gov_id = ?", gov.GovID).First(&existing).Error
	if err == nil {
		return nil, errors.New("government ID already exists")
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errors.Wrap(err, "could not check government ID")
	}
	if err := a.DB.Create(gov).Error; err != nil {
		return nil, errors.Wrap(err, "could not create government body")
	}
	return gov, nil
}

func (a *userRepo) FindGovernmentBodyByGovID(govID string) (*models.GovernmentBody, error) {
	gov := &models.GovernmentBody{}
	err := a.DB.Where("gov_id = ?", govID).First(gov).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.ErrNotFound
		}
		return nil, errors.Wrap(err, "could not find government body")
	}
	return gov, nil
}

func (a *userRepo) ListGovernmentBodies() ([]models.GovernmentBody, error) {
	var bodies []models.GovernmentBody
	if err := a.DB.Order("created_at DESC").Find(&bodies).Error; err != nil {
		return nil, err
	}
	return bodies, nil
}

func (a *userRepo) DeleteGovernmentBody(id uint) error {
	return a.DB.Delete(&models.GovernmentBody{}, id).Error
}
