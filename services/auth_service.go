package services

import (
	"fmt"
	"strings"

	"github.com/ecosnap/ecosnap/config"
	"github.com/ecosnap/ecosnap/db"
	errs "github.com/ecosnap/ecosnap/errors"
	"github.com/ecosnap/ecosnap/models"
	"github.com/ecosnap/ecosnap/services/jwt"
	"github.com/pkg/errors"
	"golang.org/x/crypto/bcrypt"
)

// AuthService handles citizen and government sign-in plus the admin
// surface for managing government accounts.
type AuthService interface {
	LoginUser(req *models.LoginRequest) (*models.LoginResponse, error)
	SignupUser(user *models.User) (*models.UserResponse, error)
	LoginGovernment(req *models.GovLoginRequest) (*models.LoginResponse, error)
	CreateGovernmentBody(req *models.CreateGovRequest) (*models.GovernmentBody, error)
	ListGovernmentBodies() ([]models.GovernmentBody, error)
	DeleteGovernmentBody(id uint) error
	Logout(token string) error
	GetUser(id uint) (*models.User, error)
	AdjustUserPoints(userID uint, delta int) error
}

type authService struct {
	Config   *config.Config
	userRepo db.UserRepository
}

func NewAuthService(userRepo db.UserRepository, conf *config.Config) AuthService {
	return &authService{Config: conf, userRepo: userRepo}
}

// LoginUser signs a citizen in, creating the account on first contact.
// The mobile app authenticates with Google before it ever calls us, so an
// unknown email here is a first visit rather than a typo.
func (a *authService) LoginUser(req *models.LoginRequest) (*models.LoginResponse, error) {
	user, err := a.userRepo.FindUserByEmail(req.Email)
	switch {
	case err == nil:
		if user.IsBlocked {
			return nil, errs.InActiveUserError
		}
		if err := user.VerifyPassword(req.Password); err != nil {
			return nil, errs.New("invalid credentials", 401)
		}
	case errors.Is(err, errs.ErrNotFound):
		user, err = a.createCitizen(req.Email, req.Password)
		if err != nil {
			return nil, err
		}
	default:
		return nil, err
	}

	token, err := jwt.GenerateToken(user.ID, user.Role, a.Config.JWTSecret)
	if err != nil {
		return nil, errors.Wrap(err, "could not generate token")
	}
	return &models.LoginResponse{
		UserResponse: models.UserResponse{
			ID:           user.ID,
			Fullname:     user.Fullname,
			Email:        user.Email,
			Role:         user.Role,
			RewardPoints: user.RewardPoints,
		},
		AccessToken: token,
	}, nil
}

func (a *authService) createCitizen(email, password string) (*models.User, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, errors.Wrap(err, "could not hash password")
	}
	fullname := email
	if at := strings.Index(email, "@"); at > 0 {
		fullname = email[:at]
	}
	user := &models.User{
		Fullname:       fullname,
		Email:          email,
		HashedPassword: string(hashed),
		Role:           models.RoleCitizen,
	}
	return a.userRepo.CreateUser(user)
}

func (a *authService) SignupUser(user *models.User) (*models.UserResponse, error) {
	if err := models.ValidatePassword(user.Password); err != nil {
		return nil, errs.New(err.Error(), 400)
	}
	if err := a.userRepo.IsEmailExist(user.Email); err != nil {
		return nil, errs.New(err.Error(), 400)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(user.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, errors.Wrap(err, "could not hash password")
	}
	user.HashedPassword = string(hashed)
	user.Password = ""
	user.Role = models.RoleCitizen

	created, err := a.userRepo.CreateUser(user)
	if err != nil {
		return nil, err
	}
	return &models.UserResponse{
		ID:           created.ID,
		Fullname:     created.Fullname,
		Email:        created.Email,
		Role:         created.Role,
		RewardPoints: created.RewardPoints,
	}, nil
}

func (a *authService) LoginGovernment(req *models.GovLoginRequest) (*models.LoginResponse, error) {
	gov, err := a.userRepo.FindGovernmentBodyByGovID(req.GovID)
	if err != nil {
		if errors.Is(err, errs.ErrNotFound) {
			return nil, errs.New("invalid government credentials", 401)
		}
		return nil, err
	}
	if err := gov.VerifyPassword(req.Password); err != nil {
		return nil, errs.New("invalid government credentials", 401)
	}

	token, err := jwt.GenerateToken(gov.ID, models.RoleGovernment, a.Config.JWTSecret)
	if err != nil {
		return nil, errors.Wrap(err, "could not generate token")
	}
	return &models.LoginResponse{
		UserResponse: models.UserResponse{
			ID:       gov.ID,
			Fullname: gov.Name,
			Role:     models.RoleGovernment,
		},
		AccessToken: token,
	}, nil
}

func (a *authService) CreateGovernmentBody(req *models.CreateGovRequest) (*models.GovernmentBody, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, errors.Wrap(err, "could not hash password")
	}
	gov := &models.GovernmentBody{
		GovID:          req.GovID,
		Name:           req.Name,
		HashedPassword: string(hashed),
		City:           req.City,
		State:          req.State,
		District:       req.District,
		Taluka:         req.Taluka,
	}
	created, err := a.userRepo.CreateGovernmentBody(gov)
	if err != nil {
		return nil, errs.New(err.Error(), 400)
	}
	return created, nil
}

func (a *authService) ListGovernmentBodies() ([]models.GovernmentBody, error) {
	return a.userRepo.ListGovernmentBodies()
}

func (a *authService) DeleteGovernmentBody(id uint) error {
	return a.userRepo.DeleteGovernmentBody(id)
}

func (a *authService) Logout(token string) error {
	if token == "" {
		return fmt.Errorf("no token to revoke")
	}
	return a.userRepo.AddToBlacklist(&models.Blacklist{Token: token})
}

func (a *authService) GetUser(id uint) (*models.User, error) {
	return a.userRepo.FindUserByID(id)
}

// AdjustUserPoints is the manual correction path for support cases. The
// repository guard keeps the balance from going negative.
func (a *authService) AdjustUserPoints(userID uint, delta int) error {
	if delta == 0 {
		return errs.New("delta must be non-zero", 400)
	}
	return a.userRepo.AdjustUserPoints(userID, delta)
}
