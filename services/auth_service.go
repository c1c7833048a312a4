package services

import (
	"context"
	"errors"
	"net/http"

	"github.com/techagentng/civiceye/config"
	"github.com/techagentng/civiceye/db"
	apiError "github.com/techagentng/civiceye/errors"
	"github.com/techagentng/civiceye/logger"
	"github.com/techagentng/civiceye/models"
	"github.com/techagentng/civiceye/services/jwt"
	"github.com/techagentng/civiceye/services/session"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// AuthService interface
type AuthService interface {
	SignupUser(request *models.SignupRequest) (*models.LoginResponse, *apiError.Error)
	LoginUser(loginRequest *models.LoginRequest) (*models.LoginResponse, *apiError.Error)
	Logout(ctx context.Context, accessToken string) error
	GetUserProfile(userID uint) (*models.User, error)
	UpdateDeviceToken(userID uint, token string) error
	CreateOfficial(request *models.SignupRequest) (*models.User, *apiError.Error)
	ListUsers(role models.Role) ([]models.User, error)
}

// authService struct
type authService struct {
	Config   *config.Config
	authRepo db.AuthRepository
	sessions session.Store
}

// NewAuthService instantiate an authService
func NewAuthService(authRepo db.AuthRepository, sessions session.Store, conf *config.Config) AuthService {
	return &authService{
		Config:   conf,
		authRepo: authRepo,
		sessions: sessions,
	}
}

// SignupUser registers a citizen and signs them in. Public registration never grants the
// official role.
func (a *authService) SignupUser(request *models.SignupRequest) (*models.LoginResponse, *apiError.Error) {
	user, apiErr := a.createUser(request, models.RoleCitizen)
	if apiErr != nil {
		return nil, apiErr
	}
	return a.startSession(user)
}

// CreateOfficial registers an official account. Only reachable by existing officials.
func (a *authService) CreateOfficial(request *models.SignupRequest) (*models.User, *apiError.Error) {
	return a.createUser(request, models.RoleAdmin)
}

func (a *authService) createUser(request *models.SignupRequest, role models.Role) (*models.User, *apiError.Error) {
	if err := models.ValidatePassword(request.Password); err != nil {
		return nil, apiError.New(err.Error(), http.StatusBadRequest)
	}

	// Check if the email already exists
	if err := a.authRepo.IsEmailExist(request.Email); err != nil {
		logger.Sugar.Infow("signup rejected", "email", request.Email, zap.Error(err))
		return nil, apiError.GetUniqueContraintError(err)
	}

	hashedPassword, err := GenerateHashPassword(request.Password)
	if err != nil {
		logger.Log.Error("SignupUser error hashing password", zap.Error(err))
		return nil, apiError.ErrInternalServerError
	}

	user := &models.User{
		Name:           sanitizeText(request.Name),
		Email:          request.Email,
		Role:           role,
		HashedPassword: hashedPassword,
		AvatarURL:      models.AvatarURLFor(request.Name),
	}

	user, err = a.authRepo.CreateUser(user)
	if err != nil {
		logger.Log.Error("SignupUser error creating user", zap.Error(err))
		return nil, apiError.GetUniqueContraintError(err)
	}
	return user, nil
}

func GenerateHashPassword(password string) (string, error) {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	return string(hashedPassword), err
}

func (a *authService) LoginUser(loginRequest *models.LoginRequest) (*models.LoginResponse, *apiError.Error) {
	foundUser, err := a.authRepo.FindUserByEmail(loginRequest.Email)
	if err != nil {
		if errors.Is(err, apiError.ErrNotFound) {
			return nil, apiError.ErrInvalidPassword
		}
		logger.Log.Error("error finding user by email", zap.Error(err))
		return nil, apiError.New("unable to find user", http.StatusInternalServerError)
	}

	if err := foundUser.VerifyPassword(loginRequest.Password); err != nil {
		logger.Sugar.Infow("invalid password", "email", foundUser.Email)
		return nil, apiError.ErrInvalidPassword
	}

	return a.startSession(foundUser)
}

// startSession issues an access token and stores the user in the session slot under it.
func (a *authService) startSession(user *models.User) (*models.LoginResponse, *apiError.Error) {
	accessToken, err := jwt.GenerateToken(user.Email, a.Config.JWTSecret, string(user.Role), user.ID, a.Config.TokenTTL)
	if err != nil {
		logger.Log.Error("error generating access token", zap.Uint("user_id", user.ID), zap.Error(err))
		return nil, apiError.ErrInternalServerError
	}

	if err := a.sessions.Save(context.Background(), accessToken, user, a.Config.TokenTTL); err != nil {
		logger.Log.Error("error saving session", zap.Uint("user_id", user.ID), zap.Error(err))
		return nil, apiError.ErrInternalServerError
	}

	return &models.LoginResponse{
		User:        user,
		AccessToken: accessToken,
	}, nil
}

func (a *authService) Logout(ctx context.Context, accessToken string) error {
	return a.sessions.Clear(ctx, accessToken)
}

func (a *authService) GetUserProfile(userID uint) (*models.User, error) {
	return a.authRepo.FindUserByID(userID)
}

func (a *authService) UpdateDeviceToken(userID uint, token string) error {
	return a.authRepo.UpdateDeviceToken(userID, token)
}

// ListUsers returns every account, or only officials when role is ADMIN.
func (a *authService) ListUsers(role models.Role) ([]models.User, error) {
	switch role {
	case "":
		return a.authRepo.GetAllUsers()
	case models.RoleAdmin:
		return a.authRepo.GetAdmins()
	default:
		return nil, apiError.New("role must be ADMIN or empty", http.StatusBadRequest)
	}
}
