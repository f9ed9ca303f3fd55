package usecase

import (
	"context"
	"errors"

	"golang.org/x/crypto/bcrypt"

	"social-publisher/domain/model"
	"social-publisher/domain/repository"
	"social-publisher/infrastructure/logger"
	"social-publisher/infrastructure/utils"
)

var (
	ErrEmailExists = errors.New("User already exists with this email")
	// One message for wrong password and unknown email, so responses don't
	// reveal whether an account exists.
	ErrInvalidLogin = errors.New("Invalid email or password")
	ErrUserNotFound = errors.New("User not found")
)

// AuthResult is a user plus a freshly issued bearer token.
type AuthResult struct {
	User  model.UserView `json:"user"`
	Token string         `json:"token"`
}

type IUserUsecase interface {
	Register(ctx context.Context, req model.ReqRegister) (*AuthResult, error)
	Login(ctx context.Context, req model.ReqLogin) (*AuthResult, error)
	Authenticate(ctx context.Context, email string) (*AuthResult, error)
	GetProfile(ctx context.Context, userID string) (*model.UserView, error)
	UpdateToken(ctx context.Context, userID string, platform model.Platform, token string) (*model.UserView, error)
}

type userUsecase struct {
	userRepo  repository.IUser
	secretKey string
}

func NewUserUsecase(userRepo repository.IUser, secretKey string) IUserUsecase {
	return &userUsecase{userRepo: userRepo, secretKey: secretKey}
}

func (u *userUsecase) Register(ctx context.Context, req model.ReqRegister) (*AuthResult, error) {
	existing, err := u.userRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrEmailExists
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	user, err := u.userRepo.Create(ctx, &model.User{
		Name:     req.Name,
		Email:    req.Email,
		Password: string(hashed),
	})
	if err != nil {
		return nil, err
	}
	return u.withToken(user)
}

func (u *userUsecase) Login(ctx context.Context, req model.ReqLogin) (*AuthResult, error) {
	user, err := u.userRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrInvalidLogin
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return nil, ErrInvalidLogin
	}
	return u.withToken(user)
}

// Authenticate is the legacy find-or-create-by-email flow kept for older
// clients.
func (u *userUsecase) Authenticate(ctx context.Context, email string) (*AuthResult, error) {
	user, err := u.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		user, err = u.userRepo.Create(ctx, &model.User{Email: email})
		if err != nil {
			return nil, err
		}
		logger.GetLogger().WithField("email", email).Info("Created user via legacy authenticate")
	}
	return u.withToken(user)
}

func (u *userUsecase) GetProfile(ctx context.Context, userID string) (*model.UserView, error) {
	user, err := u.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	view := user.View()
	return &view, nil
}

func (u *userUsecase) UpdateToken(ctx context.Context, userID string, platform model.Platform, token string) (*model.UserView, error) {
	user, err := u.userRepo.UpdateToken(ctx, userID, platform, token)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	view := user.View()
	return &view, nil
}

func (u *userUsecase) withToken(user *model.User) (*AuthResult, error) {
	token, err := utils.GenerateToken(user.ID.Hex(), user.Email, u.secretKey)
	if err != nil {
		return nil, err
	}
	return &AuthResult{User: user.View(), Token: token}, nil
}
