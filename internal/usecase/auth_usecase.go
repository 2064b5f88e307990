package usecase

import (
	"context"
	"net/http"
	"time"

	log "github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"

	"github.com/rugue/FullStackEcommerce/internal/domain/model"
	repo "github.com/rugue/FullStackEcommerce/internal/repository"
	"github.com/rugue/FullStackEcommerce/internal/validator"
)

// TokenIssuer signs an access token for the user. The concrete JWT issuer
// lives in cmd/api.
type TokenIssuer interface {
	Issue(userID int64, role model.Role, now time.Time) (string, time.Time, error)
}

type AuthUsecase struct {
	users  repo.UserRepository
	issuer TokenIssuer
	logger *log.Entry

	bcryptCost int
}

func NewAuthUsecase(users repo.UserRepository, issuer TokenIssuer, logger *log.Entry) *AuthUsecase {
	if logger == nil {
		logger = log.New().WithField("component", "auth-usecase")
	}
	return &AuthUsecase{
		users:      users,
		issuer:     issuer,
		logger:     logger,
		bcryptCost: bcrypt.DefaultCost,
	}
}

type RegisterInput struct {
	Email    string
	Password string
	Name     string
	Address  string
}

type LoginInput struct {
	Email    string
	Password string
}

type LoginOutput struct {
	Token     string     `json:"token"`
	ExpiresAt time.Time  `json:"expiresAt"`
	User      model.User `json:"user"`
}

func (u *AuthUsecase) Register(ctx context.Context, in RegisterInput) (model.User, error) {
	if err := validator.ValidateRegister(in.Email, in.Password); err != nil {
		return model.User{}, NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if _, err := u.users.FindByEmail(ctx, in.Email); err == nil {
		return model.User{}, NewHTTPError(http.StatusBadRequest, "email already used")
	} else if err != repo.ErrNotFound {
		return model.User{}, storeError(u.logger, "user lookup", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), u.bcryptCost)
	if err != nil {
		return model.User{}, storeError(u.logger, "password hash", err)
	}

	user := model.User{
		Email:        in.Email,
		PasswordHash: string(hash),
		Role:         model.RoleUser,
		Name:         in.Name,
		Address:      in.Address,
	}
	id, err := u.users.Create(ctx, user)
	if err != nil {
		return model.User{}, storeError(u.logger, "user insert", err)
	}
	user.ID = id

	u.logger.WithField("user_id", id).Info("user registered")
	return user, nil
}

func (u *AuthUsecase) Login(ctx context.Context, in LoginInput) (LoginOutput, error) {
	if err := validator.ValidateLogin(in.Email, in.Password); err != nil {
		return LoginOutput{}, NewHTTPError(http.StatusBadRequest, err.Error())
	}

	user, err := u.users.FindByEmail(ctx, in.Email)
	if err == repo.ErrNotFound {
		// same answer for unknown email and wrong password
		return LoginOutput{}, NewHTTPError(http.StatusUnauthorized, "invalid credentials")
	}
	if err != nil {
		return LoginOutput{}, storeError(u.logger, "user lookup", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return LoginOutput{}, NewHTTPError(http.StatusUnauthorized, "invalid credentials")
	}

	token, expiresAt, err := u.issuer.Issue(user.ID, user.Role, time.Now())
	if err != nil {
		return LoginOutput{}, storeError(u.logger, "token issue", err)
	}

	return LoginOutput{Token: token, ExpiresAt: expiresAt, User: user}, nil
}
