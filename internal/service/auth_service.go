package service

import (
	"context"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"veloservice/internal/dto"
	"veloservice/internal/middleware"
	"veloservice/internal/model"
	"veloservice/internal/repository"
)

// AuthService handles account registration and token issuance for both
// principal types. A token always carries exactly one of userId or
// serviceCenterId.
type AuthService interface {
	RegisterUser(ctx context.Context, req dto.RegisterUserRequest) (*dto.LoginResponse, error)
	RegisterCenter(ctx context.Context, req dto.RegisterCenterRequest) (*dto.LoginResponse, error)
	LoginUser(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error)
	LoginCenter(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error)
	Refresh(ctx context.Context, req dto.RefreshRequest) (*dto.LoginResponse, error)
	Me(ctx context.Context, claims *middleware.Claims) (*dto.AccountResponse, error)
}

type authService struct {
	users      repository.UserRepository
	centers    repository.ServiceCenterRepository
	jwtSecret  string
	tokenTTL   time.Duration
	refreshTTL time.Duration
}

func NewAuthService(users repository.UserRepository, centers repository.ServiceCenterRepository, jwtSecret string, tokenTTLHours, refreshTTLHours int) AuthService {
	return &authService{
		users:      users,
		centers:    centers,
		jwtSecret:  jwtSecret,
		tokenTTL:   time.Duration(tokenTTLHours) * time.Hour,
		refreshTTL: time.Duration(refreshTTLHours) * time.Hour,
	}
}

func (s *authService) RegisterUser(ctx context.Context, req dto.RegisterUserRequest) (*dto.LoginResponse, error) {
	if _, err := s.users.FindByEmail(ctx, req.Email); err == nil {
		return nil, invalid("email is already registered")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := model.User{
		Email:        req.Email,
		PasswordHash: string(hash),
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Phone:        req.Phone,
	}
	if err := s.users.Create(ctx, &user); err != nil {
		return nil, err
	}
	return s.issueForUser(&user)
}

func (s *authService) RegisterCenter(ctx context.Context, req dto.RegisterCenterRequest) (*dto.LoginResponse, error) {
	if _, err := s.centers.FindByEmail(ctx, req.Email); err == nil {
		return nil, invalid("email is already registered")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	center := model.ServiceCenter{
		Email:        req.Email,
		PasswordHash: string(hash),
		Name:         req.Name,
		Description:  req.Description,
		Address:      req.Address,
		Phone:        req.Phone,
	}
	if err := s.centers.Create(ctx, &center); err != nil {
		return nil, err
	}
	return s.issueForCenter(&center)
}

func (s *authService) LoginUser(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error) {
	user, err := s.users.FindByEmail(ctx, req.Email)
	if err != nil {
		return nil, invalid("invalid email or password")
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)) != nil {
		return nil, invalid("invalid email or password")
	}
	return s.issueForUser(user)
}

func (s *authService) LoginCenter(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error) {
	center, err := s.centers.FindByEmail(ctx, req.Email)
	if err != nil {
		return nil, invalid("invalid email or password")
	}
	if bcrypt.CompareHashAndPassword([]byte(center.PasswordHash), []byte(req.Password)) != nil {
		return nil, invalid("invalid email or password")
	}
	return s.issueForCenter(center)
}

func (s *authService) Refresh(ctx context.Context, req dto.RefreshRequest) (*dto.LoginResponse, error) {
	claims := &middleware.Claims{}
	token, err := jwt.ParseWithClaims(req.RefreshToken, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(s.jwtSecret), nil
	})
	if err != nil || !token.Valid {
		return nil, invalid("invalid refresh token")
	}

	switch {
	case claims.IsUser():
		user, err := s.users.FindByID(ctx, *claims.UserID)
		if err != nil {
			return nil, invalid("invalid refresh token")
		}
		return s.issueForUser(user)
	case claims.IsServiceCenter():
		center, err := s.centers.FindByID(ctx, *claims.ServiceCenterID)
		if err != nil {
			return nil, invalid("invalid refresh token")
		}
		return s.issueForCenter(center)
	default:
		return nil, invalid("invalid refresh token")
	}
}

func (s *authService) Me(ctx context.Context, claims *middleware.Claims) (*dto.AccountResponse, error) {
	switch {
	case claims.IsUser():
		user, err := s.users.FindByID(ctx, *claims.UserID)
		if err != nil {
			return nil, ErrNotFound
		}
		return &dto.AccountResponse{
			ID:    user.ID,
			Type:  "user",
			Email: user.Email,
			Name:  user.FirstName + " " + user.LastName,
		}, nil
	case claims.IsServiceCenter():
		center, err := s.centers.FindByID(ctx, *claims.ServiceCenterID)
		if err != nil {
			return nil, ErrNotFound
		}
		return &dto.AccountResponse{
			ID:    center.ID,
			Type:  "service_center",
			Email: center.Email,
			Name:  center.Name,
		}, nil
	default:
		return nil, ErrForbidden
	}
}

func (s *authService) issueForUser(user *model.User) (*dto.LoginResponse, error) {
	access, err := s.sign(&user.ID, nil, user.Email, s.tokenTTL)
	if err != nil {
		return nil, err
	}
	refresh, err := s.sign(&user.ID, nil, user.Email, s.refreshTTL)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{
		AccessToken:  access,
		RefreshToken: refresh,
		TokenType:    "Bearer",
		ExpiresIn:    int(s.tokenTTL.Seconds()),
		Account: dto.AccountResponse{
			ID:    user.ID,
			Type:  "user",
			Email: user.Email,
			Name:  user.FirstName + " " + user.LastName,
		},
	}, nil
}

func (s *authService) issueForCenter(center *model.ServiceCenter) (*dto.LoginResponse, error) {
	access, err := s.sign(nil, &center.ID, center.Email, s.tokenTTL)
	if err != nil {
		return nil, err
	}
	refresh, err := s.sign(nil, &center.ID, center.Email, s.refreshTTL)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{
		AccessToken:  access,
		RefreshToken: refresh,
		TokenType:    "Bearer",
		ExpiresIn:    int(s.tokenTTL.Seconds()),
		Account: dto.AccountResponse{
			ID:    center.ID,
			Type:  "service_center",
			Email: center.Email,
			Name:  center.Name,
		},
	}, nil
}

func (s *authService) sign(userID, centerID *uint, email string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := middleware.Claims{
		UserID:          userID,
		ServiceCenterID: centerID,
		Email:           email,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.jwtSecret))
}
