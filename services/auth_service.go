package services

import (
	"errors"
	"fmt"
	"time"

	"carbon-footprint-system/models"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// tokenTTL is how long issued bearer tokens stay valid.
const tokenTTL = 7 * 24 * time.Hour

type AuthService struct {
	DB     *gorm.DB
	Secret []byte
}

func NewAuthService(db *gorm.DB, secret string) *AuthService {
	return &AuthService{DB: db, Secret: []byte(secret)}
}

// AuthResult is returned by Register and Login.
type AuthResult struct {
	Token string       `json:"token"`
	User  *models.User `json:"user"`
}

func (s *AuthService) Register(firstName, lastName, email, password string) (*AuthResult, error) {
	if firstName == "" || lastName == "" || email == "" || password == "" {
		return nil, ErrInvalidInput
	}

	var existing models.User
	err := s.DB.Where("email = ?", email).First(&existing).Error
	if err == nil {
		return nil, ErrEmailTaken
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		ID:           uuid.NewString(),
		FirstName:    firstName,
		LastName:     lastName,
		Email:        email,
		PasswordHash: string(hash),
		UserType:     models.UserTypeIndividual,
	}
	if err := s.DB.Create(user).Error; err != nil {
		return nil, err
	}

	token, err := s.issueToken(user)
	if err != nil {
		return nil, err
	}
	return &AuthResult{Token: token, User: user}, nil
}

func (s *AuthService) Login(email, password string) (*AuthResult, error) {
	if email == "" || password == "" {
		return nil, ErrInvalidInput
	}

	var user models.User
	if err := s.DB.Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	token, err := s.issueToken(&user)
	if err != nil {
		return nil, err
	}
	return &AuthResult{Token: token, User: &user}, nil
}

func (s *AuthService) issueToken(user *models.User) (string, error) {
	claims := jwt.MapClaims{
		"userId": user.ID,
		"email":  user.Email,
		"exp":    time.Now().Add(tokenTTL).Unix(),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.Secret)
}

// ParseToken verifies a bearer token and returns the user id it carries.
func (s *AuthService) ParseToken(tokenString string) (string, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return s.Secret, nil
	})
	if err != nil || !token.Valid {
		return "", ErrInvalidCredentials
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", ErrInvalidCredentials
	}
	userID, _ := claims["userId"].(string)
	if userID == "" {
		return "", ErrInvalidCredentials
	}
	return userID, nil
}

// Profile is the account summary for GET /api/user/profile.
type Profile struct {
	User  *models.User `json:"user"`
	Stats struct {
		TotalActivities  int64 `json:"total_activities"`
		ActiveChallenges int64 `json:"active_challenges"`
	} `json:"stats"`
}

func (s *AuthService) Profile(userID string) (*Profile, error) {
	var user models.User
	if err := s.DB.Where("id = ?", userID).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	p := &Profile{User: &user}
	if err := s.DB.Model(&models.Activity{}).
		Where("user_id = ?", userID).
		Count(&p.Stats.TotalActivities).Error; err != nil {
		return nil, err
	}
	if err := s.DB.Model(&models.ChallengeMembership{}).
		Where("user_id = ? AND status <> ?", userID, models.MembershipCompleted).
		Count(&p.Stats.ActiveChallenges).Error; err != nil {
		return nil, err
	}
	return p, nil
}
