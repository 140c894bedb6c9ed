package auth

import (
	"crypto/subtle"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

var (
	ErrEmptyPassword = errors.New("empty password")
	ErrInvalidCost   = errors.New("bcrypt cost out of range")
	ErrWeakHash      = errors.New("admin password hash is weaker than auth.bcrypt_cost")
)

// HashAdminPassword хеширует пароль для auth.admin_password_hash
func HashAdminPassword(password string, cost int) (string, error) {
	if password == "" {
		return "", ErrEmptyPassword
	}
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		return "", fmt.Errorf("%w: %d", ErrInvalidCost, cost)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", fmt.Errorf("hash admin password: %w", err)
	}
	return string(hashed), nil
}

// Admin учетные данные единственного администратора из конфигурации
type Admin struct {
	username string
	hash     []byte
}

// NewAdmin проверяет хеш из конфигурации. Хеш со сложностью ниже minCost
// отклоняется, его нужно пересоздать через -hash-password.
func NewAdmin(username, hash string, minCost int) (*Admin, error) {
	cost, err := bcrypt.Cost([]byte(hash))
	if err != nil {
		return nil, fmt.Errorf("parse admin password hash: %w", err)
	}
	if cost < minCost {
		return nil, fmt.Errorf("%w: %d < %d", ErrWeakHash, cost, minCost)
	}

	return &Admin{username: username, hash: []byte(hash)}, nil
}

// Username имя администратора
func (a *Admin) Username() string {
	return a.username
}

// Authenticate сверяет имя и пароль. Пароль проверяется всегда, чтобы время
// ответа не зависело от правильности имени.
func (a *Admin) Authenticate(username, password string) bool {
	userOK := subtle.ConstantTimeCompare([]byte(username), []byte(a.username)) == 1
	passOK := bcrypt.CompareHashAndPassword(a.hash, []byte(password)) == nil
	return userOK && passOK
}
