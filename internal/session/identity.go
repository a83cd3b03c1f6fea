package session

import "strings"

// Role роль пользователя
type Role string

const (
	RolePatient Role = "PATIENT"
	RoleDoctor  Role = "DOCTOR"
	RoleAdmin   Role = "ADMIN"
)

// User пользователь, сохраняемый вместе с токеном
// Бэкенд кладёт идентификатор то в userId, то в id
type User struct {
	ID       int64  `json:"id,omitempty"`
	UserID   int64  `json:"userId,omitempty"`
	Role     Role   `json:"role"`
	Phone    string `json:"phone,omitempty"`
	Name     string `json:"name,omitempty"`
	Username string `json:"username,omitempty"`
}

// Identity сохранённая личность: токен и пользователь
type Identity struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

// EffectiveID возвращает userId, если он задан, иначе id
func (u User) EffectiveID() int64 {
	if u.UserID != 0 {
		return u.UserID
	}
	return u.ID
}

// DisplayName имя для предзаполнения форм: name, затем username
func (u User) DisplayName() string {
	if u.Name != "" {
		return u.Name
	}
	return u.Username
}

// IsDoctor true для роли DOCTOR
func (u User) IsDoctor() bool {
	return Role(strings.ToUpper(string(u.Role))) == RoleDoctor
}

// Valid личность пригодна для работы: есть идентификатор пользователя
func (i *Identity) Valid() bool {
	return i != nil && i.User.EffectiveID() != 0
}
