package user

import (
	"fmt"
	"time"
)

// Role is a closed set; anything else coming out of the store is a data bug.
type Role string

const (
	RoleAdmin   Role = "ADMIN"
	RoleOps     Role = "OPS"
	RoleGeneral Role = "GENERAL"
)

func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RoleAdmin, RoleOps, RoleGeneral:
		return Role(s), nil
	}

	return "", fmt.Errorf("unknown role %q", s)
}

func (r Role) Valid() bool {
	_, err := ParseRole(string(r))

	return err == nil
}

type User struct {
	ID           string     `json:"id"`
	Email        string     `json:"email"`
	PasswordHash string     `json:"-"` // never expose hash in JSON
	FirstName    *string    `json:"firstName"`
	LastName     *string    `json:"lastName"`
	DisplayName  *string    `json:"displayName"`
	PhoneNumber  *string    `json:"phoneNumber"`
	DateOfBirth  *string    `json:"dateOfBirth"`
	Gender       *string    `json:"gender"`
	Role         Role       `json:"role"`
	IsSuperUser  bool       `json:"isSuperUser"`
	CreatedAt    time.Time  `json:"createdAt"`
	UpdatedAt    *time.Time `json:"updatedAt"` // nil until the first mutation
}

// Public is the projection returned to any authenticated caller.
// A separate struct so the hash cannot leak through encoding, whatever
// tags future fields carry.
type Public struct {
	ID          string     `json:"id"`
	Email       string     `json:"email"`
	FirstName   *string    `json:"firstName"`
	LastName    *string    `json:"lastName"`
	DisplayName *string    `json:"displayName"`
	PhoneNumber *string    `json:"phoneNumber"`
	DateOfBirth *string    `json:"dateOfBirth"`
	Gender      *string    `json:"gender"`
	Role        Role       `json:"role"`
	IsSuperUser bool       `json:"isSuperUser"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   *time.Time `json:"updatedAt"`
}

func (u User) PublicView() Public {
	return Public{
		ID:          u.ID,
		Email:       u.Email,
		FirstName:   u.FirstName,
		LastName:    u.LastName,
		DisplayName: u.DisplayName,
		PhoneNumber: u.PhoneNumber,
		DateOfBirth: u.DateOfBirth,
		Gender:      u.Gender,
		Role:        u.Role,
		IsSuperUser: u.IsSuperUser,
		CreatedAt:   u.CreatedAt,
		UpdatedAt:   u.UpdatedAt,
	}
}

// LoginView is the slimmer shape embedded in the login response.
type LoginView struct {
	ID          string  `json:"id"`
	Email       string  `json:"email"`
	Role        Role    `json:"role"`
	IsSuperUser bool    `json:"isSuperUser"`
	FirstName   *string `json:"firstName"`
	LastName    *string `json:"lastName"`
}

func (u User) LoginViewOf() LoginView {
	return LoginView{
		ID:          u.ID,
		Email:       u.Email,
		Role:        u.Role,
		IsSuperUser: u.IsSuperUser,
		FirstName:   u.FirstName,
		LastName:    u.LastName,
	}
}
