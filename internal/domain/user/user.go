package user

import (
	"encoding/json"
	"errors"
	"sort"
	"strings"
)

const (
	RoleAdmin = "ADMIN"
	RoleUser  = "USER"
)

type User struct {
	ID           int64  `json:"id"`
	Login        string `json:"login"`
	PasswordHash string `json:"-"` // never expose hash in JSON
	Name         string `json:"nome"`
	Email        string `json:"email"`
	Roles        Roles  `json:"roles"`
}

var (
	ErrNotFound   = errors.New("user not found")
	ErrLoginTaken = errors.New("login already in use")
)

type RegisterRequest struct {
	Name     string `json:"nome" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Login    string `json:"login" validate:"required"`
	Password string `json:"senha" validate:"required"`
}

type LoginRequest struct {
	Login    string `json:"login" validate:"required"`
	Password string `json:"senha" validate:"required"`
}

// Roles is a set of role names. Storage keeps it as one delimited string.
type Roles map[string]struct{}

func NewRoles(names ...string) Roles {
	r := make(Roles, len(names))
	for _, n := range names {
		n = strings.TrimSpace(n)
		if n != "" {
			r[n] = struct{}{}
		}
	}
	return r
}

// ParseRoles splits raw on delim. Blank entries are dropped, so "" yields an empty set.
func ParseRoles(raw, delim string) Roles {
	if strings.TrimSpace(raw) == "" {
		return Roles{}
	}
	return NewRoles(strings.Split(raw, delim)...)
}

func (r Roles) Has(role string) bool {
	_, ok := r[role]
	return ok
}

func (r Roles) Slice() []string {
	out := make([]string, 0, len(r))
	for n := range r {
		out = append(out, n)
	}
	sort.Strings(out)
	return out
}

func (r Roles) String(delim string) string {
	return strings.Join(r.Slice(), delim)
}

func (r Roles) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.Slice())
}

func (r *Roles) UnmarshalJSON(b []byte) error {
	var names []string
	if err := json.Unmarshal(b, &names); err != nil {
		return err
	}
	*r = NewRoles(names...)
	return nil
}
