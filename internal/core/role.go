// AngelaMos | 2026
// role.go

package core

import (
	"fmt"
)

// Role is the closed set of caller roles. Every request carries exactly one.
type Role string

const (
	RoleAdmin   Role = "admin"
	RoleCreator Role = "creator"
	RoleReader  Role = "reader"
)

func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RoleAdmin:
		return RoleAdmin, nil
	case RoleCreator:
		return RoleCreator, nil
	case RoleReader:
		return RoleReader, nil
	default:
		return "", fmt.Errorf("parse role %q: %w", s, ErrInvalidInput)
	}
}

func (r Role) Valid() bool {
	_, err := ParseRole(string(r))
	return err == nil
}

func (r Role) String() string {
	return string(r)
}
