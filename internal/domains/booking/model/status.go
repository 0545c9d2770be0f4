package model

import (
	"database/sql/driver"
	"fmt"
	"slices"
	"sparkle/shared/failure"
)

type Status string

const (
	StatusPending   Status = "pending"
	StatusAccepted  Status = "accepted"
	StatusDeclined  Status = "declined"
	StatusCancelled Status = "cancelled"
	StatusCompleted Status = "completed"
)

const (
	RoleCustomer = "customer"
	RoleBusiness = "business"
	RoleAdmin    = "admin"
)

var statuses = []Status{StatusPending, StatusAccepted, StatusDeclined, StatusCancelled, StatusCompleted}

// transitions maps each target status to the statuses it can be reached from.
var transitions = map[Status][]Status{
	StatusAccepted:  {StatusPending},
	StatusDeclined:  {StatusPending},
	StatusCompleted: {StatusAccepted},
	StatusCancelled: {StatusPending, StatusAccepted},
}

// actors maps each target status to the roles that may request it.
var actors = map[Status][]string{
	StatusAccepted:  {RoleBusiness, RoleAdmin},
	StatusDeclined:  {RoleBusiness, RoleAdmin},
	StatusCompleted: {RoleBusiness, RoleAdmin},
	StatusCancelled: {RoleCustomer, RoleBusiness, RoleAdmin},
}

func ParseStatus(value string) (Status, error) {
	status := Status(value)
	if !slices.Contains(statuses, status) {
		return "", fmt.Errorf("unknown booking status %q", value)
	}

	return status, nil
}

// Scan rejects values outside the enumeration at the store boundary.
func (s *Status) Scan(src any) error {
	var raw string

	switch v := src.(type) {
	case string:
		raw = v
	case []byte:
		raw = string(v)
	default:
		return fmt.Errorf("cannot scan %T into booking status", src)
	}

	status, err := ParseStatus(raw)
	if err != nil {
		return err
	}

	*s = status

	return nil
}

func (s Status) Value() (driver.Value, error) {
	return string(s), nil
}

func (s Status) String() string {
	return string(s)
}

func CanTransition(from, to Status) bool {
	return slices.Contains(transitions[to], from)
}

// Authorize checks a transition request. An illegal pair is InvalidTransition no
// matter who asks; a legal pair asked by the wrong party is Forbidden.
func Authorize(from, to Status, role string) error {
	if !CanTransition(from, to) {
		return failure.InvalidTransition
	}

	if !slices.Contains(actors[to], role) {
		return failure.Forbidden(fmt.Sprintf("a %s cannot mark a booking %s", role, to))
	}

	return nil
}
