package sqlalias

import (
	"errors"
	"fmt"
)

var (
	ErrUnknownStrategy  = errors.New("unknown alias strategy")
	ErrInvalidJoinInput = errors.New("joins list should only contain *StringJoin or *TableJoin")
	ErrNoReflection     = errors.New("a reflection is required to alias a table")
)

// Error is returned when running a rendered query failed
type Error struct {
	Query string
	Err   error
}

func (e *Error) Unwrap() error {
	return e.Err
}

func (e *Error) Error() string {
	return fmt.Sprintf("While running %s: %s", e.Query, e.Err)
}

// UnknownStrategyError is returned when the configured strategy name does not match a strategy
type UnknownStrategyError struct {
	Name string
}

func (e *UnknownStrategyError) Error() string {
	return fmt.Sprintf("%s: %q", ErrUnknownStrategy, e.Name)
}

func (e *UnknownStrategyError) Unwrap() error {
	return ErrUnknownStrategy
}

// InvalidJoinInputError identifies a join fragment that could not be counted
type InvalidJoinInputError struct {
	Index int
	Join  JoinFragment
}

func (e *InvalidJoinInputError) Error() string {
	return fmt.Sprintf("%s: join #%d is %T", ErrInvalidJoinInput, e.Index, e.Join)
}

func (e *InvalidJoinInputError) Unwrap() error {
	return ErrInvalidJoinInput
}
