// Package pgerr классифицирует ошибки PostgreSQL по SQLSTATE кодам lib/pq.
package pgerr

import (
	"errors"

	"github.com/lib/pq"
)

const (
	codeUniqueViolation     = "23505"
	codeForeignKeyViolation = "23503"
	codeCheckViolation      = "23514"
)

// IsUniqueViolation true для нарушения уникального индекса.
// Если constraint не пустой, проверяется и имя ограничения.
func IsUniqueViolation(err error, constraint string) bool {
	return is(err, codeUniqueViolation, constraint)
}

// IsForeignKeyViolation true для нарушения внешнего ключа
func IsForeignKeyViolation(err error) bool {
	return is(err, codeForeignKeyViolation, "")
}

// IsCheckViolation true для нарушения CHECK ограничения
func IsCheckViolation(err error) bool {
	return is(err, codeCheckViolation, "")
}

func is(err error, code pq.ErrorCode, constraint string) bool {
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) {
		return false
	}
	if pqErr.Code != code {
		return false
	}
	return constraint == "" || pqErr.Constraint == constraint
}
