package service

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"itinerary/internal/repository"
)

var (
	// ErrValidation означает, что обязательное поле не заполнено или имеет неверный формат.
	// Такие ошибки возникают до обращения к хранилищу.
	ErrValidation = errors.New("ошибка валидации")
	// ErrStoreUnavailable означает, что обращение к хранилищу завершилось ошибкой.
	ErrStoreUnavailable = errors.New("хранилище недоступно")
	// ErrNotFound означает, что запись с указанным ID отсутствует.
	// Такая ошибка также считается ErrStoreUnavailable.
	ErrNotFound = errors.New("запись не найдена")
)

// ValidationError перечисляет ошибки по полям формы.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+e.Fields[k])
	}
	return "ошибка валидации: " + strings.Join(parts, "; ")
}

// Is позволяет проверять ошибку через errors.Is(err, ErrValidation).
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// StoreError описывает неудачное обращение к хранилищу.
type StoreError struct {
	Op  string
	Err error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *StoreError) Unwrap() error { return e.Err }

// Is относит любую ошибку хранилища к ErrStoreUnavailable,
// а отсутствие записи дополнительно к ErrNotFound.
func (e *StoreError) Is(target error) bool {
	switch target {
	case ErrStoreUnavailable:
		return true
	case ErrNotFound:
		return errors.Is(e.Err, repository.ErrNotFound)
	}
	return false
}

func storeError(op string, err error) error {
	return &StoreError{Op: op, Err: err}
}
