package repository

import "errors"

// ErrNotFound возвращается, если запись с указанным ID отсутствует.
var ErrNotFound = errors.New("запись не найдена")
