package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
)

// Коды завершения команд.
const (
	ExitSuccess      = 0
	ExitFailure      = 1 // операция отклонена (валидация, запись не найдена)
	ExitCommandError = 2 // хранилище недоступно, неверные аргументы
)

// ExitError задает код завершения вместе с ошибкой.
type ExitError struct {
	Code    int
	Message string
	Err     error
}

func (e *ExitError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *ExitError) Unwrap() error {
	return e.Err
}

// WrapExitError оборачивает ошибку с кодом завершения.
func WrapExitError(code int, message string, err error) *ExitError {
	return &ExitError{Code: code, Message: message, Err: err}
}

// GetExitCode извлекает код завершения; по умолчанию ExitFailure.
func GetExitCode(err error) int {
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	return ExitFailure
}

// Response - формат JSON-вывода команд.
type Response struct {
	Status string `json:"status"` // "ok"
	Data   any    `json:"data,omitempty"`
}

// OutputFormatter выводит результат текстом или JSON.
type OutputFormatter struct {
	Format string
	Writer io.Writer
}

// Success выводит данные: в JSON целиком, в тексте - готовую строку text.
func (f *OutputFormatter) Success(text string, data any) error {
	if f.Format == "json" {
		enc := json.NewEncoder(f.Writer)
		enc.SetIndent("", "  ")
		return enc.Encode(Response{Status: "ok", Data: data})
	}
	_, err := io.WriteString(f.Writer, text)
	return err
}
