// Package sl содержит вспомогательные функции для работы с логгером slog.
// Основная цель: единообразные поля лога для ошибок и операций.
package sl

import "log/slog"

// Err возвращает slog.Attr с ключом "error" и значением текста ошибки.
//
// Пример:
//
//	log.Error("failed to do something", sl.Err(err))
func Err(err error) slog.Attr {
	if err == nil {
		return slog.String("error", "<nil>")
	}
	return slog.Attr{
		Key:   "error",
		Value: slog.StringValue(err.Error()),
	}
}

// Op возвращает атрибут с именем операции, как принято в логах сервиса.
func Op(op string) slog.Attr {
	return slog.String("op", op)
}
