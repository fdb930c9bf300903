package interfaces

// LogField представляет дополнительное поле в логе
type LogField struct {
	Key   string
	Value interface{}
}

// LoggerPort определяет интерфейс для системы логирования
// Реализация может использовать любую библиотеку логирования (Zap, Logrus, Zerolog и т.д.)
type LoggerPort interface {
	// Debug логирует сообщение с уровнем Debug
	Debug(msg string, args ...interface{})

	// Info логирует сообщение с уровнем Info
	Info(msg string, args ...interface{})

	// Warn логирует сообщение с уровнем Warn
	Warn(msg string, args ...interface{})

	// Error логирует сообщение с уровнем Error
	Error(msg string, args ...interface{})

	// Fatal логирует сообщение с уровнем Fatal и завершает программу
	Fatal(msg string, args ...interface{})

	// WithField возвращает новый логгер с добавленным полем
	WithField(key string, value interface{}) LoggerPort

	// WithFields возвращает новый логгер с добавленными полями
	WithFields(fields ...LogField) LoggerPort

	// WithCompany возвращает новый логгер с идентификаторами компании и маркетплейса
	WithCompany(companyID, marketplaceID int64) LoggerPort

	// Sync синхронизирует записи буфера с хранилищем логов
	Sync() error
}
