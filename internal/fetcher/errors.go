package fetcher

import (
	"errors"
	"fmt"
)

// errUnexpectedBody - API вернул тело там, где его не ждали
var errUnexpectedBody = errors.New("непустой ответ без описания структуры")

// ErrorKind классифицирует ошибку обращения к API
type ErrorKind int

const (
	// KindAccessDenied - ключ доступа отвергнут, повторы бессмысленны
	KindAccessDenied ErrorKind = iota
	// KindClient - ошибка в самом запросе, повтор даст тот же результат
	KindClient
	// KindAttemptsExceeded - лимит повторов исчерпан
	KindAttemptsExceeded
	// KindSchema - ответ получен, но не соответствует ожидаемой структуре
	KindSchema
	// KindOrchestration - сбой самого конвейера запросов, а не API
	KindOrchestration
)

func (k ErrorKind) String() string {
	switch k {
	case KindAccessDenied:
		return "access_denied"
	case KindClient:
		return "client"
	case KindAttemptsExceeded:
		return "attempts_exceeded"
	case KindSchema:
		return "schema"
	case KindOrchestration:
		return "orchestration"
	}
	return "unknown"
}

// Error - классифицированная ошибка запроса к API Wildberries
type Error struct {
	Kind       ErrorKind
	StatusCode int
	URL        string
	Err        error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s [%d]: %v", e.Kind, e.URL, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("%s: %s [%d]", e.Kind, e.URL, e.StatusCode)
}

func (e *Error) Unwrap() error { return e.Err }

// IsAccessDenied сообщает, вызвана ли ошибка отзывом ключа доступа
func IsAccessDenied(err error) bool {
	fe, ok := err.(*Error)
	return ok && fe.Kind == KindAccessDenied
}
