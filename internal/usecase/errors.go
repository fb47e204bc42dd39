package usecase

import (
	"errors"
	"fmt"
)

type HTTPError struct {
	Status  int
	Message string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("%d: %s", e.Status, e.Message)
}

func NewHTTPError(status int, message string) error {
	return &HTTPError{
		Status:  status,
		Message: message,
	}
}

func AsHTTPError(err error) (*HTTPError, bool) {
	var he *HTTPError
	ok := errors.As(err, &he)
	return he, ok
}

// ValidationError は入力不備。リトライしても直らないのでフォームに返す。
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation: %s: %s", e.Field, e.Message)
}

// PersistenceError はストレージ側の失敗。呼び出し側がリトライを判断する。
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("persistence: %s: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}

// PartialWriteError は注文ヘッダだけ書けて明細が失敗した状態。
// トランザクションでロールバックされるが、成功扱いには絶対にしない。
type PartialWriteError struct {
	PersistenceError
	OrderID int64
}

func (e *PartialWriteError) Error() string {
	return fmt.Sprintf("partial write: order %d: %v", e.OrderID, e.Err)
}

func (e *PartialWriteError) Unwrap() error {
	return &e.PersistenceError
}
