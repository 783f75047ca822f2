// Package model は、図形モデルと座標の値オブジェクトを提供します。
package model

import "errors"

// センチネルエラー - 図形が見つからない場合など
var (
	ErrShapeNotFound = errors.New("shape not found")
	ErrUnknownKind   = errors.New("unknown shape kind")
)

// ValidationError はバリデーションエラーを表す型
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// NewValidationError はValidationErrorを生成するヘルパー関数
func NewValidationError(msg string) error {
	return &ValidationError{Message: msg}
}
