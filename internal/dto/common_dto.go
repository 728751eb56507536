package dto

import (
	"bytes"
	"encoding/json"
	"time"
)

// IDParam 路径ID参数
type IDParam struct {
	ID int64 `uri:"id" binding:"required,min=1"`
}

// MemberParam 路径 /projects/:id/members/:user_id
type MemberParam struct {
	ID     int64 `uri:"id" binding:"required,min=1"`
	UserID int64 `uri:"user_id" binding:"required,min=1"`
}

// Optional 区分 未提供 / 显式null / 具体值，用于部分更新
type Optional[T any] struct {
	Set   bool
	Null  bool
	Value T
}

// Some 构造已赋值的 Optional
func Some[T any](v T) Optional[T] {
	return Optional[T]{Set: true, Value: v}
}

// Null 构造显式 null 的 Optional
func Null[T any]() Optional[T] {
	return Optional[T]{Set: true, Null: true}
}

func (o *Optional[T]) UnmarshalJSON(data []byte) error {
	o.Set = true
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		var zero T
		o.Null = true
		o.Value = zero
		return nil
	}
	o.Null = false
	return json.Unmarshal(data, &o.Value)
}

func (o Optional[T]) MarshalJSON() ([]byte, error) {
	if !o.Set || o.Null {
		return []byte("null"), nil
	}
	return json.Marshal(o.Value)
}

// formatTime 统一的时间输出格式
func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}
