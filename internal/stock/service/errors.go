package service

import (
	"errors"
	"fmt"
)

// 服务层错误类型，handler 用 errors.Is 映射响应码
var (
	ErrNotFound          = errors.New("记录不存在")
	ErrValidation        = errors.New("参数无效")
	ErrInsufficientStock = errors.New("库存不足")
)

// CascadeError 级联扣减失败记录。只收集、只打日志，
// 主台账已落库，不做补偿回滚，也不影响主操作的返回。
type CascadeError struct {
	Kind string // material / formula
	Key  string // 名称或ID
	Err  error
}

func (e *CascadeError) Error() string {
	return fmt.Sprintf("cascade %s %s: %v", e.Kind, e.Key, e.Err)
}

func (e *CascadeError) Unwrap() error {
	return e.Err
}

// CascadeMessages 级联错误文案列表，放进响应里返回给调用方
func CascadeMessages(fails []CascadeError) []string {
	if len(fails) == 0 {
		return nil
	}
	msgs := make([]string, 0, len(fails))
	for i := range fails {
		msgs = append(msgs, fails[i].Error())
	}
	return msgs
}
