package errors

import (
	"errors"

	"gorm.io/gorm"
)

// ErrStoreUnavailable 存储层瞬时故障：调用方可退避重试
var ErrStoreUnavailable = errors.New("存储服务暂不可用，请稍后重试")

// IsDuplicateKey 判断是否为唯一约束冲突
// 依赖 gorm.Config.TranslateError 将驱动层 23505 翻译为 gorm.ErrDuplicatedKey
func IsDuplicateKey(err error) bool {
	return errors.Is(err, gorm.ErrDuplicatedKey)
}

// IsNotFound 判断是否为记录不存在
func IsNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}

// AsStoreUnavailable 将非业务性的存储错误归一为 ErrStoreUnavailable
// 唯一约束冲突与记录不存在属于业务语义，由调用方先行识别
func AsStoreUnavailable(err error) error {
	if err == nil {
		return nil
	}
	if IsDuplicateKey(err) || IsNotFound(err) {
		return err
	}
	return errors.Join(ErrStoreUnavailable, err)
}
