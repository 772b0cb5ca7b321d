package availability

import "errors"

var (
	// ErrInternal возвращается при ошибке подсчета бронирований
	ErrInternal = errors.New("availability: internal error")
)
