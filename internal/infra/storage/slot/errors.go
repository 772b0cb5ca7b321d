package slot

import "errors"

var (
	// ErrSlotNotFound возвращается, когда слот не найден или удален
	ErrSlotNotFound = errors.New("slot.repository: slot not found")

	// ErrNotInTransaction возвращается при попытке взять блокировку вне транзакции
	ErrNotInTransaction = errors.New("slot.repository: row lock requires a transaction")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("slot.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("slot.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("slot.repository: failed to scan row")
)
