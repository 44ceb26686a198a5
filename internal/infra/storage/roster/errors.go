package roster

import "errors"

var (
	// ErrRosterExists возвращается, когда расписание на этот период уже записано
	// другим запуском (single-writer на пару shop/start_date)
	ErrRosterExists = errors.New("roster for this shop and period already exists")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("roster repository: build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("roster repository: execute query")

	// ErrScanRow возвращается при ошибке чтения строки результата
	ErrScanRow = errors.New("roster repository: scan row")
)
