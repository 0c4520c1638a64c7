package repository

import "context"

// TxManager выполняет функцию внутри одной атомарной единицы работы.
// Ошибка из fn откатывает все записи, сделанные внутри (all-or-nothing
// для многошаговых операций вроде создания курса).
type TxManager interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context) error) error
}
