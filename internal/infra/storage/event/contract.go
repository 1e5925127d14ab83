package event

import "github.com/avykhr/CareerDay-BookingService/pkg/txmanager"

// DBExecutor интерфейс для выполнения запросов (*sql.DB или транзакция)
type DBExecutor = txmanager.DBExecutor
