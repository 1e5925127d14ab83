package delete_event

// Request модель запроса удаления события
type Request struct {
	EventID int64
}

// Response отчет об удалении события и связанных данных
type Response struct {
	BookingsDeleted     int64
	SlotsDeleted        int64
	TimeRangesDeleted   int64
	ParticipantsDeleted int64
}
