package generate_slots

// Request модель запроса генерации слотов события.
// CompanyID опционально сужает регенерацию до одной активной компании,
// сетки остальных компаний не трогаются.
type Request struct {
	EventID   int64
	CompanyID *int64
}

// Response отчет о генерации.
// Генерация идемпотентна: повторный запуск на неизменных настройках
// ничего не меняет, кроме пересоздания свободных слотов на тех же местах.
type Response struct {
	RangesProcessed    int
	CompaniesProcessed int
	SlotsCreated       int64 // вставлено новых слотов
	SlotsPreserved     int   // слоты с историей бронирований (включая отмененные), оставлены как есть
	SlotsReplaced      int64 // слоты без бронирований, удаленные перед пересозданием
}
