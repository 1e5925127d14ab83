package generate_slots

import (
	usecase "github.com/avykhr/CareerDay-BookingService/internal/usecase/generate_slots"
)

// GenerateSlotsResponse отчет о генерации слотов
type GenerateSlotsResponse struct {
	RangesProcessed    int   `json:"rangesProcessed"`
	CompaniesProcessed int   `json:"companiesProcessed"`
	SlotsCreated       int64 `json:"slotsCreated"`
	SlotsPreserved     int   `json:"slotsPreserved"`
	SlotsReplaced      int64 `json:"slotsReplaced"`
}

// FromUseCaseResponse конвертирует ответ usecase в API модель
func FromUseCaseResponse(resp *usecase.Response) *GenerateSlotsResponse {
	return &GenerateSlotsResponse{
		RangesProcessed:    resp.RangesProcessed,
		CompaniesProcessed: resp.CompaniesProcessed,
		SlotsCreated:       resp.SlotsCreated,
		SlotsPreserved:     resp.SlotsPreserved,
		SlotsReplaced:      resp.SlotsReplaced,
	}
}
