package bookings

import (
	"context"
	"errors"
	"fmt"

	"github.com/avykhr/CareerDay-BookingService/internal/domain"
	bookingRepo "github.com/avykhr/CareerDay-BookingService/internal/infra/storage/booking"
	slotRepo "github.com/avykhr/CareerDay-BookingService/internal/infra/storage/slot"
	"github.com/avykhr/CareerDay-BookingService/internal/service/bookings/models"
)

// Service сервис для работы с бронированиями
type Service struct {
	bookingRepo   BookingRepository
	slotRepo      SlotRepository
	studentClient StudentServiceClient
	logger        Logger
}

// NewService создает новый экземпляр сервиса бронирований
// studentClient может быть nil, если обогащение профилями отключено
func NewService(
	bookingRepo BookingRepository,
	slotRepo SlotRepository,
	studentClient StudentServiceClient,
	logger Logger,
) *Service {
	return &Service{
		bookingRepo:   bookingRepo,
		slotRepo:      slotRepo,
		studentClient: studentClient,
		logger:        logger,
	}
}

// GetByID получает бронирование по ID
// Студент видит только свое бронирование, администратор — любое
func (s *Service) GetByID(ctx context.Context, id int64, requesterID int64, isAdmin bool) (*models.BookingResponse, error) {
	s.logger.Info("GetByID: fetching booking id=%d for student=%d", id, requesterID)

	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("GetByID: booking id=%d not found", id)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("GetByID: repository error for booking id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	if !isAdmin && booking.StudentID != requesterID {
		s.logger.Warn("GetByID: access denied for student=%d to booking id=%d", requesterID, id)
		return nil, ErrAccessDenied
	}

	return s.toResponse(ctx, booking, false), nil
}

// GetStudentBookings получает историю бронирований студента
// Опционально фильтрует по статусу
func (s *Service) GetStudentBookings(ctx context.Context, req *models.GetStudentBookingsRequest) (*models.BookingListResponse, error) {
	s.logger.Info("GetStudentBookings: fetching bookings for student=%d, status=%v", req.StudentID, req.Status)

	var domainStatus *domain.BookingStatus
	if req.Status != nil {
		status, err := models.ToDomainBookingStatus(*req.Status)
		if err != nil {
			s.logger.Warn("GetStudentBookings: invalid status=%s for student=%d", *req.Status, req.StudentID)
			return nil, fmt.Errorf("%w: invalid status", ErrInvalidInput)
		}
		domainStatus = &status
	}

	bookings, err := s.bookingRepo.GetByStudent(ctx, req.StudentID, domainStatus)
	if err != nil {
		s.logger.Error("GetStudentBookings: repository error for student=%d: %v", req.StudentID, err)
		return nil, fmt.Errorf("%w: GetStudentBookings - repository error: %v", ErrInternal, err)
	}

	resp := &models.BookingListResponse{Bookings: make([]models.BookingResponse, 0, len(bookings))}
	for _, b := range bookings {
		resp.Bookings = append(resp.Bookings, *s.toResponse(ctx, b, false))
	}

	s.logger.Info("GetStudentBookings: successfully fetched %d bookings for student=%d", len(bookings), req.StudentID)
	return resp, nil
}

// GetCompanyBookings получает расписание интервью компании на событии.
// По умолчанию только подтвержденные; IncludeInactive добавляет отмененные.
// Ответ обогащается профилями студентов из StudentService (best-effort).
func (s *Service) GetCompanyBookings(ctx context.Context, req *models.GetCompanyBookingsRequest) (*models.BookingListResponse, error) {
	s.logger.Info("GetCompanyBookings: fetching bookings for event=%d, company=%d", req.EventID, req.CompanyID)

	filter, err := req.ToDomainFilter()
	if err != nil {
		s.logger.Warn("GetCompanyBookings: invalid filter for company=%d: %v", req.CompanyID, err)
		return nil, fmt.Errorf("%w: invalid filter", ErrInvalidInput)
	}

	bookings, err := s.bookingRepo.GetByCompanyWithFilter(ctx, filter)
	if err != nil {
		s.logger.Error("GetCompanyBookings: repository error for company=%d: %v", req.CompanyID, err)
		return nil, fmt.Errorf("%w: GetCompanyBookings - repository error: %v", ErrInternal, err)
	}

	resp := &models.BookingListResponse{Bookings: make([]models.BookingResponse, 0, len(bookings))}
	for _, b := range bookings {
		resp.Bookings = append(resp.Bookings, *s.toResponse(ctx, b, true))
	}

	s.logger.Info("GetCompanyBookings: successfully fetched %d bookings for company=%d", len(bookings), req.CompanyID)
	return resp, nil
}

// Cancel отменяет бронирование.
// Студент может отменить только свое бронирование, администратор — любое.
// Отмена уже отмененного бронирования — no-op успех: повторная доставка
// запроса не должна превращаться в ошибку.
func (s *Service) Cancel(ctx context.Context, bookingID int64, req *models.CancelBookingRequest) error {
	s.logger.Info("Cancel: cancelling booking id=%d by actor=%d", bookingID, req.ActorID)

	booking, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("Cancel: booking id=%d not found", bookingID)
			return ErrBookingNotFound
		}
		s.logger.Error("Cancel: repository error for booking id=%d: %v", bookingID, err)
		return fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
	}

	if !req.IsAdmin && booking.StudentID != req.ActorID {
		s.logger.Warn("Cancel: access denied for actor=%d to booking id=%d", req.ActorID, bookingID)
		return ErrAccessDenied
	}

	if err := s.bookingRepo.Cancel(ctx, bookingID, req.ActorID, req.CancellationReason); err != nil {
		if errors.Is(err, bookingRepo.ErrAlreadyCancelled) {
			s.logger.Info("Cancel: booking id=%d already cancelled, treating as success", bookingID)
			return nil
		}
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			return ErrBookingNotFound
		}
		s.logger.Error("Cancel: repository error for booking id=%d: %v", bookingID, err)
		return fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Cancel: successfully cancelled booking id=%d", bookingID)
	return nil
}

// Вспомогательные методы

// toResponse собирает DTO бронирования: времена берутся со слота,
// профиль студента — из StudentService, если обогащение запрошено.
// Отказ любого обогащения не роняет ответ.
func (s *Service) toResponse(ctx context.Context, b *domain.Booking, enrichProfile bool) *models.BookingResponse {
	var slot *domain.Slot

	slot, err := s.slotRepo.GetByID(ctx, b.SlotID)
	if err != nil {
		if !errors.Is(err, slotRepo.ErrSlotNotFound) {
			s.logger.Error("toResponse: failed to get slot id=%d: %v", b.SlotID, err)
		}
		slot = nil
	}

	resp := models.FromDomainBooking(b, slot)

	if enrichProfile && s.studentClient != nil {
		profile, err := s.studentClient.GetProfileWithGracefulDegradation(ctx, b.StudentID)
		if err == nil && profile != nil {
			resp.StudentName = &profile.FullName
			resp.StudentEmail = &profile.Email
		}
	}

	return resp
}
