package domain

import "time"

// BookingStatus represents the status of a booking
type BookingStatus string

const (
	StatusConfirmed BookingStatus = "confirmed"
	StatusCancelled BookingStatus = "cancelled"
)

// Booking represents an assignment of one student to one interview slot.
// Запись никогда не удаляется при отмене — только переводится в cancelled.
type Booking struct {
	ID        int64
	SlotID    int64
	StudentID int64
	EventID   int64
	Status    BookingStatus

	// Phase фиксирует фазу на момент создания и не меняется при
	// последующих переходах события
	Phase Phase

	Notes              *string
	CancellationReason *string
	CancelledBy        *int64
	CancelledAt        *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsConfirmed returns true if the booking counts toward capacity and limits
func (b *Booking) IsConfirmed() bool {
	return b.Status == StatusConfirmed
}

// IsCancelled returns true if the booking has been cancelled
func (b *Booking) IsCancelled() bool {
	return b.Status == StatusCancelled
}

// BookedInterval a confirmed booking's slot interval, used for conflict checks
type BookedInterval struct {
	BookingID int64
	SlotID    int64
	Start     time.Time
	End       time.Time
}

// CompanyBookingsFilter фильтр для получения бронирований компании
type CompanyBookingsFilter struct {
	EventID         int64
	CompanyID       int64
	Status          *BookingStatus // опционально
	IncludeInactive bool           // включать ли отмененные бронирования
}
