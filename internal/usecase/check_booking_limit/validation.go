package check_booking_limit

import "fmt"

// validateRequest проверяет корректность запроса
func validateRequest(req *Request) error {
	if req == nil {
		return fmt.Errorf("%w: request is nil", ErrInvalidInput)
	}

	if req.StudentID <= 0 {
		return fmt.Errorf("%w: student_id must be positive", ErrInvalidInput)
	}

	if req.EventID <= 0 {
		return fmt.Errorf("%w: event_id must be positive", ErrInvalidInput)
	}

	return nil
}
