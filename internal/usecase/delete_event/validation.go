package delete_event

import "fmt"

// validateRequest проверяет корректность запроса удаления
func validateRequest(req *Request) error {
	if req == nil {
		return fmt.Errorf("%w: request is nil", ErrInvalidInput)
	}

	if req.EventID <= 0 {
		return fmt.Errorf("%w: event_id must be positive", ErrInvalidInput)
	}

	return nil
}
