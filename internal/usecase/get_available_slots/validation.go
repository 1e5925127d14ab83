package get_available_slots

import "fmt"

// validateRequest проверяет корректность запроса
func validateRequest(req *Request) error {
	if req == nil {
		return fmt.Errorf("%w: request is nil", ErrInvalidInput)
	}

	if req.OfferID != nil {
		if *req.OfferID <= 0 {
			return fmt.Errorf("%w: offer_id must be positive", ErrInvalidInput)
		}
		return nil
	}

	if req.EventID <= 0 {
		return fmt.Errorf("%w: event_id must be positive", ErrInvalidInput)
	}

	if req.CompanyID <= 0 {
		return fmt.Errorf("%w: company_id must be positive", ErrInvalidInput)
	}

	return nil
}
