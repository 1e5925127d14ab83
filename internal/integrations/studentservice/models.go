package studentservice

// Profile профиль студента из StudentService
type Profile struct {
	ID                 int64   `json:"id"`
	FullName           string  `json:"full_name"`
	Email              string  `json:"email"`
	University         *string `json:"university,omitempty"`
	GraduationYear     *int    `json:"graduation_year,omitempty"`
	InternshipAccepted bool    `json:"internship_accepted"`
}

// ErrorResponse модель ошибки от StudentService
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}
