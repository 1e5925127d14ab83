package studentservice

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Client клиент для работы со StudentService
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        Logger
}

// NewClient создает новый экземпляр клиента StudentService
func NewClient(baseURL string, timeout time.Duration, log Logger) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// GetProfile получает профиль студента
func (c *Client) GetProfile(ctx context.Context, studentID int64) (*Profile, error) {
	url := fmt.Sprintf("%s/internal/students/%d", c.baseURL, studentID)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}

	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to execute request: %v", ErrInternal, err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		// Продолжаем обработку
	case http.StatusBadRequest:
		return nil, fmt.Errorf("%w: invalid student ID format", ErrInvalidResponse)
	case http.StatusNotFound:
		return nil, ErrStudentNotFound
	default:
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, string(body))
	}

	var profile Profile
	if err := json.NewDecoder(resp.Body).Decode(&profile); err != nil {
		return nil, fmt.Errorf("%w: failed to decode response: %v", ErrInvalidResponse, err)
	}

	return &profile, nil
}

// GetProfileWithGracefulDegradation получает профиль студента с graceful
// degradation: при недоступности StudentService возвращает ErrServiceDegraded,
// и вызывающая сторона отдает ответ без обогащения профилем.
func (c *Client) GetProfileWithGracefulDegradation(ctx context.Context, studentID int64) (*Profile, error) {
	profile, err := c.GetProfile(ctx, studentID)
	if err != nil {
		// Отсутствие профиля — бизнес-факт, пробрасываем как есть
		if errors.Is(err, ErrStudentNotFound) {
			c.log.Info("No profile found for student_id=%d", studentID)
			return nil, err
		}

		// Недоступность сервиса, timeout, ошибки парсинга: деградируем
		c.log.Error("StudentService unavailable, applying graceful degradation for student_id=%d: %v", studentID, err)
		return nil, fmt.Errorf("%w: student_id=%d, error=%v", ErrServiceDegraded, studentID, err)
	}

	return profile, nil
}
