package listingservice

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
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Client клиент для работы с ListingService (объявления об автомобилях)
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        Logger
}

// NewClient создает новый экземпляр клиента ListingService
func NewClient(baseURL string, timeout time.Duration, log Logger) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// GetCar получает объявление об автомобиле по ID
func (c *Client) GetCar(ctx context.Context, carID int64) (*Car, error) {
	url := fmt.Sprintf("%s/internal/cars/%d", c.baseURL, carID)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}

	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to execute request: %v", ErrInternal, err)
	}
	defer resp.Body.Close()

	// Обработка статус-кодов
	switch resp.StatusCode {
	case http.StatusOK:
		// Продолжаем обработку
	case http.StatusNotFound:
		return nil, ErrCarNotFound
	default:
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, string(body))
	}

	var car Car
	if err := json.NewDecoder(resp.Body).Decode(&car); err != nil {
		return nil, fmt.Errorf("%w: failed to decode response: %v", ErrInvalidResponse, err)
	}

	return &car, nil
}

// GetCarWithGracefulDegradation получает автомобиль, но при недоступности ListingService
// возвращает ErrServiceDegraded вместо ошибки сервиса. Используется там, где данные автомобиля
// необязательны (уведомления)
func (c *Client) GetCarWithGracefulDegradation(ctx context.Context, carID int64) (*Car, error) {
	car, err := c.GetCar(ctx, carID)
	if err != nil {
		if errors.Is(err, ErrCarNotFound) {
			c.log.Info("No listing found for car_id=%d", carID)
			return nil, err
		}

		c.log.Error("ListingService unavailable, applying graceful degradation for car_id=%d: %v", carID, err)
		return nil, fmt.Errorf("%w: car_id=%d, error=%v", ErrServiceDegraded, carID, err)
	}

	return car, nil
}
