package listingservice

import "fmt"

// Car модель объявления об автомобиле из ListingService
type Car struct {
	ID          int64   `json:"id"`
	SellerID    string  `json:"seller_id"`
	Make        string  `json:"make"`
	Model       string  `json:"model"`
	Year        int     `json:"year"`
	Price       float64 `json:"price"`
	Location    string  `json:"location"`
	Status      string  `json:"status"`
	SellerEmail *string `json:"seller_email,omitempty"`
	SellerPhone *string `json:"seller_phone,omitempty"`
}

// Title краткое название автомобиля для уведомлений
func (c *Car) Title() string {
	if c.Year > 0 {
		return fmt.Sprintf("%d %s %s", c.Year, c.Make, c.Model)
	}
	return c.Make + " " + c.Model
}

// ErrorResponse модель ошибки от ListingService
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}
