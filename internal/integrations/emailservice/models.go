package emailservice

// Message письмо для отправки
type Message struct {
	To      string `json:"to"`
	From    string `json:"from"`
	Subject string `json:"subject"`
	Text    string `json:"text"`
}

// sendResponse ответ провайдера на отправку
type sendResponse struct {
	ID string `json:"id"`
}
