package dto

type HealthResponse struct {
	Status string           `json:"status"`
	Api    string           `json:"api"`
	Rag    *SubsystemHealth `json:"rag,omitempty"`
	Upload *SubsystemHealth `json:"upload,omitempty"`
}

type SubsystemHealth struct {
	Status        string `json:"status"`
	Message       string `json:"message"`
	DocumentCount int64  `json:"document_count,omitempty"`
}
