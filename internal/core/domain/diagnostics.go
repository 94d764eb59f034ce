package domain

// DocumentStoreReport is the result of the document store ping.
type DocumentStoreReport struct {
	Success   bool             `json:"success"`
	Message   string           `json:"message"`
	Seeded    bool             `json:"seeded"`
	Documents []map[string]any `json:"documents"`
}

// OCRReport is the result of the OCR vendor credential check.
type OCRReport struct {
	Success            bool     `json:"success"`
	Message            string   `json:"message"`
	MissingCredentials []string `json:"missingCredentials,omitempty"`
	APIURL             string   `json:"apiUrl"`
	StatusCode         int      `json:"statusCode,omitempty"`
}
