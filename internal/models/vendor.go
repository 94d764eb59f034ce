package models

// VendorSchemaVersion is the schema version written for new vendor documents.
const VendorSchemaVersion = 1

// Vendor is the JSON body of a vendor document.
type Vendor struct {
	Name     string `json:"name"`
	Address  string `json:"address,omitempty"`
	Phone    string `json:"phone,omitempty"`
	Email    string `json:"email,omitempty"`
	Category string `json:"category,omitempty"`
	Notes    string `json:"notes,omitempty"`
}

// AppSettings is the JSON body of the settings document.
type AppSettings struct {
	LogoURL *string `json:"logoUrl"`
}

// PublicData is the JSON body of a diagnostics document.
type PublicData struct {
	Message   string `json:"message"`
	Timestamp string `json:"timestamp"`
}
