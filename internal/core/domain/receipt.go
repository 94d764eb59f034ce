package domain

// Receipt upload sources.
const (
	ReceiptSourceWeb    = "web"
	ReceiptSourceMobile = "mobile"
)

// UnknownVendorName is substituted when the OCR vendor cannot read a merchant name.
const UnknownVendorName = "Unknown Vendor"

// MaxReceiptFileSize is the largest receipt upload accepted, in bytes.
const MaxReceiptFileSize = 10 * 1024 * 1024

// Warnings attached to a receipt when fields had to be defaulted.
const (
	WarningVendorMissing = "Vendor name could not be detected. Please enter it manually."
	WarningDateMissing   = "Receipt date could not be detected. Today's date has been used as default."
	WarningItemsMissing  = "Line items could not be detected. You may need to enter them manually."
)

// ReceiptVendor is the merchant block of an extracted receipt.
type ReceiptVendor struct {
	Name        string `json:"name"`
	Address     string `json:"address"`
	PhoneNumber string `json:"phone_number,omitempty"`
}

// ReceiptItem is a line item read from a receipt.
type ReceiptItem struct {
	Description string   `json:"description"`
	Quantity    *float64 `json:"quantity,omitempty"`
	UnitPrice   *float64 `json:"unit_price,omitempty"`
	Total       *float64 `json:"total,omitempty"`
}

// ReceiptData is the shaped result of one OCR extraction. It is never persisted.
type ReceiptData struct {
	ID            string        `json:"id"`
	UserID        string        `json:"userId,omitempty"`
	Vendor        ReceiptVendor `json:"vendor"`
	Date          string        `json:"date"`
	Total         float64       `json:"total"`
	Subtotal      *float64      `json:"subtotal,omitempty"`
	Tax           *float64      `json:"tax,omitempty"`
	Tip           *float64      `json:"tip,omitempty"`
	Currency      string        `json:"currency"`
	PaymentMethod string        `json:"payment_method,omitempty"`
	Items         []ReceiptItem `json:"items"`
	Category      string        `json:"category,omitempty"`
	Notes         string        `json:"notes"`
	OCRText       string        `json:"ocr_text,omitempty"`
	ReceiptURL    string        `json:"receipt_url,omitempty"`
	Source        string        `json:"source"`
	Warnings      []string      `json:"warnings"`
}

// ReceiptUpload is a file handed in for OCR.
type ReceiptUpload struct {
	FileName    string
	ContentType string
	Size        int64
	Content     []byte
	UserID      string
}

// IsPDF reports whether the upload is a PDF document.
func (u ReceiptUpload) IsPDF() bool {
	return u.ContentType == "application/pdf"
}
