package domain

// Vendor is a payee that expenses can be attributed to.
// The relationship is informational; expenses may carry a vendor name without a vendor record.
type Vendor struct {
	ID       string `json:"id"`
	UserID   string `json:"userId"`
	Name     string `json:"name"`
	Address  string `json:"address,omitempty"`
	Phone    string `json:"phone,omitempty"`
	Email    string `json:"email,omitempty"`
	Category string `json:"category,omitempty"`
	Notes    string `json:"notes,omitempty"`
	AuditFields
}

// Payee is the deprecated name for Vendor.
type Payee = Vendor

// MaxVendorsPerUser caps a vendor listing.
const MaxVendorsPerUser = 1000
