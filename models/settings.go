package models

// SiteSettings is the singleton row of storefront settings editable from
// the back office.
type SiteSettings struct {
	StoreHours                  string  `json:"store_hours"`
	PickupAddress               string  `json:"pickup_address"`
	ETransferEmail              string  `json:"etransfer_email"`
	RegistrationDiscountPercent float64 `json:"registration_discount_percent"`
}

// HeroContent is the singleton hero section of the storefront home page.
type HeroContent struct {
	Heading    string `json:"heading"`
	Subheading string `json:"subheading"`
	Image      string `json:"image"`
	CTAText    string `json:"cta_text"`
	CTALink    string `json:"cta_link"`
}
