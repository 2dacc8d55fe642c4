package domain

import "strings"

// Companion holds one person's intake details. The payer-override data exists
// under two historical field spellings (payerDifferent/isDepositorDifferent,
// payerName/depositorName); Normalize keeps both populated and equal so either
// generation of stored data reads back cleanly.
type Companion struct {
	ID            float64 `json:"id,omitempty"`
	Gender        Gender  `json:"gender"`
	Name          string  `json:"name"`
	BirthYear     string  `json:"birthYear"`
	BirthMonth    string  `json:"birthMonth"`
	BirthDay      string  `json:"birthDay"`
	CalendarType  string  `json:"calendarType,omitempty"`
	BirthHour     string  `json:"birthHour,omitempty"`
	BirthMinute   string  `json:"birthMinute,omitempty"`
	Phone1        string  `json:"phone1"`
	Phone2        string  `json:"phone2"`
	Phone3        string  `json:"phone3"`
	EmailID       string  `json:"emailId,omitempty"`
	EmailDomain   string  `json:"emailDomain,omitempty"`
	Delivery      string  `json:"deliveryMethod,omitempty"`
	MaritalStatus string  `json:"maritalStatus,omitempty"`
	Product       string  `json:"product"`
	Inquiry       string  `json:"inquiry,omitempty"`

	SyncedWithPrimary bool `json:"isSyncedWithMain,omitempty"`
	WantsCompat       bool `json:"wantsCompatibility,omitempty"`

	// Payer override, both spellings. Internal logic reads PayerDifferent
	// and PayerName; serialization always writes all four.
	PayerDifferent     bool   `json:"payerDifferent"`
	PayerName          string `json:"payerName"`
	DepositorDifferent bool   `json:"isDepositorDifferent"`
	DepositorName      string `json:"depositorName"`
}

// Normalize makes the two payer-field spellings mutually consistent:
// a set flag or non-empty name on either side wins, names are trimmed.
func (c *Companion) Normalize() {
	c.PayerDifferent = c.PayerDifferent || c.DepositorDifferent
	c.DepositorDifferent = c.PayerDifferent

	name := strings.TrimSpace(c.PayerName)
	if name == "" {
		name = strings.TrimSpace(c.DepositorName)
	}
	c.PayerName = name
	c.DepositorName = name
}

const MaxCompanions = 4

// ProductCouple is the two-person bundle; selecting it on the primary
// applicant pairs in a partner entry automatically.
const (
	ProductPremium = "premium"
	ProductCouple  = "couple"
	ProductYear    = "year"
)

// ApplyProductSelection sets the product of companions[idx] and applies the
// couple-package pairing rules when idx is the primary applicant:
//
//   - picking the couple bundle while the primary is alone auto-adds an
//     opposite-gender partner with the same product and synced contact info;
//   - switching the primary away from the couple bundle while exactly two
//     entries exist removes the auto-added partner.
//
// The input slice is not mutated; the adjusted list is returned.
func ApplyProductSelection(companions []Companion, idx int, product string) []Companion {
	if idx < 0 || idx >= len(companions) {
		return companions
	}

	out := make([]Companion, len(companions))
	copy(out, companions)

	prevPrimary := out[0].Product
	out[idx].Product = product

	if idx != 0 {
		return out
	}

	switch {
	case product == ProductCouple && len(out) == 1:
		main := out[0]
		partner := Companion{
			Gender:            main.Gender.Opposite(),
			CalendarType:      main.CalendarType,
			BirthHour:         "unknown",
			BirthMinute:       "00",
			Phone1:            main.Phone1,
			Phone2:            main.Phone2,
			Phone3:            main.Phone3,
			EmailID:           main.EmailID,
			EmailDomain:       main.EmailDomain,
			Delivery:          main.Delivery,
			MaritalStatus:     "single",
			Product:           ProductCouple,
			SyncedWithPrimary: true,
			WantsCompat:       true,
		}
		out = append(out, partner)
	case product != ProductCouple && prevPrimary == ProductCouple && len(out) == 2:
		out = out[:1]
	}

	return SyncContactWithPrimary(out)
}

// SyncContactWithPrimary copies the primary applicant's contact fields onto
// every companion that opted into sharing them.
func SyncContactWithPrimary(companions []Companion) []Companion {
	if len(companions) == 0 {
		return companions
	}

	out := make([]Companion, len(companions))
	copy(out, companions)

	main := out[0]
	for i := 1; i < len(out); i++ {
		if !out[i].SyncedWithPrimary {
			continue
		}
		out[i].Phone1 = main.Phone1
		out[i].Phone2 = main.Phone2
		out[i].Phone3 = main.Phone3
		out[i].EmailID = main.EmailID
		out[i].EmailDomain = main.EmailDomain
		out[i].Delivery = main.Delivery
	}

	return out
}
