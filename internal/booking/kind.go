package booking

type Kind string

const (
	KindConsultation Kind = "consultation"
	KindKundli       Kind = "kundli"
	KindDemo         Kind = "demo"
)

// KindConfig drives the generic engine. Amounts are whole rupees and are
// never client-supplied.
type KindConfig struct {
	Amount          int
	RequiresPayment bool
	InitialStatus   Status
	PaidStatus      Status
	Genders         []string
	EmailRequired   bool

	// Age window for the birth date, in whole years. Zero means the bound
	// is not enforced for this kind.
	MinAgeYears int
	MaxAgeYears int

	ReceiptPrefix string
}

var kindConfigs = map[Kind]KindConfig{
	KindConsultation: {
		Amount:          600,
		RequiresPayment: true,
		InitialStatus:   StatusPaymentPending,
		PaidStatus:      StatusReceived,
		Genders:         []string{"male", "female", "other", "prefer_not_to_say"},
		EmailRequired:   true,
		MinAgeYears:     18,
		MaxAgeYears:     100,
		ReceiptPrefix:   "consultation",
	},
	KindKundli: {
		Amount:          300,
		RequiresPayment: true,
		InitialStatus:   StatusPaymentPending,
		PaidStatus:      StatusSubmitted,
		Genders:         []string{"male", "female", "other"},
		EmailRequired:   true,
		// Kundli charts may be requested for ancestors; only "not in the
		// future" is enforced on the birth date.
		ReceiptPrefix: "kundli",
	},
	KindDemo: {
		Amount:          0,
		RequiresPayment: false,
		InitialStatus:   StatusSubmitted,
		Genders:         []string{"male", "female", "other", "prefer_not_to_say"},
		MinAgeYears:     18,
		MaxAgeYears:     100,
		ReceiptPrefix:   "demo",
	},
}

func ConfigFor(k Kind) (KindConfig, bool) {
	cfg, ok := kindConfigs[k]
	return cfg, ok
}

func (c KindConfig) validGender(g string) bool {
	for _, v := range c.Genders {
		if v == g {
			return true
		}
	}
	return false
}
