package app

// Price tables in cents. Each category composes additively: a base price for
// the primary selection plus surcharges for secondary attributes.

var websitePrices = map[string]int64{
	"desktop": 45000,
	"mobile":  40000,
	"webapp":  80000,
}

var websiteLabels = map[string]string{
	"desktop": "Desktop",
	"mobile":  "Mobile",
	"webapp":  "Web App",
}

const websiteDefaultVariant = "desktop"

var brandingPrices = map[string]int64{
	"logo":     35000,
	"identity": 90000,
	"refresh":  50000,
}

var brandingLabels = map[string]string{
	"logo":     "Logo Design",
	"identity": "Full Identity",
	"refresh":  "Brand Refresh",
}

const (
	brandingDefaultVariant  = "logo"
	brandingAnimationCharge = 20000
	brandingThreeDCharge    = 30000
)

var marketingPrices = map[string]int64{
	"social":   25000,
	"campaign": 60000,
	"content":  40000,
}

var marketingLabels = map[string]string{
	"social":   "Social Media Kit",
	"campaign": "Campaign",
	"content":  "Content Pack",
}

const (
	marketingDefaultVariant    = "social"
	marketingExtraPlatformCost = 5000
)

var developmentPrices = map[string]int64{
	"landing":   80000,
	"ecommerce": 200000,
	"webapp":    350000,
}

var developmentLabels = map[string]string{
	"landing":   "Landing Page",
	"ecommerce": "E-Commerce Build",
	"webapp":    "Web Application",
}

const (
	developmentDefaultVariant = "landing"
	developmentCMSCharge      = 40000
)
