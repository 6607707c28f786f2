package service

import "github.com/K-HALID007/shipment-tracking-api/internal/core/domain"

// packageRate is the deterministic pricing schedule revenue figures are
// derived from: a flat base per package type plus a per-kilogram charge.
type packageRate struct {
	Base  float64
	PerKg float64
}

var packageRates = map[string]packageRate{
	"standard": {Base: 50, PerKg: 5},
	"express":  {Base: 120, PerKg: 8},
	"fragile":  {Base: 150, PerKg: 10},
	"oversized": {Base: 200, PerKg: 12},
}

// revenueFor computes the billed amount for a shipment. Unknown package
// types fall back to the standard rate.
func revenueFor(s *domain.Shipment) float64 {
	rate, ok := packageRates[s.Package.Type]
	if !ok {
		rate = packageRates["standard"]
	}
	return rate.Base + rate.PerKg*s.Package.Weight
}
