package usecase

import (
	"math"
	"strconv"
	"strings"
	"time"
	"unicode"

	"venue-booking/internal/data/entity"
)

// DefaultDownpaymentPercentage applies when a venue has none configured.
const DefaultDownpaymentPercentage = 30.0

type PricingBasis string

const (
	BasisHourly    PricingBasis = "hourly"
	BasisDaily     PricingBasis = "daily"
	BasisLegacy    PricingBasis = "base_price"
	BasisPriceText PricingBasis = "price_text"
)

type Quote struct {
	Basis             PricingBasis
	BaseAmount        float64
	DownpaymentAmount float64
	ServiceFeeAmount  *float64

	// Degraded is set when no price source produced a value and the
	// amounts fell back to zero.
	Degraded bool
}

// ComputeDownpayment resolves the booking price for [start, end). It never
// fails: a venue without any usable price source yields a zero quote.
func ComputeDownpayment(p entity.VenuePricing, start, end time.Time, serviceLabel string, services []*entity.VenueService) Quote {
	hours := end.Sub(start).Hours()
	days := math.Ceil(hours / 24)

	var q Quote
	switch {
	case configured(p.HourlyRate) && hours < 24:
		q.Basis = BasisHourly
		q.BaseAmount = *p.HourlyRate * hours
	case configured(p.DailyRate):
		q.Basis = BasisDaily
		q.BaseAmount = *p.DailyRate * days
	case configured(p.BasePrice):
		q.Basis = BasisLegacy
		if p.PriceUnit != nil && *p.PriceUnit == entity.PriceUnitHour {
			q.BaseAmount = *p.BasePrice * hours
		} else {
			q.BaseAmount = *p.BasePrice * days
		}
	default:
		q.Basis = BasisPriceText
		var parsed float64
		if p.Price != nil {
			parsed = parseLeadingDecimal(*p.Price)
		}
		q.BaseAmount = parsed * hours
		q.Degraded = parsed == 0
	}

	pct := DefaultDownpaymentPercentage
	if p.DownpaymentPercentage != nil {
		pct = *p.DownpaymentPercentage
	}
	q.DownpaymentAmount = q.BaseAmount * pct / 100

	for _, svc := range services {
		if svc.Name == serviceLabel && svc.IsRequired {
			fee := svc.Price
			q.ServiceFeeAmount = &fee
			break
		}
	}

	return q
}

func configured(v *float64) bool {
	return v != nil && *v > 0
}

// parseLeadingDecimal reads the longest digits[.digits] prefix after any
// leading whitespace, so "150000/hour" gives 150000 and "call us" gives 0.
func parseLeadingDecimal(s string) float64 {
	s = strings.TrimLeftFunc(s, unicode.IsSpace)

	end := 0
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end < len(s) && s[end] == '.' {
		frac := end + 1
		for frac < len(s) && s[frac] >= '0' && s[frac] <= '9' {
			frac++
		}
		if frac > end+1 {
			end = frac
		}
	}
	if end == 0 {
		return 0
	}

	v, err := strconv.ParseFloat(s[:end], 64)
	if err != nil {
		return 0
	}
	return v
}
