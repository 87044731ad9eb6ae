package usecase

import (
	"testing"
	"time"

	"venue-booking/internal/data/entity"
)

func TestComputeDownpayment_Basis(t *testing.T) {
	start := time.Date(2030, 5, 1, 10, 0, 0, 0, time.UTC)

	tests := []struct {
		name         string
		pricing      entity.VenuePricing
		duration     time.Duration
		wantBasis    PricingBasis
		wantBase     float64
		wantDown     float64
		wantDegraded bool
	}{
		{
			name:      "hourly wins under a day",
			pricing:   entity.VenuePricing{HourlyRate: ptr(1000.0), DailyRate: ptr(20000.0)},
			duration:  12 * time.Hour,
			wantBasis: BasisHourly,
			wantBase:  12000,
			wantDown:  3600,
		},
		{
			name:      "daily wins from 24 hours",
			pricing:   entity.VenuePricing{HourlyRate: ptr(1000.0), DailyRate: ptr(20000.0)},
			duration:  48 * time.Hour,
			wantBasis: BasisDaily,
			wantBase:  40000,
			wantDown:  12000,
		},
		{
			name:      "partial days round up",
			pricing:   entity.VenuePricing{DailyRate: ptr(20000.0)},
			duration:  25 * time.Hour,
			wantBasis: BasisDaily,
			wantBase:  40000,
			wantDown:  12000,
		},
		{
			name:      "daily used for short booking without hourly",
			pricing:   entity.VenuePricing{DailyRate: ptr(20000.0)},
			duration:  3 * time.Hour,
			wantBasis: BasisDaily,
			wantBase:  20000,
			wantDown:  6000,
		},
		{
			name:      "hourly ignored from 24 hours when no daily",
			pricing:   entity.VenuePricing{HourlyRate: ptr(1000.0), BasePrice: ptr(5000.0), PriceUnit: ptr("day")},
			duration:  30 * time.Hour,
			wantBasis: BasisLegacy,
			wantBase:  10000,
			wantDown:  3000,
		},
		{
			name:      "legacy base price per hour",
			pricing:   entity.VenuePricing{BasePrice: ptr(500.0), PriceUnit: ptr("hour")},
			duration:  4 * time.Hour,
			wantBasis: BasisLegacy,
			wantBase:  2000,
			wantDown:  600,
		},
		{
			name:      "legacy base price defaults to days",
			pricing:   entity.VenuePricing{BasePrice: ptr(500.0)},
			duration:  4 * time.Hour,
			wantBasis: BasisLegacy,
			wantBase:  500,
			wantDown:  150,
		},
		{
			name:      "zero rates count as unconfigured",
			pricing:   entity.VenuePricing{HourlyRate: ptr(0.0), DailyRate: ptr(-1.0), Price: ptr("100")},
			duration:  2 * time.Hour,
			wantBasis: BasisPriceText,
			wantBase:  200,
			wantDown:  60,
		},
		{
			name:      "price text with trailing unit",
			pricing:   entity.VenuePricing{Price: ptr("  150000/hour")},
			duration:  2 * time.Hour,
			wantBasis: BasisPriceText,
			wantBase:  300000,
			wantDown:  90000,
		},
		{
			name:      "price text with decimals",
			pricing:   entity.VenuePricing{Price: ptr("12.5 per hour")},
			duration:  2 * time.Hour,
			wantBasis: BasisPriceText,
			wantBase:  25,
			wantDown:  7.5,
		},
		{
			name:         "unparseable price text degrades to zero",
			pricing:      entity.VenuePricing{Price: ptr("call us")},
			duration:     2 * time.Hour,
			wantBasis:    BasisPriceText,
			wantDegraded: true,
		},
		{
			name:         "no price source degrades to zero",
			pricing:      entity.VenuePricing{},
			duration:     2 * time.Hour,
			wantBasis:    BasisPriceText,
			wantDegraded: true,
		},
		{
			name:      "configured percentage",
			pricing:   entity.VenuePricing{HourlyRate: ptr(1000.0), DownpaymentPercentage: ptr(50.0)},
			duration:  2 * time.Hour,
			wantBasis: BasisHourly,
			wantBase:  2000,
			wantDown:  1000,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := ComputeDownpayment(tt.pricing, start, start.Add(tt.duration), "", nil)

			if q.Basis != tt.wantBasis {
				t.Errorf("basis = %s, want %s", q.Basis, tt.wantBasis)
			}
			if q.BaseAmount != tt.wantBase {
				t.Errorf("base = %v, want %v", q.BaseAmount, tt.wantBase)
			}
			if q.DownpaymentAmount != tt.wantDown {
				t.Errorf("downpayment = %v, want %v", q.DownpaymentAmount, tt.wantDown)
			}
			if q.Degraded != tt.wantDegraded {
				t.Errorf("degraded = %v, want %v", q.Degraded, tt.wantDegraded)
			}
		})
	}
}

func TestComputeDownpayment_DefaultPercentage(t *testing.T) {
	start := time.Date(2030, 5, 1, 0, 0, 0, 0, time.UTC)
	pricing := entity.VenuePricing{HourlyRate: ptr(1000.0)}

	q := ComputeDownpayment(pricing, start, start.Add(10*time.Hour), "", nil)
	if q.BaseAmount != 10000 {
		t.Fatalf("base = %v, want 10000", q.BaseAmount)
	}
	if q.DownpaymentAmount != 3000 {
		t.Errorf("downpayment = %v, want 3000", q.DownpaymentAmount)
	}

	pricing.DownpaymentPercentage = ptr(30.0)
	if got := ComputeDownpayment(pricing, start, start.Add(10*time.Hour), "", nil).DownpaymentAmount; got != 3000 {
		t.Errorf("downpayment with explicit 30%% = %v, want 3000", got)
	}
}

func TestComputeDownpayment_ServiceFee(t *testing.T) {
	start := time.Date(2030, 5, 1, 10, 0, 0, 0, time.UTC)
	services := []*entity.VenueService{
		{Name: "Catering", Price: 500, IsRequired: true},
		{Name: "Sound system", Price: 300, IsRequired: false},
	}

	tests := []struct {
		label string
		want  *float64
	}{
		{label: "Catering", want: ptr(500.0)},
		{label: "Sound system"},
		{label: "catering"},
		{label: ""},
	}

	for _, tt := range tests {
		t.Run(tt.label, func(t *testing.T) {
			q := ComputeDownpayment(entity.VenuePricing{}, start, start.Add(time.Hour), tt.label, services)
			switch {
			case tt.want == nil && q.ServiceFeeAmount != nil:
				t.Errorf("service fee = %v, want none", *q.ServiceFeeAmount)
			case tt.want != nil && (q.ServiceFeeAmount == nil || *q.ServiceFeeAmount != *tt.want):
				t.Errorf("service fee = %v, want %v", q.ServiceFeeAmount, *tt.want)
			}
		})
	}
}

func TestParseLeadingDecimal(t *testing.T) {
	tests := map[string]float64{
		"100":        100,
		"  42.75xyz": 42.75,
		"7.":         7,
		"Rp 100":     0,
		"":           0,
		"-5":         0,
		"3.14.15":    3.14,
	}
	for in, want := range tests {
		if got := parseLeadingDecimal(in); got != want {
			t.Errorf("parseLeadingDecimal(%q) = %v, want %v", in, got, want)
		}
	}
}
