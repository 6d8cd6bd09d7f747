package installment

import "time"

// Summary holds the headline card metrics.
//
// DueThisMonth overlaps with DueThisYearUnpaid for the part of the current
// month that is still ahead; both are reported as-is.
type Summary struct {
	DueThisMonth      float64 `json:"due_this_month"`
	DueThisYearUnpaid float64 `json:"due_this_year_unpaid"`
	PaidThisYear      float64 `json:"paid_this_year"`
	HasData           bool    `json:"has_data"`
}

// Summarize sums installment values over three windows around today.
func Summarize(installments []Installment, today time.Time) Summary {
	s := Summary{HasData: len(installments) > 0}
	year, month, _ := today.Date()
	for _, inst := range installments {
		dy, dm, _ := inst.DueDate.Date()
		if dy != year {
			continue
		}
		if dm == month {
			s.DueThisMonth += inst.Value
		}
		if inst.IsPaid(today) {
			s.PaidThisYear += inst.Value
		} else {
			s.DueThisYearUnpaid += inst.Value
		}
	}
	return s
}

// MonthlyTotals sums installment values by due month for year. Index 0 is
// January.
func MonthlyTotals(installments []Installment, year int) [12]float64 {
	var totals [12]float64
	for _, inst := range installments {
		if inst.DueDate.Year() != year {
			continue
		}
		totals[inst.DueDate.Month()-1] += inst.Value
	}
	return totals
}
