package indexa

import (
	"strings"

	"github.com/shopspring/decimal"
)

// AdjustmentRule selects how an obligation's amount evolves in a projection.
//
// Only Fixed behaves differently today: the other variants all apply the
// same scenario inflation factor. They stay configuration-distinct because
// contracts label them differently and they are expected to diverge; do not
// collapse them into one case.
type AdjustmentRule int

const (
	RuleSeasonalCPI AdjustmentRule = iota
	RuleFixed
	RuleMovingAverage
	RuleContractIndex
)

func (r AdjustmentRule) String() string {
	switch r {
	case RuleFixed:
		return "fixed"
	case RuleSeasonalCPI:
		return "seasonal-cpi"
	case RuleMovingAverage:
		return "moving-average"
	case RuleContractIndex:
		return "contract-index"
	default:
		return "seasonal-cpi"
	}
}

// ParseAdjustmentRule maps a rule label to its variant. An unrecognized or
// empty label falls back to the default indexed behavior.
func ParseAdjustmentRule(label string) AdjustmentRule {
	switch strings.ToLower(strings.TrimSpace(label)) {
	case "fixed":
		return RuleFixed
	case "moving-average":
		return RuleMovingAverage
	case "contract-index":
		return RuleContractIndex
	default:
		return RuleSeasonalCPI
	}
}

// ParseFrequency maps a recurrence label to a number of months.
// Unrecognized or missing labels degrade to monthly.
func ParseFrequency(label string) int {
	switch strings.ToLower(strings.TrimSpace(label)) {
	case "bimonthly":
		return 2
	case "quarterly":
		return 3
	case "four-monthly":
		return 4
	case "semiannual":
		return 6
	case "annual":
		return 12
	default:
		return 1
	}
}

// Obligation is the engine-computed snapshot of a live recurring obligation:
// the base amount and date come from its most recent historical due record.
// It is a read-only view, never a persisted entity.
type Obligation struct {
	Category    string
	Description string
	Base        Money // zero amount and currency when no due record exists
	Rule        AdjustmentRule
	Frequency   int // recurrence in months, 1 = monthly
	LastDue     Date
}

// ObligationSource is the persistence collaborator listing the snapshots of
// all active obligations.
type ObligationSource interface {
	Snapshots() ([]Obligation, error)
}

// Item is one simulated future due record. Created fresh on every projection
// call and never persisted.
type Item struct {
	Month       string // "YYYY-MM"
	Category    string
	Description string
	Amount      Money
	Fixed       bool
}

// Budget is the result of one projection call.
type Budget struct {
	Start           Date
	Months          int
	Items           []Item
	TotalByMonth    map[string]Money
	TotalByCategory map[string]Money
	Total           Money
}

// Projector simulates future obligations under a flat scenario assumption.
type Projector struct {
	obligations ObligationSource
	converter   *Converter
}

// NewProjector creates a Projector over the given collaborators.
func NewProjector(obligations ObligationSource, converter *Converter) *Projector {
	return &Projector{obligations: obligations, converter: converter}
}

// Project simulates the coming months of obligations.
//
// monthlyInflation is a flat user-supplied scenario percentage, independent
// of the historical CPI curve: month offset i is scaled by (1+pct/100)^i.
// futureFX, when positive, is the flat rate applied to every foreign-currency
// amount for every projected month; when zero, today's resolved rate is used
// instead. There is never a month-specific projected rate.
//
// Per-obligation misconfiguration degrades through documented fallbacks and
// never aborts the batch; only an unreachable source fails the whole call.
func (p *Projector) Project(start Date, months int, monthlyInflation decimal.Decimal, futureFX decimal.Decimal) (*Budget, error) {
	obligations, err := p.obligations.Snapshots()
	if err != nil {
		return nil, err
	}

	budget := &Budget{
		Start:           start.StartOf(Monthly),
		Months:          months,
		Items:           []Item{},
		TotalByMonth:    make(map[string]Money),
		TotalByCategory: make(map[string]Money),
		Total:           M(0, ARS),
	}

	growth := one.Add(monthlyInflation.Div(hundred))
	factor := one
	for i := 0; i < months; i++ {
		month := budget.Start.AddMonth(i)
		label := Monthly.Identifier(month)

		for _, ob := range obligations {
			if !p.duesIn(ob, month) {
				continue
			}

			amount := ob.Base
			if ob.Rule != RuleFixed {
				amount = amount.Mul(factor)
			}

			amount, err := p.toReporting(amount, futureFX)
			if err != nil {
				return nil, err
			}

			item := Item{
				Month:       label,
				Category:    ob.Category,
				Description: ob.Description,
				Amount:      amount,
				Fixed:       ob.Rule == RuleFixed,
			}
			budget.Items = append(budget.Items, item)
			budget.TotalByMonth[label] = budget.TotalByMonth[label].Add(amount)
			budget.TotalByCategory[ob.Category] = budget.TotalByCategory[ob.Category].Add(amount)
			budget.Total = budget.Total.Add(amount)
		}

		factor = factor.Mul(growth)
	}

	return budget, nil
}

// duesIn reports whether the obligation produces a due record in the given
// month. Monthly obligations due every month; less frequent ones only in
// months a strictly positive multiple of their frequency after the last
// historical due date. Skipped months contribute nothing, they are not
// emitted as zero.
func (p *Projector) duesIn(ob Obligation, month Date) bool {
	frequency := ob.Frequency
	if frequency <= 1 {
		return true
	}
	offset := month.StartOf(Monthly).MonthsSince(ob.LastDue.StartOf(Monthly))
	return offset > 0 && offset%frequency == 0
}

// toReporting brings a projected amount into the reporting currency. Foreign
// amounts use the flat scenario rate when one was supplied, or today's
// resolved rate otherwise.
func (p *Projector) toReporting(amount Money, futureFX decimal.Decimal) (Money, error) {
	if amount.Currency() == ARS || amount.Currency() == "" {
		return amount, nil
	}
	if futureFX.IsPositive() && amount.Currency() == USD {
		return M(amount.Amount().Mul(futureFX), ARS), nil
	}
	return p.converter.Convert(amount, ARS, Today())
}
