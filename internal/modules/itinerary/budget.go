package itinerary

import "math"

// Pricing constants. Amounts share the unit of Preferences.Budget.
const (
	TravelBaselinePerPerson = 15000.0
	UnknownTagPrice         = 800.0

	// EchoTolerance is the relative distance from the requested budget within
	// which a model total is treated as an echo of the input.
	EchoTolerance = 0.01
	// OverrunTolerance is how far above the requested budget a total may go
	// before the computed estimate replaces it.
	OverrunTolerance = 0.02
)

var tagPrices = map[Tag]float64{
	TagHeritage:  800,
	TagFood:      600,
	TagActivity:  1200,
	TagNightlife: 1500,
	TagAdventure: 2000,
	TagRelax:     700,
}

// PricePerPerson looks up the per-person cost of a block category.
func PricePerPerson(tag Tag) float64 {
	if p, ok := tagPrices[tag]; ok {
		return p
	}
	return UnknownTagPrice
}

// EstimateCost prices every block for the whole party and adds the flat
// per-person travel baseline.
func EstimateCost(days []DayPlan, pax int) float64 {
	if pax < 1 {
		pax = 1
	}
	var perPerson float64
	for _, day := range days {
		for _, b := range day.Blocks {
			perPerson += PricePerPerson(b.Tag)
		}
	}
	total := perPerson*float64(pax) + TravelBaselinePerPerson*float64(pax)
	return Round2(total)
}

// Reconcile replaces the model-reported TotalBudget with the figure the user
// should see. The result's TotalBudget is always a float64.
func Reconcile(d NormalizedDraft, prefs Preferences) NormalizedDraft {
	computed := EstimateCost(d.Days, prefs.PartySize())
	d.TotalBudget = ReconcileTotal(d.TotalBudget, computed, prefs.Budget)
	return d
}

// ReconcileTotal decides between the model's total and the computed estimate.
// A missing, zero or unreadable model value, or one within EchoTolerance of
// the requested ceiling, yields computed. Whatever survives is then capped:
// anything above ceiling*(1+OverrunTolerance) is replaced by computed.
func ReconcileTotal(model any, computed, ceiling float64) float64 {
	total := computed
	if v := ToFloat(model); v > 0 && !isEcho(v, ceiling) {
		total = Round2(v)
	}
	if ceiling > 0 && total > ceiling*(1+OverrunTolerance) {
		total = computed
	}
	return total
}

func isEcho(v, ceiling float64) bool {
	if ceiling <= 0 {
		return false
	}
	return math.Abs(v-ceiling) <= ceiling*EchoTolerance
}
