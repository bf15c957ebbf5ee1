// Package services provides the pricing, mapping, capture and document
// assembly logic behind quotation previews and exports.
package services

// DefaultGSTRate is the GST percentage applied when neither the
// quotation record nor the settings supply one.
const DefaultGSTRate = 18.0

// PricingLineItem is one row of the quotation pricing table. Standard
// and Launch carry the two pricing tracks. IsNA marks a row that does
// not apply to this configuration and removes it from both tracks;
// IsComplimentary removes the row from the launch track only, since the
// launch offer waives a cost that still exists on the standard track.
type PricingLineItem struct {
	Label           string
	Standard        float64
	Launch          float64
	IsNA            bool
	IsComplimentary bool
}

// PricingTotals holds the aggregate figures for both pricing tracks.
type PricingTotals struct {
	StandardSubtotal   float64
	LaunchSubtotal     float64
	StandardTax        float64
	LaunchTax          float64
	StandardGrandTotal float64
	LaunchGrandTotal   float64
}

// CalcLineItemTotal calculates the total for a single quotation line item.
func CalcLineItemTotal(qty, unitPrice float64) float64 {
	return qty * unitPrice
}

// CalcPricingTotals computes subtotal, tax and grand total for the
// standard and launch tracks independently. IsNA wins over
// IsComplimentary: an item flagged both is excluded from both tracks.
// An empty item list yields all zeros.
func CalcPricingTotals(items []PricingLineItem, gstRate float64) PricingTotals {
	var t PricingTotals
	for _, item := range items {
		if item.IsNA {
			continue
		}
		t.StandardSubtotal += item.Standard
		if !item.IsComplimentary {
			t.LaunchSubtotal += item.Launch
		}
	}
	t.StandardTax = t.StandardSubtotal * gstRate / 100
	t.LaunchTax = t.LaunchSubtotal * gstRate / 100
	t.StandardGrandTotal = t.StandardSubtotal + t.StandardTax
	t.LaunchGrandTotal = t.LaunchSubtotal + t.LaunchTax
	return t
}

// ApplySubtotalFallback replaces a non-positive computed subtotal with a
// pre-supplied upstream figure and recomputes tax and grand total for
// the affected track. This is caller-level policy, not an aggregator
// invariant: records created before per-row pricing existed carry only
// a single total.
func ApplySubtotalFallback(t PricingTotals, upstreamTotal, gstRate float64) PricingTotals {
	if upstreamTotal <= 0 {
		return t
	}
	if t.LaunchSubtotal <= 0 {
		t.LaunchSubtotal = upstreamTotal
		t.LaunchTax = upstreamTotal * gstRate / 100
		t.LaunchGrandTotal = t.LaunchSubtotal + t.LaunchTax
	}
	if t.StandardSubtotal <= 0 {
		t.StandardSubtotal = upstreamTotal
		t.StandardTax = upstreamTotal * gstRate / 100
		t.StandardGrandTotal = t.StandardSubtotal + t.StandardTax
	}
	return t
}
