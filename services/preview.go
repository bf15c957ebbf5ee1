package services

import (
	"fmt"
	"strconv"
	"strings"
)

// CustomerBlock holds the customer contact fields shown on the cover page.
type CustomerBlock struct {
	Name        string
	Company     string
	Email       string
	Phone       string
	SiteAddress string
}

// QuoteLineItem is a quotation line item with its computed total.
type QuoteLineItem struct {
	Description string
	Qty         float64
	UnitPrice   float64
	Total       float64
}

// TechnicalSpec holds the elevator configuration summary shown on the
// technical specification page.
type TechnicalSpec struct {
	Model         string
	Capacity      string
	Speed         string
	Stops         string
	DriveSystem   string
	CabinMaterial string
	DoorType      string
}

// BankDetails holds the remittance details printed on the pricing page.
type BankDetails struct {
	BankName      string
	AccountName   string
	AccountNumber string
	IFSC          string
	Branch        string
}

// PaymentTerm is one row of the payment schedule.
type PaymentTerm struct {
	Stage   string  `json:"stage"`
	Percent float64 `json:"percent"`
}

// PreviewModel is the canonical document data shape. It is built fresh
// for every preview or download and discarded after rendering; nothing
// here is persisted.
type PreviewModel struct {
	QuoteNumber   string
	QuoteDate     string
	ValidUntil    string
	Customer      CustomerBlock
	Items         []QuoteLineItem
	PricingItems  []PricingLineItem
	GSTRate       float64
	Totals        PricingTotals
	AmountInWords string
	Spec          TechnicalSpec
	Bank          BankDetails
	PaymentTerms  []PaymentTerm
}

// PreviewDefaults carries the settings-backed values merged into every
// PreviewModel: the default GST rate, bank details and payment terms.
type PreviewDefaults struct {
	GSTRate      float64
	Bank         BankDetails
	PaymentTerms []PaymentTerm
}

// MappingError reports an upstream record the mapper cannot work with
// at all, such as a non-object input. Missing fields are never a
// MappingError; they resolve through fallback defaults.
type MappingError struct {
	Reason string
}

func (e *MappingError) Error() string {
	return "quotation mapping: " + e.Reason
}

// QuotationPricingLabels is the authoritative ordered label set of the
// pricing table. Upstream records missing a row get a zero-valued
// placeholder with flags from DefaultPricingFlags, never an omission.
var QuotationPricingLabels = []string{
	"Basic Cost",
	"Installation & Commissioning",
	"Transportation",
	"Scaffolding",
	"Additional Door Cost",
	"ARD (Automatic Rescue Device)",
	"Power Backup Unit",
	"AMC (First Year)",
}

type labelFlagDefault struct {
	substr          string
	isNA            bool
	isComplimentary bool
}

// Flag defaults for placeholder rows, keyed by label substring. Door
// and power-backup rows default to not-applicable (most installations
// omit them); transport, scaffolding and first-year AMC are bundled
// free under the launch offer.
var labelFlagDefaults = []labelFlagDefault{
	{"Door", true, false},
	{"Power Backup", true, false},
	{"Transport", false, true},
	{"Scaffold", false, true},
	{"AMC", false, true},
}

// DefaultPricingFlags returns the NA/complimentary defaults for a
// pricing label, matched by substring against the fixed flag table.
func DefaultPricingFlags(label string) (isNA, isComplimentary bool) {
	for _, d := range labelFlagDefaults {
		if strings.Contains(label, d.substr) {
			return d.isNA, d.isComplimentary
		}
	}
	return false, false
}

// BuildPreviewModel normalizes an upstream quotation record of uncertain
// shape into the canonical PreviewModel. Every field resolves through an
// ordered fallback chain ending in a sensible empty default, so a
// well-formed-but-incomplete record never fails. Only a non-object
// input returns an error, typed *MappingError.
func BuildPreviewModel(raw any, defaults PreviewDefaults) (PreviewModel, error) {
	rec, ok := raw.(map[string]any)
	if !ok {
		return PreviewModel{}, &MappingError{Reason: fmt.Sprintf("expected object record, got %T", raw)}
	}

	gstRate := resolveFloat(rec, defaults.GSTRate, "gstRate", "gst_rate", "gst")
	if gstRate <= 0 {
		gstRate = DefaultGSTRate
	}

	m := PreviewModel{
		QuoteNumber: resolveString(rec, "", "quoteNumber", "quote_number", "quotationNo", "refNo"),
		QuoteDate:   resolveString(rec, "", "quoteDate", "quote_date", "date", "createdDate"),
		ValidUntil:  resolveString(rec, "", "validUntil", "valid_until", "validity"),
		Customer: CustomerBlock{
			Name:        resolveString(rec, "", "customerName", "customer.name", "customer_name", "name"),
			Company:     resolveString(rec, "", "customerCompany", "customer.company", "customer_company", "company"),
			Email:       resolveString(rec, "", "customerEmail", "customer.email", "customer_email", "email"),
			Phone:       resolveString(rec, "", "customerPhone", "customer.phone", "customer_phone", "phone", "mobile"),
			SiteAddress: resolveString(rec, "", "siteAddress", "site_address", "customer.address", "address"),
		},
		GSTRate: gstRate,
		Spec: TechnicalSpec{
			Model:         resolveString(rec, "", "model", "liftModel", "elevatorModel"),
			Capacity:      resolveString(rec, "", "capacity", "passengers"),
			Speed:         resolveString(rec, "", "speed"),
			Stops:         resolveString(rec, "", "stops", "floors"),
			DriveSystem:   resolveString(rec, "", "driveSystem", "drive_system", "drive"),
			CabinMaterial: resolveString(rec, "", "cabinMaterial", "cabin_material", "cabin"),
			DoorType:      resolveString(rec, "", "doorType", "door_type", "doors"),
		},
		Bank: BankDetails{
			BankName:      resolveString(rec, defaults.Bank.BankName, "bank.bankName", "bank.name"),
			AccountName:   resolveString(rec, defaults.Bank.AccountName, "bank.accountName", "bank.account_name"),
			AccountNumber: resolveString(rec, defaults.Bank.AccountNumber, "bank.accountNumber", "bank.account_number"),
			IFSC:          resolveString(rec, defaults.Bank.IFSC, "bank.ifsc"),
			Branch:        resolveString(rec, defaults.Bank.Branch, "bank.branch"),
		},
		PaymentTerms: mapPaymentTerms(rec, defaults.PaymentTerms),
	}

	m.Items = mapLineItems(rec)
	m.PricingItems = CanonicalPricingItems(mapPricingItems(rec))

	upstreamTotal := resolveFloat(rec, 0, "totalAmount", "total_amount", "totalCost", "total")
	m.Totals = ApplySubtotalFallback(CalcPricingTotals(m.PricingItems, m.GSTRate), upstreamTotal, m.GSTRate)
	m.AmountInWords = AmountInWords(m.Totals.LaunchGrandTotal)

	return m, nil
}

// CanonicalPricingItems reorders parsed pricing rows into the fixed
// label sequence, substituting a zero-valued placeholder with default
// flags for every label the upstream record lacks.
func CanonicalPricingItems(parsed []PricingLineItem) []PricingLineItem {
	out := make([]PricingLineItem, 0, len(QuotationPricingLabels))
	for _, label := range QuotationPricingLabels {
		if item, ok := matchPricingItem(parsed, label); ok {
			item.Label = label
			out = append(out, item)
			continue
		}
		isNA, isComp := DefaultPricingFlags(label)
		out = append(out, PricingLineItem{Label: label, IsNA: isNA, IsComplimentary: isComp})
	}
	return out
}

// matchPricingItem finds a parsed row for a canonical label, first by
// exact label, then by case-insensitive containment either way, so
// upstream variants like "Basic cost" or "Installation" still land on
// their canonical row.
func matchPricingItem(parsed []PricingLineItem, label string) (PricingLineItem, bool) {
	for _, item := range parsed {
		if item.Label == label {
			return item, true
		}
	}
	lower := strings.ToLower(label)
	for _, item := range parsed {
		il := strings.ToLower(strings.TrimSpace(item.Label))
		if il == "" {
			continue
		}
		if strings.Contains(lower, il) || strings.Contains(il, lower) {
			return item, true
		}
	}
	return PricingLineItem{}, false
}

func mapLineItems(rec map[string]any) []QuoteLineItem {
	raw := resolveList(rec, "items", "lineItems", "line_items", "quotation_items")
	var items []QuoteLineItem
	for _, entry := range raw {
		e, ok := entry.(map[string]any)
		if !ok {
			continue
		}
		qty := resolveFloat(e, 1, "qty", "quantity")
		price := resolveFloat(e, 0, "unitPrice", "unit_price", "price", "rate")
		items = append(items, QuoteLineItem{
			Description: resolveString(e, "", "description", "item", "name"),
			Qty:         qty,
			UnitPrice:   price,
			Total:       CalcLineItemTotal(qty, price),
		})
	}
	return items
}

func mapPricingItems(rec map[string]any) []PricingLineItem {
	raw := resolveList(rec, "pricingItems", "pricing_items", "prices")
	var items []PricingLineItem
	for _, entry := range raw {
		e, ok := entry.(map[string]any)
		if !ok {
			continue
		}
		items = append(items, PricingLineItem{
			Label:           resolveString(e, "", "label", "name", "description"),
			Standard:        resolveFloat(e, 0, "standard", "standardPrice", "standard_price", "listPrice"),
			Launch:          resolveFloat(e, 0, "launch", "launchPrice", "launch_price", "offerPrice"),
			IsNA:            resolveBool(e, false, "isNA", "is_na", "na"),
			IsComplimentary: resolveBool(e, false, "isComplimentary", "is_complimentary", "complimentary"),
		})
	}
	return items
}

func mapPaymentTerms(rec map[string]any, defaults []PaymentTerm) []PaymentTerm {
	raw := resolveList(rec, "paymentTerms", "payment_terms")
	if len(raw) == 0 {
		return defaults
	}
	var terms []PaymentTerm
	for _, entry := range raw {
		e, ok := entry.(map[string]any)
		if !ok {
			continue
		}
		terms = append(terms, PaymentTerm{
			Stage:   resolveString(e, "", "stage", "milestone", "description"),
			Percent: resolveFloat(e, 0, "percent", "percentage"),
		})
	}
	if len(terms) == 0 {
		return defaults
	}
	return terms
}

// RecordMap emits the model under its canonical keys. Mapping the
// result through BuildPreviewModel again reproduces an equivalent
// model, which is what lets cached preview payloads be re-normalized
// safely.
func (m PreviewModel) RecordMap() map[string]any {
	items := make([]any, 0, len(m.Items))
	for _, it := range m.Items {
		items = append(items, map[string]any{
			"description": it.Description,
			"qty":         it.Qty,
			"unitPrice":   it.UnitPrice,
		})
	}
	pricing := make([]any, 0, len(m.PricingItems))
	for _, p := range m.PricingItems {
		pricing = append(pricing, map[string]any{
			"label":           p.Label,
			"standard":        p.Standard,
			"launch":          p.Launch,
			"isNA":            p.IsNA,
			"isComplimentary": p.IsComplimentary,
		})
	}
	terms := make([]any, 0, len(m.PaymentTerms))
	for _, pt := range m.PaymentTerms {
		terms = append(terms, map[string]any{
			"stage":   pt.Stage,
			"percent": pt.Percent,
		})
	}

	return map[string]any{
		"quoteNumber":     m.QuoteNumber,
		"quoteDate":       m.QuoteDate,
		"validUntil":      m.ValidUntil,
		"customerName":    m.Customer.Name,
		"customerCompany": m.Customer.Company,
		"customerEmail":   m.Customer.Email,
		"customerPhone":   m.Customer.Phone,
		"siteAddress":     m.Customer.SiteAddress,
		"items":           items,
		"pricingItems":    pricing,
		"gstRate":         m.GSTRate,
		"totalAmount":     m.Totals.LaunchSubtotal,
		"model":           m.Spec.Model,
		"capacity":        m.Spec.Capacity,
		"speed":           m.Spec.Speed,
		"stops":           m.Spec.Stops,
		"driveSystem":     m.Spec.DriveSystem,
		"cabinMaterial":   m.Spec.CabinMaterial,
		"doorType":        m.Spec.DoorType,
		"bank": map[string]any{
			"bankName":      m.Bank.BankName,
			"accountName":   m.Bank.AccountName,
			"accountNumber": m.Bank.AccountNumber,
			"ifsc":          m.Bank.IFSC,
			"branch":        m.Bank.Branch,
		},
		"paymentTerms": terms,
	}
}

// ── Fallback-chain resolvers ─────────────────────────────────────────

// lookup resolves a key against the record; dotted keys descend into
// nested object values.
func lookup(rec map[string]any, key string) (any, bool) {
	parts := strings.Split(key, ".")
	var cur any = rec
	for _, p := range parts {
		obj, ok := cur.(map[string]any)
		if !ok {
			return nil, false
		}
		cur, ok = obj[p]
		if !ok {
			return nil, false
		}
	}
	return cur, true
}

// resolveString returns the first non-empty string value among keys,
// else def.
func resolveString(rec map[string]any, def string, keys ...string) string {
	for _, key := range keys {
		v, ok := lookup(rec, key)
		if !ok {
			continue
		}
		if s, ok := v.(string); ok && strings.TrimSpace(s) != "" {
			return s
		}
	}
	return def
}

// resolveFloat returns the first numeric value among keys, else def.
// Missing or non-numeric values are skipped, matching the coerce-to-zero
// contract when def is 0.
func resolveFloat(rec map[string]any, def float64, keys ...string) float64 {
	for _, key := range keys {
		v, ok := lookup(rec, key)
		if !ok {
			continue
		}
		if f, ok := toFloat(v); ok {
			return f
		}
	}
	return def
}

func resolveBool(rec map[string]any, def bool, keys ...string) bool {
	for _, key := range keys {
		v, ok := lookup(rec, key)
		if !ok {
			continue
		}
		if b, ok := v.(bool); ok {
			return b
		}
	}
	return def
}

func resolveList(rec map[string]any, keys ...string) []any {
	for _, key := range keys {
		v, ok := lookup(rec, key)
		if !ok {
			continue
		}
		if list, ok := v.([]any); ok {
			return list
		}
	}
	return nil
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case string:
		if f, err := strconv.ParseFloat(strings.TrimSpace(n), 64); err == nil {
			return f, true
		}
	}
	return 0, false
}
