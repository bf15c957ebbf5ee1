package services

import (
	"bytes"
	"testing"
)

func annexureModel() PreviewModel {
	pm := assemblyModel()
	pm.Bank = BankDetails{
		BankName:      "State Bank of India",
		AccountName:   "Capricorn Elevators Pvt Ltd",
		AccountNumber: "38412345678",
		IFSC:          "SBIN0001234",
		Branch:        "Pune Camp",
	}
	pm.PaymentTerms = []PaymentTerm{
		{Stage: "Advance with order", Percent: 30},
		{Stage: "On material delivery", Percent: 50},
		{Stage: "On installation", Percent: 15},
		{Stage: "On handover", Percent: 5},
	}
	return pm
}

func TestGenerateAnnexurePDF(t *testing.T) {
	out, err := GenerateAnnexurePDF(annexureModel())
	if err != nil {
		t.Fatalf("GenerateAnnexurePDF returned error: %v", err)
	}
	if !bytes.HasPrefix(out, []byte("%PDF-")) {
		t.Error("output does not start with %PDF- header")
	}
	if len(out) < 1000 {
		t.Errorf("output suspiciously small: %d bytes", len(out))
	}
}

func TestGenerateAnnexurePDF_EmptyModel(t *testing.T) {
	// A zero model still carries the full placeholder table and must
	// produce a valid document.
	pm := PreviewModel{
		PricingItems:  CanonicalPricingItems(nil),
		AmountInWords: AmountInWords(0),
	}

	out, err := GenerateAnnexurePDF(pm)
	if err != nil {
		t.Fatalf("GenerateAnnexurePDF returned error for empty model: %v", err)
	}
	if !bytes.HasPrefix(out, []byte("%PDF-")) {
		t.Error("output does not start with %PDF- header")
	}
}
