package models

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/threadcap/threadcap/internal/constants"
)

func TestCapDescription(t *testing.T) {
	product := &Product{
		Kind:            constants.ProductKindCap,
		MainColor:       "black",
		SecondaryColors: "white, red",
		Brand:           "Northline",
		InclusionDate:   time.Date(2024, 3, 12, 0, 0, 0, 0, time.UTC),
		LogoColor:       "white",
	}

	want := "black Northline Cap with secondary colors white, red, included in the catalog in the year 2024"
	if got := product.Description(); got != want {
		t.Fatalf("description want %q got %q", want, got)
	}
}

func TestTshirtDescriptionIncludesSizeAndComposition(t *testing.T) {
	product := &Product{
		Kind:            constants.ProductKindTshirt,
		MainColor:       "white",
		SecondaryColors: "green",
		Brand:           "Fieldhouse",
		InclusionDate:   time.Date(2024, 5, 30, 0, 0, 0, 0, time.UTC),
		Size:            "M",
		Composition:     JSON{"polyester": 20.0, "cotton": 80.0},
	}

	want := "white Fieldhouse Tshirt with secondary colors green, included in the catalog in the year 2024, size M, composition cotton: 80%, polyester: 20%"
	if got := product.Description(); got != want {
		t.Fatalf("description want %q got %q", want, got)
	}
}

func TestCompositionDisplayStableOrder(t *testing.T) {
	product := &Product{
		Kind:        constants.ProductKindTshirt,
		Composition: JSON{"wool": 10.0, "cotton": 50.0, "linen": 40.0},
	}

	want := "cotton: 50%, linen: 40%, wool: 10%"
	for i := 0; i < 5; i++ {
		if got := product.CompositionDisplay(); got != want {
			t.Fatalf("composition display want %q got %q", want, got)
		}
	}
}

func TestCompositionDisplayEmpty(t *testing.T) {
	product := &Product{Kind: constants.ProductKindTshirt}
	if got := product.CompositionDisplay(); got != "" {
		t.Fatalf("composition display want empty got %q", got)
	}
}

func TestDateOfTruncatesToUTCDay(t *testing.T) {
	loc := time.FixedZone("UTC+8", 8*3600)
	at := time.Date(2024, 6, 1, 2, 30, 0, 0, loc)

	got := DateOf(at)
	want := time.Date(2024, 5, 31, 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Fatalf("date want %v got %v", want, got)
	}
}

func TestMoneyMarshalTwoDecimals(t *testing.T) {
	money := NewMoneyFromDecimal(decimal.NewFromFloat(19.9))
	raw, err := money.MarshalJSON()
	if err != nil {
		t.Fatalf("marshal money failed: %v", err)
	}
	if string(raw) != `"19.90"` {
		t.Fatalf("money json want %q got %q", `"19.90"`, string(raw))
	}
}

func TestMoneyUnmarshalAcceptsStringNumberAndNull(t *testing.T) {
	cases := []struct {
		raw  string
		want string
	}{
		{`"19.9"`, "19.90"},
		{`32.456`, "32.46"},
		{`null`, "0.00"},
	}
	for _, tc := range cases {
		var money Money
		if err := money.UnmarshalJSON([]byte(tc.raw)); err != nil {
			t.Fatalf("unmarshal %s failed: %v", tc.raw, err)
		}
		if money.String() != tc.want {
			t.Fatalf("money from %s want %s got %s", tc.raw, tc.want, money.String())
		}
	}
}
