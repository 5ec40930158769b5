package pricing

import (
	"math"
	"testing"

	"github.com/fretehub/fretehub/internal/cep"
)

var (
	saoPaulo   = &cep.Address{CEP: "01001-000", City: "São Paulo", State: "SP"}
	campinas   = &cep.Address{CEP: "13010-001", City: "Campinas", State: "SP"}
	curitiba   = &cep.Address{CEP: "80010-000", City: "Curitiba", State: "PR"}
	saoPauloB  = &cep.Address{CEP: "01310-100", City: "São Paulo", State: "SP"}
)

func TestBaseTierSameCity(t *testing.T) {
	e := NewEstimator()
	for i := 0; i < 200; i++ {
		price := e.Estimate(saoPaulo, saoPauloB, nil)
		if price < 8 || price >= 15 {
			t.Fatalf("same-city price %v outside [8, 15)", price)
		}
	}
}

func TestBaseTierSameState(t *testing.T) {
	e := NewEstimator()
	for i := 0; i < 200; i++ {
		price := e.Estimate(saoPaulo, campinas, nil)
		if price < 16 || price >= 45 {
			t.Fatalf("same-state price %v outside [16, 45)", price)
		}
	}
}

func TestBaseTierInterstate(t *testing.T) {
	e := NewEstimator()
	for i := 0; i < 200; i++ {
		price := e.Estimate(saoPaulo, curitiba, nil)
		if price < 45 || price >= 100 {
			t.Fatalf("interstate price %v outside [45, 100)", price)
		}
	}
}

func TestDimensionMultiplier(t *testing.T) {
	tests := []struct {
		name string
		dims *Dimensions
		want float64
	}{
		{"nil dims", nil, 1},
		{"light small package", &Dimensions{WeightKg: 1, WidthCm: 10, HeightCm: 10, DepthCm: 10}, 1},
		{"2kg adds 0.03", &Dimensions{WeightKg: 2}, 1.03},
		{"volume 6000 adds 0.01", &Dimensions{WidthCm: 10, HeightCm: 10, DepthCm: 60}, 1.01},
		{"weight and volume combine", &Dimensions{WeightKg: 2, WidthCm: 10, HeightCm: 10, DepthCm: 60}, 1.04},
		{"missing side skips volume", &Dimensions{WidthCm: 100, HeightCm: 100}, 1},
		{"cap at 3", &Dimensions{WeightKg: 500}, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DimensionMultiplier(tt.dims)
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("DimensionMultiplier() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestEstimateTwoDecimalRounding(t *testing.T) {
	e := NewEstimator()
	for i := 0; i < 200; i++ {
		price := e.Estimate(saoPaulo, curitiba, &Dimensions{WeightKg: 3.7, WidthCm: 11, HeightCm: 13, DepthCm: 47})
		cents := math.Round(price * 100)
		if math.Abs(price*100-cents) > 1e-9 {
			t.Fatalf("price %v not rounded to two decimals", price)
		}
	}
}

func TestSeededEstimatorIsReproducible(t *testing.T) {
	dims := &Dimensions{WeightKg: 2}
	a := NewSeededEstimator(42).Estimate(saoPaulo, curitiba, dims)
	b := NewSeededEstimator(42).Estimate(saoPaulo, curitiba, dims)
	if a != b {
		t.Fatalf("same seed gave %v and %v", a, b)
	}
}

func TestNewQuoteFields(t *testing.T) {
	e := NewSeededEstimator(7)
	quote := e.NewQuote(saoPaulo, curitiba, nil)

	if quote.ID == "" || quote.CreatedAt.IsZero() {
		t.Error("quote identity and timestamp must be set")
	}
	if quote.OriginCEP != "01001000" {
		t.Errorf("expected normalized origin CEP, got %s", quote.OriginCEP)
	}
	if quote.OriginCity != "São Paulo" || quote.DestState != "PR" {
		t.Errorf("unexpected quote locations: %+v", quote)
	}
	if quote.Value < 45 || quote.Value >= 100 {
		t.Errorf("interstate quote %v outside [45, 100)", quote.Value)
	}
}
