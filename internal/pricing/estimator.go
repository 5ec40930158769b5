// Package pricing computes freight quotes from two resolved addresses and
// optional package dimensions. Quotes are ephemeral and never persisted.
package pricing

import (
	"math"
	"math/rand/v2"

	"github.com/fretehub/fretehub/internal/cep"
)

// Base price tiers, half-open ranges in BRL.
const (
	sameCityMin   = 8
	sameCityMax   = 15
	sameStateMin  = 16
	sameStateMax  = 45
	interstateMin = 45
	interstateMax = 100
)

const (
	weightStepPerKg   = 0.03
	volumeThresholdCm = 5000
	volumeStepPer1000 = 0.01
	multiplierCap     = 3.0
)

// Dimensions describes an optional package; zero values mean unset.
type Dimensions struct {
	WeightKg float64 `json:"weight,omitempty"`
	WidthCm  float64 `json:"width,omitempty"`
	HeightCm float64 `json:"height,omitempty"`
	DepthCm  float64 `json:"depth,omitempty"`
}

// Estimator draws a base price from a distance tier and scales it by the
// package dimensions. The default random source is unseeded, so two calls
// with the same inputs produce different prices; inject a seeded source
// when reproducibility matters.
type Estimator struct {
	randFloat func() float64
}

// NewEstimator creates an estimator backed by the shared random source.
func NewEstimator() *Estimator {
	return &Estimator{randFloat: rand.Float64}
}

// NewSeededEstimator creates a deterministic estimator for tests.
func NewSeededEstimator(seed uint64) *Estimator {
	src := rand.New(rand.NewPCG(seed, 0))
	return &Estimator{randFloat: src.Float64}
}

// Estimate returns a price rounded to two decimal places.
func (e *Estimator) Estimate(origin, dest *cep.Address, dims *Dimensions) float64 {
	base := e.basePrice(origin, dest)
	total := base * DimensionMultiplier(dims)
	return math.Round(total*100) / 100
}

func (e *Estimator) basePrice(origin, dest *cep.Address) float64 {
	switch {
	case origin.City == dest.City && origin.State == dest.State:
		return e.randIn(sameCityMin, sameCityMax)
	case origin.State == dest.State:
		return e.randIn(sameStateMin, sameStateMax)
	default:
		return e.randIn(interstateMin, interstateMax)
	}
}

// randIn draws uniformly from the half-open range [min, max).
func (e *Estimator) randIn(min, max float64) float64 {
	return min + e.randFloat()*(max-min)
}

// DimensionMultiplier computes the package scale factor, capped at 3.0.
// Weight above 1 kg adds 0.03 per extra kg; volume above 5000 cm³ adds
// 0.01 per extra 1000 cm³. Volume only counts when all three sides are set.
func DimensionMultiplier(dims *Dimensions) float64 {
	if dims == nil {
		return 1
	}

	multiplier := 1.0

	if dims.WeightKg > 1 {
		multiplier += (dims.WeightKg - 1) * weightStepPerKg
	}

	if dims.WidthCm > 0 && dims.HeightCm > 0 && dims.DepthCm > 0 {
		volume := dims.WidthCm * dims.HeightCm * dims.DepthCm
		if volume > volumeThresholdCm {
			multiplier += (volume - volumeThresholdCm) / 1000 * volumeStepPer1000
		}
	}

	return math.Min(multiplier, multiplierCap)
}
