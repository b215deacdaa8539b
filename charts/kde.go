package charts

import (
	"math"

	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"
)

// KDE is a one-dimensional Gaussian kernel density estimate.
type KDE struct {
	samples   []float64
	bandwidth float64
}

// NewKDE fits a Gaussian KDE with Scott's rule bandwidth. It returns false
// when the samples have fewer than two distinct values.
func NewKDE(samples []float64) (*KDE, bool) {
	if distinct(samples) < 2 {
		return nil, false
	}
	sd := stat.StdDev(samples, nil)
	bw := sd * math.Pow(float64(len(samples)), -1.0/5.0)
	if bw <= 0 || math.IsNaN(bw) {
		return nil, false
	}
	return &KDE{samples: samples, bandwidth: bw}, true
}

// Bandwidth is the kernel standard deviation.
func (k *KDE) Bandwidth() float64 { return k.bandwidth }

// Density evaluates the estimate at x. It integrates to one.
func (k *KDE) Density(x float64) float64 {
	kernel := distuv.Normal{Mu: 0, Sigma: k.bandwidth}
	var sum float64
	for _, s := range k.samples {
		sum += kernel.Prob(x - s)
	}
	return sum / float64(len(k.samples))
}

func distinct(vs []float64) int {
	seen := make(map[float64]struct{}, len(vs))
	for _, v := range vs {
		seen[v] = struct{}{}
		if len(seen) >= 2 {
			return len(seen)
		}
	}
	return len(seen)
}
