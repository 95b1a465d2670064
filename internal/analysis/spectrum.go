package analysis

import (
	"math/cmplx"

	"github.com/mjibson/go-dsp/fft"

	"github.com/san-kum/easelab/internal/capture"
	"github.com/san-kum/easelab/internal/motion"
)

// SpectrumData is the single-sided amplitude spectrum of a channel.
type SpectrumData struct {
	Freqs []float64
	Power []float64
}

// PowerSpectrum returns the magnitude of each bin up to Nyquist, with the
// mean removed so the rest offset does not swamp bin zero.
func PowerSpectrum(data []float64) []float64 {
	if len(data) < 2 {
		return nil
	}
	var mean float64
	for _, v := range data {
		mean += v
	}
	mean /= float64(len(data))

	centred := make([]float64, len(data))
	for i, v := range data {
		centred[i] = v - mean
	}

	bins := fft.FFTReal(centred)
	ps := make([]float64, len(bins)/2)
	for i := range ps {
		ps[i] = cmplx.Abs(bins[i])
	}
	return ps
}

// Spectrum analyses one channel of a capture sampled every res.Dt seconds.
func Spectrum(res *capture.Result, target int, k motion.Key) SpectrumData {
	vals := res.Series(target, k)
	ps := PowerSpectrum(vals)
	if len(ps) == 0 || res.Dt <= 0 {
		return SpectrumData{}
	}
	df := 1 / (res.Dt * float64(len(vals)))
	sp := SpectrumData{Freqs: make([]float64, len(ps)), Power: ps}
	for i := range ps {
		sp.Freqs[i] = float64(i) * df
	}
	return sp
}

// Dominant returns the strongest non-zero frequency and its magnitude.
func (s SpectrumData) Dominant() (float64, float64) {
	best := 0
	for i := 1; i < len(s.Power); i++ {
		if best == 0 || s.Power[i] > s.Power[best] {
			best = i
		}
	}
	if best == 0 {
		return 0, 0
	}
	return s.Freqs[best], s.Power[best]
}
