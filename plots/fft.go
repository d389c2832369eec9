// SPDX-License-Identifier: MIT

package plots

import (
	"fmt"

	"gonum.org/v1/gonum/dsp/fourier"
)

// spectrum transforms y, sampled at the spacing of x, after padding pad
// zeros on both ends. FFTReal returns the non-negative half in FFT order.
// FFTComplex returns all n coefficients shifted into ascending frequency
// order (zero frequency at index n/2), not the raw FFT order.
func spectrum(x, y []float64, mode FFTMode, pad int) ([]float64, []complex128, error) {
	if len(x) < 2 || len(x) != len(y) {
		return nil, nil, fmt.Errorf("fft of %d samples over %d x values: %w", len(y), len(x), ErrShape)
	}
	d := x[1] - x[0]
	n := len(y) + 2*pad
	buf := make([]float64, n)
	copy(buf[pad:], y)

	if mode == FFTReal {
		fft := fourier.NewFFT(n)
		coeff := fft.Coefficients(nil, buf)
		freq := make([]float64, len(coeff))
		for i := range freq {
			freq[i] = fft.Freq(i) / d
		}
		return freq, coeff, nil
	}

	seq := make([]complex128, n)
	for i, v := range buf {
		seq[i] = complex(v, 0)
	}
	coeff := fourier.NewCmplxFFT(n).Coefficients(nil, seq)
	freq := make([]float64, n)
	out := make([]complex128, n)
	for j := range out {
		k := (j + n - n/2) % n
		out[j] = coeff[k]
		freq[j] = float64(fftIndex(k, n)) / (float64(n) * d)
	}

	return freq, out, nil
}

// fftIndex returns the signed frequency index of coefficient k.
func fftIndex(k, n int) int {
	if k <= (n-1)/2 {
		return k
	}
	return k - n
}
