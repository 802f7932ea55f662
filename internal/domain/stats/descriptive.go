// Package stats contiene estadística descriptiva pura sobre float64.
// Las entradas vacías o degeneradas producen 0, nunca NaN ni error.
package stats

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Mean media aritmética; 0 para una serie vacía.
func Mean(xs []float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	return stat.Mean(xs, nil)
}

// Sum suma de la serie.
func Sum(xs []float64) float64 {
	return floats.Sum(xs)
}

// Median mediana; promedio de los dos centrales cuando n es par.
func Median(xs []float64) float64 {
	return Percentile(xs, 50)
}

// PopulationStd desviación estándar poblacional (divide por N).
func PopulationStd(xs []float64) float64 {
	if len(xs) == 0 || floats.Min(xs) == floats.Max(xs) {
		return 0
	}
	_, std := stat.PopMeanStdDev(unitScaled(xs), nil)
	return finite(std * floats.Norm(xs, math.Inf(1)))
}

// Min mínimo de la serie; 0 si está vacía.
func Min(xs []float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	return floats.Min(xs)
}

// Max máximo de la serie; 0 si está vacía.
func Max(xs []float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	return floats.Max(xs)
}

// Percentile percentil p (0..100) con interpolación lineal entre estadísticos de orden:
// pos = (n-1)*p/100, resultado = s[i] + (s[i+1]-s[i])*(pos-i).
// No modifica xs.
func Percentile(xs []float64, p float64) float64 {
	n := len(xs)
	if n == 0 {
		return 0
	}
	if p <= 0 {
		return Min(xs)
	}
	if p >= 100 {
		return Max(xs)
	}
	s := make([]float64, n)
	copy(s, xs)
	sort.Float64s(s)

	pos := float64(n-1) * p / 100
	lo := int(math.Floor(pos))
	hi := int(math.Ceil(pos))
	if lo == hi {
		return s[lo]
	}
	return s[lo] + (s[hi]-s[lo])*(pos-float64(lo))
}

// Pearson coeficiente de correlación de Pearson entre xs e ys.
// Devuelve 0 si hay menos de 2 pares, si las longitudes difieren o si alguna serie es constante.
func Pearson(xs, ys []float64) float64 {
	n := len(xs)
	if n < 2 || n != len(ys) {
		return 0
	}
	if floats.Min(xs) == floats.Max(xs) || floats.Min(ys) == floats.Max(ys) {
		return 0
	}
	r := stat.Correlation(unitScaled(xs), unitScaled(ys), nil)
	if math.IsNaN(r) || math.IsInf(r, 0) {
		return 0
	}
	return math.Max(-1, math.Min(1, r))
}

// unitScaled copia de xs dividida por su máximo valor absoluto, en [-1, 1].
// r y la desviación escalan linealmente, y así los cuadrados no desbordan con magnitudes grandes.
func unitScaled(xs []float64) []float64 {
	m := floats.Norm(xs, math.Inf(1))
	return floats.ScaleTo(make([]float64, len(xs)), 1/m, xs)
}

func finite(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}
