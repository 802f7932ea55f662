package stats

// Direction sentido de un valor atípico.
type Direction string

const (
	Low  Direction = "bajo"
	High Direction = "alto"
)

// MinOutlierSample tamaño mínimo de muestra para detectar atípicos.
const MinOutlierSample = 3

// Bounds límites IQR: [Q1 - 1.5*IQR, Q3 + 1.5*IQR].
type Bounds struct {
	Q1, Q3, IQR  float64
	Lower, Upper float64
}

// IQRBounds calcula los límites de Tukey. ok es false si la muestra es menor a
// MinOutlierSample o si IQR == 0 (distribución degenerada).
func IQRBounds(xs []float64) (Bounds, bool) {
	if len(xs) < MinOutlierSample {
		return Bounds{}, false
	}
	q1 := Percentile(xs, 25)
	q3 := Percentile(xs, 75)
	iqr := q3 - q1
	if iqr == 0 {
		return Bounds{}, false
	}
	return Bounds{
		Q1:    q1,
		Q3:    q3,
		IQR:   iqr,
		Lower: q1 - 1.5*iqr,
		Upper: q3 + 1.5*iqr,
	}, true
}

// Classify devuelve Low, High o "" si x está dentro de los límites.
func (b Bounds) Classify(x float64) Direction {
	switch {
	case x < b.Lower:
		return Low
	case x > b.Upper:
		return High
	}
	return ""
}
