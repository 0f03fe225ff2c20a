package indicator

// MACD = EMA(short) - EMA(long), Signal = EMA(MACD, signal).
// Значения считаются с первой свечи, но MACD считается определённым только
// с индекса long-1, а Signal — с long+signal-1: раньше это прогрев затравки.
func MACD(values []float64, short, long, signal int) (macd Series, sig Series) {
	n := len(values)
	macd = newSeries("MACD", n)
	sig = newSeries("Signal", n)
	if n == 0 || short <= 0 || long <= 0 || signal <= 0 {
		return macd, sig
	}

	fast := EMA(values, short)
	slow := EMA(values, long)
	for i := range values {
		macd.Values[i] = fast[i] - slow[i]
	}
	copy(sig.Values, EMA(macd.Values, signal))

	macd.From = clampFrom(long-1, n)
	sig.From = clampFrom(long+signal-1, n)
	return macd, sig
}

func clampFrom(from, n int) int {
	if from > n {
		return n
	}
	return from
}
