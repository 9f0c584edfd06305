package sentiment

// lexiconWeights is the embedded polarity word list, trimmed to vocabulary
// that actually shows up in company news.
var lexiconWeights = map[string]float64{
	// strong positive
	"soar":          0.9,
	"soars":         0.9,
	"soared":        0.9,
	"surge":         0.8,
	"surges":        0.8,
	"surged":        0.8,
	"record":        0.7,
	"breakthrough":  0.8,
	"outstanding":   0.9,
	"excellent":     0.9,
	"stellar":       0.8,
	"boom":          0.7,
	"rally":         0.7,
	"rallies":       0.7,
	"rallied":       0.7,
	"skyrocket":     0.9,
	"skyrocketed":   0.9,

	// positive
	"gain":        0.5,
	"gains":       0.5,
	"gained":      0.5,
	"rise":        0.4,
	"rises":       0.4,
	"rose":        0.4,
	"up":          0.3,
	"upgrade":     0.6,
	"upgraded":    0.6,
	"beat":        0.6,
	"beats":       0.6,
	"exceed":      0.6,
	"exceeds":     0.6,
	"exceeded":    0.6,
	"strong":      0.5,
	"stronger":    0.5,
	"growth":      0.5,
	"grow":        0.4,
	"grows":       0.4,
	"grew":        0.4,
	"profit":      0.5,
	"profits":     0.5,
	"profitable":  0.6,
	"dividend":    0.3,
	"buyback":     0.4,
	"expansion":   0.4,
	"expand":      0.3,
	"win":         0.5,
	"wins":        0.5,
	"won":         0.5,
	"award":       0.4,
	"awarded":     0.4,
	"contract":    0.2,
	"partnership": 0.3,
	"positive":    0.5,
	"optimistic":  0.5,
	"improve":     0.4,
	"improved":    0.4,
	"improvement": 0.4,
	"success":     0.6,
	"successful":  0.6,
	"good":        0.4,
	"great":       0.6,
	"best":        0.6,
	"high":        0.2,
	"higher":      0.3,
	"recovery":    0.4,
	"recover":     0.3,
	"outperform":  0.6,
	"bullish":     0.6,
	"momentum":    0.2,
	"innovative":  0.4,
	"launch":      0.2,
	"approval":    0.4,
	"approved":    0.4,

	// negative
	"loss":          -0.5,
	"losses":        -0.5,
	"lose":          -0.4,
	"lost":          -0.4,
	"fall":          -0.4,
	"falls":         -0.4,
	"fell":          -0.4,
	"drop":          -0.4,
	"drops":         -0.4,
	"dropped":       -0.4,
	"down":          -0.3,
	"downgrade":     -0.6,
	"downgraded":    -0.6,
	"miss":          -0.5,
	"misses":        -0.5,
	"missed":        -0.5,
	"weak":          -0.5,
	"weaker":        -0.5,
	"decline":       -0.4,
	"declines":      -0.4,
	"declined":      -0.4,
	"debt":          -0.3,
	"lawsuit":       -0.6,
	"sue":           -0.5,
	"sued":          -0.5,
	"fine":          -0.4,
	"fined":         -0.5,
	"penalty":       -0.5,
	"investigation": -0.5,
	"probe":         -0.4,
	"fraud":         -0.8,
	"scandal":       -0.7,
	"risk":          -0.3,
	"risks":         -0.3,
	"risky":         -0.4,
	"concern":       -0.4,
	"concerns":      -0.4,
	"warning":       -0.5,
	"warn":          -0.4,
	"warns":         -0.4,
	"warned":        -0.4,
	"cut":           -0.3,
	"cuts":          -0.3,
	"layoff":        -0.6,
	"layoffs":       -0.6,
	"negative":      -0.5,
	"pessimistic":   -0.5,
	"bad":           -0.4,
	"poor":          -0.5,
	"worst":         -0.7,
	"low":           -0.2,
	"lower":         -0.3,
	"slowdown":      -0.4,
	"slump":         -0.5,
	"bearish":       -0.6,
	"underperform":  -0.6,
	"delay":         -0.3,
	"delayed":       -0.3,
	"recall":        -0.5,
	"halt":          -0.4,
	"halted":        -0.4,
	"suspend":       -0.5,
	"suspended":     -0.5,

	// strong negative
	"plunge":     -0.8,
	"plunges":    -0.8,
	"plunged":    -0.8,
	"crash":      -0.9,
	"crashes":    -0.9,
	"crashed":    -0.9,
	"collapse":   -0.9,
	"collapsed":  -0.9,
	"bankruptcy": -0.9,
	"bankrupt":   -0.9,
	"default":    -0.7,
	"crisis":     -0.7,
	"tumble":     -0.7,
	"tumbles":    -0.7,
	"tumbled":    -0.7,
}
