package fourd

// Tier é a faixa de prêmio 4D; o valor é o rank (1 = melhor)
type Tier int

const (
	TierNone Tier = iota
	TierFirst
	TierSecond
	TierThird
	TierStarter
	TierConsolation

	tierCount
)

var tierNames = [tierCount]string{
	TierFirst:       "first",
	TierSecond:      "second",
	TierThird:       "third",
	TierStarter:     "starter",
	TierConsolation: "consolation",
}

func (t Tier) String() string {
	if t <= TierNone || t >= tierCount {
		return ""
	}
	return tierNames[t]
}

func (t Tier) Rank() int { return int(t) }

// Pattern é a assinatura de dígitos usada pela tabela iBet
type Pattern int

const (
	Pattern4Diff Pattern = iota
	Pattern2Same
	Pattern2Pairs
	Pattern3Same
	PatternAllSame
)

func (p Pattern) String() string {
	return [...]string{"4diff", "2same", "2pairs", "3same", "allsame"}[p]
}

// ClassifyPattern agrupa os dígitos pela frequência
func ClassifyPattern(number string) Pattern {
	var freq [10]int
	for i := 0; i < len(number); i++ {
		freq[number[i]-'0']++
	}
	var maxF, pairs int
	for _, f := range freq {
		if f > maxF {
			maxF = f
		}
		if f == 2 {
			pairs++
		}
	}
	switch {
	case maxF == 1:
		return Pattern4Diff
	case maxF == 2 && pairs == 2:
		return Pattern2Pairs
	case maxF == 2:
		return Pattern2Same
	case maxF == 3:
		return Pattern3Same
	}
	return PatternAllSame
}

// Multiplicadores por $1. Zero significa "sem prêmio nessa faixa".
var (
	standardBig   = [tierCount]int64{TierFirst: 2000, TierSecond: 1000, TierThird: 490, TierStarter: 250, TierConsolation: 60}
	standardSmall = [tierCount]int64{TierFirst: 3000, TierSecond: 2000, TierThird: 800}

	// allsame (ex.: 1111) não tem linha: paga zero
	ibetBig = [PatternAllSame][tierCount]int64{
		Pattern4Diff:  {TierFirst: 83, TierSecond: 41, TierThird: 20, TierStarter: 10, TierConsolation: 3},
		Pattern2Same:  {TierFirst: 166, TierSecond: 83, TierThird: 40, TierStarter: 20, TierConsolation: 6},
		Pattern2Pairs: {TierFirst: 335, TierSecond: 168, TierThird: 85, TierStarter: 41, TierConsolation: 10},
		Pattern3Same:  {TierFirst: 500, TierSecond: 250, TierThird: 127, TierStarter: 62, TierConsolation: 15},
	}
	ibetSmall = [PatternAllSame][tierCount]int64{
		Pattern4Diff:  {TierFirst: 125, TierSecond: 83, TierThird: 33},
		Pattern2Same:  {TierFirst: 250, TierSecond: 167, TierThird: 66},
		Pattern2Pairs: {TierFirst: 500, TierSecond: 333, TierThird: 133},
		Pattern3Same:  {TierFirst: 750, TierSecond: 500, TierThird: 200},
	}
)

// StakeType distingue aposta Big de Small
type StakeType int

const (
	Big StakeType = iota
	Small
)

func (s StakeType) String() string {
	if s == Small {
		return "small"
	}
	return "big"
}

// Multiplier devolve o multiplicador da faixa; ok=false quando a faixa não paga.
// Para iBet o padrão vem do número base da aposta.
func Multiplier(v Variant, stake StakeType, base string, t Tier) (int64, bool) {
	if t <= TierNone || t >= tierCount {
		return 0, false
	}
	var m int64
	if v == IBet {
		p := ClassifyPattern(base)
		if p == PatternAllSame {
			return 0, false
		}
		if stake == Small {
			m = ibetSmall[p][t]
		} else {
			m = ibetBig[p][t]
		}
	} else if stake == Small {
		m = standardSmall[t]
	} else {
		m = standardBig[t]
	}
	return m, m > 0
}
