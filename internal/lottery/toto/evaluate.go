package toto

import (
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/radieske/lottery-ticket-checker/internal/lottery"
)

const groupCount = 8 // grupos 1..7; índice 0 = sem prêmio

// groupTable[acertos][tem adicional]
var groupTable = [PickSize + 1][2]int{
	3: {7, 6},
	4: {5, 4},
	5: {3, 2},
	6: {1, 1},
}

// GroupName devolve "groupN"
func GroupName(g int) string {
	if g <= 0 {
		return ""
	}
	return "group" + strconv.Itoa(g)
}

// ResolveGroup conta acertos principais e adicional de uma combinação.
// O adicional é contado como veio no sorteio, mesmo se coincidir com um principal.
func ResolveGroup(combo []int, d PreparedDraw) (group, main int, hasAdditional bool) {
	for _, n := range combo {
		if n >= MinNumber && n <= MaxNumber && d.winning[n] {
			main++
		}
		if n == d.additional {
			hasAdditional = true
		}
	}
	if main > PickSize {
		main = PickSize
	}
	add := 0
	if hasAdditional {
		add = 1
	}
	return groupTable[main][add], main, hasAdditional
}

// EvaluateEntry confere todas as combinações da entrada
func EvaluateEntry(line int, e Entry, d PreparedDraw) (lottery.LineResult, error) {
	combos, err := e.Combos()
	if err != nil {
		return lottery.LineResult{}, err
	}

	res := lottery.LineResult{
		Label:        e.label,
		Variant:      e.variant.String(),
		Base:         formatCombo(e.numbers),
		CoveredCount: len(combos),
		Payout:       decimal.Zero,
	}

	for _, c := range combos {
		g, main, hasAdd := ResolveGroup(c, d)
		if g == 0 {
			continue
		}
		amount := decimal.NewFromInt(d.PrizeFor(g))
		res.Wins = append(res.Wins, lottery.Win{
			Line:          line,
			Label:         e.label,
			Matched:       formatCombo(c),
			Combination:   c,
			Tier:          GroupName(g),
			Rank:          g,
			Stake:         decimal.Zero,
			MainMatches:   main,
			HasAdditional: hasAdd,
			Amount:        amount,
		})
		res.Payout = res.Payout.Add(amount)
		if res.BestRank == 0 || g < res.BestRank {
			res.BestRank = g
			res.BestTier = GroupName(g)
		}
	}
	return res, nil
}

func formatCombo(c []int) string {
	parts := make([]string, len(c))
	for i, n := range c {
		if n < 10 {
			parts[i] = "0" + strconv.Itoa(n)
		} else {
			parts[i] = strconv.Itoa(n)
		}
	}
	return strings.Join(parts, " ")
}
