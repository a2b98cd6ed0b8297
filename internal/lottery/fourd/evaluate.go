package fourd

import (
	"github.com/shopspring/decimal"

	"github.com/radieske/lottery-ticket-checker/internal/lottery"
)

// EvaluateBet confere uma linha contra o índice do sorteio.
// BestTier considera acertos nominais mesmo quando a faixa não paga.
func EvaluateBet(line int, b Bet, ix Index) lottery.LineResult {
	covered := Expand(b)
	res := lottery.LineResult{
		Label:        b.label,
		Variant:      b.variant.String(),
		Base:         b.Base(),
		CoveredCount: len(covered),
		Payout:       decimal.Zero,
	}

	best := TierNone
	for _, n := range covered {
		t, ok := ix.Lookup(n)
		if !ok {
			continue
		}
		if best == TierNone || t < best {
			best = t
		}
		for _, st := range []StakeType{Big, Small} {
			stake := b.big
			if st == Small {
				stake = b.small
			}
			if !stake.IsPositive() {
				continue
			}
			m, ok := Multiplier(b.variant, st, b.number, t)
			if !ok {
				continue
			}
			amount := stake.Mul(decimal.NewFromInt(m)).Round(2)
			res.Wins = append(res.Wins, lottery.Win{
				Line:       line,
				Label:      b.label,
				Matched:    n,
				Tier:       t.String(),
				Rank:       t.Rank(),
				StakeType:  st.String(),
				Stake:      stake,
				Multiplier: m,
				Amount:     amount,
			})
			res.Payout = res.Payout.Add(amount)
		}
	}

	if best != TierNone {
		res.BestTier = best.String()
		res.BestRank = best.Rank()
	}
	res.Payout = res.Payout.Round(2)
	return res
}
