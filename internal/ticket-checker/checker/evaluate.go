package checker

import (
	"fmt"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/radieske/lottery-ticket-checker/internal/lottery"
	"github.com/radieske/lottery-ticket-checker/internal/lottery/fourd"
	"github.com/radieske/lottery-ticket-checker/internal/lottery/toto"
)

// PreparedDraw é um sorteio validado uma vez e reutilizado por todos os bilhetes do lote
type PreparedDraw struct {
	Draw lottery.Draw

	fourd fourd.Index
	toto  toto.PreparedDraw
}

// Prepare valida o resultado conforme o jogo do sorteio
func Prepare(d lottery.Draw) (PreparedDraw, error) {
	game, err := lottery.ParseGame(string(d.Game))
	if err != nil {
		return PreparedDraw{}, fmt.Errorf("%w: %v", lottery.ErrMalformedDraw, err)
	}
	d.Game = game

	p := PreparedDraw{Draw: d}
	switch game {
	case lottery.GameFourD:
		p.fourd, err = fourd.PrepareDraw(d.Result)
	case lottery.GameToto:
		p.toto, err = toto.PrepareDraw(d.Result)
	}
	if err != nil {
		return PreparedDraw{}, fmt.Errorf("draw %s: %w", d.ID, err)
	}
	return p, nil
}

// Evaluate confere um bilhete contra um sorteio cru
func Evaluate(t lottery.Ticket, d lottery.Draw) (lottery.CheckResult, error) {
	p, err := Prepare(d)
	if err != nil {
		return lottery.CheckResult{}, err
	}
	return p.Evaluate(t)
}

// Evaluate confere um bilhete contra o sorteio já preparado. Função pura.
func (p PreparedDraw) Evaluate(t lottery.Ticket) (lottery.CheckResult, error) {
	game, err := lottery.ParseGame(string(t.Game))
	if err != nil || game != p.Draw.Game {
		return lottery.CheckResult{}, fmt.Errorf("%w: ticket %s is %q, draw %s is %s",
			lottery.ErrGameMismatch, t.ID, t.Game, p.Draw.ID, p.Draw.Game)
	}

	var lines []lottery.LineResult
	switch game {
	case lottery.GameFourD:
		bets, err := fourd.DecodeBets(t.Details)
		if err != nil {
			return lottery.CheckResult{}, fmt.Errorf("ticket %s: %w", t.ID, err)
		}
		for i, b := range bets {
			lines = append(lines, fourd.EvaluateBet(i, b, p.fourd))
		}
	case lottery.GameToto:
		entries, err := toto.DecodeEntries(t.Details)
		if err != nil {
			return lottery.CheckResult{}, fmt.Errorf("ticket %s: %w", t.ID, err)
		}
		for i, e := range entries {
			lr, err := toto.EvaluateEntry(i, e, p.toto)
			if err != nil {
				return lottery.CheckResult{}, fmt.Errorf("ticket %s entry %d: %w", t.ID, i, err)
			}
			lines = append(lines, lr)
		}
	}

	return aggregate(t, p.Draw, lines), nil
}

// aggregate soma as linhas e escolhe a melhor faixa (menor rank)
func aggregate(t lottery.Ticket, d lottery.Draw, lines []lottery.LineResult) lottery.CheckResult {
	res := lottery.CheckResult{
		TicketID:     t.ID,
		DrawID:       d.ID,
		UserID:       t.UserID,
		Game:         d.Game,
		TotalPayout:  decimal.Zero,
		CountsByTier: map[string]int{},
		Breakdown:    []lottery.Win{},
		Lines:        lines,
	}

	type hit struct {
		line    int
		matched string
	}
	seen := make(map[hit]struct{})

	for _, l := range lines {
		res.TotalPayout = res.TotalPayout.Add(l.Payout)
		if l.BestRank > 0 && (res.BestRank == 0 || l.BestRank < res.BestRank) {
			res.BestRank = l.BestRank
			res.BestTier = l.BestTier
		}
		for _, w := range l.Wins {
			res.Breakdown = append(res.Breakdown, w)
			// big e small do mesmo número contam uma vez só
			h := hit{w.Line, w.Matched}
			if _, dup := seen[h]; dup {
				continue
			}
			seen[h] = struct{}{}
			res.CountsByTier[w.Tier]++
		}
	}

	sort.SliceStable(res.Breakdown, func(i, j int) bool {
		a, b := res.Breakdown[i], res.Breakdown[j]
		if a.Line != b.Line {
			return a.Line < b.Line
		}
		if a.Matched != b.Matched {
			return a.Matched < b.Matched
		}
		return a.StakeType < b.StakeType
	})

	res.TotalPayout = res.TotalPayout.Round(2)
	// TOTO ganha com qualquer combinação premiada, mesmo sem valor divulgado
	if d.Game == lottery.GameToto {
		res.IsWin = len(res.Breakdown) > 0
	} else {
		res.IsWin = res.TotalPayout.IsPositive()
	}
	return res
}
