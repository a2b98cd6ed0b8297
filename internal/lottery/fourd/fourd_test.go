package fourd

import (
	"encoding/json"
	"errors"
	"reflect"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/radieske/lottery-ticket-checker/internal/lottery"
)

func dec(v int64) decimal.Decimal { return decimal.NewFromInt(v) }

func mustBet(t *testing.T, v Variant, n string, big, small int64) Bet {
	t.Helper()
	b, err := NewNumberBet(v, n, dec(big), dec(small))
	if err != nil {
		t.Fatalf("NewNumberBet(%s, %q): %v", v, n, err)
	}
	return b
}

func index(t *testing.T, first, second, third string, starter, consolation []string) Index {
	t.Helper()
	var r Result
	r.TopPrizes.First, r.TopPrizes.Second, r.TopPrizes.Third = first, second, third
	r.StarterPrizes, r.ConsolationPrizes = starter, consolation
	ix, err := BuildIndex(r)
	if err != nil {
		t.Fatalf("BuildIndex: %v", err)
	}
	return ix
}

func TestExpandCounts(t *testing.T) {
	cases := []struct {
		name string
		v    Variant
		n    string
		want int
	}{
		{"ordinary", Ordinary, "1234", 1},
		{"system 4diff", System, "1234", 24},
		{"system 2same", System, "1123", 12},
		{"system 2pairs", System, "1122", 6},
		{"ibet 3same", IBet, "1112", 4},
		{"ibet allsame", IBet, "7777", 1},
	}
	for _, c := range cases {
		got := Expand(mustBet(t, c.v, c.n, 1, 0))
		if len(got) != c.want {
			t.Errorf("%s: got %d numbers, want %d", c.name, len(got), c.want)
		}
		for i := 1; i < len(got); i++ {
			if got[i-1] >= got[i] {
				t.Errorf("%s: not sorted/unique at %d: %v", c.name, i, got)
				break
			}
		}
	}
}

func TestExpandRoll(t *testing.T) {
	b, err := NewRollBet(" 12x4 ", dec(1), dec(0))
	if err != nil {
		t.Fatal(err)
	}
	got := Expand(b)
	if len(got) != 10 {
		t.Fatalf("got %d, want 10", len(got))
	}
	if got[0] != "1204" || got[9] != "1294" {
		t.Errorf("unexpected roll expansion: %v", got)
	}
}

func TestNewBetValidation(t *testing.T) {
	if _, err := NewNumberBet(Ordinary, "12a4", dec(1), dec(0)); !errors.Is(err, lottery.ErrMalformedBetLine) {
		t.Errorf("12a4: want ErrMalformedBetLine, got %v", err)
	}
	if _, err := NewNumberBet(Ordinary, "123", dec(1), dec(0)); !errors.Is(err, lottery.ErrMalformedBetLine) {
		t.Errorf("123: want ErrMalformedBetLine, got %v", err)
	}
	if _, err := NewRollBet("1XX4", dec(1), dec(0)); !errors.Is(err, lottery.ErrMalformedBetLine) {
		t.Errorf("1XX4: want ErrMalformedBetLine, got %v", err)
	}
	if _, err := NewNumberBet(Ordinary, "1234", dec(-1), dec(0)); !errors.Is(err, lottery.ErrMalformedBetLine) {
		t.Errorf("negative stake: want ErrMalformedBetLine, got %v", err)
	}
}

func TestClassifyPattern(t *testing.T) {
	cases := map[string]Pattern{
		"1234": Pattern4Diff,
		"1123": Pattern2Same,
		"1122": Pattern2Pairs,
		"1112": Pattern3Same,
		"1111": PatternAllSame,
	}
	for n, want := range cases {
		if got := ClassifyPattern(n); got != want {
			t.Errorf("ClassifyPattern(%s) = %s, want %s", n, got, want)
		}
	}
}

func TestBuildIndexRejectsBadNumbers(t *testing.T) {
	var r Result
	r.TopPrizes.First, r.TopPrizes.Second, r.TopPrizes.Third = "1234", "12", "9999"
	if _, err := BuildIndex(r); !errors.Is(err, lottery.ErrMalformedDraw) {
		t.Errorf("want ErrMalformedDraw, got %v", err)
	}

	r.TopPrizes.Second = "1234"
	if _, err := BuildIndex(r); !errors.Is(err, lottery.ErrMalformedDraw) {
		t.Errorf("duplicate: want ErrMalformedDraw, got %v", err)
	}
}

func TestEvaluateOrdinaryBigAndSmall(t *testing.T) {
	ix := index(t, "1234", "5678", "9012", nil, nil)
	res := EvaluateBet(0, mustBet(t, Ordinary, "1234", 1, 1), ix)

	if !res.Payout.Equal(dec(5000)) {
		t.Errorf("payout = %s, want 5000", res.Payout)
	}
	if res.BestTier != "first" || res.BestRank != 1 {
		t.Errorf("best = %s/%d, want first/1", res.BestTier, res.BestRank)
	}
	if len(res.Wins) != 2 {
		t.Fatalf("got %d wins, want 2", len(res.Wins))
	}
}

func TestEvaluateSmallOnlyOnStarterPaysNothing(t *testing.T) {
	ix := index(t, "0001", "0002", "0003", []string{"1234"}, nil)
	res := EvaluateBet(0, mustBet(t, Ordinary, "1234", 0, 5), ix)

	if !res.Payout.IsZero() {
		t.Errorf("payout = %s, want 0", res.Payout)
	}
	if res.BestTier != "starter" {
		t.Errorf("best tier = %q, want starter", res.BestTier)
	}
	if len(res.Wins) != 0 {
		t.Errorf("wins = %d, want 0", len(res.Wins))
	}
}

func TestEvaluateIBetUsesPatternTable(t *testing.T) {
	ix := index(t, "4321", "0002", "0003", nil, []string{"1123"})

	res := EvaluateBet(0, mustBet(t, IBet, "1234", 2, 0), ix)
	if !res.Payout.Equal(dec(166)) {
		t.Errorf("4diff big first x2 = %s, want 166", res.Payout)
	}

	res = EvaluateBet(1, mustBet(t, IBet, "3211", 1, 0), ix)
	if !res.Payout.Equal(dec(6)) {
		t.Errorf("2same big consolation = %s, want 6", res.Payout)
	}

	res = EvaluateBet(2, mustBet(t, IBet, "1111", 10, 10), index(t, "1111", "0002", "0003", nil, nil))
	if !res.Payout.IsZero() || res.BestTier != "first" {
		t.Errorf("allsame: payout=%s tier=%q, want 0/first", res.Payout, res.BestTier)
	}
}

func TestEvaluateSystemCoversPermutations(t *testing.T) {
	ix := index(t, "4321", "1243", "0003", []string{"2143"}, nil)
	res := EvaluateBet(0, mustBet(t, System, "1234", 1, 0), ix)

	want := dec(2000 + 1000 + 250)
	if !res.Payout.Equal(want) {
		t.Errorf("payout = %s, want %s", res.Payout, want)
	}
	if res.CoveredCount != 24 {
		t.Errorf("covered = %d, want 24", res.CoveredCount)
	}
}

func TestEvaluateRollFractionalStake(t *testing.T) {
	ix := index(t, "0001", "0002", "1274", nil, nil)
	b, err := NewRollBet("12X4", decimal.RequireFromString("0.5"), decimal.Zero)
	if err != nil {
		t.Fatal(err)
	}
	res := EvaluateBet(0, b, ix)
	if !res.Payout.Equal(decimal.RequireFromString("245")) {
		t.Errorf("payout = %s, want 245", res.Payout)
	}
}

func TestDecodeBets(t *testing.T) {
	raw := json.RawMessage(`{"fourd_bets":[
		{"number":"1234","big_amount":1,"small_amount":null,"label":"A"},
		{"entry_type":"Roll","roll_pattern":"12x4","big_amount":"2"},
		{"bet_type":"ibet","number":"5566","small_amount":3}
	]}`)
	bets, err := DecodeBets(raw)
	if err != nil {
		t.Fatal(err)
	}
	got := []Variant{bets[0].Variant(), bets[1].Variant(), bets[2].Variant()}
	if !reflect.DeepEqual(got, []Variant{Ordinary, Roll, IBet}) {
		t.Errorf("variants = %v", got)
	}
	if bets[0].Label() != "A" || !bets[0].Small().IsZero() {
		t.Errorf("line 0 decoded wrong: label=%q small=%s", bets[0].Label(), bets[0].Small())
	}
	if bets[1].RollPattern() != "12X4" {
		t.Errorf("roll pattern = %q", bets[1].RollPattern())
	}
}

func TestDecodeBetsRejectsMixedFields(t *testing.T) {
	cases := []string{
		`{"fourd_bets":[{"entry_type":"Roll","number":"1234","roll_pattern":"12X4"}]}`,
		`{"fourd_bets":[{"number":"1234","roll_pattern":"12X4"}]}`,
		`{"fourd_bets":[{"number":"1234"}],"toto_entries":[{"numbers":[1,2,3,4,5,6]}]}`,
		`{"fourd_bets":[]}`,
		`{"fourd_bets":[{"entry_type":"Box","number":"1234"}]}`,
	}
	for _, c := range cases {
		if _, err := DecodeBets(json.RawMessage(c)); !errors.Is(err, lottery.ErrMalformedBetLine) {
			t.Errorf("%s: want ErrMalformedBetLine, got %v", c, err)
		}
	}
}
