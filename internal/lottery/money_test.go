package lottery

import (
	"encoding/json"
	"testing"
)

func TestParseMoney(t *testing.T) {
	cases := []struct {
		in   string
		want int64
	}{
		{"$316,308", 316308},
		{"$1,234.99", 1234},
		{"-", 0},
		{"", 0},
		{"  $50  ", 50},
		{"N/A", 0},
	}
	for _, c := range cases {
		got, err := ParseMoney(c.in)
		if err != nil {
			t.Fatalf("ParseMoney(%q) err: %v", c.in, err)
		}
		if got != c.want {
			t.Errorf("ParseMoney(%q) = %d, want %d", c.in, got, c.want)
		}
	}
}

func TestParseMoneyInvalid(t *testing.T) {
	if _, err := ParseMoney("$1.2.3"); err == nil {
		t.Fatal("expected error for 1.2.3")
	}
}

func TestMoneyFromJSON(t *testing.T) {
	cases := []struct {
		raw  string
		want int64
	}{
		{`"$2,500"`, 2500},
		{`1500`, 1500},
		{`1500.75`, 1500},
		{`null`, 0},
		{`"-"`, 0},
	}
	for _, c := range cases {
		got, err := MoneyFromJSON(json.RawMessage(c.raw))
		if err != nil {
			t.Fatalf("MoneyFromJSON(%s) err: %v", c.raw, err)
		}
		if got != c.want {
			t.Errorf("MoneyFromJSON(%s) = %d, want %d", c.raw, got, c.want)
		}
	}
}

func TestParseGame(t *testing.T) {
	for in, want := range map[string]Game{"4d": GameFourD, "4D": GameFourD, " toto ": GameToto} {
		got, err := ParseGame(in)
		if err != nil || got != want {
			t.Errorf("ParseGame(%q) = %q, %v; want %q", in, got, err, want)
		}
	}
	if _, err := ParseGame("pools"); err == nil {
		t.Error("expected error for unknown game")
	}
}
