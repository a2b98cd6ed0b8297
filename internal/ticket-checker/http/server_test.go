package httpapi

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/radieske/lottery-ticket-checker/internal/lottery"
	"github.com/radieske/lottery-ticket-checker/internal/ticket-checker/checker"
)

type runnerFake struct{ err error }

func (r runnerFake) RunBatch(_ context.Context, drawID string) (checker.Summary, error) {
	if r.err != nil {
		return checker.Summary{}, r.err
	}
	return checker.Summary{DrawID: drawID, TicketsChecked: 2, Wins: 1, TotalPayout: decimal.NewFromInt(60)}, nil
}

type sweeperFake struct{}

func (sweeperFake) CheckPending(context.Context) (checker.SweepReport, error) {
	return checker.SweepReport{DrawsFound: 1}, nil
}

type checksFake struct{}

func (checksFake) GetCheck(_ context.Context, ticketID, drawID string) (lottery.CheckResult, error) {
	if ticketID != "t1" {
		return lottery.CheckResult{}, fmt.Errorf("%w: %s", checker.ErrCheckNotFound, ticketID)
	}
	return lottery.CheckResult{TicketID: ticketID, DrawID: drawID, IsWin: true, TotalPayout: decimal.NewFromInt(5000)}, nil
}

func newAPI(runErr error) http.Handler {
	return (&API{Runner: runnerFake{err: runErr}, Sweeper: sweeperFake{}, Checks: checksFake{}}).Router()
}

func do(h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestCheckDraw(t *testing.T) {
	rec := do(newAPI(nil), http.MethodPost, "/v1/draws/d1/check", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var sum checker.Summary
	if err := json.Unmarshal(rec.Body.Bytes(), &sum); err != nil {
		t.Fatal(err)
	}
	if sum.DrawID != "d1" || sum.Wins != 1 {
		t.Errorf("got %+v", sum)
	}
}

func TestCheckDrawErrorStatus(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{fmt.Errorf("load: %w", checker.ErrDrawNotFound), http.StatusNotFound},
		{fmt.Errorf("prepare: %w", lottery.ErrMalformedDraw), http.StatusUnprocessableEntity},
		{fmt.Errorf("list tickets: boom"), http.StatusInternalServerError},
	}
	for _, c := range cases {
		if rec := do(newAPI(c.err), http.MethodPost, "/v1/draws/d1/check", ""); rec.Code != c.want {
			t.Errorf("%v: status %d, want %d", c.err, rec.Code, c.want)
		}
	}
}

func TestCheckPending(t *testing.T) {
	rec := do(newAPI(nil), http.MethodPost, "/v1/draws/check-pending", "")
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), `"draws_found":1`) {
		t.Errorf("status=%d body=%s", rec.Code, rec.Body.String())
	}
}

func TestGetCheck(t *testing.T) {
	h := newAPI(nil)
	if rec := do(h, http.MethodGet, "/v1/tickets/t1/checks/d1", ""); rec.Code != http.StatusOK {
		t.Errorf("status = %d", rec.Code)
	}
	if rec := do(h, http.MethodGet, "/v1/tickets/zz/checks/d1", ""); rec.Code != http.StatusNotFound {
		t.Errorf("missing check status = %d", rec.Code)
	}
}

func TestEvaluate(t *testing.T) {
	body := `{
		"ticket":{"id":"t1","game_type":"4D","details":{"fourd_bets":[{"number":"1234","big_amount":1,"small_amount":1}]}},
		"draw":{"id":"d1","game":"4D","result":{"top_prizes":{"first":"1234","second":"0002","third":"0003"}}}
	}`
	rec := do(newAPI(nil), http.MethodPost, "/v1/evaluate", body)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d body=%s", rec.Code, rec.Body.String())
	}
	var res lottery.CheckResult
	if err := json.Unmarshal(rec.Body.Bytes(), &res); err != nil {
		t.Fatal(err)
	}
	if !res.TotalPayout.Equal(decimal.NewFromInt(5000)) || res.BestTier != "first" {
		t.Errorf("got payout=%s tier=%s", res.TotalPayout, res.BestTier)
	}
}

func TestEvaluateMalformedTicket(t *testing.T) {
	body := `{
		"ticket":{"id":"t1","game_type":"4D","details":{"fourd_bets":[{"number":"12a4","big_amount":1}]}},
		"draw":{"id":"d1","game":"4D","result":{"top_prizes":{"first":"1234","second":"0002","third":"0003"}}}
	}`
	rec := do(newAPI(nil), http.MethodPost, "/v1/evaluate", body)
	if rec.Code != http.StatusUnprocessableEntity || !strings.Contains(rec.Body.String(), "MalformedBetLine") {
		t.Errorf("status=%d body=%s", rec.Code, rec.Body.String())
	}

	if rec := do(newAPI(nil), http.MethodPost, "/v1/evaluate", "{"); rec.Code != http.StatusBadRequest {
		t.Errorf("bad body status = %d", rec.Code)
	}
}
