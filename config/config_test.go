package config

import (
	"errors"
	"strings"
	"testing"

	"go.uber.org/multierr"
)

func TestValidateSuccess(t *testing.T) {
	cfg := DefaultPathConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
}

func TestValidateCollectsEveryProblem(t *testing.T) {
	cfg := PathConfig{
		StartBuyPrice:  99,
		StartSellPrice: 100, // crossed
		KeyPrecision:   -1,
		Indicators: IndicatorDefaults{
			RSIPeriod:       0,
			MACDFast:        26,
			MACDSlow:        12,
			MACDSignal:      9,
			BollingerPeriod: 20,
			BollingerStdDev: 2,
			ATRPeriod:       14,
		},
	}
	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected validation errors")
	}
	if !errors.Is(err, ErrInvalid) {
		t.Fatalf("expected ErrInvalid, got %v", err)
	}
	if n := len(multierr.Errors(err)); n != 4 {
		t.Fatalf("expected 4 problems, got %d: %v", n, err)
	}
}

func TestValidateRejectsZeroKeyPrecision(t *testing.T) {
	cfg := DefaultPathConfig()
	cfg.KeyPrecision = 0
	err := cfg.Validate()
	if !errors.Is(err, ErrInvalid) {
		t.Fatalf("expected ErrInvalid for zero key precision, got %v", err)
	}
	if !strings.Contains(err.Error(), "1..15") {
		t.Fatalf("unexpected message: %v", err)
	}
}

func TestReplayConfigRejectsEqualThresholds(t *testing.T) {
	cfg := DefaultReplayConfig()
	cfg.RSIOverbought = cfg.RSIOversold
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected validation error for equal RSI thresholds")
	}
}

func TestLoadScenario(t *testing.T) {
	doc := `
start_buy_price: 100
start_sell_price: 99
seed: 42
regimes:
  calm:  {kind: bull_quiet}
  crash: {kind: dead_cat_bounce, params: {drop_rate: 0.4, num_days: 20}}
assignments:
  - {regime: calm,  start: 0,  end: 50}
  - {regime: crash, start: 50, end: 70}
  - {regime: calm,  start: 70, end: 90}
`
	sc, err := LoadScenario(strings.NewReader(doc))
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if sc.Seed == nil || *sc.Seed != 42 {
		t.Fatalf("seed not decoded: %v", sc.Seed)
	}
	if len(sc.Assignments) != 3 {
		t.Fatalf("expected 3 assignments, got %d", len(sc.Assignments))
	}
	if got := sc.Regimes["crash"].Params["drop_rate"]; got != 0.4 {
		t.Fatalf("expected drop_rate 0.4, got %v", got)
	}
}

func TestLoadScenarioRejectsDanglingRegime(t *testing.T) {
	doc := `
start_buy_price: 100
start_sell_price: 99
regimes:
  calm: {kind: gbm}
assignments:
  - {regime: storm, start: 0, end: 10}
`
	if _, err := LoadScenario(strings.NewReader(doc)); !errors.Is(err, ErrInvalid) {
		t.Fatalf("expected ErrInvalid for unknown regime, got %v", err)
	}
}

func TestLoadScenarioRejectsUnknownFields(t *testing.T) {
	doc := "start_buy_price: 100\nstart_sell_price: 99\nvolatility: 3\n"
	if _, err := LoadScenario(strings.NewReader(doc)); err == nil {
		t.Fatal("expected decode error for unknown field")
	}
}
