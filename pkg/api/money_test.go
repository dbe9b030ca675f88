package api

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
)

func TestAmount_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"number", `12.5`, "12.5"},
		{"integer", `40`, "40"},
		{"numeric string", `"30.25"`, "30.25"},
		{"padded string", `" 7 "`, "7"},
		{"negative number", `-5`, "0"},
		{"negative string", `"-5"`, "0"},
		{"garbage string", `"abc"`, "0"},
		{"null", `null`, "0"},
		{"bool", `true`, "0"},
		{"object", `{"value": 3}`, "0"},
		{"high precision", `0.333333333333333333`, "0.333333333333333333"},
		{"huge exponent", `1e10000000`, "0"},
		{"very huge exponent", `1e1000000000`, "0"},
		{"huge exponent string", `"1e10000000"`, "0"},
		{"tiny exponent", `1e-10000000`, "0"},
		{"above max", `1000000000001`, "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var a Amount
			if err := json.Unmarshal([]byte(tt.input), &a); err != nil {
				t.Fatalf("Unmarshal(%s) returned error: %v", tt.input, err)
			}
			if !a.Equal(decimal.RequireFromString(tt.want)) {
				t.Errorf("Unmarshal(%s) = %s, want %s", tt.input, a.String(), tt.want)
			}
		})
	}
}

func TestAmount_InStruct(t *testing.T) {
	var bill Bill
	if err := json.Unmarshal([]byte(`{"name":"Fuel","amount":"oops","paidBy":"bob"}`), &bill); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}
	if !bill.Amount.IsZero() || bill.PaidBy != "bob" {
		t.Errorf("unexpected bill: %+v", bill)
	}
}

func TestMoney_RoundTrip(t *testing.T) {
	in := MemberBalance{ID: "bob", Balance: NewMoney(decimal.RequireFromString("-12.5"))}

	data, err := json.Marshal(in)
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}

	want := `{"id":"bob","name":"","isAdmin":false,"balance":-12.50,"amountOwed":0.00,"amountOwing":0.00}`
	if string(data) != want {
		t.Errorf("Marshal = %s, want %s", data, want)
	}

	var out MemberBalance
	if err := json.Unmarshal(data, &out); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}
	if !out.Balance.Equal(in.Balance.Decimal) {
		t.Errorf("Balance = %s, want %s", out.Balance, in.Balance)
	}
}

func TestMoney_UnmarshalRejectsGarbage(t *testing.T) {
	var m Money
	if err := json.Unmarshal([]byte(`"abc"`), &m); err == nil {
		t.Error("expected error for non-numeric money")
	}
}

func TestMoney_UnmarshalRejectsOutOfRange(t *testing.T) {
	var m Money
	if err := json.Unmarshal([]byte(`-1e10000000`), &m); err == nil {
		t.Error("expected error for out-of-range money")
	}
}

func TestNewAmount_ClampsNegative(t *testing.T) {
	if a := NewAmount(decimal.NewFromInt(-3)); !a.IsZero() {
		t.Errorf("NewAmount(-3) = %s, want 0", a)
	}
	if a := AmountFromString("4.50"); !a.Equal(decimal.RequireFromString("4.5")) {
		t.Errorf("AmountFromString(4.50) = %s, want 4.5", a)
	}
}
