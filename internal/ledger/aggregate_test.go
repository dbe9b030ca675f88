package ledger

import "testing"

func TestAggregate(t *testing.T) {
	positions := []GroupPosition{
		{GroupID: "g1", GroupName: "Trip", Balance: UserBalance{Owed: d("75"), Owes: d("0"), NetBalance: d("75")}},
		{GroupID: "g2", GroupName: "Flat", Balance: UserBalance{Owed: d("0"), Owes: d("20.5"), NetBalance: d("-20.5")}},
		{GroupID: "g3", GroupName: "Lunch", Balance: UserBalance{Owed: d("0"), Owes: d("0"), NetBalance: d("0")}},
	}

	summary := Aggregate("alice", positions)

	if summary.UserID != "alice" {
		t.Errorf("user id = %q, want alice", summary.UserID)
	}
	assertAmount(t, "total owed", summary.TotalOwed, "75")
	assertAmount(t, "total owes", summary.TotalOwes, "20.50")
	assertAmount(t, "net", summary.Net, "54.50")
	if len(summary.Groups) != 3 {
		t.Errorf("expected 3 groups, got %d", len(summary.Groups))
	}
}

func TestAggregate_NoGroups(t *testing.T) {
	summary := Aggregate("alice", nil)
	assertAmount(t, "total owed", summary.TotalOwed, "0")
	assertAmount(t, "total owes", summary.TotalOwes, "0")
	assertAmount(t, "net", summary.Net, "0")
}
