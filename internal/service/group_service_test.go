package service

import (
	"context"
	"testing"

	"connectrpc.com/connect"

	"github.com/mmynk/settleup/pkg/api"
)

func TestCreateGroup(t *testing.T) {
	c := setupTestServer(t)

	resp, err := c.groups.CreateGroup(context.Background(), as("alice", &api.CreateGroupRequest{
		Title:     "Roommates",
		AdminName: "Alice",
		Members: []api.Member{
			{ID: "bob", Name: "Bob"},
			{ID: "carol", Name: "Carol"},
			{ID: "bob", Name: "Bob again"},
		},
		Amount: amount("300"),
		Bills:  []api.Bill{{Name: "Internet", Amount: amount("45.50"), PaidBy: "bob"}},
	}))
	if err != nil {
		t.Fatalf("CreateGroup failed: %v", err)
	}

	group := resp.Msg.Group
	if group.ID == "" {
		t.Error("expected non-empty group ID")
	}
	if group.AdminID != "alice" {
		t.Errorf("admin: expected 'alice', got '%s'", group.AdminID)
	}
	if len(group.Members) != 2 {
		t.Errorf("members: expected 2 after dedup, got %d", len(group.Members))
	}
	if len(group.Bills) != 1 || group.Bills[0].ID == "" {
		t.Errorf("expected one stored bill, got %+v", group.Bills)
	}
	if group.CreatedAt == 0 {
		t.Error("expected non-zero CreatedAt")
	}
	if group.Category != "Other" || group.CategoryIcon != "📝" {
		t.Errorf("category: expected default Other/📝, got %s/%s", group.Category, group.CategoryIcon)
	}
}

func TestCreateGroup_Category(t *testing.T) {
	c := setupTestServer(t)

	resp, err := c.groups.CreateGroup(context.Background(), as("alice", &api.CreateGroupRequest{
		Title:        "Lisbon",
		Category:     "Travel",
		CategoryIcon: "✈️",
	}))
	if err != nil {
		t.Fatalf("CreateGroup failed: %v", err)
	}

	got, err := c.groups.GetGroup(context.Background(), as("alice", &api.GetGroupRequest{GroupID: resp.Msg.Group.ID}))
	if err != nil {
		t.Fatalf("GetGroup failed: %v", err)
	}
	if got.Msg.Group.Category != "Travel" || got.Msg.Group.CategoryIcon != "✈️" {
		t.Errorf("category: expected Travel/✈️, got %s/%s", got.Msg.Group.Category, got.Msg.Group.CategoryIcon)
	}

	// A custom category without an icon gets the default icon
	resp, err = c.groups.CreateGroup(context.Background(), as("alice", &api.CreateGroupRequest{Title: "Club", Category: "Book club"}))
	if err != nil {
		t.Fatalf("CreateGroup failed: %v", err)
	}
	if g := resp.Msg.Group; g.Category != "Book club" || g.CategoryIcon != "📝" {
		t.Errorf("category: expected Book club/📝, got %s/%s", g.Category, g.CategoryIcon)
	}
}

func TestCreateGroup_Validation(t *testing.T) {
	c := setupTestServer(t)

	_, err := c.groups.CreateGroup(context.Background(), as("alice", &api.CreateGroupRequest{}))
	assertCode(t, err, connect.CodeInvalidArgument)

	_, err = c.groups.CreateGroup(context.Background(), as("-", &api.CreateGroupRequest{Title: "Anon"}))
	assertCode(t, err, connect.CodeUnauthenticated)
}

func TestGetGroup(t *testing.T) {
	c := setupTestServer(t)
	trip := createTrip(t, c)

	t.Run("member can read", func(t *testing.T) {
		resp, err := c.groups.GetGroup(context.Background(), as("bob", &api.GetGroupRequest{GroupID: trip.ID}))
		if err != nil {
			t.Fatalf("GetGroup failed: %v", err)
		}
		if resp.Msg.Group.Title != "Trip" {
			t.Errorf("title: expected 'Trip', got '%s'", resp.Msg.Group.Title)
		}
		if !resp.Msg.Group.Amount.Equal(amount("120").Decimal) {
			t.Errorf("amount: expected 120, got %s", resp.Msg.Group.Amount)
		}
	})

	t.Run("outsider is denied", func(t *testing.T) {
		_, err := c.groups.GetGroup(context.Background(), as("mallory", &api.GetGroupRequest{GroupID: trip.ID}))
		assertCode(t, err, connect.CodePermissionDenied)
	})

	t.Run("not found", func(t *testing.T) {
		_, err := c.groups.GetGroup(context.Background(), as("alice", &api.GetGroupRequest{GroupID: "nonexistent-id"}))
		assertCode(t, err, connect.CodeNotFound)
	})

	t.Run("missing id", func(t *testing.T) {
		_, err := c.groups.GetGroup(context.Background(), as("alice", &api.GetGroupRequest{}))
		assertCode(t, err, connect.CodeInvalidArgument)
	})
}

func TestListGroups(t *testing.T) {
	c := setupTestServer(t)
	createTrip(t, c)

	_, err := c.groups.CreateGroup(context.Background(), as("dave", &api.CreateGroupRequest{Title: "Dave's"}))
	if err != nil {
		t.Fatalf("CreateGroup failed: %v", err)
	}

	resp, err := c.groups.ListGroups(context.Background(), as("bob", &api.ListGroupsRequest{}))
	if err != nil {
		t.Fatalf("ListGroups failed: %v", err)
	}
	if len(resp.Msg.Groups) != 1 || resp.Msg.Groups[0].Title != "Trip" {
		t.Errorf("expected only Trip for bob, got %+v", resp.Msg.Groups)
	}
}

func TestAddMembers(t *testing.T) {
	c := setupTestServer(t)
	trip := createTrip(t, c)

	t.Run("admin adds", func(t *testing.T) {
		resp, err := c.groups.AddMembers(context.Background(), as("alice", &api.AddMembersRequest{
			GroupID: trip.ID,
			Members: []api.Member{{ID: "dave", Name: "Dave"}, {ID: "bob", Name: "Bob"}},
		}))
		if err != nil {
			t.Fatalf("AddMembers failed: %v", err)
		}
		if len(resp.Msg.Group.Members) != 3 {
			t.Errorf("members: expected 3, got %d", len(resp.Msg.Group.Members))
		}
	})

	t.Run("non-admin is denied", func(t *testing.T) {
		_, err := c.groups.AddMembers(context.Background(), as("bob", &api.AddMembersRequest{
			GroupID: trip.ID,
			Members: []api.Member{{ID: "erin"}},
		}))
		assertCode(t, err, connect.CodePermissionDenied)
	})

	t.Run("empty list", func(t *testing.T) {
		_, err := c.groups.AddMembers(context.Background(), as("alice", &api.AddMembersRequest{GroupID: trip.ID}))
		assertCode(t, err, connect.CodeInvalidArgument)
	})
}

func TestAddBill(t *testing.T) {
	c := setupTestServer(t)
	trip := createTrip(t, c)

	resp, err := c.groups.AddBill(context.Background(), as("bob", &api.AddBillRequest{
		GroupID: trip.ID,
		Bill:    api.Bill{Name: "Fuel", Amount: amount("90"), PaidBy: "bob"},
	}))
	if err != nil {
		t.Fatalf("AddBill failed: %v", err)
	}
	if resp.Msg.Bill.ID == "" {
		t.Error("expected bill ID to be generated")
	}

	tests := []struct {
		name   string
		amount api.Amount
	}{
		{"zero", amount("0")},
		{"negative coerced to zero", amount("-5")},
		{"garbage coerced to zero", amount("lots")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := c.groups.AddBill(context.Background(), as("bob", &api.AddBillRequest{
				GroupID: trip.ID,
				Bill:    api.Bill{Name: "Bad", Amount: tt.amount},
			}))
			assertCode(t, err, connect.CodeInvalidArgument)
		})
	}
}
