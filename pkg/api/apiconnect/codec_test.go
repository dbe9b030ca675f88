package apiconnect

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"connectrpc.com/connect"

	"github.com/mmynk/settleup/pkg/api"
)

func TestCodec(t *testing.T) {
	var codec Codec

	if codec.Name() != "json" {
		t.Errorf("Name: expected 'json', got '%s'", codec.Name())
	}

	data, err := codec.Marshal(&api.GetGroupRequest{GroupID: "g1"})
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}
	if string(data) != `{"groupId":"g1"}` {
		t.Errorf("Marshal: got %s", data)
	}

	var req api.GetGroupRequest
	if err := codec.Unmarshal(data, &req); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}
	if req.GroupID != "g1" {
		t.Errorf("GroupID: expected 'g1', got '%s'", req.GroupID)
	}

	if name := (Codec{name: codecNameCharset}).Name(); name != "json; charset=utf-8" {
		t.Errorf("Name: expected 'json; charset=utf-8', got '%s'", name)
	}

	var empty api.ListGroupsRequest
	if err := codec.Unmarshal(nil, &empty); err != nil {
		t.Errorf("Unmarshal of empty body failed: %v", err)
	}
}

func TestTrimBaseURL(t *testing.T) {
	if got := trimBaseURL("http://localhost:8080/"); got != "http://localhost:8080" {
		t.Errorf("trimBaseURL: got %s", got)
	}
}

// echoGroups answers CreateGroup with the requested title. Other methods are
// left to the nil embedded interface.
type echoGroups struct {
	GroupServiceHandler
}

func (echoGroups) CreateGroup(_ context.Context, req *connect.Request[api.CreateGroupRequest]) (*connect.Response[api.CreateGroupResponse], error) {
	return connect.NewResponse(&api.CreateGroupResponse{Group: &api.Group{ID: "g1", Title: req.Msg.Title}}), nil
}

func TestGroupServiceHandler_JSONContentTypes(t *testing.T) {
	mux := http.NewServeMux()
	mux.Handle(NewGroupServiceHandler(echoGroups{}))
	server := httptest.NewServer(mux)
	defer server.Close()

	for _, contentType := range []string{
		"application/json",
		"application/json; charset=utf-8",
	} {
		t.Run(contentType, func(t *testing.T) {
			body := strings.NewReader(`{"title":"Trip","amount":"12.50"}`)
			resp, err := http.Post(server.URL+GroupServiceCreateGroupProcedure, contentType, body)
			if err != nil {
				t.Fatalf("POST failed: %v", err)
			}
			defer resp.Body.Close()

			data, _ := io.ReadAll(resp.Body)
			if resp.StatusCode != http.StatusOK {
				t.Fatalf("status: expected 200, got %d: %s", resp.StatusCode, data)
			}

			var out api.CreateGroupResponse
			if err := json.Unmarshal(data, &out); err != nil {
				t.Fatalf("failed to decode response %s: %v", data, err)
			}
			if out.Group == nil || out.Group.Title != "Trip" {
				t.Errorf("unexpected response: %s", data)
			}
		})
	}
}
