package mcp

import (
	"context"
	"database/sql"
	"encoding/json"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/hpungsan/autotag/internal/db"
	"github.com/hpungsan/autotag/internal/schema"
	"github.com/hpungsan/autotag/internal/tagging"
)

// testSetup creates a temporary database and engine for testing.
func testSetup(t *testing.T) (*sql.DB, *tagging.Engine, string) {
	t.Helper()

	tmpDir := t.TempDir()
	database, err := db.Init(tmpDir)
	if err != nil {
		t.Fatalf("failed to init db: %v", err)
	}
	t.Cleanup(func() { database.Close() })

	types := map[string]*schema.TypeDef{
		"note": {
			Fields: map[string]schema.FieldDef{
				"title": {Kind: schema.KindText, Taggable: true},
				"body":  {Kind: schema.KindText, Taggable: true},
			},
		},
	}
	eng, err := tagging.NewEngine(types, tagging.Options{})
	if err != nil {
		t.Fatalf("failed to build engine: %v", err)
	}

	return database, eng, tmpDir
}

// makeRequest creates a CallToolRequest with the given arguments.
func makeRequest(args map[string]any) mcp.CallToolRequest {
	return mcp.CallToolRequest{
		Params: mcp.CallToolParams{
			Arguments: args,
		},
	}
}

// putNote stores a note and returns its ID.
func putNote(t *testing.T, h *Handlers, title string) string {
	t.Helper()
	result, err := h.HandlePut(context.Background(), makeRequest(map[string]any{
		"type":   "note",
		"fields": map[string]any{"title": title},
	}))
	if err != nil {
		t.Fatalf("HandlePut returned error: %v", err)
	}
	if result.IsError {
		t.Fatalf("setup put failed: %v", extractErrorMessage(result))
	}
	var output map[string]any
	if err := json.Unmarshal([]byte(result.Content[0].(mcp.TextContent).Text), &output); err != nil {
		t.Fatalf("failed to unmarshal put result: %v", err)
	}
	return output["id"].(string)
}

// TestHandlePut tests the put handler.
func TestHandlePut(t *testing.T) {
	database, eng, tmpDir := testSetup(t)
	h := NewHandlers(database, eng, tmpDir)
	ctx := context.Background()

	tests := []struct {
		name      string
		args      map[string]any
		wantError bool
		errorCode string
	}{
		{
			name: "create with fields and tags",
			args: map[string]any{
				"type":   "note",
				"fields": map[string]any{"title": "Sprint Retro"},
				"tags":   []string{"meeting"},
			},
			wantError: false,
		},
		{
			name:      "create without type",
			args:      map[string]any{"fields": map[string]any{"title": "x"}},
			wantError: true,
			errorCode: "INVALID_REQUEST",
		},
		{
			name:      "create with unknown type",
			args:      map[string]any{"type": "bogus"},
			wantError: true,
			errorCode: "UNKNOWN_TYPE",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := h.HandlePut(ctx, makeRequest(tt.args))
			if err != nil {
				t.Fatalf("handler returned error: %v", err)
			}

			if tt.wantError {
				if !result.IsError {
					t.Errorf("expected error result, got success")
				}
				if tt.errorCode != "" {
					assertErrorCode(t, result, tt.errorCode)
				}
			} else if result.IsError {
				t.Errorf("expected success, got error: %v", extractErrorMessage(result))
			}
		})
	}
}

// TestHandleGet tests the get handler.
func TestHandleGet(t *testing.T) {
	database, eng, tmpDir := testSetup(t)
	h := NewHandlers(database, eng, tmpDir)
	ctx := context.Background()

	id := putNote(t, h, "Lookup Target")

	tests := []struct {
		name      string
		args      map[string]any
		wantError bool
		errorCode string
	}{
		{
			name:      "get by id",
			args:      map[string]any{"id": id},
			wantError: false,
		},
		{
			name:      "get non-existent",
			args:      map[string]any{"id": "01ARZ3NDEKTSV4RRFFQ69G5FAV"},
			wantError: true,
			errorCode: "NOT_FOUND",
		},
		{
			name:      "get without id",
			args:      map[string]any{},
			wantError: true,
			errorCode: "INVALID_REQUEST",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := h.HandleGet(ctx, makeRequest(tt.args))
			if err != nil {
				t.Fatalf("handler returned error: %v", err)
			}

			if tt.wantError {
				if !result.IsError {
					t.Errorf("expected error result, got success")
				}
				if tt.errorCode != "" {
					assertErrorCode(t, result, tt.errorCode)
				}
			} else if result.IsError {
				t.Errorf("expected success, got error: %v", extractErrorMessage(result))
			}
		})
	}
}

// TestHandleTagUntag tests the tag and untag handlers together.
func TestHandleTagUntag(t *testing.T) {
	database, eng, tmpDir := testSetup(t)
	h := NewHandlers(database, eng, tmpDir)
	ctx := context.Background()

	id := putNote(t, h, "Deployment Checklist")

	tagResult, err := h.HandleTag(ctx, makeRequest(map[string]any{
		"id":   id,
		"tags": []string{"Release Train"},
	}))
	if err != nil {
		t.Fatalf("HandleTag returned error: %v", err)
	}
	if tagResult.IsError {
		t.Fatalf("tag failed: %v", extractErrorMessage(tagResult))
	}

	var tagOutput map[string]any
	if err := json.Unmarshal([]byte(tagResult.Content[0].(mcp.TextContent).Text), &tagOutput); err != nil {
		t.Fatalf("failed to unmarshal tag result: %v", err)
	}
	tags := tagOutput["tags"].([]any)
	found := false
	for _, tag := range tags {
		if tag == "release" {
			found = true
		}
	}
	if !found {
		t.Errorf("tags = %v, want to contain release", tags)
	}

	untagResult, err := h.HandleUntag(ctx, makeRequest(map[string]any{
		"id":   id,
		"tags": []string{"release"},
	}))
	if err != nil {
		t.Fatalf("HandleUntag returned error: %v", err)
	}
	if untagResult.IsError {
		t.Fatalf("untag failed: %v", extractErrorMessage(untagResult))
	}

	// Untag without tags is rejected.
	badResult, err := h.HandleUntag(ctx, makeRequest(map[string]any{"id": id}))
	if err != nil {
		t.Fatalf("HandleUntag returned error: %v", err)
	}
	if !badResult.IsError {
		t.Error("expected error result for untag without tags")
	}
	assertErrorCode(t, badResult, "INVALID_REQUEST")
}

// TestHandleList tests the list handler.
func TestHandleList(t *testing.T) {
	database, eng, tmpDir := testSetup(t)
	h := NewHandlers(database, eng, tmpDir)
	ctx := context.Background()

	putNote(t, h, "First Entry")
	putNote(t, h, "Second Entry")

	result, err := h.HandleList(ctx, makeRequest(map[string]any{"type": "note"}))
	if err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if result.IsError {
		t.Fatalf("list failed: %v", extractErrorMessage(result))
	}

	var output map[string]any
	if err := json.Unmarshal([]byte(result.Content[0].(mcp.TextContent).Text), &output); err != nil {
		t.Fatalf("failed to unmarshal list result: %v", err)
	}
	items := output["items"].([]any)
	if len(items) != 2 {
		t.Errorf("len(items) = %d, want 2", len(items))
	}
}

// TestHandleDelete tests the delete handler.
func TestHandleDelete(t *testing.T) {
	database, eng, tmpDir := testSetup(t)
	h := NewHandlers(database, eng, tmpDir)
	ctx := context.Background()

	id := putNote(t, h, "Short Lived")

	result, err := h.HandleDelete(ctx, makeRequest(map[string]any{"id": id}))
	if err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if result.IsError {
		t.Fatalf("delete failed: %v", extractErrorMessage(result))
	}

	getResult, err := h.HandleGet(ctx, makeRequest(map[string]any{"id": id}))
	if err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if !getResult.IsError {
		t.Error("expected NOT_FOUND after delete")
	}
	assertErrorCode(t, getResult, "NOT_FOUND")
}

// TestHandleTypes tests the types handler.
func TestHandleTypes(t *testing.T) {
	database, eng, tmpDir := testSetup(t)
	h := NewHandlers(database, eng, tmpDir)

	result, err := h.HandleTypes(context.Background(), makeRequest(nil))
	if err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if result.IsError {
		t.Fatalf("types failed: %v", extractErrorMessage(result))
	}

	var output map[string]any
	if err := json.Unmarshal([]byte(result.Content[0].(mcp.TextContent).Text), &output); err != nil {
		t.Fatalf("failed to unmarshal types result: %v", err)
	}
	types := output["types"].([]any)
	if len(types) != 1 {
		t.Fatalf("len(types) = %d, want 1", len(types))
	}
}

// TestHandleExport tests the export handler.
func TestHandleExport(t *testing.T) {
	database, eng, tmpDir := testSetup(t)
	h := NewHandlers(database, eng, tmpDir)
	ctx := context.Background()

	putNote(t, h, "Exportable Entry")

	result, err := h.HandleExport(ctx, makeRequest(map[string]any{"name": "out.jsonl"}))
	if err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if result.IsError {
		t.Fatalf("export failed: %v", extractErrorMessage(result))
	}

	var output map[string]any
	if err := json.Unmarshal([]byte(result.Content[0].(mcp.TextContent).Text), &output); err != nil {
		t.Fatalf("failed to unmarshal export result: %v", err)
	}
	if output["count"].(float64) != 1 {
		t.Errorf("count = %v, want 1", output["count"])
	}

	// Path escape rejected.
	badResult, err := h.HandleExport(ctx, makeRequest(map[string]any{"name": "../escape.jsonl"}))
	if err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if !badResult.IsError {
		t.Error("expected error result for path-escaping name")
	}
	assertErrorCode(t, badResult, "INVALID_REQUEST")
}

// TestValidateDisabledTools tests disabled-tool validation.
func TestValidateDisabledTools(t *testing.T) {
	unknown := ValidateDisabledTools([]string{"record_put", "bogus_tool"})
	if len(unknown) != 1 || unknown[0] != "bogus_tool" {
		t.Errorf("unknown = %v, want [bogus_tool]", unknown)
	}
}

// assertErrorCode verifies that an error result carries the expected code.
func assertErrorCode(t *testing.T, result *mcp.CallToolResult, expectedCode string) {
	t.Helper()

	if len(result.Content) == 0 {
		t.Errorf("no content in error result")
		return
	}

	text, ok := result.Content[0].(mcp.TextContent)
	if !ok {
		t.Errorf("content is not TextContent")
		return
	}

	var payload map[string]any
	if err := json.Unmarshal([]byte(text.Text), &payload); err != nil {
		t.Errorf("failed to unmarshal error payload: %v", err)
		return
	}

	errorObj, ok := payload["error"].(map[string]any)
	if !ok {
		t.Errorf("no error object in payload")
		return
	}

	code, ok := errorObj["code"].(string)
	if !ok {
		t.Errorf("no code in error object")
		return
	}

	if code != expectedCode {
		t.Errorf("error code = %q, want %q", code, expectedCode)
	}
}

// extractErrorMessage pulls the raw text out of an error result.
func extractErrorMessage(result *mcp.CallToolResult) string {
	if len(result.Content) == 0 {
		return "<no content>"
	}

	text, ok := result.Content[0].(mcp.TextContent)
	if !ok {
		return "<not text content>"
	}

	return text.Text
}
