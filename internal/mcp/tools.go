package mcp

import (
	"github.com/mark3labs/mcp-go/mcp"
)

var putToolDef = mcp.NewTool("record_put",
	mcp.WithDescription("Create or update a record. Tags are derived automatically from the record's taggable fields before the write; explicit tags are merged in. Omit id to create."),
	mcp.WithString("id",
		mcp.Description("Record ID to update. Omit to create a new record."),
	),
	mcp.WithString("type",
		mcp.Description("Declared record type. Required on create."),
	),
	mcp.WithObject("fields",
		mcp.Description("Field values for the record. Replaces existing fields on update."),
	),
	mcp.WithArray("tags",
		mcp.Description("Explicit tags to merge alongside field-derived tags."),
		mcp.Items(map[string]any{"type": "string"}),
	),
)

var getToolDef = mcp.NewTool("record_get",
	mcp.WithDescription("Fetch a record by ID."),
	mcp.WithString("id",
		mcp.Required(),
		mcp.Description("Record ID."),
	),
	mcp.WithBoolean("include_deleted",
		mcp.Description("Include soft-deleted records."),
	),
)

var tagToolDef = mcp.NewTool("record_tag",
	mcp.WithDescription("Re-derive a record's tags from its fields, optionally seeding the set with explicit tags."),
	mcp.WithString("id",
		mcp.Required(),
		mcp.Description("Record ID."),
	),
	mcp.WithArray("tags",
		mcp.Description("Explicit tags to add before derivation."),
		mcp.Items(map[string]any{"type": "string"}),
	),
)

var untagToolDef = mcp.NewTool("record_untag",
	mcp.WithDescription("Remove tags from a record. Removal matches tags exactly after tokenization; stopwords can be removed this way."),
	mcp.WithString("id",
		mcp.Required(),
		mcp.Description("Record ID."),
	),
	mcp.WithArray("tags",
		mcp.Required(),
		mcp.Description("Tags to remove."),
		mcp.Items(map[string]any{"type": "string"}),
	),
)

var listToolDef = mcp.NewTool("record_list",
	mcp.WithDescription("List records newest-first, optionally filtered by type and tag."),
	mcp.WithString("type",
		mcp.Description("Filter by record type."),
	),
	mcp.WithString("tag",
		mcp.Description("Filter by tag. Normalized before lookup, so case does not matter."),
	),
	mcp.WithNumber("limit",
		mcp.Description("Max records to return (default 20, max 100)."),
	),
	mcp.WithNumber("offset",
		mcp.Description("Records to skip for pagination."),
	),
	mcp.WithBoolean("include_deleted",
		mcp.Description("Include soft-deleted records."),
	),
)

var deleteToolDef = mcp.NewTool("record_delete",
	mcp.WithDescription("Soft-delete a record by ID."),
	mcp.WithString("id",
		mcp.Required(),
		mcp.Description("Record ID."),
	),
)

var typesToolDef = mcp.NewTool("record_types",
	mcp.WithDescription("List the declared record types with their taggable fields and tag options."),
)

var exportToolDef = mcp.NewTool("record_export",
	mcp.WithDescription("Export records to a JSONL file in the exports directory."),
	mcp.WithString("name",
		mcp.Description("Export file name (bare name, no path). Defaults to <type>-<timestamp>.jsonl."),
	),
	mcp.WithString("type",
		mcp.Description("Only export records of this type."),
	),
	mcp.WithBoolean("include_deleted",
		mcp.Description("Include soft-deleted records."),
	),
)
