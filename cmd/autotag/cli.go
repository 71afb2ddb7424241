package main

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/hpungsan/autotag/internal/config"
	"github.com/hpungsan/autotag/internal/errors"
	"github.com/hpungsan/autotag/internal/ops"
	"github.com/hpungsan/autotag/internal/tagging"
)

// newCLIApp creates the CLI application with all commands.
func newCLIApp(db *sql.DB, eng *tagging.Engine, cfg *config.Config, baseDir string) *cli.App {
	app := &cli.App{
		Name:    "autotag",
		Usage:   "Tag-mining record store",
		Version: Version,
		Commands: []*cli.Command{
			putCmd(db, eng),
			getCmd(db, eng),
			tagCmd(db, eng),
			untagCmd(db, eng),
			listCmd(db, eng),
			deleteCmd(db),
			typesCmd(eng),
			exportCmd(db, eng, baseDir),
		},
	}
	// Disable default exit error handler to allow proper error return in tests
	app.ExitErrHandler = func(_ *cli.Context, _ error) {}
	return app
}

// putCmd creates the put command.
func putCmd(db *sql.DB, eng *tagging.Engine) *cli.Command {
	return &cli.Command{
		Name:      "put",
		Usage:     "Create or update a record (reads fields JSON from stdin or --fields)",
		ArgsUsage: "[id]",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "type", Aliases: []string{"t"}, Usage: "Record type (required on create)"},
			&cli.StringFlag{Name: "fields", Aliases: []string{"f"}, Usage: "Field values as a JSON object"},
			&cli.StringFlag{Name: "tags", Usage: "Comma-separated explicit tags"},
		},
		Action: func(c *cli.Context) error {
			input := ops.PutInput{
				Type: c.String("type"),
			}
			if c.NArg() > 0 {
				input.ID = c.Args().First()
			}

			fieldsJSON := c.String("fields")
			if fieldsJSON == "" && stdinHasData() {
				text, err := readStdin()
				if err != nil {
					return outputError(errors.NewInternal(err))
				}
				fieldsJSON = text
			}
			if fieldsJSON != "" {
				if err := json.Unmarshal([]byte(fieldsJSON), &input.Fields); err != nil {
					return outputError(errors.NewInvalidRequest(fmt.Sprintf("fields must be a JSON object: %v", err)))
				}
			}

			if tags := c.String("tags"); tags != "" {
				input.Tags = parseTags(tags)
			}

			output, err := ops.Put(db, eng, input)
			if err != nil {
				return outputError(err)
			}

			return outputJSON(output)
		},
	}
}

// getCmd creates the get command.
func getCmd(db *sql.DB, eng *tagging.Engine) *cli.Command {
	return &cli.Command{
		Name:      "get",
		Usage:     "Fetch a record by ID",
		ArgsUsage: "<id>",
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "include-deleted", Usage: "Include soft-deleted records"},
		},
		Action: func(c *cli.Context) error {
			output, err := ops.Get(db, eng, ops.GetInput{
				ID:             c.Args().First(),
				IncludeDeleted: c.Bool("include-deleted"),
			})
			if err != nil {
				return outputError(err)
			}

			return outputJSON(output)
		},
	}
}

// tagCmd creates the tag command.
func tagCmd(db *sql.DB, eng *tagging.Engine) *cli.Command {
	return &cli.Command{
		Name:      "tag",
		Usage:     "Re-derive a record's tags, optionally adding explicit tags",
		ArgsUsage: "<id>",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "tags", Usage: "Comma-separated tags to add"},
		},
		Action: func(c *cli.Context) error {
			output, err := ops.Tag(db, eng, ops.TagInput{
				ID:   c.Args().First(),
				Tags: parseTags(c.String("tags")),
			})
			if err != nil {
				return outputError(err)
			}

			return outputJSON(output)
		},
	}
}

// untagCmd creates the untag command.
func untagCmd(db *sql.DB, eng *tagging.Engine) *cli.Command {
	return &cli.Command{
		Name:      "untag",
		Usage:     "Remove tags from a record",
		ArgsUsage: "<id>",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "tags", Usage: "Comma-separated tags to remove", Required: true},
		},
		Action: func(c *cli.Context) error {
			output, err := ops.Untag(db, eng, ops.UntagInput{
				ID:   c.Args().First(),
				Tags: parseTags(c.String("tags")),
			})
			if err != nil {
				return outputError(err)
			}

			return outputJSON(output)
		},
	}
}

// listCmd creates the list command.
func listCmd(db *sql.DB, eng *tagging.Engine) *cli.Command {
	return &cli.Command{
		Name:  "list",
		Usage: "List records newest-first",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "type", Aliases: []string{"t"}, Usage: "Filter by record type"},
			&cli.StringFlag{Name: "tag", Usage: "Filter by tag"},
			&cli.IntFlag{Name: "limit", Aliases: []string{"l"}, Usage: "Max records to return"},
			&cli.IntFlag{Name: "offset", Usage: "Records to skip"},
			&cli.BoolFlag{Name: "include-deleted", Usage: "Include soft-deleted records"},
		},
		Action: func(c *cli.Context) error {
			output, err := ops.List(db, eng, ops.ListInput{
				Type:           c.String("type"),
				Tag:            c.String("tag"),
				Limit:          c.Int("limit"),
				Offset:         c.Int("offset"),
				IncludeDeleted: c.Bool("include-deleted"),
			})
			if err != nil {
				return outputError(err)
			}

			return outputJSON(output)
		},
	}
}

// deleteCmd creates the delete command.
func deleteCmd(db *sql.DB) *cli.Command {
	return &cli.Command{
		Name:      "delete",
		Usage:     "Soft-delete a record",
		ArgsUsage: "<id>",
		Action: func(c *cli.Context) error {
			output, err := ops.Delete(db, ops.DeleteInput{
				ID: c.Args().First(),
			})
			if err != nil {
				return outputError(err)
			}

			return outputJSON(output)
		},
	}
}

// typesCmd creates the types command.
func typesCmd(eng *tagging.Engine) *cli.Command {
	return &cli.Command{
		Name:  "types",
		Usage: "List the declared record types",
		Action: func(c *cli.Context) error {
			return outputJSON(ops.Types(eng))
		},
	}
}

// exportCmd creates the export command.
func exportCmd(db *sql.DB, eng *tagging.Engine, baseDir string) *cli.Command {
	return &cli.Command{
		Name:  "export",
		Usage: "Export records to a JSONL file in the exports directory",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "name", Aliases: []string{"n"}, Usage: "Export file name"},
			&cli.StringFlag{Name: "type", Aliases: []string{"t"}, Usage: "Only export records of this type"},
			&cli.BoolFlag{Name: "include-deleted", Usage: "Include soft-deleted records"},
		},
		Action: func(c *cli.Context) error {
			output, err := ops.Export(db, eng, baseDir, ops.ExportInput{
				Name:           c.String("name"),
				Type:           c.String("type"),
				IncludeDeleted: c.Bool("include-deleted"),
			})
			if err != nil {
				return outputError(err)
			}

			return outputJSON(output)
		},
	}
}

// Helper functions

// outputJSON marshals result to stdout as JSON.
func outputJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// outputError formats error for CLI.
func outputError(err error) error {
	if tagErr, ok := err.(*errors.AutotagError); ok {
		return cli.Exit(fmt.Sprintf("[%s] %s", tagErr.Code, tagErr.Message), 1)
	}
	return cli.Exit(err.Error(), 1)
}

// stdinHasData returns true if stdin has piped data (not a terminal).
func stdinHasData() bool {
	stat, err := os.Stdin.Stat()
	if err != nil {
		return false
	}
	return (stat.Mode() & os.ModeCharDevice) == 0
}

// readStdin reads all content from stdin.
func readStdin() (string, error) {
	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(data)), nil
}

// parseTags splits a comma-separated string into a slice of tags.
func parseTags(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	tags := make([]string, 0, len(parts))
	for _, p := range parts {
		t := strings.TrimSpace(p)
		if t != "" {
			tags = append(tags, t)
		}
	}
	return tags
}
