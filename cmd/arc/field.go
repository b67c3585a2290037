package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var fieldCmd = &cobra.Command{
	Use:   "field",
	Short: "Manage schema fields",
	Long: `Manage the field schema shared by all records in the database.

The four basic fields (Index, Title, time, author_or_publisher) are fixed;
custom fields can be declared and are prompted for on every new record.`,
}

func init() {
	rootCmd.AddCommand(fieldCmd)
	fieldCmd.AddCommand(fieldAddCmd)
	fieldCmd.AddCommand(fieldListCmd)
}

// FieldAddResult is the response for field add.
type FieldAddResult struct {
	Status      string `json:"status"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

var fieldAddCmd = &cobra.Command{
	Use:   "add <name> <description>",
	Short: "Declare a custom field",
	Long: `Declare a custom field on the schema.

The name must not collide with a basic field or an existing custom field.

Example:
  arc field add department "Owning department"`,
	Args: cobra.MinimumNArgs(2),
	RunE: runFieldAdd,
}

func runFieldAdd(cmd *cobra.Command, args []string) error {
	name := args[0]
	description := strings.Join(args[1:], " ")

	db := mustOpenDatabase()
	if err := db.AddCustomField(name, description); err != nil {
		exitWithError(exitCodeFor(err), "%v", err)
	}
	mustSave(db)

	if humanOutput {
		fmt.Printf("Custom field '%s' saved.\n", name)
	} else {
		outputJSON(FieldAddResult{Status: "added", Name: name, Description: description})
	}
	return nil
}

var fieldListCmd = &cobra.Command{
	Use:   "list",
	Short: "List schema fields",
	Long: `List all schema fields in display order: basic fields first, then
custom fields in declaration order.

Example:
  arc field list`,
	Args: cobra.NoArgs,
	RunE: runFieldList,
}

func runFieldList(cmd *cobra.Command, args []string) error {
	db := mustOpenDatabase()
	descriptors := db.Schema.Descriptors()

	if !humanOutput {
		outputJSON(descriptors)
		return nil
	}

	nameWidth := 4 // "NAME"
	for _, d := range descriptors {
		if len(d.Name) > nameWidth {
			nameWidth = len(d.Name)
		}
	}

	fmt.Printf("%s  %s  %s\n", padRight("NAME", nameWidth), padRight("KIND", 6), "DESCRIPTION")
	for _, d := range descriptors {
		kind := "basic"
		if d.Custom {
			kind = "custom"
		}
		fmt.Printf("%s  %s  %s\n", padRight(d.Name, nameWidth), padRight(kind, 6), d.Description)
	}
	return nil
}
