/*
Copyright © 2025 3 Leaps <info@3leaps.net>
*/
package cmd

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/fulmenhq/assetsync/internal/manifest"
	"github.com/fulmenhq/assetsync/internal/schema"
	"github.com/spf13/cobra"
)

// validateCmd represents the validate command
var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate an asset manifest against the embedded schema",
	Long: `Validate checks a manifest (from --json-file or --json-string) against
the bundled asset manifest JSON schema and reports every violation. The
sync command tolerates looser manifests; validate is the strict check for
pipelines that want to fail fast on malformed input.`,
	RunE:          runValidate,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	validateCmd.Flags().String("json-file", "", "Path to JSON file containing assets")
	validateCmd.Flags().String("json-string", "", "JSON string containing assets")
	validateCmd.Flags().Bool("json", false, "Output the validation result as JSON")
}

func runValidate(cmd *cobra.Command, _ []string) error {
	jsonFile, _ := cmd.Flags().GetString("json-file")
	jsonString, _ := cmd.Flags().GetString("json-string")
	jsonOut, _ := cmd.Flags().GetBool("json")

	data := manifest.Load(jsonFile, jsonString)
	if data == nil {
		return errors.New("no valid JSON input")
	}

	result, err := schema.Validate(data, schema.ManifestSchema)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if jsonOut {
		encoded, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			return err
		}
		fmt.Fprintln(out, string(encoded))
	} else if result.Valid {
		fmt.Fprintln(out, "Manifest is valid")
	} else {
		fmt.Fprintf(out, "Manifest has %d violation(s):\n", len(result.Errors))
		for _, verr := range result.Errors {
			fmt.Fprintf(out, "  %s: %s\n", verr.Path, verr.Message)
		}
	}

	if !result.Valid {
		return errors.New("manifest failed schema validation")
	}
	return nil
}
