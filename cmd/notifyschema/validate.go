package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/sumire/notifyschema/internal/domain"
	"github.com/sumire/notifyschema/internal/schema"
	"github.com/sumire/notifyschema/internal/validation"
)

var (
	validateKind          string
	validateIgnoreUnknown bool
)

var errViolations = errors.New("validation failed")

var validateCmd = &cobra.Command{
	Use:   "validate [file...]",
	Short: "Validate JSON or YAML documents against a structure kind",
	Long: `Validate one or more documents and print the normalized result.
Reads standard input when no file is given. Channel documents share one
tracker, so a later file that changes an immutable field of an earlier
channel fails.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		opts := []validation.Option{
			validation.WithChannelTracker(validation.NewChannelTracker(validation.NewMemoryChannelStore(), nil)),
		}
		if validateIgnoreUnknown {
			opts = append(opts, validation.WithIgnoreUnknownFields())
		}
		v := validation.New(schema.Default(), opts...)

		if len(args) == 0 {
			args = []string{"-"}
		}

		failed := false
		for _, path := range args {
			raw, err := readDocument(cmd.InOrStdin(), path)
			if err != nil {
				failed = true
				fmt.Fprintf(cmd.ErrOrStderr(), "%s: %v\n", path, err)
				continue
			}

			out, err := v.Validate(cmd.Context(), schema.Kind(validateKind), raw)
			if violations, ok := domain.Violations(err); ok {
				failed = true
				printViolations(cmd.OutOrStdout(), path, violations)
				continue
			}
			if errors.Is(err, domain.ErrUnknownKind) {
				return err
			}
			if err != nil {
				failed = true
				fmt.Fprintf(cmd.ErrOrStderr(), "%s: %v\n", path, err)
				continue
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			if err := enc.Encode(out); err != nil {
				return err
			}
		}

		if failed {
			return errViolations
		}
		return nil
	},
}

func init() {
	validateCmd.Flags().StringVarP(&validateKind, "kind", "k", string(schema.KindNotificationAndroidOptions), "structure kind of the documents")
	validateCmd.Flags().BoolVar(&validateIgnoreUnknown, "ignore-unknown", false, "drop unknown fields instead of reporting them")
}

// readDocument decodes one object from path, or from stdin when path is "-".
// Files ending in .yaml or .yml are YAML, everything else JSON.
func readDocument(stdin io.Reader, path string) (map[string]any, error) {
	var (
		data []byte
		err  error
	)
	if path == "-" {
		data, err = io.ReadAll(stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	var raw map[string]any
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &raw)
	default:
		err = json.Unmarshal(data, &raw)
	}
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	if raw == nil {
		return nil, fmt.Errorf("decode %s: %w: document must be an object", path, domain.ErrInvalidInput)
	}
	return raw, nil
}

func printViolations(w io.Writer, path string, violations domain.ValidationErrors) {
	fmt.Fprintf(w, "%s: %d violation(s)\n", path, len(violations))
	for _, v := range violations {
		fmt.Fprintf(w, "  %s [%s]", v.Error(), v.Code)
		if v.Rule != "" {
			fmt.Fprintf(w, " rule=%s", v.Rule)
		}
		if v.Expected != "" {
			fmt.Fprintf(w, " expected=%q", v.Expected)
		}
		if v.Actual != "" {
			fmt.Fprintf(w, " actual=%q", v.Actual)
		}
		fmt.Fprintln(w)
	}
}
