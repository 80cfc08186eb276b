/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/suparena/objectstore"
	"github.com/suparena/objectstore/entity"
	"github.com/suparena/objectstore/errors"
)

func newVersionCmd() *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:         "version",
		Short:       "Print version information",
		Annotations: map[string]string{skipStore: "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			info := objectstore.GetVersionInfo()
			if asJSON {
				out, err := json.MarshalIndent(info, "", "  ")
				if err != nil {
					return fmt.Errorf("marshaling version info: %w", err)
				}
				fmt.Fprintln(cmd.OutOrStdout(), string(out))
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), "storectl:", info)
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print version info as JSON")
	return cmd
}

func newTypesCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "types",
		Short: "List the registered type names",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, name := range a.store.Types().Names() {
				fmt.Fprintln(cmd.OutOrStdout(), name)
			}
			return nil
		},
	}
}

func newListCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list [type]",
		Short: "Print every object, or every object of one type",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			objects := a.store.All()
			if len(args) == 1 {
				if err := a.requireType(args[0]); err != nil {
					return err
				}
				objects = a.store.AllOf(args[0])
			}

			keys := make([]string, 0, len(objects))
			for k := range objects {
				keys = append(keys, k)
			}
			sort.Strings(keys)
			for _, k := range keys {
				fmt.Fprintln(cmd.OutOrStdout(), objects[k].String())
			}
			return nil
		},
	}
}

func newCountCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "count <type>",
		Short: "Print the number of objects of one type",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.requireType(args[0]); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), len(a.store.AllOf(args[0])))
			return nil
		},
	}
}

func newShowCmd(a *app) *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "show <type> <id>",
		Short: "Print one object",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := a.lookup(args[0], args[1])
			if err != nil {
				return err
			}
			if !asJSON {
				fmt.Fprintln(cmd.OutOrStdout(), e.String())
				return nil
			}
			out, err := json.MarshalIndent(e.ToRecord(), "", "  ")
			if err != nil {
				return fmt.Errorf("marshaling record: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(out))
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the stored record as JSON")
	return cmd
}

func newCreateCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "create <type> [name=value ...]",
		Short: "Create an object, save the store and print the new id",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := a.store.Create(args[0])
			if err != nil {
				return err
			}
			for _, pair := range args[1:] {
				name, value, ok := strings.Cut(pair, "=")
				if !ok {
					_ = a.store.Delete(e.TypeName(), e.ID())
					return errors.NewInvalidArgumentError(pair, "expected name=value")
				}
				if err := setAttribute(e, name, value); err != nil {
					_ = a.store.Delete(e.TypeName(), e.ID())
					return err
				}
			}
			if err := e.Save(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), e.ID())
			return nil
		},
	}
}

func newUpdateCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "update <type> <id> <name> <value>",
		Short: "Set one attribute of an object and save the store",
		Long: `The value is parsed as JSON when possible, so 3 is stored as a number and
"3" as a string; anything else is stored as a plain string.`,
		Args: cobra.ExactArgs(4),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := a.lookup(args[0], args[1])
			if err != nil {
				return err
			}
			if err := setAttribute(e, args[2], args[3]); err != nil {
				return err
			}
			return e.Save(cmd.Context())
		},
	}
}

func newDestroyCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "destroy <type> <id>",
		Short: "Delete an object and save the store",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.requireType(args[0]); err != nil {
				return err
			}
			if err := a.store.Delete(args[0], args[1]); err != nil {
				return err
			}
			return a.store.Save(cmd.Context())
		},
	}
}

func newCallCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "call <type> <id> <method> [args...]",
		Short: "Invoke save, to_record or string on an object",
		Args:  cobra.MinimumNArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := a.lookup(args[0], args[1])
			if err != nil {
				return err
			}
			extra := make([]any, 0, len(args)-3)
			for _, arg := range args[3:] {
				extra = append(extra, arg)
			}

			out, err := entity.Call(cmd.Context(), e, args[2], extra...)
			if err != nil {
				return err
			}
			switch v := out.(type) {
			case nil:
			case entity.Record:
				data, err := json.Marshal(v)
				if err != nil {
					return fmt.Errorf("marshaling record: %w", err)
				}
				fmt.Fprintln(cmd.OutOrStdout(), string(data))
			default:
				fmt.Fprintln(cmd.OutOrStdout(), v)
			}
			return nil
		},
	}
}

func newCheckCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Verify that every stored object loads, and count them per type",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			// Reload already ran in the pre-run hook; reaching here means it succeeded.
			counts := make(map[string]int)
			for _, e := range a.store.All() {
				counts[e.TypeName()]++
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s: %d objects\n", a.store.Location(), a.store.Count())
			for _, name := range a.store.Types().Names() {
				if counts[name] > 0 {
					fmt.Fprintf(cmd.OutOrStdout(), "  %-10s %d\n", name, counts[name])
				}
			}
			return nil
		},
	}
}

func (a *app) requireType(name string) error {
	if _, ok := a.store.Types().Lookup(name); !ok {
		return errors.NewUnknownTypeError(name, "")
	}
	return nil
}

func (a *app) lookup(typeName, id string) (entity.Entity, error) {
	if err := a.requireType(typeName); err != nil {
		return nil, err
	}
	return a.store.Get(typeName, id)
}

// attributeSetter is implemented by every entity embedding *entity.Base.
type attributeSetter interface {
	Set(name string, value any) error
}

func setAttribute(e entity.Entity, name, raw string) error {
	s, ok := e.(attributeSetter)
	if !ok {
		return errors.NewInvalidArgumentError(name, fmt.Sprintf("%s does not accept attributes", e.TypeName()))
	}
	return s.Set(name, parseValue(raw))
}

// parseValue decodes raw as JSON, falling back to the raw string.
func parseValue(raw string) any {
	dec := json.NewDecoder(bytes.NewReader([]byte(raw)))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil || dec.More() {
		return raw
	}
	return entity.NormalizeValue(v)
}
