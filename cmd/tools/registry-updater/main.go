// cmd/tools/registry-updater/main.go
package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	answerquestion "internship-assistant/internal/workers/ai-conversation/answer-question"
	"internship-assistant/pkg/registry"
)

const defaultRegistryPath = "configs/activity-registry.json"

// definedActivities are the activities compiled into the worker manager.
func definedActivities() []registry.Activity {
	return []registry.Activity{
		answerquestion.Activity(),
	}
}

func main() {
	if err := run(os.Args[1:], os.Stdout, time.Now); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string, out io.Writer, now func() time.Time) error {
	if len(args) < 1 {
		help(out)
		return fmt.Errorf("missing command")
	}

	switch args[0] {
	case "sync":
		fs := flag.NewFlagSet("sync", flag.ContinueOnError)
		path := fs.String("path", defaultRegistryPath, "Path to registry file")
		if err := fs.Parse(args[1:]); err != nil {
			return err
		}
		return syncRegistry(*path, out, now())

	case "update":
		fs := flag.NewFlagSet("update", flag.ContinueOnError)
		path := fs.String("path", defaultRegistryPath, "Path to registry file")
		id := fs.String("id", "", "Activity ID to update")
		field := fs.String("field", "", "Field to update (status, version, timeout, retries, ...)")
		value := fs.String("value", "", "New value for the field")
		if err := fs.Parse(args[1:]); err != nil {
			return err
		}
		if *id == "" || *field == "" || *value == "" {
			fs.Usage()
			return fmt.Errorf("id, field, and value are required for update")
		}
		return updateActivity(*path, *id, *field, *value, out, now())

	case "validate":
		fs := flag.NewFlagSet("validate", flag.ContinueOnError)
		path := fs.String("path", defaultRegistryPath, "Path to registry file")
		strict := fs.Bool("strict", false, "Fail when entries differ from the compiled-in activities")
		if err := fs.Parse(args[1:]); err != nil {
			return err
		}
		return validateRegistry(*path, *strict, out)

	case "help":
		help(out)
		return nil

	default:
		help(out)
		return fmt.Errorf("unknown command %q", args[0])
	}
}

func syncRegistry(path string, out io.Writer, now time.Time) error {
	reg, err := registry.LoadOrNew(path)
	if err != nil {
		return fmt.Errorf("failed to load registry: %w", err)
	}

	changed := 0
	for _, a := range definedActivities() {
		if reg.Upsert(a) {
			changed++
			fmt.Fprintf(out, "Synced activity: %s\n", a.ID)
		}
	}
	if changed == 0 {
		fmt.Fprintln(out, "Registry already up to date.")
		return nil
	}
	if reg.Version == "" {
		reg.Version = registry.CurrentVersion
	}
	return reg.Save(path, now)
}

func updateActivity(path, id, field, value string, out io.Writer, now time.Time) error {
	reg, err := registry.LoadRegistry(path)
	if err != nil {
		return fmt.Errorf("failed to load registry: %w", err)
	}
	if err := reg.Update(id, field, value); err != nil {
		return err
	}
	if err := reg.Save(path, now); err != nil {
		return err
	}
	fmt.Fprintf(out, "Updated activity %s, field %s to %s\n", id, field, value)
	return nil
}

func validateRegistry(path string, strict bool, out io.Writer) error {
	reg, err := registry.LoadRegistry(path)
	if err != nil {
		return fmt.Errorf("failed to load registry: %w", err)
	}
	if err := reg.Validate(); err != nil {
		return err
	}
	if strict {
		if drift := reg.Drift(definedActivities()); len(drift) > 0 {
			return fmt.Errorf("registry out of date for: %s (run sync)", strings.Join(drift, ", "))
		}
	}
	fmt.Fprintf(out, "Registry validation passed. Found %d activities.\n", len(reg.Activities))
	return nil
}

func help(out io.Writer) {
	fmt.Fprintln(out, `
Usage: registry-updater <command> [flags]

Commands:
  sync     Write the compiled-in activity definitions to the registry
  update   Update an existing activity's field
  validate Validate the registry file (-strict also checks for drift)
  help     Show this help message

Examples:
  registry-updater sync -path configs/activity-registry.json
  registry-updater update -id answer-question -field status -value verified
  registry-updater validate -strict

Use 'registry-updater <command> -h' for more information about a command.`)
}
