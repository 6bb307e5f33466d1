// Package cliopts holds flag validation that cobra doesn't do for us.
package cliopts

import (
	"fmt"
	"strings"

	"github.com/spf13/pflag"
)

// UsageError means the command line itself is wrong.
type UsageError struct {
	Msg string
}

func (e *UsageError) Error() string {
	return "Illegal usage: " + e.Msg
}

// NotRequiredIf declares that flag Name may be omitted when any of Alternatives is given, and
// must not be combined with them.
type NotRequiredIf struct {
	Name         string
	Alternatives []string

	// Required means Name (or an alternative) must end up with a value.
	Required bool

	// Prompt, if set, is asked for the value of a required flag nobody supplied.
	Prompt func(name string) (string, error)
}

// Annotate appends a note about the mutual exclusion to the flag's help text.
func (o NotRequiredIf) Annotate(fs *pflag.FlagSet) error {
	f := fs.Lookup(o.Name)
	if f == nil {
		return fmt.Errorf("cliopts: unknown flag --%s", o.Name)
	}
	if len(o.Alternatives) == 0 {
		return fmt.Errorf("cliopts: --%s needs at least one alternative", o.Name)
	}

	f.Usage = strings.TrimSpace(fmt.Sprintf("%s NOTE: This argument is mutually exclusive with %s",
		f.Usage, o.alternativeNames()))
	return nil
}

// Validate runs after flags have been parsed.
func (o NotRequiredIf) Validate(fs *pflag.FlagSet) error {
	current := fs.Changed(o.Name)

	for _, alt := range o.Alternatives {
		if !fs.Changed(alt) {
			continue
		}
		if current {
			return &UsageError{Msg: fmt.Sprintf("'--%s' is mutually exclusive with '--%s'", o.Name, alt)}
		}
		// the alternative satisfies the requirement, so don't prompt.
		return nil
	}

	if current || !o.Required {
		return nil
	}

	if o.Prompt == nil {
		return &UsageError{Msg: fmt.Sprintf("one of %s is required", append([]string{"--" + o.Name}, o.alternativeNames()...))}
	}

	value, err := o.Prompt(o.Name)
	if err != nil {
		return fmt.Errorf("cliopts: couldn't prompt for --%s: %w", o.Name, err)
	}
	if err := fs.Set(o.Name, value); err != nil {
		return fmt.Errorf("cliopts: couldn't set --%s: %w", o.Name, err)
	}

	return nil
}

func (o NotRequiredIf) alternativeNames() []string {
	names := make([]string, 0, len(o.Alternatives))
	for _, alt := range o.Alternatives {
		names = append(names, "--"+alt)
	}
	return names
}
