package cmd

import (
	"strings"

	"github.com/spf13/pflag"

	"github.com/justtldr/cli/internal/aiservice"
)

// serviceFlag is a pflag.Value that only accepts registered service IDs.
type serviceFlag struct {
	id aiservice.ID
}

var _ pflag.Value = (*serviceFlag)(nil)

func (f *serviceFlag) String() string { return string(f.id) }

func (f *serviceFlag) Set(s string) error {
	id, err := aiservice.ParseID(s)
	if err != nil {
		return err
	}
	f.id = id
	return nil
}

func (f *serviceFlag) Type() string { return "service" }

func serviceFlagUsage(prefix string) string {
	return prefix + " (" + strings.Join(aiservice.IDs(), ", ") + ")"
}

func addServiceFlag(fs *pflag.FlagSet, usage string) {
	fs.Var(&serviceFlag{}, "service", serviceFlagUsage(usage))
}

func getServiceFlag(fs *pflag.FlagSet) aiservice.ID {
	f := fs.Lookup("service")
	if f == nil {
		return ""
	}
	if v, ok := f.Value.(*serviceFlag); ok {
		return v.id
	}
	return ""
}
