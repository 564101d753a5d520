package base

import (
	"flag"
	"io"
	"strings"
)

// FlagSet wraps a flag.FlagSet so commands can render their options in Help.
type FlagSet struct {
	*flag.FlagSet
}

// NewFlagSet silences f so parse errors are reported through the UI instead.
func NewFlagSet(f *flag.FlagSet) *FlagSet {
	f.SetOutput(io.Discard)
	return &FlagSet{FlagSet: f}
}

// Help renders the flag defaults as an Options section.
func (f *FlagSet) Help() string {
	var b strings.Builder
	b.WriteString("\n\nOptions:\n\n")
	f.SetOutput(&b)
	f.PrintDefaults()
	f.SetOutput(io.Discard)
	return strings.TrimRight(b.String(), "\n")
}

// StringSliceValue collects every occurrence of a repeatable flag.
type StringSliceValue []string

func (s *StringSliceValue) String() string {
	return strings.Join(*s, ", ")
}

func (s *StringSliceValue) Set(v string) error {
	*s = append(*s, v)
	return nil
}
