package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/example/retouch/internal/filters"
)

type filtersCmd struct {
	*root
	fs  *flag.FlagSet
	out io.Writer
}

func parseFiltersCmd(args []string, r *root) (*filtersCmd, error) {
	fs := flag.NewFlagSet("filters", flag.ExitOnError)
	cmd := &filtersCmd{root: r, fs: fs, out: os.Stdout}
	fs.Usage = usageFunc(cmd)
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() != 0 {
		return nil, &UsageError{of: cmd}
	}
	return cmd, nil
}

func (c *filtersCmd) FlagSet() *flag.FlagSet {
	return c.fs
}

func (c *filtersCmd) Template() string {
	return "filters.txt"
}

func describeLimits(limits []filters.Limit) string {
	parts := make([]string, len(limits))
	for i, l := range limits {
		parts[i] = fmt.Sprintf("%s %g..%g (default %g)", l.Name, l.Min, l.Max, l.Default)
	}
	return strings.Join(parts, ", ")
}

func (c *filtersCmd) Run() error {
	if len(c.menu) == 0 {
		fmt.Fprintln(c.out, "no filters available")
		return nil
	}
	fmt.Fprintln(c.out, "available filters (key in brackets):")
	for _, e := range c.menu {
		key := "   "
		if e.Key != "" {
			key = "[" + e.Key + "]"
		}
		line := fmt.Sprintf("%s %-12s %s", key, e.ID, e.Label)
		if len(e.Limits) > 0 {
			line += ": " + describeLimits(e.Limits)
		}
		fmt.Fprintln(c.out, line)
	}
	return nil
}
