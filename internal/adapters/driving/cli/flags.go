package cli

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/prairiedogbeer/go7shifts/internal/core/domain"
)

// parseID parses a positional numeric id argument.
func parseID(name, value string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(value), 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: %s must be a positive integer, got %q", domain.ErrInvalidInput, name, value)
	}
	return id, nil
}

// parseDateFlag parses an optional YYYY-MM-DD value.
func parseDateFlag(name, value string) (domain.Date, error) {
	if value == "" {
		return domain.Date{}, nil
	}
	d, err := domain.ParseDate(value)
	if err != nil {
		return domain.Date{}, fmt.Errorf("--%s: %w", name, err)
	}
	return d, nil
}

// parseTimeFlag accepts RFC 3339 or a bare date. A bare date means the
// start of that day in loc, or its last second when endOfDay is set.
func parseTimeFlag(name, value string, loc *time.Location, endOfDay bool) (time.Time, error) {
	if value == "" {
		return time.Time{}, nil
	}
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t, nil
	}
	d, err := domain.ParseDate(value)
	if err != nil {
		return time.Time{}, fmt.Errorf("--%s: %w: want YYYY-MM-DD or RFC 3339, got %q", name, domain.ErrInvalidInput, value)
	}
	if endOfDay {
		return d.AddDays(1).In(loc).Add(-time.Second), nil
	}
	return d.In(loc), nil
}

// optionalBool returns nil unless the flag was given, so unset filters
// are left off the request.
func optionalBool(cmd *cobra.Command, name string) *bool {
	if !cmd.Flags().Changed(name) {
		return nil
	}
	v, err := cmd.Flags().GetBool(name)
	if err != nil {
		return nil
	}
	return domain.Bool(v)
}

// dateLocation is the zone bare dates in filters are read in.
func dateLocation() *time.Location {
	if settingsService == nil {
		return time.Local
	}
	settings, err := settingsService.Get()
	if err != nil {
		return time.Local
	}
	loc, err := settings.Sync.Location()
	if err != nil {
		return time.Local
	}
	return loc
}

// readInput decodes a JSON or YAML file into out. A path of "-" reads
// standard input. Unknown fields are rejected.
func readInput(cmd *cobra.Command, path string, out any) error {
	if path == "" {
		return fmt.Errorf("%w: an input file is required (-f)", domain.ErrInvalidInput)
	}

	var (
		data []byte
		err  error
	)
	if path == "-" {
		data, err = io.ReadAll(cmd.InOrStdin())
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return fmt.Errorf("failed to read input: %w", err)
	}

	// YAML is a superset of JSON, so one decoder handles both.
	var doc any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("%w: parsing %s: %v", domain.ErrInvalidInput, path, err)
	}
	if doc == nil {
		return fmt.Errorf("%w: %s is empty", domain.ErrInvalidInput, path)
	}
	js, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("%w: converting %s: %v", domain.ErrInvalidInput, path, err)
	}

	dec := json.NewDecoder(bytes.NewReader(js))
	dec.DisallowUnknownFields()
	if err := dec.Decode(out); err != nil {
		return fmt.Errorf("%w: decoding %s: %v", domain.ErrInvalidInput, path, err)
	}
	return nil
}

// timeFlag is a time filter flag and the filter field it sets.
type timeFlag struct {
	name     string
	value    string
	endOfDay bool
	dst      *time.Time
}

// parseTimes parses each flag in the sync timezone into its field.
func parseTimes(flags []timeFlag) error {
	loc := dateLocation()
	for _, f := range flags {
		t, err := parseTimeFlag(f.name, f.value, loc, f.endOfDay)
		if err != nil {
			return err
		}
		*f.dst = t
	}
	return nil
}
