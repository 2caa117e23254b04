package diagnostic

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"time"
)

// Options configures a diagnosis run.
type Options struct {
	// Domain is the Forecast dataset domain name. May be empty, in which
	// case it is inferred from the schema where possible.
	Domain string

	// Schema is the explicit target time-series schema. May be nil, in
	// which case it is inferred from headers and data.
	Schema *Schema
}

// Report is the result of analyzing prepared target time-series data.
type Report struct {
	Files          []string
	Domain         string
	Schema         *Schema
	Classification *Classification

	TotalRecords    int
	CompleteRecords int
	MissingByField  map[string]int

	TimestampField string
	TargetField    string
	Start          time.Time
	End            time.Time

	// DimensionFields are schema fields other than timestamp and target.
	DimensionFields []string
	// DimensionValues counts distinct values per dimension field.
	DimensionValues map[string]int
	// UniqueItems counts distinct dimension-field combinations, i.e. the
	// number of separate series to forecast.
	UniqueItems int

	Warnings []string
}

// Diagnose analyzes a target time-series CSV file or directory of CSVs,
// validating it against a Forecast domain and collecting dataset statistics.
func Diagnose(path string, opts Options) (*Report, error) {
	if opts.Domain != "" {
		if _, ok := Domains[opts.Domain]; !ok {
			return nil, fmt.Errorf("domain %q is not in supported list %v", opts.Domain, DomainNames())
		}
	}

	files, err := CollectDataFiles(path)
	if err != nil {
		return nil, err
	}

	schema := opts.Schema
	domainName := opts.Domain

	headers, ncols, err := Sniff(files[0])
	if err != nil {
		return nil, err
	}

	if schema == nil {
		schema, err = inferSchema(files[0], headers, ncols, domainName)
		if err != nil {
			return nil, err
		}
	} else if len(schema.Attributes) != ncols {
		return nil, fmt.Errorf("schema specifies %d attributes, but %d columns are present in %s",
			len(schema.Attributes), ncols, files[0])
	}

	if domainName == "" {
		if opts.Schema == nil {
			domainName, err = inferDomainWidening(schema)
		} else {
			domainName, err = InferDomain(schema)
		}
		if err != nil {
			return nil, err
		}
	} else if opts.Schema == nil {
		// Inferred numeric types may be narrower than the domain asks for;
		// an integer column satisfies a float field.
		widenForDomain(schema, domainName)
	}

	cls, err := ValidateSchema(schema, domainName)
	if err != nil {
		return nil, err
	}

	report := &Report{
		Files:          files,
		Domain:         domainName,
		Schema:         schema,
		Classification: cls,
		MissingByField: make(map[string]int),
		TargetField:    Domains[domainName].TargetField,
		Warnings:       append([]string{}, cls.Warnings...),
	}

	for _, a := range schema.Attributes {
		if a.Type == TypeTimestamp {
			report.TimestampField = a.Name
			break
		}
	}
	for _, name := range schema.Names() {
		if name != report.TimestampField && name != report.TargetField {
			report.DimensionFields = append(report.DimensionFields, name)
		}
	}

	if err := scanFiles(report); err != nil {
		return nil, err
	}

	if missing := report.TotalRecords - report.CompleteRecords; missing > 0 {
		report.Warnings = append(report.Warnings, fmt.Sprintf("%d records contain missing values", missing))
	}

	return report, nil
}

// inferSchema builds a schema from the first data row of a file. Without
// headers, column names are inferred from the domain by unique type
// correspondence, as the Forecast console does.
func inferSchema(path string, headers []string, ncols int, domainName string) (*Schema, error) {
	row, err := firstDataRow(path, headers != nil)
	if err != nil {
		return nil, err
	}

	types := make([]AttributeType, ncols)
	for i, cell := range row {
		types[i] = InferType(strings.TrimSpace(cell))
	}

	schema := &Schema{Attributes: make([]Attribute, ncols)}

	if headers != nil {
		for i := range types {
			schema.Attributes[i] = Attribute{Name: strings.TrimSpace(headers[i]), Type: types[i]}
		}
		return schema, nil
	}

	if domainName == "" {
		return nil, fmt.Errorf("domain must be provided when no schema is given and %s has no headers", path)
	}

	// One field of each type in both data and domain spec is the only case
	// where correspondence is unambiguous.
	counts := make(map[AttributeType]int)
	for _, t := range types {
		counts[t]++
	}
	domain := Domains[domainName]
	for i, t := range types {
		if counts[t] > 1 {
			return nil, fmt.Errorf("cannot infer column names: %d columns in %s have detected type %q", counts[t], path, t)
		}
		name, err := domainFieldForType(domain, t)
		if err != nil {
			return nil, err
		}
		schema.Attributes[i] = Attribute{Name: name, Type: t}
	}
	return schema, nil
}

// domainFieldForType finds the single domain field of the given type,
// preferring required fields, widening integer to float when needed.
func domainFieldForType(domain Domain, t AttributeType) (string, error) {
	matches := func(fields []Attribute) []string {
		var out []string
		for _, f := range fields {
			if f.Type == t || (t == TypeInteger && f.Type == TypeFloat) {
				out = append(out, f.Name)
			}
		}
		return out
	}

	if required := matches(domain.Required); len(required) == 1 {
		return required[0], nil
	} else if len(required) > 1 {
		return "", fmt.Errorf("domain %s requires %d fields of type %q; cannot infer correspondence", domain.Name, len(required), t)
	}
	if optional := matches(domain.Optional); len(optional) == 1 {
		return optional[0], nil
	}
	return "", fmt.Errorf("domain %s has no unambiguous field of type %q", domain.Name, t)
}

// inferDomainWidening finds the first domain the schema matches after
// promoting integer columns to float where the candidate domain asks for
// float. On success the widened types are written back into the schema.
func inferDomainWidening(schema *Schema) (string, error) {
	for _, name := range DomainNames() {
		candidate := &Schema{Attributes: append([]Attribute{}, schema.Attributes...)}
		widenForDomain(candidate, name)
		if _, err := ValidateSchema(candidate, name); err == nil {
			schema.Attributes = candidate.Attributes
			return name, nil
		}
	}
	return "", fmt.Errorf("no supported domain matches schema fields %v", schema.Names())
}

// widenForDomain promotes inferred integer columns to float where the
// domain specifies float for that field name.
func widenForDomain(schema *Schema, domainName string) {
	domain := Domains[domainName]
	specified := make(map[string]AttributeType)
	for _, f := range domain.Required {
		specified[f.Name] = f.Type
	}
	for _, f := range domain.Optional {
		specified[f.Name] = f.Type
	}

	for i, a := range schema.Attributes {
		if a.Type == TypeInteger && specified[a.Name] == TypeFloat {
			schema.Attributes[i].Type = TypeFloat
		}
	}
}

// firstDataRow reads the first non-header row of a CSV file.
func firstDataRow(path string, skipHeader bool) ([]string, error) {
	// #nosec G304
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	if skipHeader {
		if _, err := reader.Read(); err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", path, err)
		}
	}
	row, err := reader.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("%s has no data rows", path)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return row, nil
}

// scanFiles walks every record of every file, accumulating statistics into
// the report.
func scanFiles(report *Report) error {
	colIndex := make(map[string]int, len(report.Schema.Attributes))
	for i, a := range report.Schema.Attributes {
		colIndex[a.Name] = i
	}
	tsCol := colIndex[report.TimestampField]

	dimCols := make([]int, len(report.DimensionFields))
	dimValues := make([]map[string]bool, len(report.DimensionFields))
	for i, name := range report.DimensionFields {
		dimCols[i] = colIndex[name]
		dimValues[i] = make(map[string]bool)
	}
	combos := make(map[string]bool)

	for _, path := range report.Files {
		if err := scanFile(report, path, tsCol, dimCols, dimValues, combos); err != nil {
			return err
		}
	}

	report.DimensionValues = make(map[string]int, len(report.DimensionFields))
	for i, name := range report.DimensionFields {
		report.DimensionValues[name] = len(dimValues[i])
	}
	report.UniqueItems = len(combos)
	return nil
}

// scanFile accumulates one file's records into the report.
func scanFile(report *Report, path string, tsCol int, dimCols []int, dimValues []map[string]bool, combos map[string]bool) error {
	headers, ncols, err := Sniff(path)
	if err != nil {
		return err
	}
	if ncols != len(report.Schema.Attributes) {
		return fmt.Errorf("schema specifies %d attributes, but %d columns are present in %s",
			len(report.Schema.Attributes), ncols, path)
	}
	if headers != nil {
		for i, header := range headers {
			if strings.TrimSpace(header) != report.Schema.Attributes[i].Name {
				return fmt.Errorf("schema column %d is %q, but found %q in %s; column orders must match across all files",
					i, report.Schema.Attributes[i].Name, header, path)
			}
		}
	}

	// #nosec G304
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	if headers != nil {
		if _, err := reader.Read(); err != nil {
			return fmt.Errorf("failed to read %s: %w", path, err)
		}
	}

	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", path, err)
		}

		report.TotalRecords++
		complete := true
		for i, cell := range row {
			if strings.TrimSpace(cell) == "" {
				report.MissingByField[report.Schema.Attributes[i].Name]++
				complete = false
			}
		}
		if complete {
			report.CompleteRecords++
		}

		if ts, ok := ParseTimestamp(strings.TrimSpace(row[tsCol])); ok {
			if report.Start.IsZero() || ts.Before(report.Start) {
				report.Start = ts
			}
			if report.End.IsZero() || ts.After(report.End) {
				report.End = ts
			}
		}

		if len(dimCols) > 0 {
			parts := make([]string, len(dimCols))
			for i, col := range dimCols {
				parts[i] = row[col]
				dimValues[i][row[col]] = true
			}
			combos[strings.Join(parts, "\x1f")] = true
		}
	}
	return nil
}

// Summary renders the report as human-readable text.
func (r *Report) Summary() string {
	var b strings.Builder

	fmt.Fprintf(&b, "Analyzed %d file(s) against domain %s\n", len(r.Files), r.Domain)
	fmt.Fprintf(&b, "  Required fields: %v\n", r.Classification.Required)
	if len(r.Classification.Optional) > 0 {
		fmt.Fprintf(&b, "  Optional fields: %v\n", r.Classification.Optional)
	}
	if len(r.Classification.Custom) > 0 {
		fmt.Fprintf(&b, "  Custom fields:   %v\n", r.Classification.Custom)
	}
	if !r.Start.IsZero() {
		fmt.Fprintf(&b, "  Time span: %s to %s\n", r.Start.Format("2006-01-02 15:04:05"), r.End.Format("2006-01-02 15:04:05"))
	}
	fmt.Fprintf(&b, "  Total records: %d (%d complete)\n", r.TotalRecords, r.CompleteRecords)

	if len(r.MissingByField) > 0 {
		fields := make([]string, 0, len(r.MissingByField))
		for name := range r.MissingByField {
			fields = append(fields, name)
		}
		sort.Strings(fields)
		for _, name := range fields {
			fmt.Fprintf(&b, "  Missing values in %s: %d\n", name, r.MissingByField[name])
		}
	}

	for _, name := range r.DimensionFields {
		fmt.Fprintf(&b, "  Unique values in dimension %q: %d\n", name, r.DimensionValues[name])
	}
	fmt.Fprintf(&b, "  Unique items to forecast: %d\n", r.UniqueItems)

	for _, w := range r.Warnings {
		fmt.Fprintf(&b, "  WARNING: %s\n", w)
	}
	return b.String()
}
