package task

import "strings"

// SeverityFilter narrows the list to one severity, or to none with SeverityAll.
type SeverityFilter string

const SeverityAll SeverityFilter = "all"

// SeverityFilters lists the dropdown options in display order.
var SeverityFilters = []SeverityFilter{
	SeverityAll,
	SeverityFilter(SeverityLow),
	SeverityFilter(SeverityMedium),
	SeverityFilter(SeverityHigh),
}

func ParseSeverityFilter(s string) (SeverityFilter, error) {
	v := strings.ToLower(strings.TrimSpace(s))
	if v == "" || v == string(SeverityAll) {
		return SeverityAll, nil
	}
	sev, err := ParseSeverity(v)
	if err != nil {
		return "", err
	}
	return SeverityFilter(sev), nil
}

func (f SeverityFilter) Allows(s Severity) bool {
	return f == SeverityAll || f == "" || Severity(f) == s
}

func (f SeverityFilter) Label() string {
	if f == SeverityAll || f == "" {
		return "All"
	}
	return Severity(f).Label()
}

// Next cycles all -> low -> medium -> high -> all.
func (f SeverityFilter) Next() SeverityFilter {
	for i, v := range SeverityFilters {
		if v == f {
			return SeverityFilters[(i+1)%len(SeverityFilters)]
		}
	}
	return SeverityAll
}
