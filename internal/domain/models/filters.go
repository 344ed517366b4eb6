package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/samber/lo"
)

// JobFilters is the unit of query translation for job listing and the
// unit of persistence for saved searches. Absent or empty fields impose
// no constraint.
type JobFilters struct {
	Query     string     `json:"q,omitempty"`
	Location  string     `json:"location,omitempty"`
	Roles     []string   `json:"roles,omitempty"`
	WorkTypes []WorkType `json:"work_types,omitempty"`
	JobTypes  []JobType  `json:"job_types,omitempty"`
	Tech      []string   `json:"tech,omitempty"`
	SalaryMin *int       `json:"salary_min,omitempty"`
	SalaryMax *int       `json:"salary_max,omitempty"`
}

// ParseFilters converts a flat query-parameter map into a JobFilters.
// Malformed input degrades to "no constraint" for that field; the
// function never fails.
func ParseFilters(params url.Values) JobFilters {
	filters := JobFilters{
		Query:     firstTrimmed(params, "q"),
		Location:  firstTrimmed(params, "location"),
		Roles:     collectTags(params["role"]),
		Tech:      collectTags(params["tech"]),
		SalaryMin: parseSalary(params.Get("salary_min")),
		SalaryMax: parseSalary(params.Get("salary_max")),
	}

	for _, raw := range collectTags(params["work_type"]) {
		if workType, err := ToWorkType(raw); err == nil {
			filters.WorkTypes = append(filters.WorkTypes, workType)
		}
	}
	for _, raw := range collectTags(params["job_type"]) {
		if jobType, err := ToJobType(raw); err == nil {
			filters.JobTypes = append(filters.JobTypes, jobType)
		}
	}

	return filters
}

// ToParams is the inverse of ParseFilters, up to normalization: parsing
// its output yields an equivalent filter set.
func (f JobFilters) ToParams() url.Values {
	params := url.Values{}
	if f.Query != "" {
		params.Set("q", f.Query)
	}
	if f.Location != "" {
		params.Set("location", f.Location)
	}
	for _, role := range f.Roles {
		params.Add("role", role)
	}
	for _, workType := range f.WorkTypes {
		params.Add("work_type", string(workType))
	}
	for _, jobType := range f.JobTypes {
		params.Add("job_type", string(jobType))
	}
	for _, tech := range f.Tech {
		params.Add("tech", tech)
	}
	if f.SalaryMin != nil {
		params.Set("salary_min", strconv.Itoa(*f.SalaryMin))
	}
	if f.SalaryMax != nil {
		params.Set("salary_max", strconv.Itoa(*f.SalaryMax))
	}
	return params
}

// Normalized collapses empty slices to nil so that "absent" and
// "present but empty" compare equal and persist identically.
func (f JobFilters) Normalized() JobFilters {
	if len(f.Roles) == 0 {
		f.Roles = nil
	}
	if len(f.WorkTypes) == 0 {
		f.WorkTypes = nil
	}
	if len(f.JobTypes) == 0 {
		f.JobTypes = nil
	}
	if len(f.Tech) == 0 {
		f.Tech = nil
	}
	return f
}

func (f JobFilters) IsEmpty() bool {
	normalized := f.Normalized()
	return normalized.Query == "" && normalized.Location == "" &&
		normalized.Roles == nil && normalized.WorkTypes == nil &&
		normalized.JobTypes == nil && normalized.Tech == nil &&
		normalized.SalaryMin == nil && normalized.SalaryMax == nil
}

// Matches is the in-memory mirror of the store-side predicates: filters
// combine conjunctively, values within one filter disjunctively. Used
// to match a single new job against saved searches without re-querying.
func (f JobFilters) Matches(job *Job) bool {
	if len(f.WorkTypes) > 0 && !lo.Contains(f.WorkTypes, job.WorkType) {
		return false
	}
	if len(f.JobTypes) > 0 && !lo.Contains(f.JobTypes, job.JobType) {
		return false
	}
	if len(f.Roles) > 0 && !containsAnySubstring(job.Role, f.Roles) {
		return false
	}
	if len(f.Tech) > 0 && !overlapsFold(job.TechStackAsArray(), f.Tech) {
		return false
	}
	if f.SalaryMin != nil && job.SalaryMax != nil && *job.SalaryMax < *f.SalaryMin {
		return false
	}
	if f.SalaryMax != nil && job.SalaryMin != nil && *job.SalaryMin > *f.SalaryMax {
		return false
	}
	if f.Query != "" {
		if !containsFold(job.Title, f.Query) &&
			!containsFold(job.Description, f.Query) &&
			!containsFold(job.Role, f.Query) {
			return false
		}
	}
	if f.Location != "" {
		if job.Location == nil || !containsFold(*job.Location, f.Location) {
			return false
		}
	}
	return true
}

func (f JobFilters) Value() (driver.Value, error) {
	data, err := json.Marshal(f.Normalized())
	if err != nil {
		return nil, err
	}
	return string(data), nil
}

func (f *JobFilters) Scan(value any) error {
	if value == nil {
		*f = JobFilters{}
		return nil
	}
	switch v := value.(type) {
	case string:
		return json.Unmarshal([]byte(v), f)
	case []byte:
		return json.Unmarshal(v, f)
	default:
		return fmt.Errorf("unsupported type for job filters: %T", value)
	}
}

func firstTrimmed(params url.Values, key string) string {
	return strings.TrimSpace(params.Get(key))
}

func collectTags(raw []string) []string {
	return lo.Uniq(trimNonEmpty(raw))
}

func parseSalary(raw string) *int {
	value, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || value <= 0 {
		return nil
	}
	return &value
}

func containsFold(haystack, needle string) bool {
	return strings.Contains(strings.ToLower(haystack), strings.ToLower(needle))
}

func containsAnySubstring(haystack string, needles []string) bool {
	for _, needle := range needles {
		if containsFold(haystack, needle) {
			return true
		}
	}
	return false
}

func overlapsFold(values, wanted []string) bool {
	lowered := lo.Map(values, func(item string, _ int) string {
		return strings.ToLower(strings.TrimSpace(item))
	})
	for _, tag := range wanted {
		if lo.Contains(lowered, strings.ToLower(strings.TrimSpace(tag))) {
			return true
		}
	}
	return false
}
