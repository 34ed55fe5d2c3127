package validation

import (
	"errors"
	"fmt"
	"strings"
)

// Level indicates which validation stage produced the result.
type Level string

const (
	LevelOptions   Level = "options"
	LevelGeometry  Level = "geometry"
	LevelAnalytics Level = "analytics"
)

// Severity indicates how critical a validation result is.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
	SeverityInfo    Severity = "info"
)

// Path names the option or snapshot field a result is about, spelled the way
// the config file and the JSON export spell it: "town.patches",
// "buildings[4].shape".
type Path string

// Roots of the two documents a town is checked against.
const (
	TownOptions Path = "town"
	Buildings   Path = "buildings"
	Gates       Path = "gates"
	Towers      Path = "towers"
	Walls       Path = "walls"
	Roads       Path = "roads"
	Streets     Path = "streets"
	Water       Path = "water"
	WaterBorder Path = "water_border"
	Districts   Path = "districts"
)

// Option returns the path of a key in the town section of the config.
func Option(key string) Path {
	return TownOptions.Field(key)
}

// Field descends into a named member.
func (p Path) Field(name string) Path {
	if p == "" {
		return Path(name)
	}
	return p + "." + Path(name)
}

// Index descends into the i-th element of a list.
func (p Path) Index(i int) Path {
	return Path(fmt.Sprintf("%s[%d]", p, i))
}

// Within reports whether p is prefix itself or lies below it.
func (p Path) Within(prefix Path) bool {
	if !strings.HasPrefix(string(p), string(prefix)) {
		return false
	}
	rest := p[len(prefix):]
	return rest == "" || rest[0] == '.' || rest[0] == '['
}

// Result is a single validation finding.
type Result struct {
	Level        Level    `json:"level"`
	Severity     Severity `json:"severity"`
	Message      string   `json:"message"`
	Path         Path     `json:"path,omitempty"`
	Subject      string   `json:"subject,omitempty"` // id of the building concerned
	ActualValue  any      `json:"actual_value,omitempty"`
	Expected     string   `json:"expected,omitempty"`
	ConflictWith Path     `json:"conflict_with,omitempty"`
	Suggestions  []string `json:"suggestions,omitempty"`
}

func (r Result) String() string {
	if r.Path == "" {
		return fmt.Sprintf("[%s] %s", r.Level, r.Message)
	}
	return fmt.Sprintf("[%s] %s: %s", r.Level, r.Path, r.Message)
}

// Report is the complete validation output.
type Report struct {
	Valid    bool     `json:"valid"`
	Errors   []Result `json:"errors"`
	Warnings []Result `json:"warnings"`
	Info     []Result `json:"info"`
	Summary  string   `json:"summary"`
}

// NewReport creates an empty valid report.
func NewReport() *Report {
	r := &Report{
		Valid:    true,
		Errors:   []Result{},
		Warnings: []Result{},
		Info:     []Result{},
	}
	r.updateSummary()
	return r
}

// AddError adds an error result and marks the report invalid.
func (r *Report) AddError(result Result) {
	result.Severity = SeverityError
	r.Errors = append(r.Errors, result)
	r.Valid = false
	r.updateSummary()
}

// AddWarning adds a warning result.
func (r *Report) AddWarning(result Result) {
	result.Severity = SeverityWarning
	r.Warnings = append(r.Warnings, result)
	r.updateSummary()
}

// AddInfo adds an informational result.
func (r *Report) AddInfo(result Result) {
	result.Severity = SeverityInfo
	r.Info = append(r.Info, result)
	r.updateSummary()
}

// Merge combines another report into this one.
func (r *Report) Merge(other *Report) {
	r.Errors = append(r.Errors, other.Errors...)
	r.Warnings = append(r.Warnings, other.Warnings...)
	r.Info = append(r.Info, other.Info...)
	if !other.Valid {
		r.Valid = false
	}
	r.updateSummary()
}

// At returns every result about p or a field below it, errors first.
func (r *Report) At(p Path) []Result {
	var out []Result
	for _, group := range [][]Result{r.Errors, r.Warnings, r.Info} {
		for _, res := range group {
			if res.Path.Within(p) {
				out = append(out, res)
			}
		}
	}
	return out
}

// Err joins the errors of an invalid report; it is nil while the report is
// valid.
func (r *Report) Err() error {
	if r.Valid {
		return nil
	}
	if len(r.Errors) == 0 {
		return errors.New(r.Summary)
	}
	errs := make([]error, len(r.Errors))
	for i, res := range r.Errors {
		errs[i] = errors.New(res.String())
	}
	return errors.Join(errs...)
}

func (r *Report) updateSummary() {
	r.Summary = fmt.Sprintf("%d errors, %d warnings, %d info",
		len(r.Errors), len(r.Warnings), len(r.Info))
}
