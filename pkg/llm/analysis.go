package llm

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Parse failure classes. Callers can tell a malformed response apart from one
// that is valid JSON but incomplete.
var (
	ErrNotJSON       = errors.New("response is not valid JSON")
	ErrMissingFields = errors.New("missing required fields in LLM response")
)

// PriorityValue holds the model-reported priority as received. Models return
// it as either a bare number or a quoted string; neither range nor type is
// corrected here.
type PriorityValue string

func (p *PriorityValue) UnmarshalJSON(data []byte) error {
	var n json.Number
	if err := json.Unmarshal(data, &n); err == nil {
		*p = PriorityValue(n.String())
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	*p = PriorityValue(s)
	return nil
}

func (p PriorityValue) MarshalJSON() ([]byte, error) {
	// Only canonical numbers are emitted unquoted; forms like "+4" or "04"
	// parse as ints but are not valid JSON tokens.
	if _, err := strconv.Atoi(string(p)); err == nil && json.Valid([]byte(p)) {
		return []byte(p), nil
	}
	return json.Marshal(string(p))
}

// Int converts the priority to an int where possible.
func (p PriorityValue) Int() (int, bool) {
	n, err := strconv.Atoi(strings.TrimSpace(string(p)))
	if err != nil {
		return 0, false
	}
	return n, true
}

// Analysis is the structured metadata the model derives for one email.
// Out-of-range scores and unknown category/sentiment/tone labels are passed
// through as received; the 1-5 range and the closed label sets are advisory
// to the prompt only.
type Analysis struct {
	Category      string        `json:"category"`
	PriorityScore PriorityValue `json:"priority_score"`
	Sentiment     string        `json:"sentiment"`
	Summary       string        `json:"summary"`
	ActionItems   []string      `json:"action_items"`
	Tone          string        `json:"tone"`
}

var requiredFields = []string{"category", "priority_score", "sentiment", "summary", "action_items", "tone"}

// ParseAnalysis extracts a validated Analysis from raw model output.
// Stage 1 strips markdown code fences, stage 2 decodes strict JSON, stage 3
// checks that all six required keys are present. Nothing is guessed at: a
// decode failure is reported verbatim together with the offending text.
func ParseAnalysis(raw string) (*Analysis, error) {
	content := stripCodeFence(strings.TrimSpace(raw))

	var fields map[string]json.RawMessage
	if err := json.Unmarshal([]byte(content), &fields); err != nil {
		return nil, fmt.Errorf("%w: %v\nResponse: %s", ErrNotJSON, err, content)
	}

	var missing []string
	for _, f := range requiredFields {
		if _, ok := fields[f]; !ok {
			missing = append(missing, f)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrMissingFields, strings.Join(missing, ", "))
	}

	var analysis Analysis
	if err := json.Unmarshal([]byte(content), &analysis); err != nil {
		return nil, fmt.Errorf("%w: %v\nResponse: %s", ErrNotJSON, err, content)
	}

	return &analysis, nil
}

// stripCodeFence removes a leading ```json or ``` marker and a trailing ```
// so fenced and unfenced responses parse identically.
func stripCodeFence(s string) string {
	if strings.HasPrefix(s, "```json") {
		s = strings.TrimPrefix(s, "```json")
	} else if strings.HasPrefix(s, "```") {
		s = strings.TrimPrefix(s, "```")
	}
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}
