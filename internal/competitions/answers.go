package competitions

import (
	"errors"
	"fmt"
)

var ErrUnknownQuestion = errors.New("answer references unknown question")

// ValidateAnswer checks a submitted answer against the declared type and
// option list of its question.
func ValidateAnswer(q Question, a Answer) error {
	if a.Type != q.Type {
		return fmt.Errorf("question %q expects a %s answer, got %s", q.Label, q.Type, a.Type)
	}

	switch q.Type {
	case QuestionText:
		if q.Required && a.Text == "" {
			return fmt.Errorf("question %q requires an answer", q.Label)
		}
	case QuestionNumber:
		// zero is a legitimate numeric answer, nothing further to check
	case QuestionSelect, QuestionRadio:
		if a.Text == "" {
			if q.Required {
				return fmt.Errorf("question %q requires a choice", q.Label)
			}
			return nil
		}
		if !containsString(q.Options, a.Text) {
			return fmt.Errorf("question %q has no option %q", q.Label, a.Text)
		}
	case QuestionCheckbox:
		if q.Required && len(a.Selections) == 0 {
			return fmt.Errorf("question %q requires at least one selection", q.Label)
		}
		for _, sel := range a.Selections {
			if !containsString(q.Options, sel) {
				return fmt.Errorf("question %q has no option %q", q.Label, sel)
			}
		}
	default:
		return fmt.Errorf("question %q has unsupported type %q", q.Label, q.Type)
	}
	return nil
}

// ValidateResponses matches each response to its question by id and
// validates the answer. Questions not answered are only an error when
// marked required.
func ValidateResponses(questions []Question, responses []QuestionResponse) error {
	byID := make(map[string]Question, len(questions))
	for _, q := range questions {
		byID[q.ID.Hex()] = q
	}

	answered := make(map[string]bool, len(responses))
	for _, resp := range responses {
		q, ok := byID[resp.QuestionID.Hex()]
		if !ok {
			return fmt.Errorf("%w: %s", ErrUnknownQuestion, resp.QuestionID.Hex())
		}
		if err := ValidateAnswer(q, resp.Answer); err != nil {
			return err
		}
		answered[resp.QuestionID.Hex()] = true
	}

	for _, q := range questions {
		if q.Required && !answered[q.ID.Hex()] {
			return fmt.Errorf("question %q requires an answer", q.Label)
		}
	}
	return nil
}

func containsString(list []string, v string) bool {
	for _, item := range list {
		if item == v {
			return true
		}
	}
	return false
}
