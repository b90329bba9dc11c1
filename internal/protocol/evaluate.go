package protocol

import (
	"fmt"
	"strings"
)

// Outcome is one pressure test's reported result.
type Outcome string

const (
	OutcomeNotPerformed Outcome = "not_performed"
	OutcomePass         Outcome = "pass"
	OutcomeFail         Outcome = "fail"
)

// ParseOutcome maps user input onto an outcome. The empty string counts as
// not performed so optional flags work unset.
func ParseOutcome(s string) (Outcome, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "pass", "passed":
		return OutcomePass, nil
	case "fail", "failed":
		return OutcomeFail, nil
	case "", "not_performed", "skipped":
		return OutcomeNotPerformed, nil
	}
	return "", fmt.Errorf("unknown outcome %q (want pass, fail or not_performed)", s)
}

// Status summarizes a whole seal check session.
type Status string

const (
	// StatusPass means both pressure tests passed.
	StatusPass Status = "pass"
	// StatusAdjust means at least one test failed. The wearer readjusts
	// and retries; a persistent failure means a different size or model.
	StatusAdjust Status = "adjust"
	// StatusIncomplete means at least one test has not been performed.
	StatusIncomplete Status = "incomplete"
)

// CheckResult carries the reported outcome of each pressure test.
type CheckResult struct {
	Positive Outcome `json:"positive_pressure"`
	Negative Outcome `json:"negative_pressure"`
}

// Verdict is the evaluation of a seal check session.
type Verdict struct {
	Status   Status   `json:"status"`
	Guidance []string `json:"guidance"`
}

// Evaluate turns reported test outcomes into a verdict. Any failure wins
// over missing tests: the remedies of every failing test are collected,
// deduplicated, in procedure order. Outcomes other than pass or fail count
// as not performed.
func (s *SealCheck) Evaluate(r CheckResult) Verdict {
	outcomes := map[string]Outcome{
		TestPositivePressure: normalize(r.Positive),
		TestNegativePressure: normalize(r.Negative),
	}

	var failed, missing []string
	for _, id := range []string{TestPositivePressure, TestNegativePressure} {
		switch outcomes[id] {
		case OutcomeFail:
			failed = append(failed, id)
		case OutcomeNotPerformed:
			missing = append(missing, id)
		}
	}

	if len(failed) > 0 {
		verdict := Verdict{Status: StatusAdjust}
		seen := make(map[string]bool)
		for _, id := range failed {
			test, _ := s.Test(id)
			for _, remedy := range test.OnFailure {
				if seen[remedy] {
					continue
				}
				seen[remedy] = true
				verdict.Guidance = append(verdict.Guidance, remedy)
			}
		}
		return verdict
	}

	if len(missing) > 0 {
		verdict := Verdict{Status: StatusIncomplete}
		for _, id := range missing {
			test, _ := s.Test(id)
			verdict.Guidance = append(verdict.Guidance, "Perform the "+test.Name)
		}
		return verdict
	}

	return Verdict{
		Status:   StatusPass,
		Guidance: []string{"Seal check passed. Repeat it every time the respirator is donned."},
	}
}

func normalize(o Outcome) Outcome {
	if o == OutcomePass || o == OutcomeFail {
		return o
	}
	return OutcomeNotPerformed
}
