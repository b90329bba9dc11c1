// Package protocol ships the NIOSH/OSHA user seal check procedure and
// evaluates reported outcomes into fitter guidance.
package protocol

import (
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"
)

//go:embed steps.yaml
var stepsYAML []byte

// Test IDs present in the embedded procedure.
const (
	TestPositivePressure = "positive_pressure"
	TestNegativePressure = "negative_pressure"
)

// PressureTest is one seal check test with its full instructions.
type PressureTest struct {
	ID        string   `yaml:"id" json:"id"`
	Name      string   `yaml:"name" json:"name"`
	Purpose   string   `yaml:"purpose" json:"purpose"`
	Procedure []string `yaml:"procedure" json:"procedure"`
	Expected  []string `yaml:"expected" json:"expected"`
	OnFailure []string `yaml:"on_failure" json:"on_failure"`
}

// SealCheck is the complete user seal check procedure: the pre-donning
// checklist, both pressure tests, and the standing safety notes.
type SealCheck struct {
	PreCheck    []string       `yaml:"pre_check" json:"pre_check"`
	Tests       []PressureTest `yaml:"tests" json:"tests"`
	SafetyNotes []string       `yaml:"safety_notes" json:"safety_notes"`
}

// Load parses the embedded seal check procedure. The data ships with the
// binary and is not user-editable; fitting organizations that need custom
// wording recompile.
func Load() *SealCheck {
	sc, err := parse(stepsYAML)
	if err != nil {
		// This is an embedded file so this error should never happen in practice
		panic("failed to parse embedded steps.yaml: " + err.Error())
	}
	return sc
}

func parse(data []byte) (*SealCheck, error) {
	var sc SealCheck
	if err := yaml.Unmarshal(data, &sc); err != nil {
		return nil, fmt.Errorf("parsing seal check YAML: %w", err)
	}

	if len(sc.PreCheck) == 0 {
		return nil, fmt.Errorf("seal check has no pre-donning checklist")
	}
	for _, id := range []string{TestPositivePressure, TestNegativePressure} {
		test, ok := sc.Test(id)
		if !ok {
			return nil, fmt.Errorf("seal check is missing the %s test", id)
		}
		if len(test.Procedure) == 0 || len(test.Expected) == 0 || len(test.OnFailure) == 0 {
			return nil, fmt.Errorf("seal check test %s is incomplete", id)
		}
	}
	return &sc, nil
}

// Test returns the pressure test with the given ID.
func (s *SealCheck) Test(id string) (PressureTest, bool) {
	for _, t := range s.Tests {
		if t.ID == id {
			return t, true
		}
	}
	return PressureTest{}, false
}
