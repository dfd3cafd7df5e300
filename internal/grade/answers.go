package grade

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"wirelab/pkg/approx"
)

// LoadAnswers reads an answer sheet from a YAML file on disk.
func LoadAnswers(path string) (*AnswerSheet, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read answer sheet: %w", err)
	}
	ans, err := ParseAnswers(data)
	if err != nil {
		return nil, fmt.Errorf("answer sheet %s: %w", path, err)
	}
	return ans, nil
}

// ParseAnswers decodes and validates an answer sheet from YAML bytes.
func ParseAnswers(data []byte) (*AnswerSheet, error) {
	var ans AnswerSheet
	if err := yaml.Unmarshal(data, &ans); err != nil {
		return nil, fmt.Errorf("parse: %w", err)
	}
	if len(ans.Answers) == 0 {
		return nil, fmt.Errorf("sheet has no answers")
	}
	for id, entries := range ans.Answers {
		for key, v := range entries {
			if !approx.IsFinite(v) {
				return nil, fmt.Errorf("problem %s: answer %q is not a finite number", id, key)
			}
		}
	}
	return &ans, nil
}
