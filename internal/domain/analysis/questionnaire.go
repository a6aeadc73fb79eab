package analysis

import (
	_ "embed"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed questionnaire.yaml
var defaultQuestionnaireYAML []byte

// Question is one item of the dosha questionnaire. Options are suggestions;
// a free-typed answer is equally valid.
type Question struct {
	Key     string   `yaml:"key" json:"key"`
	Text    string   `yaml:"text" json:"text"`
	Options []string `yaml:"options" json:"options"`
}

// Questionnaire is the ordered set of questions a dosha request must answer.
type Questionnaire struct {
	Questions []Question `yaml:"questions" json:"questions"`
}

// ParseQuestionnaire decodes a YAML questionnaire and checks that keys are
// present and unique.
func ParseQuestionnaire(data []byte) (Questionnaire, error) {
	var q Questionnaire
	if err := yaml.Unmarshal(data, &q); err != nil {
		return Questionnaire{}, fmt.Errorf("questionnaire: %w", err)
	}
	if len(q.Questions) == 0 {
		return Questionnaire{}, fmt.Errorf("questionnaire: no questions")
	}
	seen := make(map[string]bool, len(q.Questions))
	for i, item := range q.Questions {
		if strings.TrimSpace(item.Key) == "" {
			return Questionnaire{}, fmt.Errorf("questionnaire: question %d has no key", i)
		}
		if seen[item.Key] {
			return Questionnaire{}, fmt.Errorf("questionnaire: duplicate key %q", item.Key)
		}
		seen[item.Key] = true
	}
	return q, nil
}

// DefaultQuestionnaire returns the built-in six question catalog.
func DefaultQuestionnaire() Questionnaire {
	q, err := ParseQuestionnaire(defaultQuestionnaireYAML)
	if err != nil {
		panic(err)
	}
	return q
}

// Keys returns the question keys in declaration order.
func (q Questionnaire) Keys() []string {
	keys := make([]string, 0, len(q.Questions))
	for _, item := range q.Questions {
		keys = append(keys, item.Key)
	}
	return keys
}

// Missing returns the keys that have no non-blank answer.
func (q Questionnaire) Missing(answers map[string]string) []string {
	var missing []string
	for _, item := range q.Questions {
		if strings.TrimSpace(answers[item.Key]) == "" {
			missing = append(missing, item.Key)
		}
	}
	return missing
}
