package classify

import (
	"fmt"
	"os"
	"regexp"

	"github.com/goccy/go-yaml"

	"github.com/agentstation/radar/pkg/dataset"
	"github.com/agentstation/radar/pkg/errors"
)

// StatusRule maps a keyword pattern to the lifecycle status it signals.
type StatusRule struct {
	Status  dataset.Status `yaml:"status"`
	Pattern string         `yaml:"pattern"`
}

// CategoryRule maps a keyword pattern to a product category.
type CategoryRule struct {
	Category string `yaml:"category"`
	Pattern  string `yaml:"pattern"`
}

// Rules holds the ordered classification tables. Order matters: the first
// matching rule wins, so narrower patterns belong earlier.
type Rules struct {
	Status    []StatusRule      `yaml:"status"`
	Category  []CategoryRule    `yaml:"category"`
	Companies map[string]string `yaml:"companies"`
}

// DefaultRules returns the built-in classification tables. Patterns are
// compiled case-insensitively, so acronyms like GA, EOL, and GPU match in
// running prose.
func DefaultRules() Rules {
	return Rules{
		Status: []StatusRule{
			{Status: dataset.StatusShipped, Pattern: `\b(available\s+now|now\s+available|shipping|ships\s+today|GA\b|general\s+availability|launch(ed|ing)\b|available\s+(globally|in|today))`},
			{Status: dataset.StatusUpgraded, Pattern: `\b(update(d|)\b|v\d+(\.\d+)*\b|performance\s+improv(e|ement)|speedup|latency\s+reduced|quality\s+improved|major\s+update|new\s+version)`},
			{Status: dataset.StatusAnnounced, Pattern: `\b(announce(d|s|ment)\b|introducing|previewing|coming\s+soon|sneak\s+peek|unveil(ed|s))`},
			{Status: dataset.StatusPreview, Pattern: `\b(beta|preview|limited\s+preview|private\s+preview|public\s+preview|early\s+access)\b`},
			{Status: dataset.StatusDeprecated, Pattern: `\b(deprecat(e|ed|ion)|sunset(ting|)|retire(ment|)|EOL\b|end\s+of\s+life)`},
			{Status: dataset.StatusDelayed, Pattern: `\b(delay|delayed|postpone(d|s))\b`},
		},
		Category: []CategoryRule{
			{Category: "Model/API", Pattern: `\b(model|API|endpoint|SDK|inference|fine-tune|weights|token|embedding|prompt)\b`},
			{Category: "Tooling", Pattern: `\b(tool|IDE|extension|plugin|library|framework|notebook)\b`},
			{Category: "Infra", Pattern: `\b(GPU|cluster|server|Cloud|region|availability\s+zone|throughput|deployment)\b`},
			{Category: "Device/AR", Pattern: `\b(headset|AR|VR|glasses|wearable|Quest|Vision\s+Pro|Ray-?Ban)\b`},
			{Category: "Robotics", Pattern: `\b(robot|manipulation|locomotion|Isaac|ROS|arm|gripper|drone)\b`},
		},
		Companies: map[string]string{
			"openai.com":                "OpenAI",
			"blog.google":               "Google",
			"research.google":           "Google",
			"ai.meta.com":               "Meta",
			"developers.meta.com":       "Meta",
			"microsoft.com":             "Microsoft",
			"blogs.nvidia.com":          "NVIDIA",
			"nvidianews.nvidia.com":     "NVIDIA",
			"aws.amazon.com":            "AWS",
			"machinelearning.apple.com": "Apple",
			"huggingface.co":            "Hugging Face",
		},
	}
}

// LoadRules reads rule overrides from a YAML file. Sections present in the
// file replace the corresponding built-in table; absent sections keep the
// defaults, so a file can override just the company map.
func LoadRules(path string) (Rules, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Rules{}, errors.WrapIO("read", path, err)
	}

	var loaded Rules
	if err := yaml.Unmarshal(data, &loaded); err != nil {
		return Rules{}, errors.WrapParse("yaml", path, err)
	}

	rules := DefaultRules()
	if len(loaded.Status) > 0 {
		rules.Status = loaded.Status
	}
	if len(loaded.Category) > 0 {
		rules.Category = loaded.Category
	}
	if len(loaded.Companies) > 0 {
		rules.Companies = loaded.Companies
	}
	return rules, nil
}

// statusMatcher pairs a compiled pattern with its status.
type statusMatcher struct {
	status dataset.Status
	re     *regexp.Regexp
}

// categoryMatcher pairs a compiled pattern with its category.
type categoryMatcher struct {
	category string
	re       *regexp.Regexp
}

// compileRules compiles the tables case-insensitively, validating status
// labels and patterns up front so classification itself cannot fail.
func compileRules(rules Rules) ([]statusMatcher, []categoryMatcher, error) {
	status := make([]statusMatcher, 0, len(rules.Status))
	for i, rule := range rules.Status {
		if !rule.Status.IsValid() {
			return nil, nil, errors.NewValidationError(
				fmt.Sprintf("rules.status[%d].status", i),
				string(rule.Status),
				"not a recognized status",
			)
		}
		re, err := regexp.Compile("(?i)" + rule.Pattern)
		if err != nil {
			return nil, nil, errors.NewValidationError(
				fmt.Sprintf("rules.status[%d].pattern", i),
				rule.Pattern,
				err.Error(),
			)
		}
		status = append(status, statusMatcher{status: rule.Status, re: re})
	}

	category := make([]categoryMatcher, 0, len(rules.Category))
	for i, rule := range rules.Category {
		if rule.Category == "" {
			return nil, nil, errors.NewValidationError(
				fmt.Sprintf("rules.category[%d].category", i),
				rule.Category,
				"category cannot be empty",
			)
		}
		re, err := regexp.Compile("(?i)" + rule.Pattern)
		if err != nil {
			return nil, nil, errors.NewValidationError(
				fmt.Sprintf("rules.category[%d].pattern", i),
				rule.Pattern,
				err.Error(),
			)
		}
		category = append(category, categoryMatcher{category: rule.Category, re: re})
	}

	return status, category, nil
}
