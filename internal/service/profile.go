package service

import (
	"bytes"
	"fmt"
	"os"
	"sort"
	"strings"
	"text/template"

	"statement-analyzer/internal/models"

	"gopkg.in/yaml.v3"
)

const (
	ProfileStatement   = "statement"
	ProfileSummaryGPT4 = "summary-gpt4"
	ProfileGigaChat    = "gigachat"
)

const defaultSystemPrompt = "You are an expert financial advisor."

const statementSummaryTemplate = `
You are a financial analyst. Based on the following bank statement text:

- Summarize the user's investment and spending patterns
- Highlight any unusual trends or large transactions
- Suggest how the user can optimize their portfolio
- Compare performance to general market trends (e.g., NIFTY/SENSEX)
- Provide actionable tips and ideas for improvement

BANK STATEMENT TEXT:
{{.Text}}
`

const shortSummaryTemplate = `
You are a financial analyst. Analyze the following bank statement text and:
- Summarize the investment performance
- Highlight good/bad spending habits
- Suggest ways to optimize the portfolio
- Mention any market trends to consider

BANK STATEMENT TEXT:
{{.Text}}
`

const transactionTemplate = `
You are a financial assistant.

From the following raw bank statement text, extract all **financial transactions** in this JSON format:

[
  {
    "date": "DD/MM/YYYY",
    "description": "Some merchant or reason",
    "amount": -1234.56,
    "category": "food"
  },
  ...
]

Only include lines that clearly represent financial activity.
Use negative values for debits and positive for credits.
Set "category" to exactly one of: {{.Categories}}.
Reply with the JSON array only.

Text:
{{.Text}}
`

// Profile is a named set of prompts and model parameters.
type Profile struct {
	Name                   string  `yaml:"-"`
	Model                  string  `yaml:"model"`
	SystemPrompt           string  `yaml:"system_prompt"`
	SummaryTemplate        string  `yaml:"summary_template"`
	SummaryTemperature     float64 `yaml:"summary_temperature"`
	SummaryPrefixChars     int     `yaml:"summary_prefix_chars"`
	ExtractTransactions    bool    `yaml:"extract_transactions"`
	TransactionTemplate    string  `yaml:"transaction_template"`
	TransactionTemperature float64 `yaml:"transaction_temperature"`

	summaryTmpl     *template.Template
	transactionTmpl *template.Template
}

type promptData struct {
	Text       string
	Categories string
}

// SummaryPrompt renders the summary prompt over the profile's text prefix.
func (p *Profile) SummaryPrompt(text string) (string, error) {
	return render(p.summaryTmpl, promptData{
		Text:       prefixRunes(text, p.SummaryPrefixChars),
		Categories: categoryList(),
	})
}

// TransactionPrompt renders the extraction prompt over the full text.
func (p *Profile) TransactionPrompt(text string) (string, error) {
	if p.transactionTmpl == nil {
		return "", fmt.Errorf("profile %s does not extract transactions", p.Name)
	}
	return render(p.transactionTmpl, promptData{
		Text:       text,
		Categories: categoryList(),
	})
}

func (p *Profile) compile() error {
	if p.Model == "" {
		return fmt.Errorf("profile %s: model is required", p.Name)
	}
	if strings.TrimSpace(p.SummaryTemplate) == "" {
		return fmt.Errorf("profile %s: summary_template is required", p.Name)
	}

	tmpl, err := template.New(p.Name + "-summary").Option("missingkey=error").Parse(p.SummaryTemplate)
	if err != nil {
		return fmt.Errorf("profile %s: failed to parse summary_template: %w", p.Name, err)
	}
	p.summaryTmpl = tmpl

	p.transactionTmpl = nil
	if p.ExtractTransactions {
		if strings.TrimSpace(p.TransactionTemplate) == "" {
			return fmt.Errorf("profile %s: transaction_template is required when extract_transactions is set", p.Name)
		}
		tmpl, err := template.New(p.Name + "-transactions").Option("missingkey=error").Parse(p.TransactionTemplate)
		if err != nil {
			return fmt.Errorf("profile %s: failed to parse transaction_template: %w", p.Name, err)
		}
		p.transactionTmpl = tmpl
	}

	return nil
}

func render(tmpl *template.Template, data promptData) (string, error) {
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to render prompt: %w", err)
	}
	return buf.String(), nil
}

func categoryList() string {
	names := make([]string, len(models.KnownCategories))
	for i, c := range models.KnownCategories {
		names[i] = string(c)
	}
	return strings.Join(names, ", ")
}

// DefaultProfiles returns the built-in profiles, uncompiled.
func DefaultProfiles() map[string]Profile {
	return map[string]Profile{
		ProfileStatement: {
			Model:                  "gpt-3.5-turbo",
			SystemPrompt:           defaultSystemPrompt,
			SummaryTemplate:        statementSummaryTemplate,
			SummaryPrefixChars:     3000,
			ExtractTransactions:    true,
			TransactionTemplate:    transactionTemplate,
			TransactionTemperature: 0.2,
		},
		ProfileSummaryGPT4: {
			Model:              "gpt-4",
			SystemPrompt:       defaultSystemPrompt,
			SummaryTemplate:    shortSummaryTemplate,
			SummaryPrefixChars: 3000,
		},
		ProfileGigaChat: {
			Model:                  "GigaChat",
			SystemPrompt:           defaultSystemPrompt,
			SummaryTemplate:        statementSummaryTemplate,
			SummaryTemperature:     0.3,
			SummaryPrefixChars:     3000,
			ExtractTransactions:    true,
			TransactionTemplate:    transactionTemplate,
			TransactionTemperature: 0.2,
		},
	}
}

// ProfileSet holds the compiled profiles and the default selection.
type ProfileSet struct {
	profiles    map[string]*Profile
	defaultName string
}

type profileFile struct {
	Profiles map[string]yaml.Node `yaml:"profiles"`
}

// LoadProfiles compiles the built-in profiles, overlaid with the YAML file at
// path when it is set. Fields present in the file replace the built-in
// values; new names add profiles.
func LoadProfiles(path, defaultName string) (*ProfileSet, error) {
	raw := DefaultProfiles()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read profiles file: %w", err)
		}

		var file profileFile
		if err := yaml.Unmarshal(data, &file); err != nil {
			return nil, fmt.Errorf("failed to parse profiles file: %w", err)
		}

		for name, node := range file.Profiles {
			p := raw[name]
			if err := node.Decode(&p); err != nil {
				return nil, fmt.Errorf("failed to decode profile %s: %w", name, err)
			}
			raw[name] = p
		}
	}

	set := &ProfileSet{
		profiles:    make(map[string]*Profile, len(raw)),
		defaultName: defaultName,
	}
	for name, p := range raw {
		p.Name = name
		if err := p.compile(); err != nil {
			return nil, err
		}
		set.profiles[name] = &p
	}

	if _, ok := set.profiles[defaultName]; !ok {
		return nil, fmt.Errorf("default profile %s is not defined", defaultName)
	}

	return set, nil
}

// Get returns the named profile, or the default one for an empty name.
func (s *ProfileSet) Get(name string) (*Profile, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		name = s.defaultName
	}
	p, ok := s.profiles[name]
	if !ok {
		return nil, unknownProfile(name)
	}
	return p, nil
}

func (s *ProfileSet) Default() string {
	return s.defaultName
}

func (s *ProfileSet) Names() []string {
	names := make([]string, 0, len(s.profiles))
	for name := range s.profiles {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
