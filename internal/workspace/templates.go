package workspace

import (
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Template describes a named file template. Bodies may reference {{title}}
// and {{date}} placeholders.
type Template struct {
	Name      string `yaml:"name"`
	Extension string `yaml:"extension"`
	Body      string `yaml:"body"`
}

type templateFile struct {
	Templates []Template `yaml:"templates"`
}

func builtinTemplates() map[string]Template {
	return map[string]Template{
		"basic": {
			Name:      "basic",
			Extension: ".txt",
			Body:      "{{title}}\n",
		},
		"markdown": {
			Name:      "markdown",
			Extension: ".md",
			Body:      "# {{title}}\n\n## Overview\n\n_Created {{date}}._\n",
		},
		"email": {
			Name:      "email",
			Extension: ".txt",
			Body:      "Subject: {{title}}\n\nDear Sir or Madam,\n\n\n\nBest regards,\n",
		},
	}
}

// LoadTemplates merges templates from a YAML file over the built-in set.
// An empty path returns just the built-ins.
func LoadTemplates(path string) (map[string]Template, error) {
	templates := builtinTemplates()
	if strings.TrimSpace(path) == "" {
		return templates, nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read template file: %w", err)
	}
	var tf templateFile
	if err := yaml.Unmarshal(b, &tf); err != nil {
		return nil, fmt.Errorf("decode template file %s: %w", path, err)
	}
	for _, t := range tf.Templates {
		name := strings.ToLower(strings.TrimSpace(t.Name))
		if name == "" {
			continue
		}
		if t.Extension == "" {
			t.Extension = ".txt"
		}
		t.Name = name
		templates[name] = t
	}
	return templates, nil
}

func renderTemplate(t Template, title string, now time.Time) string {
	body := strings.ReplaceAll(t.Body, "{{title}}", title)
	body = strings.ReplaceAll(body, "{{date}}", now.Format("2006-01-02 15:04"))
	return body
}
