// Package templates ships the starter documents offered by the playground.
package templates

import (
	_ "embed"
	"fmt"
	"sort"
	"sync"

	"github.com/aretw0/vitrine/pkg/domain"
	"gopkg.in/yaml.v3"
)

// Default is the template loaded into a fresh session.
const Default = "button"

//go:embed templates.yaml
var raw []byte

// Template is a named starter document.
type Template struct {
	Name  string `yaml:"name" json:"name"`
	Title string `yaml:"title" json:"title"`
	Body  string `yaml:"body" json:"body"`
}

type catalog struct {
	Templates []Template `yaml:"templates"`
}

var (
	loadOnce sync.Once
	byName   map[string]Template
	ordered  []Template
	loadErr  error
)

func load() {
	loadOnce.Do(func() {
		var c catalog
		if err := yaml.Unmarshal(raw, &c); err != nil {
			loadErr = fmt.Errorf("failed to parse templates.yaml: %w", err)
			return
		}
		byName = make(map[string]Template, len(c.Templates))
		for _, t := range c.Templates {
			if t.Name == "" {
				continue
			}
			byName[t.Name] = t
			ordered = append(ordered, t)
		}
	})
}

// Get returns the template called name.
func Get(name string) (Template, error) {
	load()
	if loadErr != nil {
		return Template{}, loadErr
	}
	t, ok := byName[name]
	if !ok {
		return Template{}, fmt.Errorf("%w: %q", domain.ErrTemplateNotFound, name)
	}
	return t, nil
}

// Body returns the document text of a template.
func Body(name string) (string, error) {
	t, err := Get(name)
	if err != nil {
		return "", err
	}
	return t.Body, nil
}

// All returns every template in catalog order.
func All() []Template {
	load()
	out := make([]Template, len(ordered))
	copy(out, ordered)
	return out
}

// Names returns the sorted template names.
func Names() []string {
	load()
	names := make([]string, 0, len(byName))
	for name := range byName {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
