package prompt

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	gocache "github.com/patrickmn/go-cache"
)

// Template names, resolved relative to the loader's directory.
const (
	TemplateGenerateAnswer       = "generate_answer.txt"
	TemplateGenerateSimpleAnswer = "generate_simple_answer.txt"
)

// Loader reads prompt templates from disk and caches them. Templates are
// plain text files with named placeholders like {question} and {context}.
type Loader struct {
	dir   string
	cache *gocache.Cache
}

func NewLoader(dir string) *Loader {
	return &Loader{
		dir:   dir,
		cache: gocache.New(gocache.NoExpiration, gocache.NoExpiration),
	}
}

// Get returns the raw template text for the given name.
func (l *Loader) Get(name string) (string, error) {
	if cached, found := l.cache.Get(name); found {
		return cached.(string), nil
	}

	data, err := os.ReadFile(filepath.Join(l.dir, name))
	if err != nil {
		return "", fmt.Errorf("load prompt template %q: %w", name, err)
	}

	text := string(data)
	l.cache.Set(name, text, gocache.NoExpiration)
	return text, nil
}

// Format substitutes {name} placeholders with the given values.
func Format(template string, values map[string]string) string {
	pairs := make([]string, 0, len(values)*2)
	for name, value := range values {
		pairs = append(pairs, "{"+name+"}", value)
	}
	return strings.NewReplacer(pairs...).Replace(template)
}
