// Package targets turns configured file names into an ordered target list.
package targets

import (
	"fmt"
	"strings"

	"github.com/gobwas/glob"

	"github.com/datallboy/gofetch/internal/domain"
	"github.com/datallboy/gofetch/internal/infra/config"
)

// Load applies the include/exclude patterns to names and numbers what is left
// in input order. When include is empty every name is included.
func Load(cfg config.TargetsConfig) ([]domain.Target, error) {
	include, err := compileAll(cfg.Include)
	if err != nil {
		return nil, err
	}
	exclude, err := compileAll(cfg.Exclude)
	if err != nil {
		return nil, err
	}

	var names []string
	for _, raw := range cfg.Names {
		name := strings.TrimSpace(raw)
		if name == "" {
			continue
		}
		if len(include) > 0 && !matchAny(include, name) {
			continue
		}
		if matchAny(exclude, name) {
			continue
		}
		names = append(names, name)
	}

	return domain.NewTargets(names...), nil
}

func compileAll(patterns []string) ([]glob.Glob, error) {
	globs := make([]glob.Glob, 0, len(patterns))
	for _, p := range patterns {
		g, err := glob.Compile(p, '/')
		if err != nil {
			return nil, fmt.Errorf("%w: bad target pattern %q: %v", domain.ErrInvalidConfig, p, err)
		}
		globs = append(globs, g)
	}
	return globs, nil
}

func matchAny(globs []glob.Glob, name string) bool {
	for _, g := range globs {
		if g.Match(name) {
			return true
		}
	}
	return false
}
