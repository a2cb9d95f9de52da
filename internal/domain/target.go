package domain

// Target is a single file name to fetch from the configured base host.
type Target struct {
	Index int    `json:"index" yaml:"index"`
	Name  string `json:"name" yaml:"name"`
}

// NewTargets numbers names in input order.
func NewTargets(names ...string) []Target {
	targets := make([]Target, 0, len(names))
	for i, n := range names {
		targets = append(targets, Target{Index: i, Name: n})
	}
	return targets
}

// URL is the base host with the target name appended verbatim. The base
// carries its own separator, so "http://h/videos/" and "http://h/get?file="
// both work.
func (t Target) URL(baseHost string) string {
	return baseHost + t.Name
}
