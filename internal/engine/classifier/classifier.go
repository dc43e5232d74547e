// Package classifier maps paths under cache roots to typed cache units.
package classifier

import (
	"io/fs"
	"path/filepath"
	"regexp"
	"strings"

	"go.trai.ch/nvshader/internal/core/domain"
	"go.trai.ch/zerr"
)

// Candidate is a classified unit that has not been measured yet.
type Candidate struct {
	Path        string
	Type        domain.CacheType
	IsDirectory bool
	GameID      string
	GameName    string
}

// Tally holds the counts gathered while walking a unit.
type Tally struct {
	Files      int64
	Children   int64
	Containers int64
}

type compiledRule struct {
	domain.LayoutRule
	match    *regexp.Regexp
	gameIdx  int
	appIDIdx int
}

// Classifier applies layout rules to decide what is a cache unit.
type Classifier struct {
	rules [domain.NumCacheTypes]*compiledRule
}

// New compiles the layout rules. Types without a rule fall back to the built-in layout.
func New(layouts map[domain.CacheType]domain.LayoutRule) (*Classifier, error) {
	defaults := domain.DefaultLayouts()
	c := &Classifier{}

	for _, t := range domain.AllCacheTypes() {
		rule, ok := layouts[t]
		if !ok {
			rule = defaults[t]
		}

		re, err := regexp.Compile(rule.Match)
		if err != nil {
			wrapped := zerr.With(zerr.Wrap(domain.ErrInvalidParam, "invalid layout pattern"), "type", t.String())
			return nil, zerr.With(wrapped, "cause", err.Error())
		}
		for _, pattern := range rule.Ignore {
			if _, err := filepath.Match(pattern, ""); err != nil {
				wrapped := zerr.With(zerr.Wrap(domain.ErrInvalidParam, "invalid ignore pattern"), "pattern", pattern)
				return nil, zerr.With(wrapped, "cause", err.Error())
			}
		}

		c.rules[t] = &compiledRule{
			LayoutRule: rule,
			match:      re,
			gameIdx:    re.SubexpIndex("game"),
			appIDIdx:   re.SubexpIndex("appid"),
		}
	}

	return c, nil
}

// Aggregate reports whether a whole root of type t forms a single unit.
func (c *Classifier) Aggregate(t domain.CacheType) bool {
	return c.rule(t).Aggregate
}

// Ignored reports whether a base name is noise for type t.
func (c *Classifier) Ignored(t domain.CacheType, name string) bool {
	for _, pattern := range c.rule(t).Ignore {
		if ok, _ := filepath.Match(pattern, name); ok {
			return true
		}
	}
	return false
}

// Classify decides whether the child at path, with the given file mode type bits,
// is a unit of type t. Rejected children are silently excluded.
func (c *Classifier) Classify(t domain.CacheType, path string, mode fs.FileMode) (Candidate, bool) {
	rule := c.rule(t)
	name := filepath.Base(path)

	if c.Ignored(t, name) {
		return Candidate{}, false
	}

	isDir := mode.IsDir()
	switch {
	case mode&fs.ModeSymlink != 0:
		return Candidate{}, false
	case !isDir && !mode.IsRegular():
		return Candidate{}, false
	case rule.Shape == domain.ShapeDir && !isDir:
		return Candidate{}, false
	case rule.Shape == domain.ShapeFile && isDir:
		return Candidate{}, false
	}

	m := rule.match.FindStringSubmatch(name)
	if m == nil {
		return Candidate{}, false
	}

	cand := Candidate{Path: path, Type: t, IsDirectory: isDir}
	if rule.gameIdx >= 0 {
		cand.GameName = m[rule.gameIdx]
	}
	if rule.appIDIdx >= 0 {
		cand.GameID = m[rule.appIDIdx]
	}
	if cand.GameID == "" {
		cand.GameID = cand.GameName
	}

	return cand, true
}

// RootUnit returns the candidate for an aggregate root.
func (c *Classifier) RootUnit(t domain.CacheType, root string) Candidate {
	return Candidate{Path: root, Type: t, IsDirectory: true}
}

// EntryCount derives the number of records in a unit from its walk tally.
// It is best effort: zero means the count could not be derived.
func (c *Classifier) EntryCount(cand Candidate, size int64, tally Tally) int64 {
	switch c.rule(cand.Type).Count {
	case domain.CountChildren:
		return tally.Children
	case domain.CountFiles:
		return tally.Files
	case domain.CountContainers:
		return tally.Containers
	case domain.CountRecords:
		if cand.IsDirectory {
			return tally.Containers
		}
		return dxvkRecords(cand.Path, size)
	default:
		return 0
	}
}

// IsContainer reports whether a file name carries the container extension of type t.
func (c *Classifier) IsContainer(t domain.CacheType, name string) bool {
	ext := c.rule(t).MagicExt
	return ext != "" && strings.HasSuffix(name, ext)
}

func (c *Classifier) rule(t domain.CacheType) *compiledRule {
	if !t.Valid() || c.rules[t] == nil {
		return &compiledRule{match: regexp.MustCompile(`$^`), gameIdx: -1, appIDIdx: -1}
	}
	return c.rules[t]
}
