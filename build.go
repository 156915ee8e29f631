// seehuhn.de/go/ligaturize - add programming ligatures to monospace fonts
// Copyright (C) 2025  Jochen Voss <voss@seehuhn.de>
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

package ligaturize

import (
	"errors"
	"fmt"
	"io"

	"github.com/sirupsen/logrus"
)

// State is the stage of a build.
type State int

// These are the build states, in the order they are visited.
const (
	StateInit State = iota
	StateDiscovering
	StateMatching
	StateResolving
	StateConstructing
	StateFinalized
)

func (s State) String() string {
	switch s {
	case StateInit:
		return "init"
	case StateDiscovering:
		return "discovering"
	case StateMatching:
		return "matching"
	case StateResolving:
		return "resolving"
	case StateConstructing:
		return "constructing"
	case StateFinalized:
		return "finalized"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Policy decides whether a build result is acceptable.
type Policy struct {
	// MinRules is the minimum number of rules a successful build must
	// produce.  Values smaller than 1 are treated as 1.
	MinRules int

	// AllowEmpty accepts builds which produce no rules at all.
	// This is useful to pass fonts through unchanged when the donor
	// has no usable ligatures.
	AllowEmpty bool
}

// Accept reports whether a build with n rules is a success.
func (p Policy) Accept(n int) bool {
	if n == 0 && p.AllowEmpty {
		return true
	}
	return n > 0 && n >= p.MinRules
}

// Unresolved describes a target which did not produce a rule.
type Unresolved struct {
	Target Target
	Reason Reason

	// Err gives details, if available.  For duplicate triggers this is a
	// [*ConflictError], for copy failures the error from the font.
	Err error
}

func (u Unresolved) String() string {
	if u.Err != nil {
		return fmt.Sprintf("%s: %s: %s", u.Target.ID, u.Reason, u.Err)
	}
	return fmt.Sprintf("%s: %s", u.Target.ID, u.Reason)
}

// Result is the outcome of a build.
type Result struct {
	// Rules lists the ligature rules added to the destination font,
	// in catalog order.
	Rules []Rule

	// Unresolved lists the targets which did not produce a rule,
	// in catalog order.
	Unresolved []Unresolved

	// Candidates lists the donor glyphs considered during matching.
	Candidates []Candidate

	// OK is set if the result is acceptable under the build policy.
	OK bool
}

// Builder adds ligature glyphs and substitution rules to a destination font.
//
// A Builder can be used for several builds, one after another.
// It must not be used concurrently.
type Builder struct {
	// Catalog lists the ligatures to add, in priority order.
	// If this is nil, DefaultCatalog is used.
	Catalog []Target

	// Predicate selects the donor glyphs which may be ligatures.
	// If this is nil, DefaultPredicate is used.
	Predicate Predicate

	// Feature is the OpenType feature tag used for the new rules.
	// If this is empty, "liga" is used.
	Feature string

	Policy Policy

	// Log receives one message for every target which could not be
	// resolved.  If this is nil, messages are discarded.
	Log logrus.FieldLogger

	state State
}

// State returns the state reached by the most recent build.
func (b *Builder) State() State {
	return b.state
}

// job tracks the progress of a single target through the build.
type job struct {
	target Target
	donor  string
	input  []string
	reason Reason
	err    error
}

func (j *job) fail(reason Reason, err error) {
	j.reason = reason
	j.err = err
}

// Build adds the ligatures from the catalog to dst, using glyph outlines
// from donor.
//
// Failures for individual targets are reported in the result and do not
// abort the build.  An error is returned only if the build could not
// start, or if the rules could not be stored in dst.
func (b *Builder) Build(dst Font, donor GlyphSource) (*Result, error) {
	b.state = StateInit
	if dst == nil || donor == nil {
		return nil, &InputError{Err: errNoFont}
	}
	catalog := b.Catalog
	if catalog == nil {
		catalog = DefaultCatalog
	}
	if err := CheckCatalog(catalog); err != nil {
		return nil, err
	}
	feature := b.Feature
	if feature == "" {
		feature = "liga"
	}
	log := b.Log
	if log == nil {
		log = discardLogger()
	}

	jobs := make([]*job, len(catalog))
	for i, t := range catalog {
		jobs[i] = &job{target: t}
	}

	b.enter(log, StateDiscovering)
	candidates := Discover(donor, b.Predicate)
	log.WithField("candidates", len(candidates)).Debug("donor scanned")

	b.enter(log, StateMatching)
	for _, j := range jobs {
		name, ok := Match(j.target, candidates)
		if !ok {
			j.fail(ReasonGlyphNotFound, nil)
			continue
		}
		j.donor = name
	}

	b.enter(log, StateResolving)
	idx := newRuneIndex(dst)
	for _, j := range pending(jobs) {
		input, r, ok := idx.resolve(j.target.Seq)
		if !ok {
			j.fail(ReasonBaseCharMissing, fmt.Errorf("no glyph for %q", r))
			continue
		}
		j.input = input
	}

	b.enter(log, StateConstructing)
	table := NewTable(feature)
	used := make(map[string]bool)
	for _, name := range dst.GlyphNames() {
		used[name] = true
	}
	for _, j := range pending(jobs) {
		if prev, dup := table.Find(j.input); dup {
			j.fail(ReasonDuplicateTrigger, &ConflictError{Existing: prev})
			continue
		}

		name := MakeVariant(used, j.donor)
		err := addGlyph(dst, donor, j.donor, name, j.input)
		if err != nil {
			delete(used, name)
			j.fail(ReasonCopyFailed, err)
			continue
		}
		// The font may have added more glyphs, e.g. components.
		for _, n := range dst.GlyphNames() {
			used[n] = true
		}

		err = table.Add(Rule{
			Target:   j.target.ID,
			Input:    j.input,
			Ligature: name,
			Donor:    j.donor,
		})
		if err != nil {
			// Find above has ruled out conflicts.
			panic(err)
		}
	}

	b.enter(log, StateFinalized)
	res := &Result{
		Rules:      table.Rules(),
		Candidates: candidates,
	}
	if table.Len() > 0 {
		err := dst.InstallLigatures(feature, res.Rules)
		if err != nil {
			return nil, fmt.Errorf("ligaturize: installing %q lookup: %w", feature, err)
		}
	}
	for _, j := range jobs {
		if j.reason == "" {
			continue
		}
		u := Unresolved{Target: j.target, Reason: j.reason, Err: j.err}
		res.Unresolved = append(res.Unresolved, u)

		entry := log.WithFields(logrus.Fields{
			"target": j.target.ID,
			"reason": string(j.reason),
		})
		if j.donor != "" {
			entry = entry.WithField("donor", j.donor)
		}
		if j.err != nil {
			entry = entry.WithError(j.err)
		}
		entry.Warn("ligature not added")
	}
	res.OK = b.Policy.Accept(len(res.Rules))

	log.WithFields(logrus.Fields{
		"rules":      len(res.Rules),
		"unresolved": len(res.Unresolved),
		"ok":         res.OK,
	}).Info("build finished")

	return res, nil
}

func (b *Builder) enter(log logrus.FieldLogger, s State) {
	log.WithField("state", s.String()).Debug("build state")
	b.state = s
}

// pending returns the jobs which have not failed so far.
func pending(jobs []*job) []*job {
	var res []*job
	for _, j := range jobs {
		if j.reason == "" {
			res = append(res, j)
		}
	}
	return res
}

// addGlyph calls dst.AddLigatureGlyph and converts panics inside the font
// library into errors.
func addGlyph(dst Font, donor GlyphSource, srcName, dstName string, input []string) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: %v", errCopyPanic, r)
		}
	}()
	return dst.AddLigatureGlyph(donor, srcName, dstName, input)
}

var errCopyPanic = errors.New("panic while copying glyph")

func discardLogger() logrus.FieldLogger {
	l := logrus.New()
	l.Out = io.Discard
	return l
}
