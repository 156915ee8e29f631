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
	"testing"

	"github.com/google/go-cmp/cmp"
)

func reasons(res *Result) map[string]Reason {
	m := make(map[string]Reason)
	for _, u := range res.Unresolved {
		m[u.Target.ID] = u.Reason
	}
	return m
}

func TestBuildExactName(t *testing.T) {
	dst := newMemFont("->")
	donor := newMemFont("->", "hyphen_greater.liga")

	b := &Builder{Catalog: []Target{NewTarget("->")}}
	res, err := b.Build(dst, donor)
	if err != nil {
		t.Fatal(err)
	}

	expected := []Rule{{
		Target:   "hyphen_greater",
		Input:    []string{"hyphen", "greater"},
		Ligature: "hyphen_greater.liga",
		Donor:    "hyphen_greater.liga",
	}}
	if d := cmp.Diff(expected, res.Rules); d != "" {
		t.Error(d)
	}
	if len(res.Unresolved) != 0 {
		t.Errorf("unexpected unresolved targets: %v", res.Unresolved)
	}
	if !res.OK {
		t.Error("build not OK")
	}
	if dst.copied["hyphen_greater.liga"] != "hyphen_greater.liga" {
		t.Errorf("glyph not copied: %v", dst.copied)
	}
	if dst.feature != "liga" {
		t.Errorf("wrong feature %q", dst.feature)
	}
	if d := cmp.Diff(expected, dst.installed); d != "" {
		t.Error(d)
	}
	if b.State() != StateFinalized {
		t.Errorf("wrong state %s", b.State())
	}
}

func TestBuildGlyphNotFound(t *testing.T) {
	dst := newMemFont("+-")
	donor := newMemFont("", "hyphen_hyphen.liga")

	b := &Builder{Catalog: []Target{NewTarget("++")}}
	res, err := b.Build(dst, donor)
	if err != nil {
		t.Fatal(err)
	}
	if len(res.Rules) != 0 {
		t.Errorf("unexpected rules: %v", res.Rules)
	}
	if got := reasons(res)["plus_plus"]; got != ReasonGlyphNotFound {
		t.Errorf("wrong reason %q", got)
	}
	if res.OK {
		t.Error("empty build accepted")
	}
	if dst.installed != nil || dst.feature != "" {
		t.Error("empty table installed")
	}
}

func TestBuildBaseCharMissing(t *testing.T) {
	dst := newMemFont("-")
	donor := newMemFont("", "ampersand_ampersand.liga")

	b := &Builder{Catalog: []Target{NewTarget("&&")}}
	res, err := b.Build(dst, donor)
	if err != nil {
		t.Fatal(err)
	}
	if len(res.Rules) != 0 {
		t.Errorf("partial rule created: %v", res.Rules)
	}
	if got := reasons(res)["ampersand_ampersand"]; got != ReasonBaseCharMissing {
		t.Errorf("wrong reason %q", got)
	}
	if len(dst.copied) != 0 {
		t.Errorf("glyph copied for unresolved target: %v", dst.copied)
	}
}

func TestBuildMissingBaseNeverPartial(t *testing.T) {
	// Only the first character is missing, only the last, or all.
	for _, mapped := range []string{"=", "!", ""} {
		dst := newMemFont(mapped)
		donor := newMemFont("", "exclam_equal.liga")
		b := &Builder{Catalog: []Target{NewTarget("!=")}}
		res, err := b.Build(dst, donor)
		if err != nil {
			t.Fatal(err)
		}
		if len(res.Rules) != 0 || res.Unresolved[0].Reason != ReasonBaseCharMissing {
			t.Errorf("%q: got %v / %v", mapped, res.Rules, res.Unresolved)
		}
	}
}

func TestBuildDuplicateTrigger(t *testing.T) {
	dst := newMemFont("->")
	donor := newMemFont("", "arrow_hyphen_greater")

	catalog := []Target{
		{ID: "arrow", Seq: []rune("->")},
		{ID: "arrow-again", Seq: []rune("->")},
	}
	b := &Builder{Catalog: catalog}
	res, err := b.Build(dst, donor)
	if err != nil {
		t.Fatal(err)
	}

	if len(res.Rules) != 1 || res.Rules[0].Target != "arrow" {
		t.Fatalf("wrong rules: %v", res.Rules)
	}
	if len(res.Unresolved) != 1 {
		t.Fatalf("wrong unresolved: %v", res.Unresolved)
	}
	u := res.Unresolved[0]
	if u.Target.ID != "arrow-again" || u.Reason != ReasonDuplicateTrigger {
		t.Errorf("wrong unresolved entry %v", u)
	}
	var conflict *ConflictError
	if !errors.As(u.Err, &conflict) || conflict.Existing.Target != "arrow" {
		t.Errorf("wrong conflict error %v", u.Err)
	}
	if len(dst.copied) != 1 {
		t.Errorf("duplicate glyph created: %v", dst.copied)
	}
}

func TestBuildCopyFailed(t *testing.T) {
	dst := newMemFont("-=>!")
	dst.failOn["hyphen_greater.liga"] = true
	dst.panicOn["equal_greater.liga"] = true
	donor := newMemFont("", "hyphen_greater.liga", "equal_greater.liga", "exclam_equal.liga")

	b := &Builder{Catalog: []Target{NewTarget("->"), NewTarget("=>"), NewTarget("!=")}}
	res, err := b.Build(dst, donor)
	if err != nil {
		t.Fatal(err)
	}

	got := reasons(res)
	expected := map[string]Reason{
		"hyphen_greater": ReasonCopyFailed,
		"equal_greater":  ReasonCopyFailed,
	}
	if d := cmp.Diff(expected, got); d != "" {
		t.Error(d)
	}
	if !errors.Is(res.Unresolved[0].Err, errCorrupt) {
		t.Errorf("wrong error %v", res.Unresolved[0].Err)
	}
	if !errors.Is(res.Unresolved[1].Err, errCopyPanic) {
		t.Errorf("wrong error %v", res.Unresolved[1].Err)
	}
	if len(res.Rules) != 1 || res.Rules[0].Target != "exclam_equal" {
		t.Errorf("wrong rules %v", res.Rules)
	}
	if len(dst.copied) != 1 {
		t.Errorf("failed copies left glyphs behind: %v", dst.copied)
	}
}

func TestBuildUnresolvedOrder(t *testing.T) {
	// The failures are detected in different build stages, but must be
	// reported in catalog order.
	dst := newMemFont("-+")
	donor := newMemFont("", "ampersand_ampersand.liga")

	catalog := []Target{NewTarget("&&"), NewTarget("--"), NewTarget("++")}
	b := &Builder{Catalog: catalog}
	res, err := b.Build(dst, donor)
	if err != nil {
		t.Fatal(err)
	}

	var got []string
	for _, u := range res.Unresolved {
		got = append(got, u.Target.ID+":"+string(u.Reason))
	}
	expected := []string{
		"ampersand_ampersand:base-char-missing",
		"hyphen_hyphen:glyph-not-found",
		"plus_plus:glyph-not-found",
	}
	if d := cmp.Diff(expected, got); d != "" {
		t.Error(d)
	}
}

func TestBuildIdempotent(t *testing.T) {
	run := func() ([]Rule, []string) {
		dst := newMemFont("-<>=!|")
		donor := newMemFont("-<>=",
			"hyphen_greater.liga",
			"less_equal.liga",
			"greater_equal.liga",
			"equalequal",
			"exclam_equal_equal.liga",
			"bar_bar.liga",
			"plus_plus.liga")
		b := &Builder{}
		res, err := b.Build(dst, donor)
		if err != nil {
			t.Fatal(err)
		}
		var unresolved []string
		for _, u := range res.Unresolved {
			unresolved = append(unresolved, u.String())
		}
		return res.Rules, unresolved
	}

	rules1, unresolved1 := run()
	rules2, unresolved2 := run()
	if d := cmp.Diff(rules1, rules2); d != "" {
		t.Error(d)
	}
	if d := cmp.Diff(unresolved1, unresolved2); d != "" {
		t.Error(d)
	}
	if len(rules1)+len(unresolved1) != len(DefaultCatalog) {
		t.Errorf("%d rules + %d unresolved != %d targets",
			len(rules1), len(unresolved1), len(DefaultCatalog))
	}
}

func TestBuildOneRulePerTarget(t *testing.T) {
	var donorNames []string
	for _, target := range DefaultCatalog {
		donorNames = append(donorNames, LigatureName(target.Seq))
	}
	dst := newMemFont("-<>=!+|&")
	donor := newMemFont("", donorNames...)

	b := &Builder{}
	res, err := b.Build(dst, donor)
	if err != nil {
		t.Fatal(err)
	}
	if len(res.Rules) != len(DefaultCatalog) {
		t.Fatalf("got %d rules, expected %d: %v",
			len(res.Rules), len(DefaultCatalog), res.Unresolved)
	}

	seen := make(map[string]bool)
	for i, r := range res.Rules {
		if r.Target != DefaultCatalog[i].ID {
			t.Errorf("rule %d: wrong target %q", i, r.Target)
		}
		if len(r.Input) != len(DefaultCatalog[i].Seq) {
			t.Errorf("rule %d: wrong input length", i)
		}
		key := seqKey(r.Input)
		if seen[key] {
			t.Errorf("duplicate input %v", r.Input)
		}
		seen[key] = true
	}
}

func TestBuildUniqueGlyphNames(t *testing.T) {
	dst := newMemFont("->", "hyphen_greater.liga")
	donor := newMemFont("", "hyphen_greater.liga")

	b := &Builder{Catalog: []Target{NewTarget("->")}, Feature: "dlig"}
	res, err := b.Build(dst, donor)
	if err != nil {
		t.Fatal(err)
	}
	if len(res.Rules) != 1 || res.Rules[0].Ligature != "hyphen_greater.liga.1" {
		t.Errorf("wrong rules %v", res.Rules)
	}
	if dst.feature != "dlig" {
		t.Errorf("wrong feature %q", dst.feature)
	}
}

func TestBuildNamesAfterExtraGlyphs(t *testing.T) {
	dst := newMemFont("->=")
	dst.extra["hyphen_greater.liga"] = []string{"equal_equal.liga"}
	donor := newMemFont("", "hyphen_greater.liga", "equal_equal.liga")

	b := &Builder{Catalog: []Target{NewTarget("->"), NewTarget("==")}}
	res, err := b.Build(dst, donor)
	if err != nil {
		t.Fatal(err)
	}
	if len(res.Unresolved) != 0 {
		t.Fatalf("unexpected unresolved targets %v", res.Unresolved)
	}
	expected := []string{"hyphen_greater.liga", "equal_equal.liga.1"}
	var got []string
	for _, r := range res.Rules {
		got = append(got, r.Ligature)
	}
	if d := cmp.Diff(expected, got); d != "" {
		t.Errorf("wrong ligature names (-want +got):\n%s", d)
	}
}

func TestBuildInputErrors(t *testing.T) {
	font := newMemFont("->")

	cases := []struct {
		b         *Builder
		dst       Font
		donor     GlyphSource
		expectErr error
	}{
		{&Builder{}, nil, font, errNoFont},
		{&Builder{}, font, nil, errNoFont},
		{&Builder{Catalog: []Target{}}, font, font, errEmptyCatalog},
		{&Builder{Catalog: []Target{NewTarget("-")}}, font, font, errShortTarget},
	}
	for i, c := range cases {
		_, err := c.b.Build(c.dst, c.donor)
		var inputErr *InputError
		if !errors.As(err, &inputErr) {
			t.Errorf("%d: expected InputError, got %v", i, err)
		}
		if !errors.Is(err, c.expectErr) {
			t.Errorf("%d: expected %v, got %v", i, c.expectErr, err)
		}
		if c.b.State() != StateInit {
			t.Errorf("%d: build state %s", i, c.b.State())
		}
	}
}

func TestPolicy(t *testing.T) {
	cases := []struct {
		p        Policy
		n        int
		expected bool
	}{
		{Policy{}, 0, false},
		{Policy{}, 1, true},
		{Policy{AllowEmpty: true}, 0, true},
		{Policy{MinRules: 3}, 2, false},
		{Policy{MinRules: 3}, 3, true},
		{Policy{MinRules: 3, AllowEmpty: true}, 0, true},
		{Policy{MinRules: 3, AllowEmpty: true}, 1, false},
		{Policy{MinRules: -1}, 0, false},
	}
	for _, c := range cases {
		if got := c.p.Accept(c.n); got != c.expected {
			t.Errorf("%+v.Accept(%d) = %t", c.p, c.n, got)
		}
	}
}

func TestBuildAllowEmpty(t *testing.T) {
	dst := newMemFont("->")
	donor := newMemFont("->")

	b := &Builder{Policy: Policy{AllowEmpty: true}}
	res, err := b.Build(dst, donor)
	if err != nil {
		t.Fatal(err)
	}
	if !res.OK {
		t.Error("empty build rejected")
	}
	if len(res.Unresolved) != len(DefaultCatalog) {
		t.Errorf("wrong number of unresolved targets: %d", len(res.Unresolved))
	}
}

func TestStateString(t *testing.T) {
	expected := []string{"init", "discovering", "matching", "resolving", "constructing", "finalized"}
	for s := StateInit; s <= StateFinalized; s++ {
		if s.String() != expected[s] {
			t.Errorf("%d: got %q", s, s.String())
		}
	}
}
