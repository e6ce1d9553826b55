package projects

import "estate-cms/internal/domain/media"

// Result is a reconciled update: the document to persist and the stored
// image URLs it no longer references.
type Result struct {
	Document   Document
	Superseded []string
}

// Reconcile merges a normalized update into the stored document.
//
// Top-level sections missing from incoming are kept. For each image leaf:
// omitted carries the stored value, unchanged re-applies the stored value
// verbatim, changed marks the stored URLs superseded. Positional lists are
// compared index by index up to the incoming length; stored entries past
// that length are neither carried nor superseded. An explicit null section
// or list supersedes everything stored under it.
//
// Sections named in partial were not sent by the client; their keys are laid
// over the stored section instead of replacing it.
//
// Neither input is modified.
func Reconcile(stored, incoming Document, partial ...string) Result {
	in := cloneDocument(incoming)
	for _, name := range partial {
		overlay(in, stored, name)
	}

	merged := make(Document, len(stored)+len(in))
	for k, v := range stored {
		merged[k] = v
	}
	for k, v := range in {
		merged[k] = v
	}

	var superseded []string
	for _, s := range Slots {
		superseded = append(superseded, reconcileSlot(s, stored, in)...)
	}

	return Result{
		Document:   merged,
		Superseded: dedupe(media.Superseded(superseded, URLs(merged))),
	}
}

func reconcileSlot(s Slot, stored, in Document) []string {
	sec, present := in[s.Section]
	if !present {
		return nil
	}
	if sec == nil {
		return slotURLs(s, stored)
	}

	if s.Sub != "" {
		m, ok := sec.(map[string]any)
		if !ok {
			return nil
		}
		if _, has := m[s.Sub]; !has {
			if storedSec, ok := stored[s.Section].(map[string]any); ok {
				if v, ok := storedSec[s.Sub]; ok {
					m[s.Sub] = v
				}
			}
			return nil
		}
		if m[s.Sub] == nil {
			return slotURLs(s, stored)
		}
	}

	incoming := s.containers(in)
	current := s.containers(stored)

	var out []string
	for i, c := range incoming {
		if c == nil {
			continue
		}
		var prev map[string]any
		if i < len(current) {
			prev = current[i]
		}
		out = append(out, reconcileLeaf(c, prev, s.Field)...)
	}
	return out
}

func reconcileLeaf(in, stored map[string]any, field string) []string {
	var (
		storedV   any
		storedHas bool
	)
	if stored != nil {
		storedV, storedHas = stored[field]
	}

	incV, incHas := in[field]
	if !incHas {
		if storedHas {
			in[field] = storedV
		}
		return nil
	}

	old := media.Strings(storedV)
	if !media.Changed(old, media.Strings(incV)) {
		if storedHas {
			in[field] = storedV
		}
		return nil
	}
	return old
}

func overlay(in, stored Document, name string) {
	sec, ok := in[name].(map[string]any)
	if !ok {
		return
	}
	base, ok := cloneValue(stored[name]).(map[string]any)
	if !ok {
		return
	}
	for k, v := range sec {
		base[k] = v
	}
	in[name] = base
}

func slotURLs(s Slot, doc Document) []string {
	var out []string
	for _, c := range s.containers(doc) {
		if c != nil {
			out = append(out, media.Strings(c[s.Field])...)
		}
	}
	return out
}

func dedupe(in []string) []string {
	if len(in) == 0 {
		return nil
	}
	seen := make(map[string]struct{}, len(in))
	out := make([]string, 0, len(in))
	for _, s := range in {
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	return out
}

func cloneDocument(doc Document) Document {
	out := make(Document, len(doc))
	for k, v := range doc {
		out[k] = cloneValue(v)
	}
	return out
}

func cloneValue(v any) any {
	switch t := v.(type) {
	case map[string]any:
		m := make(map[string]any, len(t))
		for k, e := range t {
			m[k] = cloneValue(e)
		}
		return m
	case []any:
		l := make([]any, len(t))
		for i, e := range t {
			l[i] = cloneValue(e)
		}
		return l
	default:
		return v
	}
}
