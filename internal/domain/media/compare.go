package media

// Changed compares two image lists for the purpose of deciding whether the
// stored files were superseded. An empty list counts as null.
func Changed(stored, incoming []string) bool {
	if len(stored) == 0 && len(incoming) == 0 {
		return false
	}
	if len(stored) != len(incoming) {
		return true
	}
	for i := range stored {
		if stored[i] != incoming[i] {
			return true
		}
	}
	return false
}

// Strings reads an image leaf as a URL list. Accepts a single string,
// []string and []any; non-string members are skipped.
func Strings(v any) []string {
	switch t := v.(type) {
	case nil:
		return nil
	case string:
		if t == "" {
			return nil
		}
		return []string{t}
	case []string:
		out := make([]string, 0, len(t))
		for _, s := range t {
			if s != "" {
				out = append(out, s)
			}
		}
		return out
	case []any:
		out := make([]string, 0, len(t))
		for _, e := range t {
			if s, ok := e.(string); ok && s != "" {
				out = append(out, s)
			}
		}
		return out
	default:
		return nil
	}
}

// Superseded returns the members of old that are absent from keep.
func Superseded(old, keep []string) []string {
	if len(old) == 0 {
		return nil
	}
	kept := make(map[string]struct{}, len(keep))
	for _, k := range keep {
		kept[k] = struct{}{}
	}
	var out []string
	for _, o := range old {
		if _, ok := kept[o]; !ok {
			out = append(out, o)
		}
	}
	return out
}
