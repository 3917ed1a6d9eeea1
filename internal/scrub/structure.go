package scrub

// ScrubValue recursively sanitizes a decoded JSON/YAML-style value. Strings
// are scrubbed, slices are mapped element-wise, maps are rebuilt into a new
// map with each value scrubbed. Numbers, booleans and nil pass through
// unchanged. The input is never mutated.
func (s *Scrubber) ScrubValue(v any) any {
	switch val := v.(type) {
	case string:
		return s.Scrub(val)
	case []any:
		out := make([]any, len(val))
		for i, item := range val {
			out[i] = s.ScrubValue(item)
		}
		return out
	case []string:
		out := make([]string, len(val))
		for i, item := range val {
			out[i] = s.Scrub(item)
		}
		return out
	case map[string]any:
		out := make(map[string]any, len(val))
		for k, item := range val {
			out[k] = s.ScrubValue(item)
		}
		return out
	case map[string]string:
		out := make(map[string]string, len(val))
		for k, item := range val {
			out[k] = s.Scrub(item)
		}
		return out
	default:
		return v
	}
}

// ScrubValues maps ScrubValue over a batch. A nil batch yields an empty
// slice rather than nil so callers can range and serialize it uniformly.
func (s *Scrubber) ScrubValues(values []any) []any {
	out := make([]any, len(values))
	for i, v := range values {
		out[i] = s.ScrubValue(v)
	}
	return out
}
