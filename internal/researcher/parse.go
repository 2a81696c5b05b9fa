package researcher

import (
	"bytes"
	"encoding/json"
)

// cleanJSON strips markdown code fences and leading/trailing whitespace
// from generation-service responses. Models often wrap JSON in
// ```json ... ``` blocks. This handles: ```json\n{...}\n```,
// ```\n{...}\n```, and bare JSON.
func cleanJSON(data []byte) []byte {
	s := bytes.TrimSpace(data)
	if len(s) == 0 {
		return s
	}

	if bytes.HasPrefix(s, []byte("```")) {
		// Strip opening fence line
		if idx := bytes.IndexByte(s, '\n'); idx >= 0 {
			s = s[idx+1:]
		}
		// Strip closing fence
		if bytes.HasSuffix(s, []byte("```")) {
			s = s[:len(s)-3]
		}
		s = bytes.TrimSpace(s)
	}

	return s
}

// decodeReply parses a structured generation response into T after fence
// stripping. The ok result is false for non-JSON text or JSON of the wrong
// shape; callers downgrade that to "no usable proposals" instead of
// failing the cycle.
func decodeReply[T any](raw string) (T, bool) {
	var result T
	if err := json.Unmarshal(cleanJSON([]byte(raw)), &result); err != nil {
		var zero T
		return zero, false
	}
	return result, true
}
