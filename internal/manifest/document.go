package manifest

// Safe accessors over the loosely typed manifest value. Each returns an
// absence indicator instead of failing, mirroring the skip-and-warn policy
// for malformed records.

func asObject(v interface{}) (map[string]interface{}, bool) {
	obj, ok := v.(map[string]interface{})
	return obj, ok
}

func asArray(v interface{}) ([]interface{}, bool) {
	arr, ok := v.([]interface{})
	return arr, ok
}

// stringField returns the string value of key. A key that is present with a
// non-string value counts as absent.
func stringField(obj map[string]interface{}, key string) (string, bool) {
	v, ok := obj[key]
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	return s, ok
}

// firstStringField scans keys in priority order and returns the first
// string-valued match.
func firstStringField(obj map[string]interface{}, keys []string) (string, bool) {
	for _, key := range keys {
		if s, ok := stringField(obj, key); ok {
			return s, true
		}
	}
	return "", false
}
