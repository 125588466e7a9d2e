package settings

// mergeJSON applies a JSON merge patch onto target, recursing where both
// sides hold an object and replacing the target value wholesale otherwise.
// Keys absent from the patch are left untouched; keys absent from the
// target are inserted.
func mergeJSON(target map[string]interface{}, patch map[string]interface{}) {
	for key, patchValue := range patch {
		targetValue, exists := target[key]
		if !exists {
			target[key] = patchValue
			continue
		}

		targetObj, targetIsObj := targetValue.(map[string]interface{})
		patchObj, patchIsObj := patchValue.(map[string]interface{})
		if targetIsObj && patchIsObj {
			mergeJSON(targetObj, patchObj)
			continue
		}

		target[key] = patchValue
	}
}
