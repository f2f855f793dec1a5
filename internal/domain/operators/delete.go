package operators

// Delete removes the line at index at. Eligibility (deletable tag,
// retention ratio) is the caller's concern; the operator only performs
// the edit.
func Delete(lines []string, at int) (Result, bool) {
	if at < 0 || at >= len(lines) {
		return Result{}, false
	}

	out := make([]string, 0, len(lines)-1)
	out = append(out, lines[:at]...)
	out = append(out, lines[at+1:]...)

	return Result{Lines: out, At: at}, true
}
