package model

import (
	"bytes"
	"encoding/json"
)

// RelatedUser normalizes the join shape produced by the legacy store
// export, which delivers the leave→user relation as a single object, a
// one-element array, or null depending on how the query was issued. All
// three shapes collapse to a resolved full name, empty when absent.
type RelatedUser struct {
	FullName string `json:"full_name"`
}

// UnmarshalJSON accepts {object, array, null} relation payloads.
func (r *RelatedUser) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		r.FullName = ""
		return nil
	}

	if data[0] == '[' {
		var list []struct {
			FullName string `json:"full_name"`
		}
		if err := json.Unmarshal(data, &list); err != nil {
			return err
		}
		if len(list) == 0 {
			r.FullName = ""
			return nil
		}
		r.FullName = list[0].FullName
		return nil
	}

	var single struct {
		FullName string `json:"full_name"`
	}
	if err := json.Unmarshal(data, &single); err != nil {
		return err
	}
	r.FullName = single.FullName
	return nil
}

// Resolved returns the employee name and whether it could be resolved.
func (r RelatedUser) Resolved() (string, bool) {
	return r.FullName, r.FullName != ""
}
