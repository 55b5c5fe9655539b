// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import "encoding/json"

// jsonList marshals a string slice for a JSONB column. A nil slice is
// stored as an empty array, never SQL NULL.
func jsonList(list []string) []byte {
	if list == nil {
		list = []string{}
	}
	b, err := json.Marshal(list)
	if err != nil {
		return []byte("[]")
	}
	return b
}

// scanList unmarshals a JSONB column into a string slice. NULL and
// malformed payloads decode to nil.
func scanList(raw []byte) []string {
	if len(raw) == 0 {
		return nil
	}
	var list []string
	if err := json.Unmarshal(raw, &list); err != nil {
		return nil
	}
	if len(list) == 0 {
		return nil
	}
	return list
}
