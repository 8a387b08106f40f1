// PlacePulse - Place Discovery and Crowd Intelligence
// Copyright 2026 A. Vela (avela)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/avela/placepulse

package profile

import "github.com/goccy/go-json"

// marshalJSON and unmarshalJSON keep the profile package on the same JSON
// implementation as the rest of the application.
func marshalJSON(v any) ([]byte, error) {
	return json.Marshal(v)
}

func unmarshalJSON(data []byte, v any) error {
	return json.Unmarshal(data, v)
}

// MarshalProfile serializes a profile to its stable JSON form. Used by
// durable registry backends and exposed for callers that persist or ship
// profiles elsewhere.
func MarshalProfile(p *UserProfile) ([]byte, error) {
	return marshalJSON(p)
}

// UnmarshalProfile parses a profile from its JSON form.
func UnmarshalProfile(data []byte) (*UserProfile, error) {
	var p UserProfile
	if err := unmarshalJSON(data, &p); err != nil {
		return nil, err
	}
	return &p, nil
}
