package models

import "encoding/json"

// UserProfile is the provider-supplied profile snapshot stored in the
// session cookie. Only id, name and picture are read by the app; every
// other field the provider sends is kept opaque in Extra so the cookie
// round-trips byte-for-byte in meaning.
type UserProfile struct {
	ID      string          `json:"id"`
	Name    string          `json:"name"`
	Picture json.RawMessage `json:"picture,omitempty"`

	Extra map[string]json.RawMessage `json:"-"`
}

func (p *UserProfile) UnmarshalJSON(data []byte) error {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return err
	}

	if raw, ok := fields["id"]; ok {
		if err := json.Unmarshal(raw, &p.ID); err != nil {
			return err
		}
		delete(fields, "id")
	}
	if raw, ok := fields["name"]; ok {
		if err := json.Unmarshal(raw, &p.Name); err != nil {
			return err
		}
		delete(fields, "name")
	}
	if raw, ok := fields["picture"]; ok {
		p.Picture = raw
		delete(fields, "picture")
	}

	if len(fields) > 0 {
		p.Extra = fields
	}
	return nil
}

func (p UserProfile) MarshalJSON() ([]byte, error) {
	fields := make(map[string]json.RawMessage, len(p.Extra)+3)
	for k, v := range p.Extra {
		fields[k] = v
	}

	id, err := json.Marshal(p.ID)
	if err != nil {
		return nil, err
	}
	fields["id"] = id

	name, err := json.Marshal(p.Name)
	if err != nil {
		return nil, err
	}
	fields["name"] = name

	if len(p.Picture) > 0 {
		fields["picture"] = p.Picture
	}

	return json.Marshal(fields)
}
