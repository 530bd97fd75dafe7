package models

import (
	"encoding/json"
	"testing"
)

func TestUserProfileKeepsUnknownFields(t *testing.T) {
	raw := `{"id":"u-1","name":"Thanh","picture":{"data":{"url":"https://img.example.com/p.jpg"}},"birthday":"01/01/2000"}`

	var profile UserProfile
	if err := json.Unmarshal([]byte(raw), &profile); err != nil {
		t.Fatal(err)
	}
	if profile.ID != "u-1" || profile.Name != "Thanh" {
		t.Fatalf("unexpected profile: %+v", profile)
	}
	if _, ok := profile.Extra["birthday"]; !ok {
		t.Fatal("unknown field was dropped on unmarshal")
	}

	out, err := json.Marshal(&profile)
	if err != nil {
		t.Fatal(err)
	}

	var got, want map[string]any
	if err := json.Unmarshal(out, &got); err != nil {
		t.Fatal(err)
	}
	if err := json.Unmarshal([]byte(raw), &want); err != nil {
		t.Fatal(err)
	}
	if len(got) != len(want) {
		t.Fatalf("round trip changed field set: got %v, want %v", got, want)
	}
	for k := range want {
		if _, ok := got[k]; !ok {
			t.Errorf("round trip lost field %q", k)
		}
	}
}
