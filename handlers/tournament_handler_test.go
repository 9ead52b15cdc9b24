package handlers

import (
	"encoding/json"
	"testing"

	"github.com/pitchside/matchday/services"
)

func TestParseMVPUpdate(t *testing.T) {
	tests := []struct {
		name    string
		raw     json.RawMessage
		want    services.MVPUpdate
		wantErr bool
	}{
		{name: "field absent keeps holder", raw: nil, want: services.MVPUpdate{}},
		{name: "explicit null removes award", raw: json.RawMessage(`null`), want: services.MVPUpdate{Set: true}},
		{name: "player id moves award", raw: json.RawMessage(`"p1"`), want: services.MVPUpdate{Set: true, PlayerID: strPtr("p1")}},
		{name: "non-string payload rejected", raw: json.RawMessage(`42`), wantErr: true},
		{name: "object payload rejected", raw: json.RawMessage(`{"id":"p1"}`), wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseMVPUpdate(tt.raw)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("parseMVPUpdate(%s) = %+v, want error", tt.raw, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("parseMVPUpdate(%s): %v", tt.raw, err)
			}
			if got.Set != tt.want.Set {
				t.Errorf("Set = %v, want %v", got.Set, tt.want.Set)
			}
			switch {
			case got.PlayerID == nil && tt.want.PlayerID == nil:
			case got.PlayerID == nil || tt.want.PlayerID == nil:
				t.Errorf("PlayerID = %v, want %v", got.PlayerID, tt.want.PlayerID)
			case *got.PlayerID != *tt.want.PlayerID:
				t.Errorf("PlayerID = %q, want %q", *got.PlayerID, *tt.want.PlayerID)
			}
		})
	}
}

func strPtr(s string) *string { return &s }
