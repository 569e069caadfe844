package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVersionID(t *testing.T) {
	tests := []struct {
		name   string
		doc    Document
		wantID string
		wantOK bool
	}{
		{
			name:   "valid id",
			doc:    Document{"versionId": "v-1", "payload": "x"},
			wantID: "v-1",
			wantOK: true,
		},
		{
			name:   "missing field",
			doc:    Document{"payload": "x"},
			wantOK: false,
		},
		{
			name:   "empty string",
			doc:    Document{"versionId": ""},
			wantOK: false,
		},
		{
			name:   "null value",
			doc:    Document{"versionId": nil},
			wantOK: false,
		},
		{
			name:   "non-string value",
			doc:    Document{"versionId": 42},
			wantOK: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, ok := VersionID(tt.doc)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.wantID, id)
		})
	}
}

func TestParentMemberID(t *testing.T) {
	tests := []struct {
		name   string
		doc    Document
		wantID string
		wantOK bool
	}{
		{
			name:   "valid nested id",
			doc:    Document{"parentMember": map[string]interface{}{"parentMemberId": "P1"}},
			wantID: "P1",
			wantOK: true,
		},
		{
			name:   "missing parentMember",
			doc:    Document{"dependentMembers": []interface{}{}},
			wantOK: false,
		},
		{
			name:   "parentMember not an object",
			doc:    Document{"parentMember": "P1"},
			wantOK: false,
		},
		{
			name:   "empty nested id",
			doc:    Document{"parentMember": map[string]interface{}{"parentMemberId": ""}},
			wantOK: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, ok := ParentMemberID(tt.doc)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.wantID, id)
		})
	}
}

func TestDedupDependents_LastOccurrenceWins(t *testing.T) {
	entries := []interface{}{
		map[string]interface{}{"memberDependencyId": "D1", "v": 1},
		map[string]interface{}{"memberDependencyId": "D1", "v": 2},
	}

	out := DedupDependents(entries)

	require.Len(t, out, 1)
	assert.Equal(t, map[string]interface{}{"memberDependencyId": "D1", "v": 2}, out[0])
}

func TestDedupDependents_KeepsFirstSeenPosition(t *testing.T) {
	entries := []interface{}{
		map[string]interface{}{"memberDependencyId": "D1", "v": 1},
		map[string]interface{}{"memberDependencyId": "D2", "v": 1},
		map[string]interface{}{"memberDependencyId": "D1", "v": 2},
	}

	out := DedupDependents(entries)

	require.Len(t, out, 2)
	d1 := out[0].(map[string]interface{})
	assert.Equal(t, "D1", d1["memberDependencyId"])
	assert.Equal(t, 2, d1["v"])
	assert.Equal(t, "D2", out[1].(map[string]interface{})["memberDependencyId"])
}

func TestDedupDependents_UnkeyedEntriesPassThrough(t *testing.T) {
	entries := []interface{}{
		map[string]interface{}{"note": "no id"},
		map[string]interface{}{"memberDependencyId": "D1", "v": 1},
		map[string]interface{}{"note": "also no id"},
		map[string]interface{}{"memberDependencyId": "D1", "v": 2},
		"not even an object",
	}

	out := DedupDependents(entries)

	require.Len(t, out, 4)
	assert.Equal(t, map[string]interface{}{"note": "no id"}, out[0])
	assert.Equal(t, 2, out[1].(map[string]interface{})["v"])
	assert.Equal(t, map[string]interface{}{"note": "also no id"}, out[2])
	assert.Equal(t, "not even an object", out[3])
}

func TestDedupDependents_Empty(t *testing.T) {
	assert.Empty(t, DedupDependents(nil))
	assert.Empty(t, DedupDependents([]interface{}{}))
}

func TestNewMemberSnapshot(t *testing.T) {
	syncedAt := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	doc := Document{
		"parentMember": map[string]interface{}{"parentMemberId": "P1", "name": "parent"},
		"dependentMembers": []interface{}{
			map[string]interface{}{"memberDependencyId": "D1", "v": 1},
			map[string]interface{}{"memberDependencyId": "D1", "v": 2},
		},
	}

	snapshot, parentID, ok := NewMemberSnapshot(doc, syncedAt)

	require.True(t, ok)
	assert.Equal(t, "P1", parentID)
	assert.Equal(t, "P1", snapshot[FieldParentMemberID])
	assert.Equal(t, doc["parentMember"], snapshot[FieldParentMember])
	assert.Equal(t, syncedAt, snapshot[FieldLastSyncedAt])

	deps := snapshot[FieldDependentMembers].([]interface{})
	require.Len(t, deps, 1)
	assert.Equal(t, 2, deps[0].(map[string]interface{})["v"])
}

func TestNewMemberSnapshot_NoDependents(t *testing.T) {
	doc := Document{"parentMember": map[string]interface{}{"parentMemberId": "P1"}}

	snapshot, _, ok := NewMemberSnapshot(doc, time.Now())

	require.True(t, ok)
	assert.Equal(t, []interface{}{}, snapshot[FieldDependentMembers])
}

func TestNewMemberSnapshot_MissingParentID(t *testing.T) {
	_, _, ok := NewMemberSnapshot(Document{"dependentMembers": []interface{}{}}, time.Now())
	assert.False(t, ok)
}
