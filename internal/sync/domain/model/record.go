package model

import "time"

// Field names recognized by the sync core. Everything else in a record is
// opaque caller payload and is stored verbatim.
const (
	FieldVersionID        = "versionId"
	FieldParentMember     = "parentMember"
	FieldParentMemberID   = "parentMemberId"
	FieldDependentMembers = "dependentMembers"
	FieldDependencyID     = "memberDependencyId"
	FieldLastSyncedAt     = "lastSyncedAt"
)

// Document is an untyped record as received from the caller or stored in the
// collection.
type Document map[string]interface{}

// UpsertOperation is one insert-or-replace-by-key write. The key field the
// operation targets is decided by the engine submitting the batch.
type UpsertOperation struct {
	Key      string
	Document Document
}

// BulkResult reports the outcome of one batch write.
type BulkResult struct {
	MatchedCount  int64
	UpsertedCount int64
	ModifiedCount int64
}

// DeleteResult reports the outcome of one delete call.
type DeleteResult struct {
	DeletedCount int64
}

// stringKey reads a non-empty string value from a document field. Missing,
// null, empty and non-string values all count as absent.
func stringKey(doc map[string]interface{}, field string) (string, bool) {
	raw, exists := doc[field]
	if !exists {
		return "", false
	}
	s, ok := raw.(string)
	if !ok || s == "" {
		return "", false
	}
	return s, true
}

// VersionID extracts the identity of a flat version record.
func VersionID(doc Document) (string, bool) {
	return stringKey(doc, FieldVersionID)
}

// ParentMemberID extracts the identity of a member snapshot record. The id
// lives on the nested parentMember payload.
func ParentMemberID(doc Document) (string, bool) {
	raw, exists := doc[FieldParentMember]
	if !exists {
		return "", false
	}
	parent, ok := raw.(map[string]interface{})
	if !ok {
		return "", false
	}
	return stringKey(parent, FieldParentMemberID)
}

// DependencyID extracts the identity of one dependent sub-record. Dependents
// that are not objects or carry no id have no identity.
func DependencyID(entry interface{}) (string, bool) {
	dep, ok := entry.(map[string]interface{})
	if !ok {
		return "", false
	}
	return stringKey(dep, FieldDependencyID)
}

// DedupDependents collapses a dependent list to one entry per
// memberDependencyId. The last occurrence in input order wins; the entry
// stays at the position where its id was first seen. Entries without an id
// are kept in place, untouched by deduplication.
func DedupDependents(entries []interface{}) []interface{} {
	if len(entries) == 0 {
		return entries
	}

	out := make([]interface{}, 0, len(entries))
	seen := make(map[string]int)

	for _, entry := range entries {
		id, ok := DependencyID(entry)
		if !ok {
			out = append(out, entry)
			continue
		}
		if idx, dup := seen[id]; dup {
			out[idx] = entry
			continue
		}
		seen[id] = len(out)
		out = append(out, entry)
	}
	return out
}

// NewMemberSnapshot builds the stored form of one hierarchical record:
// identity lifted to the top level, dependents deduplicated, lastSyncedAt
// stamped. Returns false when the record carries no usable parentMemberId.
func NewMemberSnapshot(doc Document, syncedAt time.Time) (Document, string, bool) {
	parentID, ok := ParentMemberID(doc)
	if !ok {
		return nil, "", false
	}

	var dependents []interface{}
	if raw, exists := doc[FieldDependentMembers]; exists {
		if list, isList := raw.([]interface{}); isList {
			dependents = DedupDependents(list)
		}
	}
	if dependents == nil {
		dependents = []interface{}{}
	}

	return Document{
		FieldParentMemberID:   parentID,
		FieldParentMember:     doc[FieldParentMember],
		FieldDependentMembers: dependents,
		FieldLastSyncedAt:     syncedAt,
	}, parentID, true
}
