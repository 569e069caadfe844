package usecase

import (
	"context"

	"membersync/internal/shared/errors"
	"membersync/internal/sync/domain/model"
)

// ReconcileMembers makes the collection's parentMemberId set exactly equal to
// the batch's, in two phases:
//
//  1. Upsert: each record with a resolvable parentMemberId gets its
//     dependents deduplicated, lastSyncedAt stamped, and is submitted as one
//     insert-or-replace-by-key operation in a single batch.
//  2. Complement delete: every stored document whose parentMemberId is not
//     among the batch's input identities is removed.
//
// The phases are not atomic; a concurrent reconciliation against the same
// collection can interleave with either phase, and callers that need
// exact-snapshot guarantees must serialize reconciliations per collection.
// A failed upsert phase aborts the call before the delete phase runs.
func (uc *SyncUsecase) ReconcileMembers(ctx context.Context, req ReconcileMembersRequest) (*ReconcileMembersResult, error) {
	if len(req.Records) == 0 {
		return nil, errors.NewValidationError("Payload must be a non-empty array")
	}

	syncedAt := uc.now().UTC()
	ops := make([]model.UpsertOperation, 0, len(req.Records))
	keep := make([]string, 0, len(req.Records))
	seen := make(map[string]struct{}, len(req.Records))

	for _, record := range req.Records {
		snapshot, parentID, ok := model.NewMemberSnapshot(record, syncedAt)
		if !ok {
			continue
		}
		ops = append(ops, model.UpsertOperation{Key: parentID, Document: snapshot})
		if _, dup := seen[parentID]; !dup {
			seen[parentID] = struct{}{}
			keep = append(keep, parentID)
		}
	}

	// A batch with no resolvable identity must never reach the delete phase:
	// an empty keep set would wipe the whole collection.
	if len(ops) == 0 {
		return nil, errors.NewValidationError("No valid parentMemberId found in payload")
	}

	uc.logger.Infof("Reconciling %d member snapshots into %q (%d distinct parents)", len(ops), req.Collection, len(keep))

	if _, err := uc.repo.BulkUpsert(ctx, req.Collection, model.FieldParentMemberID, ops); err != nil {
		uc.logger.Error("Member upsert phase failed, skipping delete phase", "collection", req.Collection, "error", err)
		return nil, errors.WrapError(err, "member reconciliation failed")
	}

	res, err := uc.repo.DeleteAbsent(ctx, req.Collection, model.FieldParentMemberID, keep)
	if err != nil {
		uc.logger.Error("Member delete phase failed", "collection", req.Collection, "error", err)
		return nil, errors.WrapError(err, "member reconciliation failed")
	}

	uc.publish(ctx, EventReconcileCompleted, map[string]interface{}{
		"collection": req.Collection,
		"upserted":   len(ops),
		"deleted":    res.DeletedCount,
	})

	return &ReconcileMembersResult{
		Collection: req.Collection,
		Upserted:   len(ops),
		Deleted:    res.DeletedCount,
	}, nil
}
