package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/erazemk/zelje/internal/model"
)

// Claim toggle errors, mapped to status codes at the request boundary.
var (
	ErrItemNotFound   = errors.New("item not found")
	ErrNoClaimer      = errors.New("no claimer token")
	ErrClaimedByOther = errors.New("item already claimed by someone else")
)

// ToggleClaim claims an available item for token, or releases a claimed item
// if token is the one that claimed it. Returns whether the item is claimed
// after the toggle.
//
// Both transitions are guarded UPDATEs conditioned on the state the caller
// observed, so two toggles racing on the same row cannot both win: the loser's
// UPDATE matches no rows and the toggle fails with ErrClaimedByOther.
func ToggleClaim(ctx context.Context, db *sql.DB, id int64, token string) (claimed bool, err error) {
	item, err := GetItem(ctx, db, id)
	if err != nil {
		return false, err
	}
	if item == nil {
		return false, ErrItemNotFound
	}

	if token == "" {
		return false, ErrNoClaimer
	}

	if item.Status == model.StatusClaimed {
		if item.Claimer != token {
			return false, ErrClaimedByOther
		}

		// Unclaim, but only if the item is still held by this token.
		result, err := db.ExecContext(ctx,
			`UPDATE wishlist SET status = ?, claimer = NULL
			 WHERE id = ? AND status = ? AND claimer = ?`,
			model.StatusAvailable, id, model.StatusClaimed, token,
		)
		if err != nil {
			return false, fmt.Errorf("unclaiming item: %w", err)
		}
		if n, _ := result.RowsAffected(); n == 0 {
			return false, ErrClaimedByOther
		}
		return false, nil
	}

	// Claim, but only if the item is still unclaimed. NULL and empty status
	// count as available (rows that predate the status default).
	result, err := db.ExecContext(ctx,
		`UPDATE wishlist SET status = ?, claimer = ?
		 WHERE id = ? AND (status IS NULL OR status = '' OR status = ?)`,
		model.StatusClaimed, token, id, model.StatusAvailable,
	)
	if err != nil {
		return false, fmt.Errorf("claiming item: %w", err)
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return false, ErrClaimedByOther
	}
	return true, nil
}
