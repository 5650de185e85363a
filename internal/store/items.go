package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/erazemk/zelje/internal/model"
)

// ErrEmptyTitle is returned when creating an item without a title.
var ErrEmptyTitle = errors.New("title is required")

// CreateItem creates a new item. New items start out available and unclaimed.
func CreateItem(ctx context.Context, db *sql.DB, title, description, link, image, price string) (*model.Item, error) {
	if strings.TrimSpace(title) == "" {
		return nil, ErrEmptyTitle
	}

	result, err := db.ExecContext(ctx,
		`INSERT INTO wishlist (title, description, link, image, price) VALUES (?, ?, ?, ?, ?)`,
		title, description, link, image, price,
	)
	if err != nil {
		return nil, fmt.Errorf("creating item: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("getting item id: %w", err)
	}

	return GetItem(ctx, db, id)
}

// GetItem returns an item by ID, or nil if it doesn't exist.
func GetItem(ctx context.Context, db *sql.DB, id int64) (*model.Item, error) {
	item := &model.Item{}
	var description, link, image, price, status, claimer sql.NullString
	err := db.QueryRowContext(ctx,
		`SELECT id, title, description, link, image, price, status, claimer
		 FROM wishlist WHERE id = ?`, id,
	).Scan(&item.ID, &item.Title, &description, &link, &image, &price, &status, &claimer)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("getting item: %w", err)
	}
	item.Description = description.String
	item.Link = link.String
	item.Image = image.String
	item.Price = price.String
	item.Status = normalizeStatus(status.String)
	item.Claimer = claimer.String
	return item, nil
}

// ListItems returns all items in insertion order.
func ListItems(ctx context.Context, db *sql.DB) ([]model.Item, error) {
	rows, err := db.QueryContext(ctx,
		`SELECT id, title, description, link, image, price, status, claimer
		 FROM wishlist ORDER BY id`,
	)
	if err != nil {
		return nil, fmt.Errorf("listing items: %w", err)
	}
	defer rows.Close()

	var items []model.Item
	for rows.Next() {
		var item model.Item
		var description, link, image, price, status, claimer sql.NullString
		if err := rows.Scan(&item.ID, &item.Title, &description, &link, &image, &price, &status, &claimer); err != nil {
			return nil, fmt.Errorf("scanning item: %w", err)
		}
		item.Description = description.String
		item.Link = link.String
		item.Image = image.String
		item.Price = price.String
		item.Status = normalizeStatus(status.String)
		item.Claimer = claimer.String
		items = append(items, item)
	}
	return items, rows.Err()
}

// normalizeStatus maps a missing status (rows from before the column had a
// default) to available.
func normalizeStatus(status string) string {
	if status == "" {
		return model.StatusAvailable
	}
	return status
}
