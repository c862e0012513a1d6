package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/erazemk/inventar/internal/model"
)

// CreateItem inserts a new item and returns its assigned ID.
func CreateItem(ctx context.Context, db *sql.DB, name, description string, quantity int, price float64, image string) (int64, error) {
	result, err := db.ExecContext(ctx,
		`INSERT INTO items (name, description, quantity, price, image) VALUES (?, ?, ?, ?, ?)`,
		name, description, quantity, price, image,
	)
	if err != nil {
		return 0, fmt.Errorf("creating item: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("getting item id: %w", err)
	}

	return id, nil
}

// GetItem returns an item by ID, or nil if it does not exist.
func GetItem(ctx context.Context, db *sql.DB, id int64) (*model.Item, error) {
	item := &model.Item{}
	err := db.QueryRowContext(ctx,
		`SELECT id, name, description, quantity, price, image, created_at
		 FROM items WHERE id = ?`, id,
	).Scan(&item.ID, &item.Name, &item.Description, &item.Quantity, &item.Price, &item.Image, &item.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("getting item: %w", err)
	}
	return item, nil
}

// ListItems returns all items, newest first. Items created at the same
// timestamp are ordered by descending ID so the order is stable.
func ListItems(ctx context.Context, db *sql.DB) ([]model.Item, error) {
	rows, err := db.QueryContext(ctx,
		`SELECT id, name, description, quantity, price, image, created_at
		 FROM items ORDER BY created_at DESC, id DESC`,
	)
	if err != nil {
		return nil, fmt.Errorf("listing items: %w", err)
	}
	defer rows.Close()

	var items []model.Item
	for rows.Next() {
		var item model.Item
		if err := rows.Scan(&item.ID, &item.Name, &item.Description, &item.Quantity, &item.Price, &item.Image, &item.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning item: %w", err)
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

// UpdateItem overwrites all mutable fields of an item. It returns the
// number of rows affected; a nonexistent ID yields zero rows, not an error.
func UpdateItem(ctx context.Context, db *sql.DB, id int64, name, description string, quantity int, price float64, image string) (int64, error) {
	result, err := db.ExecContext(ctx,
		`UPDATE items SET name = ?, description = ?, quantity = ?, price = ?, image = ?
		 WHERE id = ?`,
		name, description, quantity, price, image, id,
	)
	if err != nil {
		return 0, fmt.Errorf("updating item: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("counting updated rows: %w", err)
	}
	return rows, nil
}

// DeleteItem removes an item's row. The caller is responsible for removing
// the associated image file. Returns the number of rows affected.
func DeleteItem(ctx context.Context, db *sql.DB, id int64) (int64, error) {
	result, err := db.ExecContext(ctx, `DELETE FROM items WHERE id = ?`, id)
	if err != nil {
		return 0, fmt.Errorf("deleting item: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("counting deleted rows: %w", err)
	}
	return rows, nil
}
