package store

import (
	"context"
	"fmt"
	"log"

	"CaffeineSentinel/internal/model"
)

// Brands returns all brands ordered by name.
func (s *Store) Brands(ctx context.Context) ([]model.Brand, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT brand_id, brand_name FROM brand ORDER BY brand_name`)
	if err != nil {
		return nil, fmt.Errorf("query brands: %w", err)
	}
	defer rows.Close()

	brands := []model.Brand{}
	for rows.Next() {
		var b model.Brand
		if err := rows.Scan(&b.BrandID, &b.BrandName); err != nil {
			return nil, fmt.Errorf("scan brand: %w", err)
		}
		brands = append(brands, b)
	}
	return brands, rows.Err()
}

// MenusByBrand returns one brand's catalog.
func (s *Store) MenusByBrand(ctx context.Context, brandID int64) ([]model.Menu, error) {
	return s.queryMenus(ctx,
		s.q(`SELECT m.menu_id, m.brand_id, b.brand_name, m.menu_name, m.category, m.size, m.caffeine_mg
			FROM menu m JOIN brand b ON m.brand_id = b.brand_id
			WHERE m.brand_id = ?
			ORDER BY m.category, m.menu_name, m.size`),
		brandID)
}

// AllMenus returns the full catalog with brand names.
func (s *Store) AllMenus(ctx context.Context) ([]model.Menu, error) {
	return s.queryMenus(ctx,
		`SELECT m.menu_id, m.brand_id, b.brand_name, m.menu_name, m.category, m.size, m.caffeine_mg
			FROM menu m JOIN brand b ON m.brand_id = b.brand_id
			ORDER BY b.brand_name, m.category, m.menu_name, m.size`)
}

// SearchMenus matches the query against menu and brand names.
func (s *Store) SearchMenus(ctx context.Context, query string) ([]model.Menu, error) {
	pattern := "%" + query + "%"
	return s.queryMenus(ctx,
		s.q(`SELECT m.menu_id, m.brand_id, b.brand_name, m.menu_name, m.category, m.size, m.caffeine_mg
			FROM menu m JOIN brand b ON m.brand_id = b.brand_id
			WHERE m.menu_name LIKE ? OR b.brand_name LIKE ?
			ORDER BY b.brand_name, m.menu_name`),
		pattern, pattern)
}

func (s *Store) queryMenus(ctx context.Context, query string, args ...any) ([]model.Menu, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query menus: %w", err)
	}
	defer rows.Close()

	menus := []model.Menu{}
	for rows.Next() {
		var m model.Menu
		if err := rows.Scan(&m.MenuID, &m.BrandID, &m.BrandName, &m.MenuName, &m.Category, &m.Size, &m.CaffeineMg); err != nil {
			return nil, fmt.Errorf("scan menu: %w", err)
		}
		menus = append(menus, m)
	}
	return menus, rows.Err()
}

// starterCatalog seeds an empty database so the app is usable out of the box.
var starterCatalog = map[string][]model.Menu{
	"Starbucks": {
		{MenuName: "Caffe Americano", Category: "coffee", Size: "regular", CaffeineMg: 150},
		{MenuName: "Caffe Latte", Category: "coffee", Size: "regular", CaffeineMg: 75},
		{MenuName: "Cold Brew", Category: "coffee", Size: "regular", CaffeineMg: 155},
		{MenuName: "Decaf Americano", Category: "decaf", Size: "regular", CaffeineMg: 10},
	},
	"Ediya": {
		{MenuName: "Americano", Category: "coffee", Size: "regular", CaffeineMg: 125},
		{MenuName: "Cafe Latte", Category: "coffee", Size: "regular", CaffeineMg: 92},
	},
	"Mega Coffee": {
		{MenuName: "Mega Americano", Category: "coffee", Size: "large", CaffeineMg: 210},
		{MenuName: "Decaf Latte", Category: "decaf", Size: "regular", CaffeineMg: 8},
	},
}

// SeedCatalog inserts the starter brands and menus when the catalog is empty.
func (s *Store) SeedCatalog(ctx context.Context) error {
	var count int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM brand`).Scan(&count); err != nil {
		return fmt.Errorf("count brands: %w", err)
	}
	if count > 0 {
		return nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	for brandName, menus := range starterCatalog {
		var brandID int64
		err := tx.QueryRowContext(ctx,
			s.q(`INSERT INTO brand (brand_name) VALUES (?) RETURNING brand_id`), brandName,
		).Scan(&brandID)
		if err != nil {
			return fmt.Errorf("seed brand %s: %w", brandName, err)
		}
		for _, m := range menus {
			_, err := tx.ExecContext(ctx,
				s.q(`INSERT INTO menu (brand_id, menu_name, category, size, caffeine_mg) VALUES (?, ?, ?, ?, ?)`),
				brandID, m.MenuName, m.Category, m.Size, m.CaffeineMg,
			)
			if err != nil {
				return fmt.Errorf("seed menu %s: %w", m.MenuName, err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	log.Println("[INFO] seeded starter menu catalog")
	return nil
}
