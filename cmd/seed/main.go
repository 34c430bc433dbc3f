// Package main provides a CLI tool for seeding the database with initial data.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/jackc/pgx/v5"
	"golang.org/x/crypto/bcrypt"

	"atelierdesk/internal/core/id"
	"atelierdesk/internal/infrastructure/storage/postgres"
	"atelierdesk/pkg/logger"
)

func main() {
	log, err := logger.New(logger.Config{
		Level:       "info",
		Development: true,
	})
	if err != nil {
		fmt.Printf("failed to create logger: %v\n", err)
		os.Exit(1)
	}

	ctx := context.Background()

	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		log.Fatal("DATABASE_URL environment variable is required")
	}

	poolCfg := postgres.DefaultPoolConfig(dbURL)
	pool, err := postgres.NewPool(ctx, poolCfg)
	if err != nil {
		log.Fatalw("failed to connect to database", "error", err)
	}
	defer pool.Close()

	log.Info("connected to database")

	if err := seedAdminUser(ctx, pool, log); err != nil {
		log.Fatalw("failed to seed admin user", "error", err)
	}

	if os.Getenv("SEED_DEMO_DATA") == "true" {
		if err := seedDemoData(ctx, pool, log); err != nil {
			log.Fatalw("failed to seed demo data", "error", err)
		}
	}

	log.Info("seeding completed successfully")
}

func seedAdminUser(ctx context.Context, pool *postgres.Pool, log *logger.Logger) error {
	adminEmail := os.Getenv("ADMIN_EMAIL")
	if adminEmail == "" {
		adminEmail = "admin@atelierdesk.local"
	}

	adminPassword := os.Getenv("ADMIN_PASSWORD")
	if adminPassword == "" {
		adminPassword = "Admin123!"
	}

	var existingID id.ID
	err := pool.Pool.QueryRow(ctx,
		`SELECT id FROM sys_users WHERE email = $1`,
		adminEmail,
	).Scan(&existingID)
	if err == nil {
		log.Infow("admin user already exists", "email", adminEmail, "user_id", existingID)
		return nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("check admin exists: %w", err)
	}

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(adminPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	userID := id.New()
	now := time.Now()

	_, err = pool.Pool.Exec(ctx, `
		INSERT INTO sys_users (
			id, email, password_hash, display_name,
			is_active, is_admin, failed_login_attempts,
			created_at, updated_at, version
		)
		VALUES ($1, $2, $3, 'Workshop Admin', true, true, 0, $4, $4, 1)
	`, userID, adminEmail, string(passwordHash), now)
	if err != nil {
		return fmt.Errorf("insert admin user: %w", err)
	}

	log.Infow("admin user created",
		"email", adminEmail,
		"user_id", userID,
	)

	return nil
}

func seedDemoData(ctx context.Context, pool *postgres.Pool, log *logger.Logger) error {
	log.Info("seeding demo data...")

	// 1. Product models
	type modelSeed struct {
		name  string
		mType string
	}

	models := []modelSeed{
		{"Marais tote", "bag"},
		{"Voltaire crossbody", "bag"},
		{"Rivoli bifold", "wallet"},
		{"Bastille pouch", "pouch"},
		{"Sully belt", "belt"},
	}

	// Map name -> UUID for colorway and product references
	modelIDs := make(map[string]id.ID)

	for i, m := range models {
		mid := id.New()
		code := fmt.Sprintf("MDL-%05d", i+1)
		tag, err := pool.Pool.Exec(ctx, `
			INSERT INTO cat_models (id, code, name, type, version, deletion_mark)
			VALUES ($1, $2, $3, $4, 1, false)
			ON CONFLICT (type, name) WHERE deletion_mark = FALSE DO NOTHING
		`, mid, code, m.name, m.mType)
		if err != nil {
			log.Warnw("failed to seed model", "name", m.name, "error", err)
			continue
		}

		// If inserted, use new ID. If conflict, fetch the existing one.
		if tag.RowsAffected() == 0 {
			err = pool.Pool.QueryRow(ctx, `
				SELECT id FROM cat_models
				WHERE type = $1 AND name = $2 AND deletion_mark = FALSE
			`, m.mType, m.name).Scan(&mid)
			if err != nil {
				log.Warnw("failed to fetch existing model id", "name", m.name, "error", err)
				continue
			}
		}

		modelIDs[m.name] = mid
	}

	// 2. Colorways
	colorways := []struct {
		modelName string
		coloris   string
	}{
		{"Marais tote", "noir"},
		{"Marais tote", "cognac"},
		{"Voltaire crossbody", "noir"},
		{"Rivoli bifold", "chestnut"},
		{"Bastille pouch", "olive"},
		{"Sully belt", "cognac"},
	}

	colorisIDs := make(map[string]id.ID)

	for i, c := range colorways {
		modelID, ok := modelIDs[c.modelName]
		if !ok {
			continue
		}

		cid := id.New()
		code := fmt.Sprintf("CLR-%05d", i+1)
		key := c.modelName + "/" + c.coloris
		tag, err := pool.Pool.Exec(ctx, `
			INSERT INTO cat_colorways (id, code, name, model_id, version, deletion_mark)
			VALUES ($1, $2, $3, $4, 1, false)
			ON CONFLICT (model_id, name) WHERE deletion_mark = FALSE DO NOTHING
		`, cid, code, c.coloris, modelID)
		if err != nil {
			log.Warnw("failed to seed colorway", "coloris", key, "error", err)
			continue
		}

		if tag.RowsAffected() == 0 {
			err = pool.Pool.QueryRow(ctx, `
				SELECT id FROM cat_colorways
				WHERE model_id = $1 AND name = $2 AND deletion_mark = FALSE
			`, modelID, c.coloris).Scan(&cid)
			if err != nil {
				log.Warnw("failed to fetch existing colorway id", "coloris", key, "error", err)
				continue
			}
		}

		colorisIDs[key] = cid
	}

	// 3. Products
	products := []struct {
		name        string
		modelName   string
		coloris     string
		unitCost    string
		salePrice   string
		stock       int64
		weightGrams int64
	}{
		{"Marais tote noir", "Marais tote", "noir", "85.00", "240.00", 3, 950},
		{"Marais tote cognac", "Marais tote", "cognac", "85.00", "240.00", 2, 950},
		{"Voltaire crossbody noir", "Voltaire crossbody", "noir", "62.50", "185.00", 4, 620},
		{"Rivoli bifold chestnut", "Rivoli bifold", "chestnut", "28.00", "95.00", 6, 180},
		{"Bastille pouch olive", "Bastille pouch", "olive", "19.50", "65.00", 5, 140},
		{"Sully belt cognac", "Sully belt", "cognac", "24.00", "78.00", 8, 260},
	}

	for i, p := range products {
		modelID, okM := modelIDs[p.modelName]
		colorisID, okC := colorisIDs[p.modelName+"/"+p.coloris]
		if !okM || !okC {
			continue
		}

		prodID := id.New()
		code := fmt.Sprintf("PRD-%05d", i+1)
		_, err := pool.Pool.Exec(ctx, `
			INSERT INTO cat_products (
				id, code, name, model_id, coloris_id,
				unit_cost, sale_price, stock, weight_grams,
				version, deletion_mark
			)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, 1, false)
			ON CONFLICT (code) WHERE deletion_mark = FALSE DO NOTHING
		`, prodID, code, p.name, modelID, colorisID,
			p.unitCost, p.salePrice, p.stock*10000, p.weightGrams)
		if err != nil {
			log.Warnw("failed to seed product", "name", p.name, "error", err)
		}
	}

	// 4. Monthly costs for the current month
	monthKey := time.Now().UTC().Format("2006-01")
	_, err := pool.Pool.Exec(ctx, `
		INSERT INTO reg_monthly_costs (
			id, month, shipping_cost, marketing_cost, overhead_cost,
			version, deletion_mark
		)
		VALUES ($1, $2, '120.00', '200.00', '450.00', 1, false)
		ON CONFLICT (month) DO NOTHING
	`, id.New(), monthKey)
	if err != nil {
		log.Warnw("failed to seed monthly costs", "month", monthKey, "error", err)
	}

	log.Info("demo data seeded successfully")
	return nil
}
