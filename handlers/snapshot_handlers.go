package handlers

import (
	"context"
	"fmt"
	"log"
	"time"

	"app/database"
	"app/forecast"
	"app/middleware"
	"app/models"
	"app/utils"

	"github.com/gofiber/fiber/v2"
)

// HandleListSnapshots returns recent snapshots with their counts, newest
// first, paginated.
// GET /api/v1/snapshots?page=&pageSize=&store_name=
func HandleListSnapshots(c *fiber.Ctx) error {
	db := database.GetDB()
	ctx := context.Background()

	page := c.QueryInt("page", 1)
	pageSize := c.QueryInt("pageSize", 10)

	var storeName *string
	if s := c.Query("store_name"); s != "" {
		storeName = &s
	}

	countQuery := "SELECT COUNT(*) FROM snapshots"
	listQuery := `
        SELECT id, timestamp, time_of_day, store_name
        FROM snapshots
    `
	args := []interface{}{}
	if storeName != nil {
		countQuery += " WHERE store_name = $1"
		listQuery += " WHERE store_name = $1"
		args = append(args, *storeName)
	}

	var totalItems int
	if err := db.QueryRow(ctx, countQuery, args...).Scan(&totalItems); err != nil {
		log.Printf("❌ [SNAPSHOTS] Count query error: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "message": "Failed to list snapshots"})
	}

	pagination := utils.CreatePagination(totalItems, page, pageSize)
	listQuery += " ORDER BY timestamp DESC LIMIT " + placeholder(len(args)+1) + " OFFSET " + placeholder(len(args)+2)
	args = append(args, pagination.PageSize, (pagination.CurrentPage-1)*pagination.PageSize)

	rows, err := db.Query(ctx, listQuery, args...)
	if err != nil {
		log.Printf("❌ [SNAPSHOTS] Query error: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "message": "Failed to list snapshots"})
	}
	defer rows.Close()

	snapshots := make([]models.Snapshot, 0)
	for rows.Next() {
		var s models.Snapshot
		if err := rows.Scan(&s.ID, &s.Timestamp, &s.TimeOfDay, &s.StoreName); err != nil {
			log.Printf("❌ [SNAPSHOTS] Scan error: %v", err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "message": "Failed to process snapshots"})
		}
		snapshots = append(snapshots, s)
	}

	// Attach counts per snapshot.
	for i := range snapshots {
		countRows, err := db.Query(ctx,
			"SELECT id, snapshot_id, product_type, count FROM inventory_counts WHERE snapshot_id = $1 ORDER BY product_type",
			snapshots[i].ID)
		if err != nil {
			log.Printf("⚠️  [SNAPSHOTS] Failed to fetch counts for snapshot %d: %v", snapshots[i].ID, err)
			snapshots[i].Counts = []models.InventoryCount{}
			continue
		}
		counts := make([]models.InventoryCount, 0)
		for countRows.Next() {
			var ic models.InventoryCount
			if err := countRows.Scan(&ic.ID, &ic.SnapshotID, &ic.ProductType, &ic.Count); err != nil {
				log.Printf("⚠️  [SNAPSHOTS] Failed to scan count: %v", err)
				continue
			}
			counts = append(counts, ic)
		}
		countRows.Close()
		snapshots[i].Counts = counts
	}

	return c.JSON(fiber.Map{"success": true, "data": fiber.Map{
		"snapshots":  snapshots,
		"pagination": pagination,
	}})
}

// HandleCreateSnapshot records a manual count pass (one AM or EOD snapshot
// with per-product counts).
// POST /api/v1/snapshots
func HandleCreateSnapshot(c *fiber.Ctx) error {
	var req models.CreateSnapshotRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": "Invalid request body"})
	}

	if req.TimeOfDay != forecast.TimeOfDayAM && req.TimeOfDay != forecast.TimeOfDayEOD {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": "time_of_day must be 'AM' or 'EOD'"})
	}
	if len(req.Counts) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": "counts must not be empty"})
	}
	for _, count := range req.Counts {
		if count.ProductType == "" || count.Count < 0 {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": "each count needs a product_type and a non-negative count"})
		}
	}

	claims, err := middleware.ExtractClaims(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"success": false, "message": "Unauthorized"})
	}

	storeName := req.StoreName
	if storeName == "" {
		storeName = "default"
	}
	timestamp := time.Now().UTC()
	if req.Timestamp != nil {
		timestamp = req.Timestamp.UTC()
	}

	snapshot, err := insertSnapshot(context.Background(), timestamp, req.TimeOfDay, storeName, req.Counts)
	if err != nil {
		log.Printf("❌ [SNAPSHOTS] Failed to create snapshot: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "message": "Failed to create snapshot"})
	}

	log.Printf("✅ [SNAPSHOTS] User %s created %s snapshot %d for store %s with %d counts",
		claims.UserID, snapshot.TimeOfDay, snapshot.ID, snapshot.StoreName, len(snapshot.Counts))
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "data": snapshot})
}

// insertSnapshot writes a snapshot row and its counts in one transaction.
func insertSnapshot(ctx context.Context, timestamp time.Time, timeOfDay, storeName string, counts []models.RecognizedCount) (*models.Snapshot, error) {
	db := database.GetDB()
	tx, err := db.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	snapshot := models.Snapshot{TimeOfDay: timeOfDay, StoreName: storeName}
	err = tx.QueryRow(ctx,
		"INSERT INTO snapshots (timestamp, time_of_day, store_name) VALUES ($1, $2, $3) RETURNING id, timestamp",
		timestamp, timeOfDay, storeName,
	).Scan(&snapshot.ID, &snapshot.Timestamp)
	if err != nil {
		return nil, err
	}

	for _, count := range counts {
		var ic models.InventoryCount
		err = tx.QueryRow(ctx,
			"INSERT INTO inventory_counts (snapshot_id, product_type, count) VALUES ($1, $2, $3) RETURNING id, snapshot_id, product_type, count",
			snapshot.ID, count.ProductType, count.Count,
		).Scan(&ic.ID, &ic.SnapshotID, &ic.ProductType, &ic.Count)
		if err != nil {
			return nil, err
		}
		snapshot.Counts = append(snapshot.Counts, ic)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return &snapshot, nil
}

// placeholder builds a positional SQL placeholder like "$3".
func placeholder(n int) string {
	return fmt.Sprintf("$%d", n)
}
