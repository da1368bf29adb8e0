package paintstore

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	gormlogger "gorm.io/gorm/logger"

	"github.com/Faultbox/meshpaint/internal/logger"
)

// PaintEdit is one stored vertex color.
type PaintEdit struct {
	ID          uint      `gorm:"primaryKey"`
	ModelID     string    `gorm:"size:128;not null;uniqueIndex:idx_model_vertex"`
	VertexIndex int       `gorm:"not null;uniqueIndex:idx_model_vertex"`
	Color       string    `gorm:"size:7;not null"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime"`
}

// SQLiteStore stores edits as (model_id, vertex_index) rows.
type SQLiteStore struct {
	db   *gorm.DB
	path string
}

// OpenSQLite opens (or creates) the database at path and migrates the schema.
func OpenSQLite(path string) (*SQLiteStore, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("create database dir: %w", err)
		}
	}

	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("open paint database: %w", err)
	}
	if err := db.AutoMigrate(&PaintEdit{}); err != nil {
		return nil, fmt.Errorf("migrate paint database: %w", err)
	}

	logger.Info("paint database ready", zap.String("path", path))
	return &SQLiteStore{db: db, path: path}, nil
}

// Load returns the edits for modelID.
func (s *SQLiteStore) Load(ctx context.Context, modelID string) (map[string]string, error) {
	var rows []PaintEdit
	if err := s.db.WithContext(ctx).Where("model_id = ?", modelID).Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("load edits: %w", err)
	}

	edits := make(map[string]string, len(rows))
	for _, r := range rows {
		edits[strconv.Itoa(r.VertexIndex)] = r.Color
	}
	return edits, nil
}

// Update upserts each entry in one statement. Keys must be integers.
func (s *SQLiteStore) Update(ctx context.Context, modelID string, edits map[string]string) error {
	if len(edits) == 0 {
		return nil
	}
	rows, err := toRows(modelID, edits)
	if err != nil {
		return err
	}

	err = s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "model_id"}, {Name: "vertex_index"}},
		DoUpdates: clause.AssignmentColumns([]string{"color", "updated_at"}),
	}).CreateInBatches(rows, 500).Error
	if err != nil {
		return fmt.Errorf("upsert edits: %w", err)
	}
	return nil
}

// Replace overwrites all edits of modelID in a transaction.
func (s *SQLiteStore) Replace(ctx context.Context, modelID string, edits map[string]string) error {
	rows, err := toRows(modelID, edits)
	if err != nil {
		return err
	}
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("model_id = ?", modelID).Delete(&PaintEdit{}).Error; err != nil {
			return fmt.Errorf("clear edits: %w", err)
		}
		if len(rows) == 0 {
			return nil
		}
		if err := tx.CreateInBatches(rows, 500).Error; err != nil {
			return fmt.Errorf("insert edits: %w", err)
		}
		return nil
	})
}

// Models lists the stored model IDs in order.
func (s *SQLiteStore) Models(ctx context.Context) ([]string, error) {
	var ids []string
	err := s.db.WithContext(ctx).Model(&PaintEdit{}).
		Distinct("model_id").Order("model_id").Pluck("model_id", &ids).Error
	if err != nil {
		return nil, fmt.Errorf("list models: %w", err)
	}
	return ids, nil
}

// Close releases the database handle.
func (s *SQLiteStore) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func toRows(modelID string, edits map[string]string) ([]PaintEdit, error) {
	rows := make([]PaintEdit, 0, len(edits))
	for k, color := range edits {
		idx, err := strconv.Atoi(k)
		if err != nil {
			return nil, fmt.Errorf("vertex index %q: %w", k, err)
		}
		if strconv.Itoa(idx) != k {
			return nil, fmt.Errorf("vertex index %q is not in canonical form", k)
		}
		rows = append(rows, PaintEdit{ModelID: modelID, VertexIndex: idx, Color: color})
	}
	return rows, nil
}
