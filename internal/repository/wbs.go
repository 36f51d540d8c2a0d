package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"wbs/classifier/internal/domain"
)

// WBSRepository reads hierarchy rows and persists classification results.
type WBSRepository interface {
	ListGroups(ctx context.Context) ([]string, error)
	LoadNodes(ctx context.Context, groupID string) ([]domain.Node, error)
	SaveLevel1(ctx context.Context, rows []domain.Level1Row) error
	SaveLevel2(ctx context.Context, rows []domain.Level2Row) error
}

type wbsRepository struct {
	db *pgxpool.Pool
}

func NewWBSRepository(db *pgxpool.Pool) WBSRepository {
	return &wbsRepository{
		db: db,
	}
}

func (r *wbsRepository) ListGroups(ctx context.Context) ([]string, error) {
	rows, err := r.db.Query(ctx, `SELECT DISTINCT group_id FROM wbs_elements ORDER BY group_id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list groups: %w", err)
	}
	defer rows.Close()

	var groups []string
	for rows.Next() {
		var groupID string
		if err := rows.Scan(&groupID); err != nil {
			return nil, fmt.Errorf("failed to scan group id: %w", err)
		}
		groups = append(groups, groupID)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read groups: %w", err)
	}

	return groups, nil
}

func (r *wbsRepository) LoadNodes(ctx context.Context, groupID string) ([]domain.Node, error) {
	query := `
	SELECT group_id, element_id, COALESCE(parent_id, ''), COALESCE(title, ''), depth_level
	FROM wbs_elements
	WHERE group_id = $1
	ORDER BY depth_level, element_id`

	rows, err := r.db.Query(ctx, query, groupID)
	if err != nil {
		return nil, fmt.Errorf("failed to load nodes for group %s: %w", groupID, err)
	}
	defer rows.Close()

	var nodes []domain.Node
	for rows.Next() {
		var node domain.Node
		if err := rows.Scan(&node.GroupID, &node.ID, &node.ParentID, &node.RawTitle, &node.DepthLevel); err != nil {
			return nil, fmt.Errorf("failed to scan node: %w", err)
		}
		nodes = append(nodes, node)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read nodes for group %s: %w", groupID, err)
	}

	return nodes, nil
}

func (r *wbsRepository) SaveLevel1(ctx context.Context, rows []domain.Level1Row) error {
	query := `
	INSERT INTO classification_level1 (group_id, element_id, title, canonical_name, matched_keywords, level1_category)
	VALUES ($1, $2, $3, $4, $5, $6)
	ON CONFLICT (group_id, element_id)
	DO UPDATE SET title = $3, canonical_name = $4, matched_keywords = $5, level1_category = $6`

	for _, row := range rows {
		_, err := r.db.Exec(ctx, query,
			row.GroupID, row.ID, row.Title, row.CanonicalName, row.MatchedKeywords, row.Level1Category)
		if err != nil {
			return fmt.Errorf("failed to save level-1 row for %s/%s: %w", row.GroupID, row.ID, err)
		}
	}

	return nil
}

func (r *wbsRepository) SaveLevel2(ctx context.Context, rows []domain.Level2Row) error {
	query := `
	INSERT INTO classification_level2 (group_id, element_id, title, canonical_name, matched_keywords, category_index, level2_category)
	VALUES ($1, $2, $3, $4, $5, $6, $7)
	ON CONFLICT (group_id, element_id, category_index)
	DO UPDATE SET title = $3, canonical_name = $4, matched_keywords = $5, level2_category = $7`

	for _, row := range rows {
		_, err := r.db.Exec(ctx, query,
			row.GroupID, row.ID, row.Title, row.CanonicalName, row.MatchedKeywords, row.CategoryIndex, row.Level2Category)
		if err != nil {
			return fmt.Errorf("failed to save level-2 row for %s/%s: %w", row.GroupID, row.ID, err)
		}
	}

	return nil
}
