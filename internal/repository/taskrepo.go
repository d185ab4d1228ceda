package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/chetan-code/missioncontrol/internal/db"
	"github.com/chetan-code/missioncontrol/internal/models"
)

// SQLTaskRepo stores tasks and their embedded notes. Reads resolve the
// assignee and taxonomy names with outer joins so stale references come
// back as nil instead of failing the read.
type SQLTaskRepo struct {
	q db.DBTX
}

func NewTaskRepo(q db.DBTX) *SQLTaskRepo {
	return &SQLTaskRepo{q: q}
}

// a type or item only resolves under the parent the task names
const taskSelect = `SELECT t.id, t.title, t.description, t.status, t.assignee_id,
		t.taxonomy_category_id, t.taxonomy_type_id, t.taxonomy_item_id,
		t.created_at, t.updated_at,
		u.username, c.name, ty.name, i.name
	FROM tasks t
	LEFT JOIN users u ON u.id = t.assignee_id
	LEFT JOIN taxonomy_categories c ON c.id = t.taxonomy_category_id
	LEFT JOIN taxonomy_types ty ON ty.id = t.taxonomy_type_id AND ty.category_id = t.taxonomy_category_id
	LEFT JOIN taxonomy_items i ON i.id = t.taxonomy_item_id AND i.type_id = t.taxonomy_type_id`

func (r *SQLTaskRepo) Create(ctx context.Context, t *models.Task) error {
	ref := t.Taxonomy
	if ref == nil {
		ref = &models.TaxonomyRef{}
	}
	query := `INSERT INTO tasks (id, title, description, status, assignee_id,
		taxonomy_category_id, taxonomy_type_id, taxonomy_item_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.ExecContext(ctx, query,
		t.ID, t.Title, t.Description, string(t.Status), nullableString(t.AssigneeID),
		nullableString(&ref.CategoryID), nullableString(&ref.TypeID), nullableString(&ref.ItemID),
		formatTime(t.CreatedAt), formatTime(t.UpdatedAt),
	)
	if err != nil {
		return fmt.Errorf("inserting task: %w", err)
	}
	return nil
}

func (r *SQLTaskRepo) GetByID(ctx context.Context, id string) (*models.Task, error) {
	row := r.q.QueryRowContext(ctx, taskSelect+` WHERE t.id = $1`, id)
	t, err := scanTask(row)
	if err != nil {
		return nil, err
	}
	notes, err := r.notesFor(ctx, []string{t.ID})
	if err != nil {
		return nil, err
	}
	t.Notes = notes[t.ID]
	if t.Notes == nil {
		t.Notes = []models.Note{}
	}
	return t, nil
}

// List returns one page of tasks, newest first with id as tie-break.
// An empty statuses slice matches every status.
func (r *SQLTaskRepo) List(ctx context.Context, statuses []models.TaskStatus, limit, offset int) ([]models.Task, error) {
	where, args := statusClause(statuses)
	query := fmt.Sprintf(`%s%s ORDER BY t.created_at DESC, t.id ASC LIMIT $%d OFFSET $%d`,
		taskSelect, where, len(args)+1, len(args)+2)
	args = append(args, limit, offset)

	rows, err := r.q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing tasks: %w", err)
	}
	defer rows.Close()

	tasks := []models.Task{}
	var ids []string
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, *t)
		ids = append(ids, t.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating tasks: %w", err)
	}
	rows.Close()

	if len(ids) == 0 {
		return tasks, nil
	}
	notes, err := r.notesFor(ctx, ids)
	if err != nil {
		return nil, err
	}
	for i := range tasks {
		tasks[i].Notes = notes[tasks[i].ID]
		if tasks[i].Notes == nil {
			tasks[i].Notes = []models.Note{}
		}
	}
	return tasks, nil
}

func (r *SQLTaskRepo) Count(ctx context.Context, statuses []models.TaskStatus) (int, error) {
	where, args := statusClause(statuses)
	var n int
	if err := r.q.QueryRowContext(ctx, `SELECT COUNT(*) FROM tasks t`+where, args...).Scan(&n); err != nil {
		return 0, fmt.Errorf("counting tasks: %w", err)
	}
	return n, nil
}

// Update replaces every mutable column of t.
func (r *SQLTaskRepo) Update(ctx context.Context, t *models.Task) error {
	ref := t.Taxonomy
	if ref == nil {
		ref = &models.TaxonomyRef{}
	}
	query := `UPDATE tasks SET title = $1, description = $2, status = $3, assignee_id = $4,
		taxonomy_category_id = $5, taxonomy_type_id = $6, taxonomy_item_id = $7, updated_at = $8
		WHERE id = $9`
	res, err := r.q.ExecContext(ctx, query,
		t.Title, t.Description, string(t.Status), nullableString(t.AssigneeID),
		nullableString(&ref.CategoryID), nullableString(&ref.TypeID), nullableString(&ref.ItemID),
		formatTime(t.UpdatedAt), t.ID,
	)
	if err != nil {
		return fmt.Errorf("updating task: %w", err)
	}
	return affectedOne(res, "task")
}

// Delete removes the task's notes, then the task.
func (r *SQLTaskRepo) Delete(ctx context.Context, id string) error {
	if _, err := r.q.ExecContext(ctx, `DELETE FROM task_notes WHERE task_id = $1`, id); err != nil {
		return fmt.Errorf("deleting task notes: %w", err)
	}
	res, err := r.q.ExecContext(ctx, `DELETE FROM tasks WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("deleting task: %w", err)
	}
	return affectedOne(res, "task")
}

// Touch bumps updated_at. It doubles as the existence check (and row lock)
// before a note is added or removed.
func (r *SQLTaskRepo) Touch(ctx context.Context, id string, at time.Time) error {
	res, err := r.q.ExecContext(ctx, `UPDATE tasks SET updated_at = $1 WHERE id = $2`, formatTime(at), id)
	if err != nil {
		return fmt.Errorf("touching task: %w", err)
	}
	return affectedOne(res, "task")
}

// AddNote appends n after the task's last note.
func (r *SQLTaskRepo) AddNote(ctx context.Context, taskID string, n *models.Note) error {
	query := `INSERT INTO task_notes (id, task_id, position, body, author_id, created_at)
		VALUES ($1, $2, COALESCE((SELECT MAX(position) FROM task_notes WHERE task_id = $2), 0) + 1, $3, $4, $5)`
	_, err := r.q.ExecContext(ctx, query, n.ID, taskID, n.Text, n.Author, formatTime(n.CreatedAt))
	if err != nil {
		return fmt.Errorf("inserting note: %w", err)
	}
	return nil
}

func (r *SQLTaskRepo) DeleteNote(ctx context.Context, taskID, noteID string) error {
	res, err := r.q.ExecContext(ctx, `DELETE FROM task_notes WHERE id = $1 AND task_id = $2`, noteID, taskID)
	if err != nil {
		return fmt.Errorf("deleting note: %w", err)
	}
	return affectedOne(res, "note")
}

// notesFor loads the notes of every task in ids, keyed by task id, each
// slice in insertion order.
func (r *SQLTaskRepo) notesFor(ctx context.Context, ids []string) (map[string][]models.Note, error) {
	args := make([]any, len(ids))
	for i, id := range ids {
		args[i] = id
	}
	query := `SELECT id, task_id, body, author_id, created_at FROM task_notes
		WHERE task_id IN (` + placeholders(1, len(ids)) + `) ORDER BY task_id, position, id`
	rows, err := r.q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing notes: %w", err)
	}
	defer rows.Close()

	out := make(map[string][]models.Note, len(ids))
	for rows.Next() {
		var n models.Note
		var taskID, createdAt string
		if err := rows.Scan(&n.ID, &taskID, &n.Text, &n.Author, &createdAt); err != nil {
			return nil, fmt.Errorf("scanning note: %w", err)
		}
		if n.CreatedAt, err = parseTime(createdAt); err != nil {
			return nil, fmt.Errorf("parsing note created_at: %w", err)
		}
		out[taskID] = append(out[taskID], n)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating notes: %w", err)
	}
	return out, nil
}

func statusClause(statuses []models.TaskStatus) (string, []any) {
	if len(statuses) == 0 {
		return "", nil
	}
	args := make([]any, len(statuses))
	for i, s := range statuses {
		args[i] = string(s)
	}
	return ` WHERE t.status IN (` + placeholders(1, len(statuses)) + `)`, args
}

func scanTask(s rowScanner) (*models.Task, error) {
	var t models.Task
	var status, createdAt, updatedAt string
	var assigneeID, categoryID, typeID, itemID sql.NullString
	var assigneeName, categoryName, typeName, itemName sql.NullString

	err := s.Scan(
		&t.ID, &t.Title, &t.Description, &status, &assigneeID,
		&categoryID, &typeID, &itemID,
		&createdAt, &updatedAt,
		&assigneeName, &categoryName, &typeName, &itemName,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, notFound("task")
		}
		return nil, fmt.Errorf("scanning task: %w", err)
	}

	t.Status = models.TaskStatus(status)
	if t.CreatedAt, err = parseTime(createdAt); err != nil {
		return nil, fmt.Errorf("parsing created_at: %w", err)
	}
	if t.UpdatedAt, err = parseTime(updatedAt); err != nil {
		return nil, fmt.Errorf("parsing updated_at: %w", err)
	}

	t.AssigneeID = stringPtr(assigneeID)
	if t.AssigneeID != nil && assigneeName.Valid {
		t.Assignee = &models.UserRef{ID: *t.AssigneeID, Username: assigneeName.String}
	}

	if categoryID.Valid && typeID.Valid && itemID.Valid {
		t.Taxonomy = &models.TaxonomyRef{
			CategoryID: categoryID.String,
			TypeID:     typeID.String,
			ItemID:     itemID.String,
		}
		t.TaxonomyLabel = models.NewTaxonomyLabel(
			stringPtr(categoryName), stringPtr(typeName), stringPtr(itemName),
		)
	}
	return &t, nil
}
