package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/groblegark/trak/internal/model"
	"github.com/groblegark/trak/internal/store"
)

// issueColumns is the column list used for SELECT statements on the issues
// table, including the joined assignee, reporter, and project references.
const issueColumns = `i.id, i.name, i.description, i.type, i.status, i.priority,
	i.story_point, i.project_id, i.sprint_id, i.assigned_to, i.assigned_by,
	i.created_at, i.updated_at,
	a.id, a.name, r.id, r.name, p.id, p.name`

const issueJoins = ` FROM issues i
	LEFT JOIN users a ON a.id = i.assigned_to
	LEFT JOIN users r ON r.id = i.assigned_by
	LEFT JOIN projects p ON p.id = i.project_id`

// executor is the interface satisfied by both *sql.DB and *sql.Tx.
type executor interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func queryCreateIssue(ctx context.Context, db executor, issue *model.RawIssue) error {
	return db.QueryRowContext(ctx, `
		INSERT INTO issues (
			name, description, type, status, priority, story_point,
			project_id, sprint_id, assigned_to, assigned_by
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id, created_at, updated_at`,
		issue.Name,
		issue.Description,
		issue.Type,
		issue.Status,
		issue.Priority,
		issue.StoryPoint,
		nullInt(issue.ProjectID),
		nullIntPtr(issue.SprintID),
		nullInt(issue.AssignedTo),
		nullInt(issue.AssignedBy),
	).Scan(&issue.ID, &issue.CreatedAt, &issue.UpdatedAt)
}

func queryGetIssue(ctx context.Context, db executor, id int) (*model.RawIssue, error) {
	row := db.QueryRowContext(ctx, `SELECT `+issueColumns+issueJoins+` WHERE i.id = $1`, id)
	return scanIssue(row)
}

func queryListIssues(ctx context.Context, db executor, filter store.IssueFilter) ([]*model.RawIssue, error) {
	var (
		where []string
		args  []any
	)
	arg := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if filter.ProjectID != nil {
		where = append(where, "i.project_id = "+arg(*filter.ProjectID))
	}
	if len(filter.Status) > 0 {
		ph := make([]string, len(filter.Status))
		for j, s := range filter.Status {
			ph[j] = arg(string(s))
		}
		where = append(where, "i.status IN ("+strings.Join(ph, ", ")+")")
	}
	if filter.Search != "" {
		p := arg("%" + filter.Search + "%")
		where = append(where, "(i.name ILIKE "+p+" OR i.description ILIKE "+p+")")
	}

	query := `SELECT ` + issueColumns + issueJoins
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY i.created_at, i.id"

	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var issues []*model.RawIssue
	for rows.Next() {
		issue, err := scanIssue(rows)
		if err != nil {
			return nil, err
		}
		issues = append(issues, issue)
	}
	return issues, rows.Err()
}

func queryUpdateIssue(ctx context.Context, db executor, issue *model.RawIssue) error {
	res, err := db.ExecContext(ctx, `
		UPDATE issues SET
			name = $2, description = $3, type = $4, status = $5, priority = $6,
			story_point = $7, sprint_id = $8, assigned_to = $9, updated_at = now()
		WHERE id = $1`,
		issue.ID,
		issue.Name,
		issue.Description,
		issue.Type,
		issue.Status,
		issue.Priority,
		issue.StoryPoint,
		nullIntPtr(issue.SprintID),
		nullInt(issue.AssignedTo),
	)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

func queryDeleteIssue(ctx context.Context, db executor, id int) error {
	res, err := db.ExecContext(ctx, `DELETE FROM issues WHERE id = $1`, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

func queryCreateProject(ctx context.Context, db executor, project *model.RawProject) error {
	return db.QueryRowContext(ctx,
		`INSERT INTO projects (name) VALUES ($1) RETURNING id`,
		project.Name,
	).Scan(&project.ID)
}

func queryGetProject(ctx context.Context, db executor, id int) (*model.RawProject, error) {
	var p model.RawProject
	err := db.QueryRowContext(ctx,
		`SELECT id, name FROM projects WHERE id = $1`, id,
	).Scan(&p.ID, &p.Name)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func queryListProjects(ctx context.Context, db executor) ([]*model.RawProject, error) {
	rows, err := db.QueryContext(ctx, `SELECT id, name FROM projects ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var projects []*model.RawProject
	for rows.Next() {
		var p model.RawProject
		if err := rows.Scan(&p.ID, &p.Name); err != nil {
			return nil, err
		}
		projects = append(projects, &p)
	}
	return projects, rows.Err()
}

func queryListUsers(ctx context.Context, db executor) ([]*model.RawUser, error) {
	rows, err := db.QueryContext(ctx, `SELECT id, name FROM users ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []*model.RawUser
	for rows.Next() {
		var u model.RawUser
		if err := rows.Scan(&u.ID, &u.Name); err != nil {
			return nil, err
		}
		users = append(users, &u)
	}
	return users, rows.Err()
}
