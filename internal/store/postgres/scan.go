package postgres

import (
	"database/sql"

	"github.com/groblegark/trak/internal/model"
)

// rowScanner is satisfied by both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

// scanIssue reads one issue row including the joined assignee, reporter, and
// project columns, materializing embedded references when present.
func scanIssue(row rowScanner) (*model.RawIssue, error) {
	var (
		issue                          model.RawIssue
		projectID, assignedTo, byID    sql.NullInt64
		sprintID                       sql.NullInt64
		aID, rID, pID                  sql.NullInt64
		aName, rName, pName            sql.NullString
	)

	err := row.Scan(
		&issue.ID,
		&issue.Name,
		&issue.Description,
		&issue.Type,
		&issue.Status,
		&issue.Priority,
		&issue.StoryPoint,
		&projectID,
		&sprintID,
		&assignedTo,
		&byID,
		&issue.CreatedAt,
		&issue.UpdatedAt,
		&aID, &aName,
		&rID, &rName,
		&pID, &pName,
	)
	if err != nil {
		return nil, err
	}

	issue.ProjectID = int(projectID.Int64)
	issue.AssignedTo = int(assignedTo.Int64)
	issue.AssignedBy = int(byID.Int64)
	if sprintID.Valid {
		v := int(sprintID.Int64)
		issue.SprintID = &v
	}
	if aID.Valid {
		issue.Assignee = &model.RawUser{ID: int(aID.Int64), Name: aName.String}
	}
	if rID.Valid {
		issue.Reporter = &model.RawUser{ID: int(rID.Int64), Name: rName.String}
	}
	if pID.Valid {
		issue.Project = &model.RawProject{ID: int(pID.Int64), Name: pName.String}
	}

	return &issue, nil
}

// nullInt converts a zero int to NULL for optional foreign keys.
func nullInt(v int) sql.NullInt64 {
	if v == 0 {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: int64(v), Valid: true}
}

func nullIntPtr(v *int) sql.NullInt64 {
	if v == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: int64(*v), Valid: true}
}
