// Package repository provides PostgreSQL and MySQL persistence for meetings.
package repository

import (
	"database/sql"
	"time"

	"github.com/allisson/meetings/internal/meeting/domain"
)

// scanner is implemented by *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanMeeting(s scanner) (*domain.Meeting, error) {
	var (
		meeting   domain.Meeting
		startTime sql.NullTime
		endTime   sql.NullTime
	)
	err := s.Scan(
		&meeting.ID,
		&meeting.Title,
		&meeting.Description,
		&meeting.CreatorID,
		&meeting.Status,
		&meeting.CreatedAt,
		&startTime,
		&endTime,
	)
	if err != nil {
		return nil, err
	}
	meeting.StartTime = nullTimePtr(startTime)
	meeting.EndTime = nullTimePtr(endTime)
	return &meeting, nil
}

func nullTimePtr(t sql.NullTime) *time.Time {
	if !t.Valid {
		return nil
	}
	v := t.Time
	return &v
}

func timePtrArg(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: *t, Valid: true}
}
