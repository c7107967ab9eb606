// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/danielhkuo/pollscope/models"
	"github.com/danielhkuo/pollscope/viewer"
)

var (
	errInvalidPage   = errors.New("page must be a positive integer")
	errInvalidSort   = errors.New("sort must be a column index")
	errInvalidStatus = errors.New("status must be all, completed or upcoming")
)

// parseViewState reads ?q=&page=&size= into a view state.
// Absent parameters keep their defaults. A page past the end is not an
// error here; rendering clamps it.
func parseViewState(r *http.Request) (viewer.State, error) {
	query := r.URL.Query()
	s := viewer.NewState().WithQuery(query.Get("q"))

	if v := query.Get("size"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return s, fmt.Errorf("%w: got %q", viewer.ErrInvalidPageSize, v)
		}
		s, err = s.WithPageSize(n)
		if err != nil {
			return s, err
		}
	}

	if v := query.Get("page"); v != "" {
		p, err := strconv.Atoi(v)
		if err != nil || p < 1 {
			return s, fmt.Errorf("%w: got %q", errInvalidPage, v)
		}
		s = s.GoTo(p)
	}

	return s, nil
}

// parseSort reads ?sort=N. ok is false when no sort was asked for.
func parseSort(r *http.Request) (column int, ok bool, err error) {
	v := r.URL.Query().Get("sort")
	if v == "" {
		return 0, false, nil
	}
	column, err = strconv.Atoi(v)
	if err != nil || column < 0 {
		return 0, false, fmt.Errorf("%w: got %q", errInvalidSort, v)
	}
	return column, true, nil
}

// parseStatus reads ?status=, defaulting to all
func parseStatus(r *http.Request) (string, error) {
	status := r.URL.Query().Get("status")
	switch status {
	case "":
		return models.StatusAll, nil
	case models.StatusAll, models.StatusCompleted, models.StatusUpcoming:
		return status, nil
	}
	return "", fmt.Errorf("%w: got %q", errInvalidStatus, status)
}
