package queries

import (
	"encoding/base64"
	"strconv"
	"strings"
	"time"

	"inspection-marketplace/internal/pkg/errs"

	"github.com/google/uuid"
)

const (
	DefaultListLimit = 20
	MaxListLimit     = 100
	CursorVersionV1  = "v1"
)

var ErrInvalidCursor = errs.New("invalid cursor")

type Cursor struct {
	After string `json:"after,omitempty"`
}

// Uses microsecond precision to align with PostgreSQL timestamp precision
func EncodeAfterCursor(t time.Time, id uuid.UUID) string {
	return base64.URLEncoding.EncodeToString([]byte(CursorVersionV1 + ":" + strconv.FormatInt(t.UnixMicro(), 10) + "-" + id.String()))
}

func DecodeAfterCursor(cursor string) (time.Time, uuid.UUID, error) {
	decoded, err := base64.URLEncoding.DecodeString(cursor)
	if err != nil {
		return time.Time{}, uuid.Nil, errs.Mark(errs.Wrap(err, "decode cursor"), ErrInvalidCursor)
	}
	payload, ok := strings.CutPrefix(string(decoded), CursorVersionV1+":")
	if !ok {
		return time.Time{}, uuid.Nil, errs.Wrap(ErrInvalidCursor, "unknown cursor version")
	}

	micros, rawID, ok := strings.Cut(payload, "-")
	if !ok {
		return time.Time{}, uuid.Nil, errs.Wrap(ErrInvalidCursor, "expected '<micros>-<uuid>'")
	}
	ts, err := strconv.ParseInt(micros, 10, 64)
	if err != nil {
		return time.Time{}, uuid.Nil, errs.Mark(errs.Wrap(err, "cursor timestamp"), ErrInvalidCursor)
	}
	id, err := uuid.Parse(rawID)
	if err != nil {
		return time.Time{}, uuid.Nil, errs.Mark(errs.Wrap(err, "cursor id"), ErrInvalidCursor)
	}

	return time.UnixMicro(ts).UTC(), id, nil
}

func ValidateLimit(limit int) int {
	if limit <= 0 {
		return DefaultListLimit
	}
	if limit > MaxListLimit {
		return MaxListLimit
	}
	return limit
}

// Page is the keyset position a read store resumes from; a nil Page means the first page.
type Page struct {
	AfterCreatedAt time.Time
	AfterID        uuid.UUID
}

func pageFromCursor(c *Cursor) (*Page, error) {
	if c == nil || c.After == "" {
		return nil, nil
	}
	t, id, err := DecodeAfterCursor(c.After)
	if err != nil {
		return nil, err
	}
	return &Page{AfterCreatedAt: t, AfterID: id}, nil
}

// trimPage drops the look-ahead row and builds the next cursor from the last kept item.
func trimPage[T any](rows []T, limit int, key func(T) (time.Time, uuid.UUID)) ([]T, *Cursor) {
	if len(rows) <= limit {
		return rows, nil
	}
	rows = rows[:limit]
	t, id := key(rows[limit-1])
	return rows, &Cursor{After: EncodeAfterCursor(t, id)}
}
