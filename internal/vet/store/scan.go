package store

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/benjaminBJ/taller-api-rest/internal/vet/domain"
)

// timestampLayouts are the text forms drivers hand back for timestamp
// columns that they do not convert themselves.
var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02 15:04:05.999999999-07:00",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// Timestamp scans a timestamp column regardless of how the driver stores
// it. The result is always UTC.
type Timestamp struct {
	Time time.Time
}

func (t *Timestamp) Scan(src any) error {
	switch v := src.(type) {
	case time.Time:
		t.Time = v.UTC()
		return nil
	case int64:
		t.Time = time.Unix(v, 0).UTC()
		return nil
	case []byte:
		return t.parse(string(v))
	case string:
		return t.parse(v)
	case nil:
		t.Time = time.Time{}
		return nil
	default:
		return fmt.Errorf("store: cannot scan %T into timestamp", src)
	}
}

func (t *Timestamp) parse(s string) error {
	for _, layout := range timestampLayouts {
		if ts, err := time.Parse(layout, s); err == nil {
			t.Time = ts.UTC()
			return nil
		}
	}
	return fmt.Errorf("store: unrecognised timestamp %q", s)
}

func scanPerson(row Row) (domain.Person, error) {
	var p domain.Person
	err := row.Scan(&p.ID, &p.Name, &p.Email, &p.Phone)
	return p, err
}

func scanPet(row Row) (domain.Pet, error) {
	var p domain.Pet
	err := row.Scan(&p.ID, &p.Name, &p.Breed, &p.PersonID)
	return p, err
}

func scanAppointment(row Row) (domain.Appointment, error) {
	var (
		a    domain.Appointment
		date Timestamp
	)
	if err := row.Scan(&a.ID, &date, &a.Veterinarian, &a.PetID); err != nil {
		return domain.Appointment{}, err
	}
	a.Date = date.Time
	return a, nil
}

// collect drains rows through scan. The slice is never nil so empty
// results encode as [].
func collect[T any](rows *sql.Rows, err error, scan func(Row) (T, error)) ([]T, error) {
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]T, 0)
	for rows.Next() {
		v, err := scan(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, rows.Err()
}
