package domain

type Pet struct {
	ID       int64
	Name     string
	Breed    string
	PersonID int64 // owner
}
