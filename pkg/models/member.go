package models

// Member is one row of the member sheet. Records are read once per run
// and never mutated afterwards.
type Member struct {
	ID         int
	Salutation string
	FirstName  string
	LastName   string
	Email      string
	Status     string
	Membership string
}

func (m Member) FullName() string {
	return m.FirstName + " " + m.LastName
}
