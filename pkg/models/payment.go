package models

// Payment is the transient join of one member with its matched fee and
// mandate. Fee and Mandate stay nil when the finance sheet has no row
// for the member.
type Payment struct {
	Member  Member
	Fee     *Fee
	Mandate *Mandate
}
