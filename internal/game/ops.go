package game

// Op names one operation on the session command surface. The boundary uses
// HostOnly to decide which requests need the host key; the check itself
// (key equality) happens at the boundary, not here.
type Op string

const (
	OpJoin         Op = "join"
	OpRename       Op = "rename"
	OpSubmit       Op = "submit"
	OpVote         Op = "vote"
	OpStartRound   Op = "start_round"
	OpAdvance      Op = "advance_voting"
	OpReveal       Op = "reveal"
	OpAwardPoints  Op = "award_points"
	OpKick         Op = "kick"
	OpSnapshot     Op = "snapshot"
	OpHostSnapshot Op = "host_snapshot"
	OpRecap        Op = "recap"
)

var hostOnlyOps = map[Op]bool{
	OpStartRound:   true,
	OpAdvance:      true,
	OpReveal:       true,
	OpAwardPoints:  true,
	OpKick:         true,
	OpHostSnapshot: true,
	OpRecap:        true,
}

// HostOnly reports whether the operation requires host authority.
func (o Op) HostOnly() bool {
	return hostOnlyOps[o]
}
