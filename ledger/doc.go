// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package ledger is the vote-recording protocol.

# One Vote Per Voter Per Election

CastVote inserts unconditionally and treats the storage-level unique
violation on (voter_id, election_id) as the authoritative already-voted
signal:

	voteID, err := ledger.CastVote(voterID, candidateID, electionID)
	if errors.Is(err, ledger.ErrAlreadyVoted) { ... }

A read-then-write pre-check would race: two concurrent requests could both
pass the read before either writes. The constraint turns the decision into
a storage-layer compare-and-insert that holds across server processes.

# Tallies

CountVotes counts committed rows per candidate, ordered by tally descending
and candidate name ascending for a stable tie-break:

	tallies, err := ledger.CountVotes(electionID)

There is no running counter anywhere; a tally is always the current row
count, so votes removed by voter deletion are reflected on the next read.

# Cascades

RemoveVoterVotes and ElectionFootprint run inside an admin transaction so
destructive operations can report exactly how many dependent rows they
removed.
*/
package ledger
