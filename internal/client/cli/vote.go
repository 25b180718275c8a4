package cli

import (
	"context"
	"fmt"
	"os"
)

// Vote casts a ballot in an election.
func (a *App) Vote(ctx context.Context) error {
	electionID, err := GetSimpleText(a.reader, "Enter the election ID", os.Stdout)
	if err != nil {
		return err
	}
	candidateID, err := GetSimpleText(a.reader, "Enter the candidate ID", os.Stdout)
	if err != nil {
		return err
	}

	receipt, err := a.api.SubmitVote(ctx, electionID, candidateID)
	if err != nil {
		printlnFn("Vote failed:", err)
		return err
	}

	printlnFn("Ballot accepted, receipt", receipt.ID)
	return nil
}

// MyVotes shows the caller's own decrypted ballots.
func (a *App) MyVotes(ctx context.Context) error {
	payloads, err := a.api.MyVotes(ctx)
	if err != nil {
		printlnFn("Error:", err)
		return err
	}

	if len(payloads) == 0 {
		printlnFn("You have not voted yet")
		return nil
	}
	for _, p := range payloads {
		printlnFn(fmt.Sprintf("election %s: voted for %s", p.Election, p.Candidate))
	}
	return nil
}
