package cli

import (
	"context"
	"fmt"
	"os"
)

// Elections lists all elections with their current status.
func (a *App) Elections(ctx context.Context) error {
	elections, err := a.api.Elections(ctx)
	if err != nil {
		printlnFn("Error:", err)
		return err
	}

	if len(elections) == 0 {
		printlnFn("No elections found")
		return nil
	}
	for _, e := range elections {
		printlnFn(fmt.Sprintf("%s  %-30s  %s  %s — %s",
			e.ID, e.Title, e.Status,
			e.StartDate.Local().Format("2006-01-02 15:04"),
			e.EndDate.Local().Format("2006-01-02 15:04")))
	}
	return nil
}

// Candidates lists the candidates of one election.
func (a *App) Candidates(ctx context.Context) error {
	electionID, err := GetSimpleText(a.reader, "Enter the election ID", os.Stdout)
	if err != nil {
		return err
	}

	candidates, err := a.api.Candidates(ctx, electionID)
	if err != nil {
		printlnFn("Error:", err)
		return err
	}

	if len(candidates) == 0 {
		printlnFn("No candidates found")
		return nil
	}
	for _, c := range candidates {
		printlnFn(fmt.Sprintf("%s  %-30s  %s", c.ID, c.Name, c.Party))
	}
	return nil
}

// Results shows the tally of an ended election.
func (a *App) Results(ctx context.Context) error {
	electionID, err := GetSimpleText(a.reader, "Enter the election ID", os.Stdout)
	if err != nil {
		return err
	}

	results, err := a.api.Results(ctx, electionID)
	if err != nil {
		printlnFn("Error:", err)
		return err
	}

	if len(results) == 0 {
		printlnFn("No ballots were cast in this election")
		return nil
	}
	for _, r := range results {
		printlnFn(fmt.Sprintf("%-30s  %d", r.Candidate, r.Count))
	}
	return nil
}
