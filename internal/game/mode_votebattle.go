package game

import "fmt"

// Vote Battle: two-phase. Players write entries while collecting, the host
// opens voting to freeze them as anonymous candidates, then everyone votes
// for a favorite. Voting for your own entry is rejected.

type voteBattleStrategy struct {
	noSecrets
	noPrivateView
}

func (voteBattleStrategy) Mode() Mode { return ModeVoteBattle }

func (voteBattleStrategy) Caps() Capabilities {
	return Capabilities{
		FreeText:           true,
		ChoiceVote:         true,
		AutoScored:         true,
		TwoPhase:           true,
		VotesOnSubmissions: true,
	}
}

func (voteBattleStrategy) Begin(r *Round, req RoundRequest, env *Env) error {
	text := CleanText(req.Prompt, env.Rules.TextMaxLen)
	if text == "" {
		drawn, err := env.Decks.DrawText(ModeVoteBattle)
		if err != nil {
			return err
		}
		text = drawn
	}
	r.Prompt = Prompt{Text: text}
	return nil
}

func (voteBattleStrategy) Submit(r *Round, p *Player, in Input, env *Env) error {
	cleaned, err := cleanSubmissionText(in.Text, env.Rules.VoteBattleMaxLen, env)
	if err != nil {
		return err
	}
	r.putSubmission(p.ID, Submission{Text: cleaned})
	return nil
}

func (voteBattleStrategy) OpenVoting(r *Round, env *Env) error {
	r.Entries = freezeEntries(r)
	return nil
}

func (voteBattleStrategy) Vote(r *Round, p *Player, in Input, env *Env) error {
	if in.Entry < 0 {
		return fmt.Errorf("%w: pick an entry", ErrInvalidContent)
	}
	entry, ok := r.entryByID(in.Entry)
	if !ok {
		return fmt.Errorf("%w: entry %d does not exist", ErrInvalidContent, in.Entry)
	}
	if entry.Author == p.ID {
		return fmt.Errorf("%w: vote for someone else's entry", ErrSelfTarget)
	}
	r.putVote(p.ID, Vote{Entry: in.Entry})
	return nil
}

func (voteBattleStrategy) Score(r *Round, env *Env) (map[PlayerID]int, *RevealPayload) {
	entries := r.Entries
	if entries == nil {
		// Revealed straight from collecting; candidates were never frozen.
		entries = freezeEntries(r)
	}

	counts := make(map[int]int, len(entries))
	for _, entry := range entries {
		counts[entry.ID] = 0
	}
	for _, v := range r.Votes {
		if _, ok := counts[v.Entry]; ok {
			counts[v.Entry]++
		}
	}

	top := 0
	for _, n := range counts {
		if n > top {
			top = n
		}
	}

	deltas := make(map[PlayerID]int)
	winners := make([]PlayerID, 0)
	revealEntries := make([]RevealEntry, 0, len(entries))
	for _, entry := range entries {
		votes := counts[entry.ID]
		if top > 0 && votes == top {
			deltas[entry.Author] = env.Rules.VoteBattlePoints
			winners = append(winners, entry.Author)
		}
		revealEntries = append(revealEntries, RevealEntry{
			ID:     entry.ID,
			Author: env.Reg.Name(entry.Author),
			Text:   entry.Text,
			Votes:  votes,
		})
	}

	payload := &RevealPayload{
		Prompt:  r.Prompt.Text,
		Entries: revealEntries,
		Winners: winnerNames(env, winners),
	}
	if top == 0 {
		payload.Note = "No votes were cast."
	}
	return deltas, payload
}

// freezeEntries snapshots the submission set as the vote-able candidate
// list, in first-write order, ids stable across resubmissions.
func freezeEntries(r *Round) []Entry {
	subs := r.orderedSubmissions()
	entries := make([]Entry, 0, len(subs))
	for _, sub := range subs {
		entries = append(entries, Entry{ID: sub.Seq, Author: sub.Player, Text: sub.Text})
	}
	return entries
}
