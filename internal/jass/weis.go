package jass

import "sort"

// WeisType identifies the kind of a Weis declaration.
type WeisType string

const (
	WeisSequence    WeisType = "sequence"       // 3+ consecutive ranks in one suit
	WeisFourOfAKind WeisType = "four_of_a_kind" // all four suits of one rank
	WeisStoeck      WeisType = "stoeck"         // trump König + Ober
)

// Weis is a single bonus declaration detected in a dealt hand. A hand may
// yield several declarations; their points are additive for the team that
// wins the Weis comparison.
type Weis struct {
	Type   WeisType `json:"type"`
	Cards  []Card   `json:"cards"`
	Points int      `json:"points"`
}

// topIndex returns the canonical rank index of the strongest card of a
// sequence (sequence cards are stored in canonical order).
func (w Weis) topIndex() int {
	if len(w.Cards) == 0 {
		return -1
	}
	return canonicalIndex[w.Cards[len(w.Cards)-1].Rank]
}

var fourOfAKindPoints = map[Rank]int{
	Under:  200,
	Nine:   150,
	Ass:    100,
	Koenig: 100,
	Ober:   100,
	Ten:    100,
}

func sequencePoints(length int) int {
	switch {
	case length >= 5:
		return 100
	case length == 4:
		return 50
	case length == 3:
		return 20
	default:
		return 0
	}
}

// DetectWeis finds all Weis declarations in a dealt hand under the given
// contract: maximal sequences of 3+ consecutive ranks in one suit (a run of
// 5+ counts once, never decomposed), four-of-a-kinds, and Stöck (trump
// König + Ober, only under a suit contract). Called once per hand right
// after contract selection; never recomputed mid-hand.
func DetectWeis(hand []Card, contract Contract) []Weis {
	var found []Weis

	// Maximal runs of consecutive ranks per suit.
	for _, suit := range Suits {
		var indices []int
		bySuit := map[int]Card{}
		for _, c := range hand {
			if c.Suit == suit {
				idx := canonicalIndex[c.Rank]
				indices = append(indices, idx)
				bySuit[idx] = c
			}
		}
		sort.Ints(indices)

		for i := 0; i < len(indices); {
			j := i
			for j+1 < len(indices) && indices[j+1] == indices[j]+1 {
				j++
			}
			length := j - i + 1
			if pts := sequencePoints(length); pts > 0 {
				cards := make([]Card, 0, length)
				for k := i; k <= j; k++ {
					cards = append(cards, bySuit[indices[k]])
				}
				found = append(found, Weis{Type: WeisSequence, Cards: cards, Points: pts})
			}
			i = j + 1
		}
	}

	// Four of a kind per rank.
	for _, rank := range Ranks {
		pts, scores := fourOfAKindPoints[rank]
		if !scores {
			continue
		}
		var cards []Card
		for _, c := range hand {
			if c.Rank == rank {
				cards = append(cards, c)
			}
		}
		if len(cards) == 4 {
			found = append(found, Weis{Type: WeisFourOfAKind, Cards: cards, Points: pts})
		}
	}

	// Stöck: König and Ober of the trump suit.
	if trump, ok := contract.TrumpSuit(); ok {
		var koenig, ober *Card
		for i, c := range hand {
			if c.Suit != trump {
				continue
			}
			switch c.Rank {
			case Koenig:
				koenig = &hand[i]
			case Ober:
				ober = &hand[i]
			}
		}
		if koenig != nil && ober != nil {
			found = append(found, Weis{
				Type:   WeisStoeck,
				Cards:  []Card{*koenig, *ober},
				Points: 20,
			})
		}
	}

	return found
}

// Better reports whether w is strictly better than other. Point value is
// the primary key; on equal points two sequences compare by length, then by
// top card. Equal-point ties that are not decided by those keys are exact
// ties and neither declaration wins.
func (w Weis) Better(other Weis) bool {
	if w.Points != other.Points {
		return w.Points > other.Points
	}
	if w.Type != WeisSequence || other.Type != WeisSequence {
		return false
	}
	if len(w.Cards) != len(other.Cards) {
		return len(w.Cards) > len(other.Cards)
	}
	return w.topIndex() > other.topIndex()
}

// bestWeis returns the best declaration of a list, or false if empty.
// Among equal-point candidates a sequence is the stronger representative:
// it can still win the cross-team comparison on length and top card, where
// a four of a kind can at best tie.
func bestWeis(list []Weis) (Weis, bool) {
	if len(list) == 0 {
		return Weis{}, false
	}
	best := list[0]
	for _, w := range list[1:] {
		switch {
		case w.Better(best):
			best = w
		case best.Better(w):
		case w.Points == best.Points && w.Type == WeisSequence && best.Type != WeisSequence:
			best = w
		}
	}
	return best, true
}

// ResolveTeamWeis compares the two teams' best declarations and returns the
// Weis points awarded per team. Only the team holding the strictly better
// best declaration scores, and it scores the combined points of all of its
// players' declarations; on an exact tie neither team scores.
func ResolveTeamWeis(players [4]*Player) [2]int {
	var teamDecls [2][]Weis
	for _, p := range players {
		teamDecls[p.Team()] = append(teamDecls[p.Team()], p.Weis...)
	}

	best0, ok0 := bestWeis(teamDecls[0])
	best1, ok1 := bestWeis(teamDecls[1])

	sum := func(list []Weis) int {
		total := 0
		for _, w := range list {
			total += w.Points
		}
		return total
	}

	var awarded [2]int
	switch {
	case ok0 && (!ok1 || best0.Better(best1)):
		awarded[0] = sum(teamDecls[0])
	case ok1 && (!ok0 || best1.Better(best0)):
		awarded[1] = sum(teamDecls[1])
	}
	return awarded
}
