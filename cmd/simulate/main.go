package main

import (
	"flag"
	"fmt"
	"log"
	"math/rand/v2"
	"os"

	"schieber-game/internal/bot"
	"schieber-game/internal/jass"
)

// Headless match runner. Pits bot lineups against each other without any
// server, useful for checking scoring balance and strategy strength.
func main() {
	matches := flag.Int("matches", 100, "number of matches to run")
	target := flag.Int("target", 1000, "target score per match")
	seed := flag.Uint64("seed", 1, "base RNG seed")
	team0 := flag.String("team0", "greedy", "strategy for seats 0 and 2 (greedy or random)")
	team1 := flag.String("team1", "random", "strategy for seats 1 and 3 (greedy or random)")
	flag.Parse()

	log.SetFlags(0)

	var wins [2]int
	var totalHands, totalPoints int

	for m := 0; m < *matches; m++ {
		matchSeed := *seed + uint64(m)
		g := jass.NewGame(jass.Config{
			TargetScore: *target,
			Rand:        rand.New(rand.NewPCG(matchSeed, matchSeed^0x9e3779b9)),
		})

		seats := [4]bot.Strategy{
			newStrategy(*team0, matchSeed*4+0),
			newStrategy(*team1, matchSeed*4+1),
			newStrategy(*team0, matchSeed*4+2),
			newStrategy(*team1, matchSeed*4+3),
		}

		if err := runMatch(g, seats); err != nil {
			log.Fatalf("match %d: %v", m, err)
		}

		wins[g.WinnerTeam]++
		totalHands += g.HandsPlayed
		totalPoints += g.Scores[0] + g.Scores[1]
	}

	fmt.Printf("matches:      %d (target %d)\n", *matches, *target)
	fmt.Printf("team 0 (%s): %d wins\n", *team0, wins[0])
	fmt.Printf("team 1 (%s): %d wins\n", *team1, wins[1])
	fmt.Printf("avg hands:    %.1f\n", float64(totalHands)/float64(*matches))
	fmt.Printf("avg points:   %.1f per match\n", float64(totalPoints)/float64(*matches))
}

func newStrategy(name string, seed uint64) bot.Strategy {
	switch name {
	case "greedy":
		return bot.NewGreedy()
	case "random":
		return bot.NewRandom(seed)
	default:
		fmt.Fprintf(os.Stderr, "unknown strategy %q (want greedy or random)\n", name)
		os.Exit(2)
		return nil
	}
}

// runMatch drives a single match to completion.
func runMatch(g *jass.Game, seats [4]bot.Strategy) error {
	for steps := 0; g.Phase != jass.PhaseMatchFinished; steps++ {
		if steps > 200000 {
			return fmt.Errorf("match did not terminate after %d steps", steps)
		}
		switch g.Phase {
		case jass.PhaseDealing, jass.PhaseHandFinished:
			if err := g.StartHand(); err != nil {
				return fmt.Errorf("start hand: %w", err)
			}
		case jass.PhaseContractSelection:
			if err := bot.Act(g, g.Selector, seats[g.Selector]); err != nil {
				return fmt.Errorf("contract selection: %w", err)
			}
		case jass.PhasePlaying:
			if err := bot.Act(g, g.TurnSeat, seats[g.TurnSeat]); err != nil {
				return fmt.Errorf("play: %w", err)
			}
		case jass.PhaseResolving:
			if err := g.ResolveTrick(); err != nil {
				return fmt.Errorf("resolve trick: %w", err)
			}
		default:
			return fmt.Errorf("unexpected phase %s", g.Phase)
		}
	}
	return nil
}
