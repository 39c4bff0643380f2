package jass

import "testing"

func findWeis(list []Weis, typ WeisType, points int) *Weis {
	for i := range list {
		if list[i].Type == typ && list[i].Points == points {
			return &list[i]
		}
	}
	return nil
}

func TestDetectWeisSequences(t *testing.T) {
	cases := []struct {
		name       string
		hand       []Card
		wantPoints int
		wantLen    int
	}{
		{
			name:       "three in a row",
			hand:       []Card{{Eicheln, Six}, {Eicheln, Seven}, {Eicheln, Eight}, {Rosen, Ten}, {Schilten, Ass}},
			wantPoints: 20,
			wantLen:    3,
		},
		{
			name:       "four in a row",
			hand:       []Card{{Rosen, Ten}, {Rosen, Under}, {Rosen, Ober}, {Rosen, Koenig}, {Eicheln, Six}},
			wantPoints: 50,
			wantLen:    4,
		},
		{
			name:       "five in a row counts once",
			hand:       []Card{{Schellen, Six}, {Schellen, Seven}, {Schellen, Eight}, {Schellen, Nine}, {Schellen, Ten}},
			wantPoints: 100,
			wantLen:    5,
		},
		{
			name: "seven in a row still one declaration",
			hand: []Card{
				{Schilten, Six}, {Schilten, Seven}, {Schilten, Eight}, {Schilten, Nine},
				{Schilten, Ten}, {Schilten, Under}, {Schilten, Ober},
			},
			wantPoints: 100,
			wantLen:    7,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			found := DetectWeis(tc.hand, Obenabe)
			w := findWeis(found, WeisSequence, tc.wantPoints)
			if w == nil {
				t.Fatalf("no %d-point sequence detected in %v", tc.wantPoints, found)
			}
			if len(w.Cards) != tc.wantLen {
				t.Fatalf("sequence of %d cards, want %d", len(w.Cards), tc.wantLen)
			}
			if seqs := countType(found, WeisSequence); seqs != 1 {
				t.Fatalf("detected %d sequences, want exactly 1", seqs)
			}
		})
	}
}

func countType(list []Weis, typ WeisType) int {
	n := 0
	for _, w := range list {
		if w.Type == typ {
			n++
		}
	}
	return n
}

func TestDetectWeisNoShortRuns(t *testing.T) {
	hand := []Card{{Eicheln, Six}, {Eicheln, Seven}, {Eicheln, Nine}, {Eicheln, Under}, {Rosen, Koenig}}
	if found := DetectWeis(hand, Obenabe); len(found) != 0 {
		t.Fatalf("expected no Weis, got %v", found)
	}
}

func TestDetectWeisFourOfAKind(t *testing.T) {
	fours := func(rank Rank) []Card {
		var hand []Card
		for _, s := range Suits {
			hand = append(hand, Card{s, rank})
		}
		return hand
	}

	cases := []struct {
		rank Rank
		want int
	}{
		{Under, 200},
		{Nine, 150},
		{Ass, 100},
		{Koenig, 100},
		{Ober, 100},
		{Ten, 100},
	}
	for _, tc := range cases {
		found := DetectWeis(fours(tc.rank), Obenabe)
		if w := findWeis(found, WeisFourOfAKind, tc.want); w == nil {
			t.Errorf("four %ss: no %d-point declaration in %v", tc.rank, tc.want, found)
		}
	}

	// Four sevens are worth nothing.
	if found := DetectWeis(fours(Seven), Obenabe); countType(found, WeisFourOfAKind) != 0 {
		t.Errorf("four sevens must not score: %v", found)
	}
}

func TestDetectStoeck(t *testing.T) {
	hand := []Card{{Schellen, Koenig}, {Schellen, Ober}, {Rosen, Six}, {Eicheln, Ten}}

	found := DetectWeis(hand, TrumpSchellen)
	if w := findWeis(found, WeisStoeck, 20); w == nil {
		t.Fatalf("trump Koenig+Ober must yield Stöck, got %v", found)
	}

	// Same pair in a non-trump suit, or under a suit-less contract, is no Stöck.
	if found := DetectWeis(hand, TrumpEicheln); countType(found, WeisStoeck) != 0 {
		t.Error("Stöck detected for a non-trump suit")
	}
	if found := DetectWeis(hand, Obenabe); countType(found, WeisStoeck) != 0 {
		t.Error("Stöck detected under Obenabe")
	}
}

func TestWeisBetter(t *testing.T) {
	seq := func(suit Suit, first, length int) Weis {
		var cards []Card
		for i := first; i < first+length; i++ {
			cards = append(cards, Card{suit, Ranks[i]})
		}
		return Weis{Type: WeisSequence, Cards: cards, Points: sequencePoints(length)}
	}
	four := Weis{Type: WeisFourOfAKind, Points: 100}

	cases := []struct {
		name  string
		a, b  Weis
		aWins bool
		bWins bool
	}{
		{"more points win", seq(Eicheln, 0, 4), seq(Rosen, 0, 3), true, false},
		{"equal threes tie", seq(Eicheln, 0, 3), seq(Rosen, 0, 3), false, false},
		{"longer sequence wins at equal points", seq(Eicheln, 0, 6), seq(Rosen, 0, 5), true, false},
		{"higher top card wins at equal length", seq(Eicheln, 1, 3), seq(Rosen, 0, 3), true, false},
		{"four of a kind vs sequence at equal points is a tie", four, seq(Rosen, 0, 5), false, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.a.Better(tc.b); got != tc.aWins {
				t.Errorf("a.Better(b) = %v, want %v", got, tc.aWins)
			}
			if got := tc.b.Better(tc.a); got != tc.bWins {
				t.Errorf("b.Better(a) = %v, want %v", got, tc.bWins)
			}
		})
	}
}

func TestResolveTeamWeis(t *testing.T) {
	newPlayers := func() [4]*Player {
		var players [4]*Player
		for i := range players {
			players[i] = NewPlayer(i)
		}
		return players
	}
	threeRun := func(suit Suit, first int) Weis {
		cards := []Card{{suit, Ranks[first]}, {suit, Ranks[first+1]}, {suit, Ranks[first+2]}}
		return Weis{Type: WeisSequence, Cards: cards, Points: 20}
	}

	t.Run("better team scores all its declarations", func(t *testing.T) {
		players := newPlayers()
		players[0].Weis = []Weis{{Type: WeisFourOfAKind, Points: 200}}
		players[2].Weis = []Weis{threeRun(Schilten, 0)}
		players[1].Weis = []Weis{{Type: WeisFourOfAKind, Points: 150}, threeRun(Rosen, 0)}

		awarded := ResolveTeamWeis(players)
		if awarded[0] != 220 || awarded[1] != 0 {
			t.Fatalf("awarded %v, want [220 0]", awarded)
		}
	})

	t.Run("equal-point four of a kind does not mask a longer sequence", func(t *testing.T) {
		run := func(suit Suit, first, length int) Weis {
			var cards []Card
			for i := first; i < first+length; i++ {
				cards = append(cards, Card{suit, Ranks[i]})
			}
			return Weis{Type: WeisSequence, Cards: cards, Points: sequencePoints(length)}
		}

		// Team 0 holds a 100-point four of a kind listed ahead of a
		// 100-point 7-run; the run must represent the team and beat the
		// opposing 100-point 6-run on length.
		players := newPlayers()
		players[0].Weis = []Weis{{Type: WeisFourOfAKind, Points: 100}}
		players[2].Weis = []Weis{run(Eicheln, 0, 7)}
		players[1].Weis = []Weis{run(Rosen, 0, 6)}

		awarded := ResolveTeamWeis(players)
		if awarded[0] != 200 || awarded[1] != 0 {
			t.Fatalf("awarded %v, want [200 0]", awarded)
		}
	})

	t.Run("exact tie scores nothing", func(t *testing.T) {
		players := newPlayers()
		players[0].Weis = []Weis{threeRun(Eicheln, 2)}
		players[3].Weis = []Weis{threeRun(Rosen, 2)}

		awarded := ResolveTeamWeis(players)
		if awarded[0] != 0 || awarded[1] != 0 {
			t.Fatalf("awarded %v, want [0 0] on an exact tie", awarded)
		}
	})

	t.Run("only one team declares", func(t *testing.T) {
		players := newPlayers()
		players[1].Weis = []Weis{threeRun(Schellen, 4)}

		awarded := ResolveTeamWeis(players)
		if awarded[0] != 0 || awarded[1] != 20 {
			t.Fatalf("awarded %v, want [0 20]", awarded)
		}
	})

	t.Run("no declarations at all", func(t *testing.T) {
		awarded := ResolveTeamWeis(newPlayers())
		if awarded != [2]int{} {
			t.Fatalf("awarded %v, want [0 0]", awarded)
		}
	})
}
