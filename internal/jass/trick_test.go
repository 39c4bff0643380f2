package jass

import "testing"

func TestDetermineWinner(t *testing.T) {
	cases := []struct {
		name     string
		contract Contract
		plays    [4]Card // seat i plays plays[i], seat 0 leads
		want     int
	}{
		{
			name:     "highest of lead suit wins without trump",
			contract: TrumpSchilten,
			plays:    [4]Card{{Eicheln, Ten}, {Eicheln, Ass}, {Eicheln, Six}, {Rosen, Ass}},
			want:     1,
		},
		{
			name:     "any trump beats any non-trump",
			contract: TrumpSchellen,
			plays:    [4]Card{{Eicheln, Ass}, {Eicheln, Koenig}, {Schellen, Six}, {Eicheln, Ten}},
			want:     2,
		},
		{
			name:     "higher trump beats lower trump",
			contract: TrumpSchellen,
			plays:    [4]Card{{Schellen, Ass}, {Schellen, Nine}, {Schellen, Under}, {Schellen, Koenig}},
			want:     2,
		},
		{
			name:     "trump nine beats trump ass",
			contract: TrumpEicheln,
			plays:    [4]Card{{Eicheln, Ass}, {Eicheln, Nine}, {Rosen, Ass}, {Rosen, Ten}},
			want:     1,
		},
		{
			name:     "off-suit discard never wins",
			contract: TrumpEicheln,
			plays:    [4]Card{{Rosen, Six}, {Schellen, Ass}, {Schilten, Ass}, {Rosen, Seven}},
			want:     3,
		},
		{
			name:     "obenabe highest of lead suit",
			contract: Obenabe,
			plays:    [4]Card{{Schilten, Koenig}, {Schilten, Ass}, {Rosen, Ass}, {Schilten, Six}},
			want:     1,
		},
		{
			name:     "undenufe lowest rank order wins",
			contract: Undenufe,
			plays:    [4]Card{{Rosen, Ten}, {Rosen, Six}, {Rosen, Ass}, {Schellen, Six}},
			want:     1,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			trick := NewTrick(0)
			for seat, card := range tc.plays {
				trick.AddCard(card, seat)
			}
			if got := trick.DetermineWinner(tc.contract); got != tc.want {
				t.Fatalf("winner seat %d, want %d", got, tc.want)
			}
			if trick.WinnerSeat != tc.want {
				t.Fatalf("WinnerSeat not recorded: %d, want %d", trick.WinnerSeat, tc.want)
			}
		})
	}
}

func TestTrickPoints(t *testing.T) {
	trick := NewTrick(0)
	trick.AddCard(Card{Eicheln, Under}, 0)
	trick.AddCard(Card{Eicheln, Nine}, 1)
	trick.AddCard(Card{Rosen, Ass}, 2)
	trick.AddCard(Card{Rosen, Nine}, 3)

	// Eicheln trump: 20 + 14 + 11 + 0.
	if got := trick.Points(TrumpEicheln); got != 45 {
		t.Fatalf("trick points %d, want 45", got)
	}
	// Rosen trump flips which pair is trump: 2 + 0 + 11 + 14.
	if got := trick.Points(TrumpRosen); got != 27 {
		t.Fatalf("trick points %d under rosen trump, want 27", got)
	}
	// No trump at all: 2 + 0 + 11 + 0.
	if got := trick.Points(Obenabe); got != 13 {
		t.Fatalf("trick points %d under obenabe, want 13", got)
	}
}

func TestTrickLeadSuit(t *testing.T) {
	trick := NewTrick(2)
	if _, ok := trick.LeadSuit(); ok {
		t.Fatal("empty trick must have no lead suit")
	}
	trick.AddCard(Card{Schilten, Seven}, 2)
	lead, ok := trick.LeadSuit()
	if !ok || lead != Schilten {
		t.Fatalf("lead suit %s, want Schilten", lead)
	}
}
